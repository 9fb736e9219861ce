/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Seednode/memorytour/store"
	"github.com/Seednode/memorytour/tour"
)

type Config struct {
	assets         string
	bind           string
	catalog        string
	database       string
	metrics        bool
	navDelay       time.Duration
	port           int
	prefix         string
	profile        bool
	redisURL       string
	sessionTimeout time.Duration
	store          string
	tickRate       int
	tlsCert        string
	tlsKey         string
	verbose        bool
	version        bool
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.tickRate < 1 || c.tickRate > 120 {
		return fmt.Errorf("invalid tick rate (must be between 1-120 inclusive): %d", c.tickRate)
	}
	if c.navDelay < 0 {
		return fmt.Errorf("invalid navigation delay (must not be negative): %s", c.navDelay)
	}

	switch c.store {
	case store.KindMemory:
	case store.KindSQLite:
		if c.database == "" {
			return errors.New("--store sqlite requires --database")
		}
	case store.KindRedis:
		if c.redisURL == "" {
			return errors.New("--store redis requires --redis-url")
		}
	default:
		return fmt.Errorf("invalid store (must be one of memory, sqlite, redis): %q", c.store)
	}

	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func (c *Config) tick() time.Duration {
	return time.Second / time.Duration(c.tickRate)
}

func (c *Config) storeOptions() store.Options {
	return store.Options{
		Kind:     c.store,
		Database: c.database,
		RedisURL: c.redisURL,
	}
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("MEMORYTOUR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "memorytour",
		Short:         "A point-and-click memory tour, served as a single webapp.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.assets, "assets", "a", "assets", "directory containing photos and audio (env: MEMORYTOUR_ASSETS)")
	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: MEMORYTOUR_BIND)")
	fs.StringVarP(&cfg.catalog, "catalog", "c", "", "path to a yaml tour catalog, instead of the built-in one (env: MEMORYTOUR_CATALOG)")
	fs.StringVar(&cfg.database, "database", "", "path to sqlite database, for --store sqlite (env: MEMORYTOUR_DATABASE)")
	fs.BoolVar(&cfg.metrics, "metrics", false, "expose prometheus metrics at /metrics (env: MEMORYTOUR_METRICS)")
	fs.DurationVar(&cfg.navDelay, "nav-delay", tour.DefaultNavDelay, "pause between a door click and navigation (env: MEMORYTOUR_NAV_DELAY)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: MEMORYTOUR_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: MEMORYTOUR_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: MEMORYTOUR_PROFILE)")
	fs.StringVar(&cfg.redisURL, "redis-url", "", "redis url, for --store redis (env: MEMORYTOUR_REDIS_URL)")
	fs.DurationVar(&cfg.sessionTimeout, "session-timeout", 30*time.Minute, "time before idle page sessions are closed (env: MEMORYTOUR_SESSION_TIMEOUT)")
	fs.StringVar(&cfg.store, "store", store.KindMemory, "where music snapshots are kept: memory, sqlite, or redis (env: MEMORYTOUR_STORE)")
	fs.IntVar(&cfg.tickRate, "tick-rate", 30, "animation frames per second (env: MEMORYTOUR_TICK_RATE)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: MEMORYTOUR_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: MEMORYTOUR_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: MEMORYTOUR_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: MEMORYTOUR_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("memorytour v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
