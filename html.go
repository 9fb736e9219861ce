/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
)

//go:embed assets/*
var assets embed.FS

var pageTemplates = template.Must(template.ParseFS(assets, "assets/tour/*.html"))

// pageData fills the home and year page templates.
type pageData struct {
	Prefix    string
	Favicon   template.HTML
	Title     string
	Slug      string
	Music     string
	DoorSound string
}

func mediaURL(cfg *Config, name string) string {
	if name == "" {
		return ""
	}

	return cfg.prefix + "/media/" + url.PathEscape(name)
}

func servePage(cfg *Config, tmpl string, data pageData) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		securityHeaders(cfg, w)

		_ = getOrSetPlayerID(w, r)

		if err := pageTemplates.ExecuteTemplate(w, tmpl, data); err != nil {
			errorf("SERVE: Rendering %s failed: %v", tmpl, err)

			return
		}

		logf(cfg, "SERVE: %s page to %s in %s",
			data.Title,
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func serveHealthCheck(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		securityHeaders(cfg, w)

		_, err := w.Write([]byte("Ok\n"))
		if err != nil {
			errs <- err

			return
		}
	}
}

func serveAssets(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		fname := path.Join("assets", path.Clean("/"+p.ByName("filepath")))

		data, err := assets.ReadFile(fname)
		if err != nil {
			notFound(cfg)(w, r)

			return
		}

		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		securityHeaders(cfg, w)

		ext := strings.ToLower(filepath.Ext(fname))
		switch ext {
		case ".css":
			w.Header().Set("Content-Type", "text/css; charset=utf-8")
		case ".js":
			w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		case ".html":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
		}

		_, err = w.Write(data)
		if err != nil {
			errs <- err

			return
		}
	}
}

// serveMedia serves photos and audio from the assets directory on disk.
func serveMedia(cfg *Config) httprouter.Handle {
	root := os.DirFS(cfg.assets)

	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		startTime := time.Now()

		name := strings.TrimPrefix(path.Clean("/"+p.ByName("filepath")), "/")
		if name == "" || name == "." {
			notFound(cfg)(w, r)

			return
		}

		if _, err := os.Stat(filepath.Join(cfg.assets, filepath.FromSlash(name))); err != nil {
			logf(cfg, "SERVE: Missing media %q requested by %s", name, realIP(r))
			notFound(cfg)(w, r)

			return
		}

		w.Header().Set("Cache-Control", "public, max-age=3600")
		securityHeaders(cfg, w)

		http.ServeFileFS(w, r, root, name)

		logf(cfg, "SERVE: Media %q to %s in %s",
			name,
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func notFound(cfg *Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)
		w.WriteHeader(http.StatusNotFound)

		_, _ = w.Write([]byte(newPage(cfg, "Not Found", "Nothing here. Back to the doors.")))
	}
}

func serveRobots(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
		data := strings.Join([]string{
			"User-agent: *",
			"Disallow: " + cfg.prefix + "/api/",
			"Disallow: " + cfg.prefix + "/media/",
			"Disallow: " + cfg.prefix + "/qr",
			"",
		}, "\n")

		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		securityHeaders(cfg, w)

		_, err := w.Write([]byte(data))
		if err != nil {
			errs <- err

			return
		}
	}
}
