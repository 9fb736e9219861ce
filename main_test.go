/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"net/http"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"

	"github.com/Seednode/memorytour/media"
	"github.com/Seednode/memorytour/store"
	"github.com/Seednode/memorytour/tour"
)

func testConfig() *Config {
	return &Config{
		assets:         "assets",
		bind:           "127.0.0.1",
		port:           8080,
		store:          store.KindMemory,
		tickRate:       30,
		navDelay:       0,
		sessionTimeout: time.Minute,
	}
}

type testServer struct {
	cfg   *Config
	mux   *httprouter.Router
	store tour.Storage
	sm    *SessionManager
	errs  chan error
}

func newTestServer(t *testing.T, cfg *Config, st tour.Storage) *testServer {
	t.Helper()

	if cfg.assets == "assets" {
		cfg.assets = t.TempDir()
	}
	if st == nil {
		st = store.NewMemory()
	}

	cat, err := tour.DefaultCatalog()
	require.NoError(t, err)

	sm := newSessionManager(cfg.sessionTimeout)
	t.Cleanup(sm.closeAll)

	errs := make(chan error, 64)

	mux, err := newRouter(cfg, cat, st, media.NewLibrary(cfg.assets), sm, errs)
	require.NoError(t, err)

	return &testServer{cfg: cfg, mux: mux, store: st, sm: sm, errs: errs}
}

func playerCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()

	for _, c := range resp.Cookies() {
		if c.Name == playerCookieName {
			return c
		}
	}

	t.Fatalf("no %s cookie set", playerCookieName)

	return nil
}
