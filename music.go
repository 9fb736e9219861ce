/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/Seednode/memorytour/media"
	"github.com/Seednode/memorytour/tour"
)

const (
	maxSnapshotBody = 1024
	storeTimeout    = 2 * time.Second
)

// MusicState is returned to pages on load so they can resume playback after
// the first user interaction.
type MusicState struct {
	Snapshot tour.Snapshot `json:"snapshot"`
	Resume   tour.Resume   `json:"resume"`
}

func serveMusicState(cfg *Config, st tour.Storage, lib *media.Library, track string, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		key := tour.StorageKey(getOrSetPlayerID(w, r))

		ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
		defer cancel()

		snap := tour.LoadSnapshot(ctx, st, key)
		state := MusicState{
			Snapshot: snap,
			Resume:   tour.PlanResume(snap, lib.Length(track)),
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		securityHeaders(cfg, w)

		if err := json.NewEncoder(w).Encode(state); err != nil {
			errs <- err

			return
		}
	}
}

// saveMusicState merges the page's update into the stored snapshot. Storage
// failures are logged and otherwise ignored; music resume is best effort.
func saveMusicState(cfg *Config, st tour.Storage) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		key := tour.StorageKey(getOrSetPlayerID(w, r))

		var update tour.SnapshotUpdate
		if err := json.NewDecoder(io.LimitReader(r.Body, maxSnapshotBody)).Decode(&update); err != nil {
			http.Error(w, "malformed music state", http.StatusBadRequest)

			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
		defer cancel()

		snap, err := tour.UpdateSnapshot(ctx, st, key, update)
		if err != nil {
			musicWritesTotal.WithLabelValues("error").Inc()
			errorf("MUSIC: Saving state for %s failed: %v", realIP(r), err)
		} else {
			musicWritesTotal.WithLabelValues("ok").Inc()
			logf(cfg, "MUSIC: Saved playing=%t time=%.1f volume=%.2f for %s", snap.Playing, snap.Time, snap.Volume, realIP(r))
		}

		securityHeaders(cfg, w)
		w.WriteHeader(http.StatusNoContent)
	}
}

func registerMusic(cfg *Config, st tour.Storage, lib *media.Library, track string, mux *httprouter.Router, errs chan<- error) {
	mux.GET(cfg.prefix+"/api/music", serveMusicState(cfg, st, lib, track, errs))
	mux.PUT(cfg.prefix+"/api/music", saveMusicState(cfg, st))
	// navigator.sendBeacon can only POST
	mux.POST(cfg.prefix+"/api/music", saveMusicState(cfg, st))
}
