/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const playerCookieName = "memorytour_id"

// getOrSetPlayerID returns the player's cookie id, issuing a new one if
// the request carries none.
func getOrSetPlayerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	id := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

// SessionManager tracks every connected page session so idle ones can be
// reaped and all of them closed on shutdown.
type SessionManager struct {
	mu          sync.Mutex
	hubs        map[*Hub]struct{}
	idleTimeout time.Duration
	stop        chan struct{}
	stopOnce    sync.Once
}

func newSessionManager(idleTimeout time.Duration) *SessionManager {
	sm := &SessionManager{
		hubs:        make(map[*Hub]struct{}),
		idleTimeout: idleTimeout,
		stop:        make(chan struct{}),
	}
	if idleTimeout > 0 {
		go sm.reaperLoop()
	}
	return sm
}

func (sm *SessionManager) add(h *Hub) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.hubs[h] = struct{}{}
}

func (sm *SessionManager) remove(h *Hub) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.hubs, h)
}

func (sm *SessionManager) count() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return len(sm.hubs)
}

// reap closes every session idle since before cutoff and returns how many.
func (sm *SessionManager) reap(cutoff time.Time) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	n := 0
	for h := range sm.hubs {
		if h.idleSince().Before(cutoff) {
			delete(sm.hubs, h)
			h.close()
			n++
		}
	}

	return n
}

// reaperLoop periodically removes sessions that have been idle longer than idleTimeout.
func (sm *SessionManager) reaperLoop() {
	ticker := time.NewTicker(sm.idleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sm.reap(time.Now().Add(-sm.idleTimeout))
		case <-sm.stop:
			return
		}
	}
}

// closeAll disconnects every session and stops the reaper.
func (sm *SessionManager) closeAll() {
	sm.stopOnce.Do(func() { close(sm.stop) })

	sm.mu.Lock()
	defer sm.mu.Unlock()

	for h := range sm.hubs {
		delete(sm.hubs, h)
		h.close()
	}
}
