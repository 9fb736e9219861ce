/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"github.com/Seednode/memorytour/tour"
)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 64 << 10
	maxGuessLength = 200
	sendBuffer     = 32
)

// Messages coming from clients
type ClientMessage struct {
	Type   string  `json:"type"`             // one of the tour.EventKind values
	X      float64 `json:"x,omitempty"`      // pointer events, canvas pixels
	Y      float64 `json:"y,omitempty"`      // pointer events, canvas pixels
	Width  float64 `json:"width,omitempty"`  // resized, image_loaded
	Height float64 `json:"height,omitempty"` // resized, image_loaded
	Text   string  `json:"text,omitempty"`   // guess_submitted
	Button string  `json:"button,omitempty"` // button_clicked: search, next, back
	Scene  int     `json:"scene,omitempty"`  // image_loaded, image_failed
}

func (m ClientMessage) event() (tour.Event, bool) {
	kind := tour.EventKind(m.Type)

	switch kind {
	case tour.PointerMoved, tour.PointerDown, tour.GuessSubmitted, tour.ButtonClicked,
		tour.Resized, tour.ImageLoaded, tour.ImageFailed:
	default:
		return tour.Event{}, false
	}

	text := m.Text
	if r := []rune(text); len(r) > maxGuessLength {
		text = string(r[:maxGuessLength])
	}

	return tour.Event{
		Kind:   kind,
		X:      m.X,
		Y:      m.Y,
		Width:  m.Width,
		Height: m.Height,
		Text:   text,
		Button: m.Button,
		Scene:  m.Scene,
	}, true
}

// FrameMessage carries one rendered frame to the client.
type FrameMessage struct {
	Type  string     `json:"type"` // "frame"
	Frame tour.Frame `json:"frame"`
}

// EffectMessage asks the client to play a sound, save its music state, or navigate.
type EffectMessage struct {
	Type  string `json:"type"` // "effect"
	Kind  string `json:"kind"`
	Sound string `json:"sound,omitempty"`
	Route string `json:"route,omitempty"`
}

type Client struct {
	conn *websocket.Conn
	send chan any
}

// Next reads the next usable event from the connection. Malformed and
// unknown messages are skipped.
func (c *Client) Next() (tour.Event, error) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return tour.Event{}, err
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		if ev, ok := msg.event(); ok {
			return ev, nil
		}
	}
}

func (c *Client) readPump(h *Hub) {
	defer h.close()

	c.conn.SetReadLimit(maxMessageSize)

	for {
		ev, err := c.Next()
		if err != nil {
			return
		}

		select {
		case h.events <- ev:
		case <-h.done:
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// Hub owns one page session. Its run loop is the only goroutine that touches
// the screen or sends to the client, so events and ticks never interleave.
type Hub struct {
	cfg    *Config
	page   string
	screen tour.Screen
	client *Client

	events chan tour.Event
	fired  chan tour.Effect
	done   chan struct{}
	once   sync.Once

	mu         sync.RWMutex
	lastActive time.Time
}

func newHub(cfg *Config, page string, screen tour.Screen, client *Client) *Hub {
	return &Hub{
		cfg:        cfg,
		page:       page,
		screen:     screen,
		client:     client,
		events:     make(chan tour.Event),
		fired:      make(chan tour.Effect),
		done:       make(chan struct{}),
		lastActive: time.Now(),
	}
}

func (h *Hub) run() {
	sessionsActive.WithLabelValues(h.page).Inc()
	defer sessionsActive.WithLabelValues(h.page).Dec()
	defer close(h.client.send)

	ticker := time.NewTicker(h.cfg.tick())
	defer ticker.Stop()

	h.push()

	for {
		select {
		case ev := <-h.events:
			h.touch()
			h.apply(h.screen.Handle(ev))
			h.push()

		case <-ticker.C:
			if h.screen.Tick() {
				h.push()
			}

		case e := <-h.fired:
			h.emit(e)

		case <-h.done:
			return
		}
	}
}

func (h *Hub) apply(effects []tour.Effect) {
	if len(effects) == 0 {
		return
	}

	for _, e := range effects {
		if e.Kind == tour.EffectNavigate && e.Delay > 0 {
			time.AfterFunc(e.Delay, func() {
				select {
				case h.fired <- e:
				case <-h.done:
				}
			})

			continue
		}

		h.emit(e)
	}
}

func (h *Hub) emit(e tour.Effect) {
	msg := EffectMessage{
		Type:  "effect",
		Kind:  string(e.Kind),
		Sound: e.Sound,
	}
	if e.Kind == tour.EffectNavigate {
		msg.Route = h.cfg.prefix + e.Route
	}

	select {
	case h.client.send <- msg:
	case <-h.done:
	}
}

// push sends the current frame, dropping it if the client is behind; the
// next frame supersedes it.
func (h *Hub) push() {
	select {
	case h.client.send <- FrameMessage{Type: "frame", Frame: h.screen.Frame()}:
	default:
	}
}

func (h *Hub) touch() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()
}

func (h *Hub) idleSince() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.lastActive
}

func (h *Hub) close() {
	h.once.Do(func() {
		close(h.done)
		_ = h.client.conn.Close()
	})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// serveWS starts a fresh page session for every websocket connection.
func serveWS(cfg *Config, sm *SessionManager, page string, newScreen func() (tour.Screen, error)) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		screen, err := newScreen()
		if err != nil {
			http.Error(w, "unable to start session", http.StatusInternalServerError)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "TOUR: Upgrade failed for %s: %v", realIP(r), err)
			return
		}

		client := &Client{
			conn: conn,
			send: make(chan any, sendBuffer),
		}

		hub := newHub(cfg, page, screen, client)
		sm.add(hub)
		defer sm.remove(hub)

		logf(cfg, "TOUR: Session started on %s for %s", page, realIP(r))

		go hub.run()
		go client.writePump()
		client.readPump(hub)

		logf(cfg, "TOUR: Session ended on %s for %s", page, realIP(r))
	}
}
