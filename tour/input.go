/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package tour

import (
	"errors"
	"io"
	"time"
)

type EventKind string

const (
	PointerMoved   EventKind = "pointer_moved"
	PointerDown    EventKind = "pointer_down"
	GuessSubmitted EventKind = "guess_submitted"
	ButtonClicked  EventKind = "button_clicked"
	Resized        EventKind = "resized"
	ImageLoaded    EventKind = "image_loaded"
	ImageFailed    EventKind = "image_failed"
)

// Buttons bound to page controls.
const (
	ButtonSearch = "search"
	ButtonNext   = "next"
	ButtonBack   = "back"
)

// Event is a discrete input produced by a Source.
type Event struct {
	Kind   EventKind
	X, Y   float64
	Width  float64 // resized, image_loaded
	Height float64 // resized, image_loaded
	Text   string  // guess_submitted
	Button string  // button_clicked
	Scene  int     // image_loaded, image_failed
}

// Source produces input events until it returns an error. io.EOF marks a
// clean end of input.
type Source interface {
	Next() (Event, error)
}

type EffectKind string

const (
	EffectSound     EffectKind = "sound"
	EffectSaveMusic EffectKind = "save_music"
	EffectNavigate  EffectKind = "navigate"
)

// Effect is a side effect requested by a screen, carried out by its host.
type Effect struct {
	Kind  EffectKind
	Sound string
	Route string
	Delay time.Duration
}

// Screen is one page's state, driven by events and a fixed-rate tick.
type Screen interface {
	Handle(ev Event) []Effect
	// Tick advances animations by one frame and reports whether anything changed.
	Tick() bool
	Frame() Frame
}

// Script is a Source that replays a fixed list of events.
type Script struct {
	events []Event
}

func NewScript(events ...Event) *Script {
	return &Script{events: events}
}

func (s *Script) Next() (Event, error) {
	if len(s.events) == 0 {
		return Event{}, io.EOF
	}

	ev := s.events[0]
	s.events = s.events[1:]

	return ev, nil
}

// Drive feeds every event from src into screen, ticking after each one, and
// returns the collected effects. It stops at the first error from src; io.EOF
// is not reported.
func Drive(screen Screen, src Source) ([]Effect, error) {
	var effects []Effect

	for {
		ev, err := src.Next()
		if errors.Is(err, io.EOF) {
			return effects, nil
		}
		if err != nil {
			return effects, err
		}

		effects = append(effects, screen.Handle(ev)...)
		screen.Tick()
	}
}
