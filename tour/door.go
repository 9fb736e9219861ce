/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package tour

import (
	"math"
	"strings"
	"time"
)

const (
	// DoorOpenMax is how far a hovered door swings, in radians.
	DoorOpenMax = math.Pi * 0.6
	// DoorStep is the per-frame fraction of the remaining swing.
	DoorStep = 0.15
	doorSnap = 1e-3

	// DefaultNavDelay lets the door sound start before the page changes.
	DefaultNavDelay = 120 * time.Millisecond

	// SoundDoor is the one-shot effect played on a door click.
	SoundDoor = "door"
)

// DoorLabels are the home screen doors, left to right.
var DoorLabels = []string{"Gate Freshman", "Gate Sophomore", "Gate Junior", "Gate Senior"}

// Route maps a label keyword to a page path.
type Route struct {
	Keyword string
	Path    string
}

// DefaultRoutes is checked in order; the first keyword found in a lowercased
// door label wins.
var DefaultRoutes = []Route{
	{Keyword: "freshman", Path: "/freshman"},
	{Keyword: "sophomore", Path: "/sophomore"},
	{Keyword: "junior", Path: "/junior"},
	{Keyword: "senior", Path: "/senior"},
}

// RouteFor returns the path for label, or false when no keyword matches.
func RouteFor(routes []Route, label string) (string, bool) {
	l := strings.ToLower(label)
	for _, r := range routes {
		if strings.Contains(l, r.Keyword) {
			return r.Path, true
		}
	}

	return "", false
}

// Door is one hinged door on the home screen.
type Door struct {
	X, Y, W, H  float64
	Label       string
	Angle       float64
	TargetAngle float64
	OpenDir     float64
}

// Contains reports whether (x, y) is strictly inside the door's bounding box.
func (d *Door) Contains(x, y float64) bool {
	return x > d.X && x < d.X+d.W && y > d.Y && y < d.Y+d.H
}

// Menu is the home screen: a row of doors that swing open on hover.
type Menu struct {
	labels []string
	routes []Route
	delay  time.Duration

	doors []Door

	width, height float64
	archH, thick  float64
	labelSize     float64

	pointer Point
	onClick func(label, route string)
}

func NewMenu(labels []string, routes []Route, delay time.Duration) *Menu {
	m := &Menu{
		labels:  labels,
		routes:  routes,
		delay:   delay,
		pointer: Unset,
	}
	m.Resize(1280, 720)

	return m
}

func (m *Menu) Doors() []Door { return m.doors }

// OnClick registers fn to be called for every door hit. route is empty when
// the label names no known page.
func (m *Menu) OnClick(fn func(label, route string)) {
	m.onClick = fn
}

// Resize rebuilds the door layout for a w×h canvas. Angles restart closed.
func (m *Menu) Resize(w, h float64) {
	m.width, m.height = w, h

	doorW := clamp(w*0.18, 80, 170)
	doorH := clamp(h*0.48, 140, 320)
	m.archH = doorH * 0.14
	m.thick = clamp(doorW*0.12, 10, 18)
	m.labelSize = clamp(w*0.028, 10, 18)

	spacing := w / float64(len(m.labels)+1)
	top := clamp(h*0.18, 60, h*0.28)

	m.doors = make([]Door, 0, len(m.labels))
	for i, label := range m.labels {
		centre := float64(i+1) * spacing
		m.doors = append(m.doors, Door{
			X:       centre - doorW/2,
			Y:       top,
			W:       doorW,
			H:       doorH,
			Label:   label,
			OpenDir: -1,
		})
	}
}

func (m *Menu) MovePointer(x, y float64) {
	m.pointer = Point{X: x, Y: y}
}

// PointerDown handles a click at (x, y). A hit on a door always plays the
// door sound and saves the music state; it navigates only when the label
// names a known page.
func (m *Menu) PointerDown(x, y float64) []Effect {
	for i := range m.doors {
		d := &m.doors[i]
		if !d.Contains(x, y) {
			continue
		}

		effects := []Effect{
			{Kind: EffectSound, Sound: SoundDoor},
			{Kind: EffectSaveMusic},
		}

		path, ok := RouteFor(m.routes, d.Label)
		if ok {
			effects = append(effects, Effect{Kind: EffectNavigate, Route: path, Delay: m.delay})
		}

		if m.onClick != nil {
			m.onClick(d.Label, path)
		}

		return effects
	}

	return nil
}

func (m *Menu) Tick() bool {
	changed := false

	for i := range m.doors {
		d := &m.doors[i]

		d.TargetAngle = 0
		if d.Contains(m.pointer.X, m.pointer.Y) {
			d.TargetAngle = d.OpenDir * DoorOpenMax
		}

		if d.Angle != d.TargetAngle {
			d.Angle = Ease(d.Angle, d.TargetAngle, DoorStep, doorSnap)
			changed = true
		}
	}

	return changed
}

func (m *Menu) Handle(ev Event) []Effect {
	switch ev.Kind {
	case PointerMoved:
		m.MovePointer(ev.X, ev.Y)
	case PointerDown:
		m.MovePointer(ev.X, ev.Y)
		return m.PointerDown(ev.X, ev.Y)
	case Resized:
		m.Resize(ev.Width, ev.Height)
	}

	return nil
}

func (m *Menu) Frame() Frame {
	cmds := []Command{{Op: OpClear, W: m.width, H: m.height}}

	for i := range m.doors {
		cmds = append(cmds, m.drawDoor(&m.doors[i])...)
	}

	return Frame{
		Width:    m.width,
		Height:   m.height,
		Commands: cmds,
	}
}

func (m *Menu) drawDoor(d *Door) []Command {
	x, y, w := d.X, d.Y+m.archH, d.W
	h := d.H - m.archH
	cx := d.X + d.W/2

	cmds := []Command{
		{Op: OpRect, X: d.X + 4, Y: y + 4, W: w - 8, H: h - 8, Radius: 8, Fill: gray(255, 255)},
		{Op: OpArc, CX: cx, CY: y, W: w - 8, H: 70, Start: math.Pi, Stop: 2 * math.Pi, Fill: gray(255, 255)},
		{Op: OpRect, X: d.X, Y: y, W: w, H: h, Radius: 12, Stroke: gray(30, 255), StrokeWidth: 2},
		{Op: OpArc, CX: cx, CY: y, W: w, H: 70, Start: math.Pi, Stop: 2 * math.Pi, Stroke: gray(30, 255), StrokeWidth: 2},
	}

	a := d.Angle
	cosA, sinA := math.Cos(a), math.Sin(a)
	xR := x + w*cosA
	sideW := m.thick * math.Abs(sinA)

	tl, tr := Point{X: x, Y: y}, Point{X: xR, Y: y}
	br, bl := Point{X: xR, Y: y + h}, Point{X: x, Y: y + h}

	face := 240
	if a >= 0 {
		face = 220
	}
	cmds = append(cmds, Command{Op: OpQuad, Points: []Point{tl, tr, br, bl}, Fill: gray(face, 255)})

	sideDir := -1.0
	if a < 0 {
		sideDir = 1
	}
	cmds = append(cmds, Command{Op: OpQuad, Fill: gray(200, 255), Points: []Point{
		tr,
		{X: tr.X + sideDir*sideW, Y: tr.Y},
		{X: br.X + sideDir*sideW, Y: br.Y},
		br,
	}})

	handleX := (tr.X+bl.X)/2 + 10
	if sideDir == 1 {
		handleX = (tr.X+bl.X)/2 - 10
	}
	cmds = append(cmds, Command{Op: OpEllipse, CX: handleX, CY: y + h*0.45, W: 12, H: 12,
		ScaleX: math.Max(0.15, math.Abs(cosA)), Fill: gray(120, 255)})

	cmds = append(cmds, Command{Op: OpText, X: cx, Y: d.Y + d.H + 18, Text: d.Label, Size: m.labelSize,
		Fill: gray(255, 255), Stroke: gray(0, 180), StrokeWidth: 3})

	return cmds
}
