/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package tour

import (
	"fmt"
	"math"
)

type Op string

const (
	OpClear       Op = "clear"
	OpFitImage    Op = "fit_image"
	OpPlaceholder Op = "placeholder"
	OpCover       Op = "cover"
	OpCoverHole   Op = "cover_hole"
	OpVeil        Op = "veil"
	OpText        Op = "text"
	OpRect        Op = "rect"
	OpArc         Op = "arc"
	OpQuad        Op = "quad"
	OpEllipse     Op = "ellipse"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Command is a single draw instruction executed in order by the client canvas.
type Command struct {
	Op          Op      `json:"op"`
	Src         string  `json:"src,omitempty"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	W           float64 `json:"w,omitempty"`
	H           float64 `json:"h,omitempty"`
	CX          float64 `json:"cx,omitempty"`
	CY          float64 `json:"cy,omitempty"`
	Diameter    float64 `json:"diameter,omitempty"`
	Radius      float64 `json:"radius,omitempty"`
	Start       float64 `json:"start,omitempty"`
	Stop        float64 `json:"stop,omitempty"`
	ScaleX      float64 `json:"scale_x,omitempty"`
	Points      []Point `json:"points,omitempty"`
	Fill        string  `json:"fill,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	Text        string  `json:"text,omitempty"`
	Size        float64 `json:"size,omitempty"`
}

// Controls mirrors the state of the HTML controls around a gallery canvas.
type Controls struct {
	SearchLabel   string `json:"search_label"`
	SearchEnabled bool   `json:"search_enabled"`
	Feedback      string `json:"feedback"`
	FeedbackKind  string `json:"feedback_kind"`
	InputEpoch    int    `json:"input_epoch"`
	Image         string `json:"image"`
	Scene         int    `json:"scene"`
	Count         int    `json:"count"`
}

// Frame is everything the client needs to draw one tick.
type Frame struct {
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Commands []Command `json:"commands"`
	Controls *Controls `json:"controls,omitempty"`
}

func gray(v int, alpha float64) string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", v, v, v, alpha/255)
}

// FitRect scales an iw×ih image to fit inside cw×ch without cropping,
// centred, and returns the destination rectangle.
func FitRect(cw, ch, iw, ih float64) (x, y, w, h float64) {
	if iw <= 0 || ih <= 0 {
		return 0, 0, cw, ch
	}

	scale := math.Min(cw/iw, ch/ih)
	w, h = iw*scale, ih*scale

	return (cw - w) / 2, (ch - h) / 2, w, h
}

// renderGallery is a pure function of the gallery state.
func renderGallery(g *Gallery) Frame {
	w, h := g.width, g.height
	scene := g.scenes[g.index]
	state := g.states[g.index]

	cmds := []Command{{Op: OpClear, W: w, H: h, Fill: gray(0, 255)}}

	switch g.image.Status {
	case ImageReady:
		x, y, dw, dh := FitRect(w, h, g.image.Width, g.image.Height)
		cmds = append(cmds, Command{Op: OpFitImage, Src: scene.Background, X: x, Y: y, W: dw, H: dh})
	case ImageMissing:
		cmds = append(cmds, Command{Op: OpPlaceholder, X: w / 2, Y: h / 2, Fill: gray(220, 255), Size: 18,
			Text: "Image not found:\n" + scene.Background})
	default:
		cmds = append(cmds, Command{Op: OpPlaceholder, X: w / 2, Y: h / 2, Fill: gray(220, 255), Size: 18,
			Text: "Loading…"})
	}

	switch {
	case state.Solved:
		if state.OverlayAlpha > 0 {
			cmds = append(cmds, Command{Op: OpVeil, W: w, H: h, Fill: gray(0, state.OverlayAlpha)})
		}
	case g.searching:
		cmds = append(cmds, Command{Op: OpCoverHole, W: w, H: h, Fill: gray(0, 255),
			CX: g.flash.X, CY: g.flash.Y, Diameter: g.HoleDiameter()})
	default:
		cmds = append(cmds, Command{Op: OpCover, W: w, H: h, Fill: gray(0, 255)})
	}

	cmds = append(cmds, Command{Op: OpText, X: w / 2, Y: 20, Fill: gray(255, 255),
		Size: clamp(math.Floor(math.Min(w, h)*0.032), 12, 18), Text: g.Hint()})

	label := "Search for Clues"
	if g.searching {
		label = "Exit Search Mode"
	}

	return Frame{
		Width:    w,
		Height:   h,
		Commands: cmds,
		Controls: &Controls{
			SearchLabel:   label,
			SearchEnabled: !state.Solved,
			Feedback:      g.feedback,
			FeedbackKind:  g.feedbackKind,
			InputEpoch:    g.inputEpoch,
			Image:         scene.Background,
			Scene:         g.index,
			Count:         len(g.scenes),
		},
	}
}
