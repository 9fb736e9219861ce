/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package tour

import (
	"errors"
	"math"
)

// Scene is one guessable location. Its index in the page's list is its identity.
type Scene struct {
	Name       string `yaml:"name" json:"name"`
	Background string `yaml:"background" json:"background"`
}

// SceneState is the runtime state kept per scene index for a page session.
type SceneState struct {
	Solved        bool
	OverlayAlpha  float64
	OverlayTarget float64
}

type Phase int

const (
	Covered Phase = iota
	Searching
	Solved
)

func (p Phase) String() string {
	switch p {
	case Searching:
		return "searching"
	case Solved:
		return "solved"
	default:
		return "covered"
	}
}

type GuessResult int

const (
	GuessEmpty GuessResult = iota
	GuessCorrect
	GuessIncorrect
)

func (r GuessResult) String() string {
	switch r {
	case GuessCorrect:
		return "correct"
	case GuessIncorrect:
		return "incorrect"
	default:
		return "empty"
	}
}

type ImageStatus int

const (
	ImagePending ImageStatus = iota
	ImageReady
	ImageMissing
)

// Image tracks whether the current scene's background has loaded on the client.
type Image struct {
	Status        ImageStatus
	Width, Height float64
}

// Unset is the flashlight position before search mode is first activated.
var Unset = Point{X: -999, Y: -999}

// Hint and feedback text shown on gallery pages.
const (
	HintSearch   = "Click “Search for Clues”"
	HintAim      = "Drag or move to aim the flashlight"
	HintUnlocked = "Unlocked! Click “Next Memory” to continue"

	FeedbackWelcome = "Guess the city!"
	FeedbackEmpty   = "Type a city first."
	FeedbackCorrect = "✅ Correct!"
	FeedbackWrong   = "❌ Try again."
)

const (
	overlayCovered = 255.0
	overlayClear   = 0.0

	defaultCanvasW = 450
	defaultCanvasH = 550
)

var ErrNoScenes = errors.New("gallery needs at least one scene")

// Gallery is the reveal/guess state machine for one year page session.
type Gallery struct {
	scenes  []Scene
	matcher *Matcher
	states  []SceneState

	index     int
	searching bool
	flash     Point

	width, height float64
	image         Image

	feedback     string
	feedbackKind string
	inputEpoch   int

	onGuess func(scene int, result GuessResult, unlocked bool)
}

func NewGallery(scenes []Scene, answers AnswerSet) (*Gallery, error) {
	if len(scenes) == 0 {
		return nil, ErrNoScenes
	}

	states := make([]SceneState, len(scenes))
	for i := range states {
		states[i] = SceneState{OverlayAlpha: overlayCovered, OverlayTarget: overlayCovered}
	}

	return &Gallery{
		scenes:       scenes,
		matcher:      NewMatcher(scenes, answers),
		states:       states,
		flash:        Unset,
		width:        defaultCanvasW,
		height:       defaultCanvasH,
		feedback:     FeedbackWelcome,
		feedbackKind: "hint",
	}, nil
}

func (g *Gallery) Index() int { return g.index }

func (g *Gallery) Scene() Scene { return g.scenes[g.index] }

func (g *Gallery) State() SceneState { return g.states[g.index] }

func (g *Gallery) StateAt(i int) SceneState { return g.states[i] }

func (g *Gallery) Searching() bool { return g.searching }

func (g *Gallery) Flashlight() Point { return g.flash }

func (g *Gallery) Size() (float64, float64) { return g.width, g.height }

func (g *Gallery) Feedback() (string, string) { return g.feedback, g.feedbackKind }

func (g *Gallery) Phase() Phase {
	switch {
	case g.states[g.index].Solved:
		return Solved
	case g.searching:
		return Searching
	default:
		return Covered
	}
}

func (g *Gallery) Hint() string {
	switch g.Phase() {
	case Solved:
		return HintUnlocked
	case Searching:
		return HintAim
	default:
		return HintSearch
	}
}

// HoleDiameter is the flashlight cutout size for the current canvas.
func (g *Gallery) HoleDiameter() float64 {
	return math.Floor(math.Min(g.width, g.height) * 0.42)
}

func (g *Gallery) centre() Point {
	return Point{X: g.width / 2, Y: g.height / 2}
}

// ToggleSearch flips search mode. It does nothing on a solved scene.
func (g *Gallery) ToggleSearch() {
	if g.states[g.index].Solved {
		return
	}

	g.searching = !g.searching
	if g.searching && g.flash.X < 0 {
		g.flash = g.centre()
	}
}

// MovePointer aims the flashlight while searching.
func (g *Gallery) MovePointer(x, y float64) {
	if !g.searching {
		return
	}

	g.flash = Point{X: x, Y: y}
}

// OnGuess registers fn to be called after every evaluated guess. unlocked is
// true only for the guess that solved the scene.
func (g *Gallery) OnGuess(fn func(scene int, result GuessResult, unlocked bool)) {
	g.onGuess = fn
}

func (g *Gallery) report(result GuessResult, unlocked bool) GuessResult {
	if g.onGuess != nil {
		g.onGuess(g.index, result, unlocked)
	}

	return result
}

// Guess evaluates a submitted answer for the current scene.
func (g *Gallery) Guess(raw string) GuessResult {
	if Normalize(raw) == "" {
		g.feedback, g.feedbackKind = FeedbackEmpty, "hint"
		return g.report(GuessEmpty, false)
	}

	st := &g.states[g.index]
	if st.Solved {
		g.feedback, g.feedbackKind = FeedbackCorrect, "ok"
		return g.report(GuessCorrect, false)
	}

	if !g.matcher.IsCorrect(g.index, raw) {
		g.feedback, g.feedbackKind = FeedbackWrong, "no"
		return g.report(GuessIncorrect, false)
	}

	st.Solved = true
	st.OverlayTarget = overlayClear
	g.searching = false
	g.feedback, g.feedbackKind = FeedbackCorrect, "ok"

	return g.report(GuessCorrect, true)
}

// Next advances to the following scene, wrapping around. Solved scenes come
// back already uncovered; unsolved ones come back fully covered.
func (g *Gallery) Next() {
	g.index = (g.index + 1) % len(g.scenes)
	g.searching = false
	g.flash = Unset
	g.image = Image{}
	g.feedback, g.feedbackKind = "", ""
	g.inputEpoch++

	st := &g.states[g.index]
	if st.Solved {
		st.OverlayAlpha, st.OverlayTarget = overlayClear, overlayClear
	} else {
		st.OverlayAlpha, st.OverlayTarget = overlayCovered, overlayCovered
	}
}

// Resize fits the canvas to a viewport of w×h.
func (g *Gallery) Resize(w, h float64) {
	g.width = clamp(math.Floor(w*0.92), 320, 650)
	g.height = clamp(math.Floor(h*0.78), 420, 820)

	if g.searching && (g.flash.X < 0 || g.flash.Y < 0) {
		g.flash = g.centre()
	}
}

// SetImage records the client's load result for scene i. Reports for any
// scene other than the current one are stale and ignored.
func (g *Gallery) SetImage(i int, img Image) {
	if i != g.index {
		return
	}

	g.image = img
}

// Tick eases the current overlay toward its target.
func (g *Gallery) Tick() bool {
	st := &g.states[g.index]
	if st.OverlayAlpha == st.OverlayTarget {
		return false
	}

	st.OverlayAlpha = Ease(st.OverlayAlpha, st.OverlayTarget, OverlayStep, OverlaySnap)

	return true
}

func (g *Gallery) Handle(ev Event) []Effect {
	switch ev.Kind {
	case PointerMoved:
		g.MovePointer(ev.X, ev.Y)
	case GuessSubmitted:
		g.Guess(ev.Text)
	case Resized:
		g.Resize(ev.Width, ev.Height)
	case ImageLoaded:
		g.SetImage(ev.Scene, Image{Status: ImageReady, Width: ev.Width, Height: ev.Height})
	case ImageFailed:
		g.SetImage(ev.Scene, Image{Status: ImageMissing})
	case ButtonClicked:
		switch ev.Button {
		case ButtonSearch:
			g.ToggleSearch()
		case ButtonNext:
			g.Next()
		case ButtonBack:
			return []Effect{
				{Kind: EffectSaveMusic},
				{Kind: EffectNavigate, Route: "/"},
			}
		}
	}

	return nil
}

func (g *Gallery) Frame() Frame {
	return renderGallery(g)
}
