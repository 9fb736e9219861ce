/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package tour

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSophomore(t *testing.T) *Gallery {
	t.Helper()

	scenes, answers := sophomore()
	g, err := NewGallery(scenes, answers)
	require.NoError(t, err)

	return g
}

func settle(t *testing.T, g *Gallery) int {
	t.Helper()

	for i := 1; i <= 500; i++ {
		if !g.Tick() {
			return i
		}
	}

	t.Fatal("overlay never settled")

	return 0
}

func TestNewGalleryRequiresScenes(t *testing.T) {
	_, err := NewGallery(nil, nil)
	assert.ErrorIs(t, err, ErrNoScenes)
}

func TestGalleryInitialState(t *testing.T) {
	g := newSophomore(t)

	assert.Equal(t, 0, g.Index())
	assert.Equal(t, Covered, g.Phase())
	assert.Equal(t, HintSearch, g.Hint())
	assert.Equal(t, Unset, g.Flashlight())

	for i := 0; i < 3; i++ {
		assert.Equal(t, SceneState{OverlayAlpha: 255, OverlayTarget: 255}, g.StateAt(i))
	}

	msg, kind := g.Feedback()
	assert.Equal(t, FeedbackWelcome, msg)
	assert.Equal(t, "hint", kind)
}

func TestToggleSearch(t *testing.T) {
	g := newSophomore(t)

	g.MovePointer(10, 10)
	assert.Equal(t, Unset, g.Flashlight(), "pointer is ignored outside search mode")

	g.ToggleSearch()
	assert.Equal(t, Searching, g.Phase())
	assert.Equal(t, HintAim, g.Hint())
	assert.Equal(t, Point{X: 225, Y: 275}, g.Flashlight())

	g.MovePointer(40, 60)
	assert.Equal(t, Point{X: 40, Y: 60}, g.Flashlight())

	g.ToggleSearch()
	assert.Equal(t, Covered, g.Phase())
	assert.Equal(t, Point{X: 40, Y: 60}, g.Flashlight())

	g.ToggleSearch()
	assert.Equal(t, Point{X: 40, Y: 60}, g.Flashlight(), "flashlight keeps its last position")
}

func TestGuessEmptyLeavesStateAlone(t *testing.T) {
	g := newSophomore(t)
	before := g.State()

	assert.Equal(t, GuessEmpty, g.Guess("   \t"))
	assert.Equal(t, before, g.State())

	msg, kind := g.Feedback()
	assert.Equal(t, FeedbackEmpty, msg)
	assert.Equal(t, "hint", kind)
}

func TestGuessIncorrect(t *testing.T) {
	g := newSophomore(t)

	assert.Equal(t, GuessIncorrect, g.Guess("Boston, MA"))
	assert.False(t, g.State().Solved)

	msg, kind := g.Feedback()
	assert.Equal(t, FeedbackWrong, msg)
	assert.Equal(t, "no", kind)
}

func TestGuessCorrectSolvesAndFades(t *testing.T) {
	g := newSophomore(t)
	g.ToggleSearch()

	assert.Equal(t, GuessCorrect, g.Guess(" BOSTON  "))
	assert.Equal(t, Solved, g.Phase())
	assert.False(t, g.Searching())
	assert.Equal(t, HintUnlocked, g.Hint())

	st := g.State()
	assert.True(t, st.Solved)
	assert.Equal(t, 0.0, st.OverlayTarget)
	assert.Equal(t, 255.0, st.OverlayAlpha, "fade starts from fully covered")

	assert.True(t, g.Tick())
	assert.InDelta(t, 255*0.88, g.State().OverlayAlpha, 1e-9)

	settle(t, g)
	assert.Equal(t, 0.0, g.State().OverlayAlpha)
	assert.False(t, g.Tick())
}

func TestSolvedSceneIgnoresSearchAndStaysSolved(t *testing.T) {
	g := newSophomore(t)
	require.Equal(t, GuessCorrect, g.Guess("boston"))

	g.ToggleSearch()
	assert.False(t, g.Searching())
	assert.Equal(t, Solved, g.Phase())

	assert.Equal(t, GuessCorrect, g.Guess("vegas"), "a solved scene keeps reporting correct")
	assert.Equal(t, GuessEmpty, g.Guess(""))
	g.MovePointer(1, 1)
	assert.True(t, g.State().Solved)
}

func TestNextCyclesWithWraparound(t *testing.T) {
	g := newSophomore(t)

	var seen []int
	for i := 0; i < 6; i++ {
		seen = append(seen, g.Index())
		g.Next()
	}

	assert.Equal(t, []int{0, 1, 2, 0, 1, 2}, seen)
}

func TestNextResetsSession(t *testing.T) {
	g := newSophomore(t)
	g.ToggleSearch()
	g.SetImage(0, Image{Status: ImageReady, Width: 10, Height: 10})

	g.Next()

	assert.False(t, g.Searching())
	assert.Equal(t, Unset, g.Flashlight())
	assert.Equal(t, Covered, g.Phase())

	msg, kind := g.Feedback()
	assert.Empty(t, msg)
	assert.Empty(t, kind)
	assert.Equal(t, 1, g.Frame().Controls.InputEpoch)
	assert.Equal(t, OpPlaceholder, g.Frame().Commands[1].Op)
}

func TestRevisitSolvedSceneIsUncoveredImmediately(t *testing.T) {
	g := newSophomore(t)
	require.Equal(t, GuessCorrect, g.Guess("boston"))
	g.Tick()

	g.Next()
	assert.Equal(t, SceneState{OverlayAlpha: 255, OverlayTarget: 255}, g.State())
	g.Next()
	g.Next()

	assert.Equal(t, 0, g.Index())
	assert.Equal(t, SceneState{Solved: true, OverlayAlpha: 0, OverlayTarget: 0}, g.State())
	assert.False(t, g.Tick(), "no re-fade on revisit")
}

func TestRevisitUnsolvedSceneIsCovered(t *testing.T) {
	g := newSophomore(t)
	g.Next()
	require.Equal(t, GuessIncorrect, g.Guess("boston"))
	g.Next()
	g.Next()
	g.Next()

	assert.Equal(t, 1, g.Index())
	assert.Equal(t, SceneState{OverlayAlpha: 255, OverlayTarget: 255}, g.State())
}

func TestResize(t *testing.T) {
	g := newSophomore(t)

	g.Resize(1000, 1000)
	w, h := g.Size()
	assert.Equal(t, 650.0, w)
	assert.Equal(t, 780.0, h)
	assert.Equal(t, 273.0, g.HoleDiameter())

	g.Resize(100, 100)
	w, h = g.Size()
	assert.Equal(t, 320.0, w)
	assert.Equal(t, 420.0, h)
}

func TestSetImageIgnoresStaleScene(t *testing.T) {
	g := newSophomore(t)
	g.Next()

	g.SetImage(0, Image{Status: ImageReady, Width: 10, Height: 10})
	assert.Equal(t, OpPlaceholder, g.Frame().Commands[1].Op)

	g.SetImage(1, Image{Status: ImageReady, Width: 10, Height: 10})
	assert.Equal(t, OpFitImage, g.Frame().Commands[1].Op)
}

func TestOnGuessReportsUnlockOnce(t *testing.T) {
	g := newSophomore(t)

	var results []GuessResult
	unlocks := 0
	g.OnGuess(func(scene int, r GuessResult, unlocked bool) {
		assert.Equal(t, 0, scene)
		results = append(results, r)
		if unlocked {
			unlocks++
		}
	})

	g.Guess("")
	g.Guess("paris")
	g.Guess("boston")
	g.Guess("boston")

	assert.Equal(t, []GuessResult{GuessEmpty, GuessIncorrect, GuessCorrect, GuessCorrect}, results)
	assert.Equal(t, 1, unlocks)
}

func TestGalleryHandle(t *testing.T) {
	g := newSophomore(t)

	effects, err := Drive(g, NewScript(
		Event{Kind: ButtonClicked, Button: ButtonSearch},
		Event{Kind: PointerMoved, X: 12, Y: 34},
		Event{Kind: GuessSubmitted, Text: "Boston"},
		Event{Kind: ButtonClicked, Button: ButtonNext},
		Event{Kind: ButtonClicked, Button: ButtonBack},
	))
	require.NoError(t, err)

	assert.True(t, g.StateAt(0).Solved)
	assert.Equal(t, 1, g.Index())
	assert.Equal(t, []Effect{
		{Kind: EffectSaveMusic},
		{Kind: EffectNavigate, Route: "/"},
	}, effects)
}
