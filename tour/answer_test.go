/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package tour

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sophomore() ([]Scene, AnswerSet) {
	scenes := []Scene{
		{Name: "Boston", Background: "boston.jpg"},
		{Name: "Las Vegas", Background: "vegas.jpg"},
		{Name: "Hawaii", Background: "hawaii.jpg"},
	}
	answers := AnswerSet{
		"Boston":    {"boston"},
		"Las Vegas": {"las vegas", "vegas"},
		"Hawaii":    {"honolulu", "hawaii"},
	}

	return scenes, answers
}

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"   ", ""},
		{" BOSTON  ", "boston"},
		{"New\t York \n City", "new york city"},
		{"las   VEGAS", "las vegas"},
		{"already normal", "already normal"},
	}

	for _, c := range cases {
		got := Normalize(c.in)
		assert.Equal(t, c.want, got, "Normalize(%q)", c.in)
		assert.Equal(t, got, Normalize(got), "Normalize is not idempotent for %q", c.in)
	}
}

func TestIsCorrect(t *testing.T) {
	scenes, answers := sophomore()
	m := NewMatcher(scenes, answers)

	assert.True(t, m.IsCorrect(0, " BOSTON  "))
	assert.False(t, m.IsCorrect(0, "Boston, MA"))
	assert.False(t, m.IsCorrect(0, "bost"))
	assert.True(t, m.IsCorrect(1, "Vegas"))
	assert.True(t, m.IsCorrect(1, "las  vegas"))
	assert.False(t, m.IsCorrect(1, "boston"))
	assert.True(t, m.IsCorrect(2, "HONOLULU"))
	assert.False(t, m.IsCorrect(2, "   "))
	assert.False(t, m.IsCorrect(7, "boston"))
	assert.False(t, m.IsCorrect(-1, "boston"))
}

func TestIsCorrectFallsBackToSceneName(t *testing.T) {
	m := NewMatcher([]Scene{{Name: "Chicago"}}, nil)

	assert.Equal(t, []string{"chicago"}, m.Accepted(0))
	assert.True(t, m.IsCorrect(0, "  ChIcAgO "))
	assert.False(t, m.IsCorrect(0, "chi"))
}

func TestMatcherNormalizesAliases(t *testing.T) {
	m := NewMatcher([]Scene{{Name: "New York"}}, AnswerSet{"New York": {"  New  York ", "NYC"}})

	assert.True(t, m.IsCorrect(0, "new york"))
	assert.True(t, m.IsCorrect(0, "nyc"))
}
