/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package tour

import (
	"strings"
)

// AnswerSet maps a scene name to the guesses accepted for it.
type AnswerSet map[string][]string

// Normalize trims, lowercases, and collapses internal whitespace to single spaces.
func Normalize(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}

// Matcher checks guesses against the accepted aliases of an ordered scene list.
type Matcher struct {
	scenes  []Scene
	answers AnswerSet
}

func NewMatcher(scenes []Scene, answers AnswerSet) *Matcher {
	normalized := make(AnswerSet, len(answers))
	for name, aliases := range answers {
		list := make([]string, 0, len(aliases))
		for _, a := range aliases {
			if n := Normalize(a); n != "" {
				list = append(list, n)
			}
		}
		normalized[name] = list
	}

	return &Matcher{
		scenes:  scenes,
		answers: normalized,
	}
}

// Accepted returns the normalized aliases for the scene at index i. Scenes
// without an explicit alias list accept their lowercased name.
func (m *Matcher) Accepted(i int) []string {
	if i < 0 || i >= len(m.scenes) {
		return nil
	}

	name := m.scenes[i].Name
	if aliases, ok := m.answers[name]; ok && len(aliases) > 0 {
		return aliases
	}

	return []string{strings.ToLower(name)}
}

// IsCorrect reports whether raw exactly matches an accepted alias once normalized.
func (m *Matcher) IsCorrect(i int, raw string) bool {
	guess := Normalize(raw)
	if guess == "" {
		return false
	}

	for _, a := range m.Accepted(i) {
		if guess == a {
			return true
		}
	}

	return false
}
