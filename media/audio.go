/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package media inspects the audio assets served to the client.
package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"
)

var ErrUnsupported = errors.New("unsupported audio format")

// TrackLength decodes the audio file at path and returns its duration.
func TrackLength(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return 0, fmt.Errorf("%s: %w", path, ErrUnsupported)
	}
	if err != nil {
		f.Close()
		return 0, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer streamer.Close()

	return format.SampleRate.D(streamer.Len()), nil
}

// Library caches track lengths for files under a root directory.
type Library struct {
	root string

	mu      sync.Mutex
	lengths map[string]time.Duration
}

func NewLibrary(root string) *Library {
	return &Library{
		root:    root,
		lengths: make(map[string]time.Duration),
	}
}

// Length returns the duration of name, or zero when it cannot be determined.
// Failures are cached like successes.
func (l *Library) Length(name string) time.Duration {
	if l == nil || l.root == "" || name == "" {
		return 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if d, ok := l.lengths[name]; ok {
		return d
	}

	d, err := TrackLength(filepath.Join(l.root, filepath.Clean("/"+name)))
	if err != nil {
		d = 0
	}
	l.lengths[name] = d

	return d
}
