/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package tour

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// MusicKey is the storage key shared by every page for the music snapshot.
const MusicKey = "jb_music_state_v1"

const DefaultVolume = 0.5

// Storage is a string key-value store.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Snapshot lets background music resume where it left off on the next page.
type Snapshot struct {
	Playing bool    `json:"playing"`
	Time    float64 `json:"time"`
	Volume  float64 `json:"volume"`
}

func DefaultSnapshot() Snapshot {
	return Snapshot{Volume: DefaultVolume}
}

// DecodeSnapshot parses a stored snapshot. Each field falls back to its
// default when absent, of the wrong type, or out of range (time must be a
// finite value >= 0, volume within 0..1); unparseable input yields the full
// default.
func DecodeSnapshot(raw string) Snapshot {
	s := DefaultSnapshot()
	if raw == "" {
		return s
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return s
	}

	var playing *bool
	if v, ok := fields["playing"]; ok && json.Unmarshal(v, &playing) == nil && playing != nil {
		s.Playing = *playing
	}

	var t *float64
	if v, ok := fields["time"]; ok && json.Unmarshal(v, &t) == nil && t != nil && validTime(*t) {
		s.Time = *t
	}

	var vol *float64
	if v, ok := fields["volume"]; ok && json.Unmarshal(v, &vol) == nil && vol != nil && validVolume(*vol) {
		s.Volume = *vol
	}

	return s
}

func validTime(t float64) bool {
	return t >= 0 && !math.IsInf(t, 0) && !math.IsNaN(t)
}

func validVolume(v float64) bool {
	return v >= 0 && v <= 1
}

func (s Snapshot) Encode() string {
	out, _ := json.Marshal(s)

	return string(out)
}

// SnapshotUpdate carries the fields a page knows about when it saves. Nil
// fields keep the stored value.
type SnapshotUpdate struct {
	Playing *bool    `json:"playing,omitempty"`
	Time    *float64 `json:"time,omitempty"`
	Volume  *float64 `json:"volume,omitempty"`
}

// Merge returns the full replacement snapshot for s with u applied.
func (s Snapshot) Merge(u SnapshotUpdate) Snapshot {
	if u.Playing != nil {
		s.Playing = *u.Playing
	}
	if u.Time != nil && validTime(*u.Time) {
		s.Time = *u.Time
	}
	if u.Volume != nil && validVolume(*u.Volume) {
		s.Volume = *u.Volume
	}

	return s
}

// StorageKey scopes the shared music key to one player.
func StorageKey(player string) string {
	if player == "" {
		return MusicKey
	}

	return MusicKey + ":" + player
}

// LoadSnapshot reads the snapshot at key. Any failure yields the default.
func LoadSnapshot(ctx context.Context, st Storage, key string) Snapshot {
	if st == nil {
		return DefaultSnapshot()
	}

	raw, err := st.Get(ctx, key)
	if err != nil {
		return DefaultSnapshot()
	}

	return DecodeSnapshot(raw)
}

func SaveSnapshot(ctx context.Context, st Storage, key string, s Snapshot) error {
	if st == nil {
		return fmt.Errorf("saving music snapshot: no storage")
	}

	if err := st.Set(ctx, key, s.Encode()); err != nil {
		return fmt.Errorf("saving music snapshot: %w", err)
	}

	return nil
}

// UpdateSnapshot reads the stored snapshot, applies u, and writes the whole
// result back. The merged snapshot is returned even when the write fails.
func UpdateSnapshot(ctx context.Context, st Storage, key string, u SnapshotUpdate) (Snapshot, error) {
	next := LoadSnapshot(ctx, st, key).Merge(u)

	return next, SaveSnapshot(ctx, st, key, next)
}

// Resume is what a page should do with its music once the user first interacts.
type Resume struct {
	Play   bool    `json:"play"`
	Volume float64 `json:"volume"`
	Seek   float64 `json:"seek"`
}

// PlanResume decides how to resume from s. A positive length clamps the seek
// position into the track; zero means the length is unknown.
func PlanResume(s Snapshot, length time.Duration) Resume {
	if !s.Playing {
		return Resume{}
	}

	seek := s.Time
	if seek < 0 {
		seek = 0
	}
	if length > 0 && seek >= length.Seconds() {
		seek = 0
	}

	return Resume{Play: true, Volume: s.Volume, Seek: seek}
}
