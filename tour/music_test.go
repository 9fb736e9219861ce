/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package tour

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapStorage struct {
	data map[string]string
	err  error
}

func (m *mapStorage) Get(_ context.Context, key string) (string, error) {
	if m.err != nil {
		return "", m.err
	}

	v, ok := m.data[key]
	if !ok {
		return "", errors.New("not found")
	}

	return v, nil
}

func (m *mapStorage) Set(_ context.Context, key, value string) error {
	if m.err != nil {
		return m.err
	}

	m.data[key] = value

	return nil
}

func ptr[T any](v T) *T { return &v }

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := &mapStorage{data: map[string]string{}}

	want := Snapshot{Playing: true, Time: 42.5, Volume: 0.7}
	require.NoError(t, SaveSnapshot(ctx, st, MusicKey, want))

	assert.Equal(t, want, LoadSnapshot(ctx, st, MusicKey))
}

func TestDecodeSnapshotDefaults(t *testing.T) {
	def := Snapshot{Playing: false, Time: 0, Volume: 0.5}

	for _, raw := range []string{"", "{", "null", "[]", `"playing"`, "{}"} {
		assert.Equal(t, def, DecodeSnapshot(raw), "raw %q", raw)
	}

	assert.Equal(t, Snapshot{Playing: true, Time: 0, Volume: 0.5},
		DecodeSnapshot(`{"playing":true,"time":"soon","volume":null}`))
	assert.Equal(t, Snapshot{Time: 3, Volume: 0.2},
		DecodeSnapshot(`{"playing":"yes","time":3,"volume":0.2,"extra":1}`))

	// out of range fields fall back one at a time
	assert.Equal(t, Snapshot{Playing: true, Time: 0, Volume: 0.5},
		DecodeSnapshot(`{"playing":true,"time":-5,"volume":7}`))
	assert.Equal(t, Snapshot{Playing: true, Time: 8, Volume: 0.5},
		DecodeSnapshot(`{"playing":true,"time":8,"volume":-0.1}`))
	assert.Equal(t, Snapshot{Time: 0, Volume: 1},
		DecodeSnapshot(`{"time":1e999,"volume":1}`))

	plan := PlanResume(DecodeSnapshot(`{"playing":true,"time":-5,"volume":7}`), 0)
	assert.Equal(t, Resume{Play: true, Volume: 0.5, Seek: 0}, plan)
}

func TestLoadSnapshotFailures(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, DefaultSnapshot(), LoadSnapshot(ctx, nil, MusicKey))
	assert.Equal(t, DefaultSnapshot(), LoadSnapshot(ctx, &mapStorage{data: map[string]string{}}, MusicKey))
	assert.Equal(t, DefaultSnapshot(), LoadSnapshot(ctx, &mapStorage{err: errors.New("down")}, MusicKey))
	assert.Equal(t, DefaultSnapshot(), LoadSnapshot(ctx, &mapStorage{data: map[string]string{MusicKey: "garbage"}}, MusicKey))
}

func TestSaveSnapshotFailure(t *testing.T) {
	err := SaveSnapshot(context.Background(), &mapStorage{err: errors.New("down")}, MusicKey, DefaultSnapshot())
	assert.ErrorContains(t, err, "down")
}

func TestMergeKeepsUnsetFields(t *testing.T) {
	prev := Snapshot{Playing: true, Time: 10, Volume: 0.8}

	assert.Equal(t, Snapshot{Playing: false, Time: 12, Volume: 0.8},
		prev.Merge(SnapshotUpdate{Playing: ptr(false), Time: ptr(12.0)}))
	assert.Equal(t, prev, prev.Merge(SnapshotUpdate{}))
	assert.Equal(t, prev, prev.Merge(SnapshotUpdate{Time: ptr(-1.0), Volume: ptr(3.0)}))
	assert.Equal(t, Snapshot{Playing: true, Time: 10, Volume: 0},
		prev.Merge(SnapshotUpdate{Volume: ptr(0.0)}))
}

func TestUpdateSnapshot(t *testing.T) {
	ctx := context.Background()
	st := &mapStorage{data: map[string]string{}}
	key := StorageKey("player")

	require.NoError(t, SaveSnapshot(ctx, st, key, Snapshot{Playing: true, Time: 5, Volume: 0.3}))

	got, err := UpdateSnapshot(ctx, st, key, SnapshotUpdate{Time: ptr(9.0)})
	require.NoError(t, err)
	assert.Equal(t, Snapshot{Playing: true, Time: 9, Volume: 0.3}, got)
	assert.Equal(t, got, LoadSnapshot(ctx, st, key))

	st.err = errors.New("down")
	got, err = UpdateSnapshot(ctx, st, key, SnapshotUpdate{Playing: ptr(false)})
	assert.Error(t, err)
	assert.Equal(t, Snapshot{Playing: false, Time: 0, Volume: 0.5}, got)
}

func TestStorageKey(t *testing.T) {
	assert.Equal(t, "jb_music_state_v1", StorageKey(""))
	assert.Equal(t, "jb_music_state_v1:abc", StorageKey("abc"))
}

func TestPlanResume(t *testing.T) {
	assert.Equal(t, Resume{}, PlanResume(Snapshot{Playing: false, Time: 4, Volume: 1}, 0))
	assert.Equal(t, Resume{Play: true, Volume: 0.7, Seek: 42.5},
		PlanResume(Snapshot{Playing: true, Time: 42.5, Volume: 0.7}, 0))
	assert.Equal(t, Resume{Play: true, Volume: 0.7, Seek: 42.5},
		PlanResume(Snapshot{Playing: true, Time: 42.5, Volume: 0.7}, time.Minute))
	assert.Equal(t, Resume{Play: true, Volume: 0.7, Seek: 0},
		PlanResume(Snapshot{Playing: true, Time: 90, Volume: 0.7}, time.Minute))
}
