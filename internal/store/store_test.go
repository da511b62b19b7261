package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	sq, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "wordtia.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sq,
	}
}

var base = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func rec(id string, offset time.Duration, success bool, tx string) Record {
	r := Record{
		ID:          id,
		WordHash:    "w-" + id,
		GuessHashes: []string{"g1-" + id, "g2-" + id},
		Success:     success,
		FinishedAt:  base.Add(offset),
		Network:     "mocha-4",
		TxHash:      tx,
	}
	if tx != "" {
		r.Height = 99
	}
	return r
}

func TestStoreSaveGet(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			want := rec("a", 0, true, "TX1")
			require.NoError(t, st.Save(ctx, want))

			got, err := st.Get(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, want.ID, got.ID)
			assert.Equal(t, want.WordHash, got.WordHash)
			assert.Equal(t, want.GuessHashes, got.GuessHashes)
			assert.True(t, got.Success)
			assert.True(t, want.FinishedAt.Equal(got.FinishedAt))
			assert.Equal(t, int64(99), got.Height)
			assert.True(t, got.Attested())

			_, err = st.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStoreSaveReplaces(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			r := rec("a", 0, false, "")
			r.SubmitError = "connection refused"
			require.NoError(t, st.Save(ctx, r))
			r.SubmitError, r.TxHash = "", "TX"
			require.NoError(t, st.Save(ctx, r))

			got, err := st.Get(ctx, "a")
			require.NoError(t, err)
			assert.Empty(t, got.SubmitError)
			assert.Equal(t, "TX", got.TxHash)
		})
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, st.Save(ctx, rec("old", 0, false, "")))
			require.NoError(t, st.Save(ctx, rec("new", 2*time.Hour, true, "TX2")))
			require.NoError(t, st.Save(ctx, rec("mid", time.Hour, true, "")))

			all, err := st.List(ctx, 0)
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, []string{"new", "mid", "old"}, []string{all[0].ID, all[1].ID, all[2].ID})

			two, err := st.List(ctx, 2)
			require.NoError(t, err)
			assert.Len(t, two, 2)
		})
	}
}

func TestStoreStats(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			empty, err := st.Stats(ctx)
			require.NoError(t, err)
			assert.Equal(t, Stats{}, empty)

			require.NoError(t, st.Save(ctx, rec("a", 0, true, "TX1")))
			require.NoError(t, st.Save(ctx, rec("b", time.Minute, false, "TX2")))
			require.NoError(t, st.Save(ctx, rec("c", 2*time.Minute, true, "")))

			s, err := st.Stats(ctx)
			require.NoError(t, err)
			assert.Equal(t, Stats{Games: 3, Wins: 2, Attested: 2}, s)
		})
	}
}

func TestStoreRejectsMissingID(t *testing.T) {
	for name, st := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, st.Save(context.Background(), Record{}))
		})
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordtia.db")
	st, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, st.Save(context.Background(), rec("keep", 0, true, "")))
	require.NoError(t, st.Close())

	st, err = OpenSQLite(path)
	require.NoError(t, err)
	defer st.Close()
	_, err = st.Get(context.Background(), "keep")
	assert.NoError(t, err)
}
