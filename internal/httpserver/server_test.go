package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordtia/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st := store.NewMemoryStore()
	ctx := context.Background()
	at := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	require.NoError(t, st.Save(ctx, store.Record{
		ID: "won", WordHash: "w1", GuessHashes: []string{"g1"}, Success: true,
		FinishedAt: at, Height: 10, TxHash: "TXA",
	}))
	require.NoError(t, st.Save(ctx, store.Record{
		ID: "lost", WordHash: "w2", GuessHashes: []string{"a", "b", "c", "d", "e", "f"},
		FinishedAt: at.Add(time.Hour), SubmitError: "connection refused",
	}))
	return New(st, "https://explorer.test/tx/%s")
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealth(t *testing.T) {
	w := get(t, newTestServer(t), "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
}

func TestListResults(t *testing.T) {
	w := get(t, newTestServer(t), "/results")
	require.Equal(t, http.StatusOK, w.Code)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "lost", out[0]["id"])
	assert.Equal(t, "won", out[1]["id"])
	assert.Equal(t, "https://explorer.test/tx/TXA", out[1]["explorer"])
	assert.NotContains(t, out[0], "explorer")
	assert.Equal(t, "connection refused", out[0]["submitError"])
}

func TestListLimit(t *testing.T) {
	s := newTestServer(t)
	w := get(t, s, "/results?limit=1")
	require.Equal(t, http.StatusOK, w.Code)
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Len(t, out, 1)

	for _, bad := range []string{"0", "-3", "abc"} {
		w := get(t, s, "/results?limit="+bad)
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
	}
}

func TestGetResult(t *testing.T) {
	s := newTestServer(t)
	w := get(t, s, "/results/won")
	require.Equal(t, http.StatusOK, w.Code)
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "w1", out["wordHash"])
	assert.Equal(t, float64(10), out["height"])

	w = get(t, s, "/results/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"not_found"}`, w.Body.String())
}

func TestStats(t *testing.T) {
	w := get(t, newTestServer(t), "/stats")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"games":2,"wins":1,"attested":1}`, w.Body.String())
}

func TestUnknownPath(t *testing.T) {
	w := get(t, newTestServer(t), "/nowhere")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
