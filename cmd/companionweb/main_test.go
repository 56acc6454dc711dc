package main

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamcompanion/tracker"
)

func newTestRouter(t *testing.T, statsFile string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return newServer(statsFile, nil).router()
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeSession(t *testing.T, w *httptest.ResponseRecorder) sessionResponse {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp sessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSessionEndpoints(t *testing.T) {
	statsFile := filepath.Join(t.TempDir(), "stats.json")
	r := newTestRouter(t, statsFile)

	resp := decodeSession(t, do(t, r, http.MethodGet, "/api/session", ""))
	assert.Equal(t, tracker.LoadNew, resp.Session.LoadStatus)
	assert.True(t, resp.Overlay.Enabled)

	decodeSession(t, do(t, r, http.MethodPost, "/api/session/victory", ""))
	decodeSession(t, do(t, r, http.MethodPost, "/api/session/victory", ""))
	resp = decodeSession(t, do(t, r, http.MethodPost, "/api/session/eliminations", `{"delta": 30}`))
	assert.Equal(t, 30, resp.Session.Eliminations)

	decodeSession(t, do(t, r, http.MethodPost, "/api/session/new-game", ""))
	decodeSession(t, do(t, r, http.MethodPost, "/api/session/new-game", ""))
	resp = decodeSession(t, do(t, r, http.MethodPost, "/api/session/new-game", ""))
	assert.Equal(t, 3, resp.Session.Stats.GamesPlayed)
	assert.Equal(t, 2, resp.Session.Stats.Victories)
	assert.Equal(t, 30, resp.Session.TotalEliminations)
	assert.Equal(t, 10.0, resp.Session.Derived.KD)
	assert.InDelta(t, 0.667, resp.Session.Derived.WinRate, 0.001)
	assert.Empty(t, resp.Warning)

	resp = decodeSession(t, do(t, r, http.MethodPost, "/api/session/top10", ""))
	assert.Equal(t, 1, resp.Session.Stats.Top10s)

	persisted, _, err := tracker.NewTracker(statsFile, nil).Load()
	require.NoError(t, err)
	assert.Equal(t, resp.Session.Stats, persisted)

	resp = decodeSession(t, do(t, r, http.MethodPost, "/api/session/reset", ""))
	assert.Equal(t, tracker.SessionStats{}, resp.Session.Stats)
}

func TestEliminationsClampAndValidate(t *testing.T) {
	r := newTestRouter(t, filepath.Join(t.TempDir(), "stats.json"))

	resp := decodeSession(t, do(t, r, http.MethodPost, "/api/session/eliminations", `{"delta": -4}`))
	assert.Equal(t, 0, resp.Session.Eliminations)

	w := do(t, r, http.MethodPost, "/api/session/eliminations", `{"delta": "lots"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp = decodeSession(t, do(t, r, http.MethodPost, "/api/session/eliminations", `{"delta": 9223372036854775807}`))
	assert.Equal(t, math.MaxInt, resp.Session.Eliminations)
	resp = decodeSession(t, do(t, r, http.MethodPost, "/api/session/new-game", ""))
	assert.Empty(t, resp.Warning)
	assert.Equal(t, math.MaxInt, resp.Session.Stats.Eliminations)
}

func TestSaveFailureIsAWarning(t *testing.T) {
	dir := t.TempDir()
	statsFile := filepath.Join(dir, "stats.json")
	r := newTestRouter(t, statsFile)
	require.NoError(t, os.Mkdir(statsFile, 0o755))

	resp := decodeSession(t, do(t, r, http.MethodPost, "/api/session/victory", ""))
	assert.Equal(t, 1, resp.Session.Stats.Victories)
	assert.NotEmpty(t, resp.Warning)

	w := do(t, r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "companion_save_failures_total 1")
	assert.Contains(t, w.Body.String(), "companion_victories_recorded_total 1")
}

func TestActionEndpoints(t *testing.T) {
	r := newTestRouter(t, filepath.Join(t.TempDir(), "stats.json"))

	w := do(t, r, http.MethodGet, "/api/actions", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Tabs []tabInfo `json:"tabs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Tabs, 10)
	assert.Equal(t, "Quick Actions", list.Tabs[0].Title)

	w = do(t, r, http.MethodPost, "/api/actions/polls/tilted-towers", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp actionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Tilted Towers", resp.Notice.Message)
	assert.Equal(t, []string{"Yes", "No"}, resp.Notice.Choices)

	w = do(t, r, http.MethodPost, "/api/actions/stream/connect-to-twitch", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Overlay.StreamConnected)

	w = do(t, r, http.MethodPost, "/api/actions/predictions/start-custom-prediction", `{"input": "  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/actions/polls/moon-base", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/metrics", "")
	assert.Contains(t, w.Body.String(), `companion_actions_run_total{tab="polls"} 1`)
}

func TestIndexAndReady(t *testing.T) {
	r := newTestRouter(t, filepath.Join(t.TempDir(), "stats.json"))

	w := do(t, r, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Stream Companion Overlay")

	w = do(t, r, http.MethodGet, "/assets/overlay.js", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
