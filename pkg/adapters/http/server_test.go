package http_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/hollow"
	api "github.com/aretw0/hollow/pkg/adapters/http"
	"github.com/aretw0/hollow/internal/testutils"
	"github.com/aretw0/hollow/pkg/adapters/memory"
	"github.com/aretw0/hollow/pkg/domain"
)

func newServer(t *testing.T, opts ...api.Option) (*hollow.Engine, http.Handler) {
	t.Helper()
	eng, err := hollow.New(context.Background(), hollow.WithLoader(memory.NewLoader(testutils.Crypt(t))))
	require.NoError(t, err)
	srv := api.NewServer(eng, opts...)
	t.Cleanup(srv.Close)
	return eng, srv.Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestPostAction(t *testing.T) {
	eng, h := newServer(t)

	w := do(t, h, http.MethodPost, "/actions", `{"type":"interact","element_id":"stone"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp api.ActionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.State.HasItem("key"))
	require.NotNil(t, resp.Diff)
	assert.NotEmpty(t, resp.Diff.Inventory)
	assert.Nil(t, resp.Attempt)
	assert.True(t, eng.State().HasItem("key"))

	w = do(t, h, http.MethodPost, "/actions", `{"type":"tryExit","exit_id":"north"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "chapel", resp.State.CurrentSceneID)
}

func TestPostAction_Puzzle(t *testing.T) {
	_, h := newServer(t)

	w := do(t, h, http.MethodPost, "/actions", `{"type":"submitPuzzleSolution","solution":{"text":"fire"}}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "no active puzzle")

	w = do(t, h, http.MethodPost, "/actions", `{"type":"startPuzzle","puzzle_id":"riddle"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, http.MethodPost, "/actions", `{"type":"submitPuzzleSolution","puzzle_id":"riddle","solution":{"text":"water"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp api.ActionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Attempt)
	assert.False(t, resp.Attempt.Correct)
	assert.Equal(t, domain.ModeInPuzzle, resp.State.Mode())
}

func TestPostAction_BadRequest(t *testing.T) {
	_, h := newServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"Not JSON", `nope`},
		{"Unknown Type", `{"type":"teleport"}`},
		{"Bad Field", `{"type":"advanceTime","elapsed_ms":"later"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/actions", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			var e api.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
			assert.NotEmpty(t, e.Error)
		})
	}
}

func TestReadEndpoints(t *testing.T) {
	_, h := newServer(t, api.WithMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hollow_scene_entries_total 1\n"))
	})))

	w := do(t, h, http.MethodGet, "/view", "")
	require.Equal(t, http.StatusOK, w.Code)
	var v hollow.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.Equal(t, "gate", v.SceneID)
	assert.Len(t, v.Exits, 2)

	w = do(t, h, http.MethodGet, "/state", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"gate"`)

	w = do(t, h, http.MethodGet, "/game", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Crypt"`)

	w = do(t, h, http.MethodGet, "/hint?puzzle_id=runes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "crow flies")

	w = do(t, h, http.MethodGet, "/hint", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodGet, "/health", "")
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/info", "")
	assert.Contains(t, w.Body.String(), hollow.Version)

	w = do(t, h, http.MethodGet, "/metrics", "")
	assert.Contains(t, w.Body.String(), "hollow_scene_entries_total")

	w = do(t, h, http.MethodOptions, "/actions", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetrics_NotMounted(t *testing.T) {
	_, h := newServer(t)
	w := do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func readData(t *testing.T, lines *bufio.Scanner) string {
	t.Helper()
	for lines.Scan() {
		if data, ok := strings.CutPrefix(lines.Text(), "data: "); ok {
			return data
		}
	}
	t.Fatalf("stream ended: %v", lines.Err())
	return ""
}

func TestSubscribeEvents(t *testing.T) {
	eng, h := newServer(t)
	ts := httptest.NewServer(h)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/events?watch=scene", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	assert.Equal(t, "connected", readData(t, lines))

	// Filtered out: nothing but the clock and notifications change.
	_, err = eng.AdvanceTime(ctx, 10)
	require.NoError(t, err)
	_, err = eng.TryExit(ctx, "east")
	require.NoError(t, err)

	var diff domain.StateDiff
	require.NoError(t, json.Unmarshal([]byte(readData(t, lines)), &diff))
	require.NotNil(t, diff.CurrentSceneID)
	assert.Equal(t, "yard", *diff.CurrentSceneID)
	assert.Equal(t, []string{"yard"}, diff.VisitedAppended)
}

// interleavedEngine lands another client's action right before each dispatch.
type interleavedEngine struct {
	*hollow.Engine
	other hollow.Action
}

func (e *interleavedEngine) Dispatch(ctx context.Context, a hollow.Action) (hollow.Outcome, error) {
	if _, err := e.Engine.Dispatch(ctx, e.other); err != nil {
		return hollow.Outcome{}, err
	}
	return e.Engine.Dispatch(ctx, a)
}

func TestPostAction_DiffCoversOnlyThisAction(t *testing.T) {
	eng, err := hollow.New(context.Background(), hollow.WithLoader(memory.NewLoader(testutils.Crypt(t))))
	require.NoError(t, err)
	srv := api.NewServer(&interleavedEngine{Engine: eng, other: hollow.Interact{ElementID: "stone"}})
	t.Cleanup(srv.Close)

	w := do(t, srv.Handler(), http.MethodPost, "/actions", `{"type":"tryExit","exit_id":"east"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp api.ActionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.State.HasItem("key"))
	require.NotNil(t, resp.Diff)
	require.NotNil(t, resp.Diff.CurrentSceneID)
	assert.Equal(t, "yard", *resp.Diff.CurrentSceneID)
	assert.Nil(t, resp.Diff.Inventory, "the interleaved pickup belongs to the other request")
}
