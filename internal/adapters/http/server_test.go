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

	inspector "github.com/aretw0/sweetwater/internal/adapters/http"
	"github.com/aretw0/sweetwater/pkg/adapters/memory"
	"github.com/aretw0/sweetwater/pkg/domain"
	"github.com/aretw0/sweetwater/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req, _ := http.NewRequest("GET", path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	handler := inspector.NewHandler(memory.NewStore())

	rr := get(t, handler, "/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestInfo(t *testing.T) {
	handler := inspector.NewHandler(memory.NewStore(), inspector.WithVersion("1.2.3"))

	var resp map[string]string
	require.NoError(t, json.Unmarshal(get(t, handler, "/info").Body.Bytes(), &resp))
	assert.Equal(t, "sweetwater", resp["app"])
	assert.Equal(t, "1.2.3", resp["version"])
}

func TestSnapshots(t *testing.T) {
	store := memory.NewStore()
	handler := inspector.NewHandler(store)

	assert.Equal(t, http.StatusNotFound, get(t, handler, "/snapshot").Code)

	ctx := context.Background()
	require.NoError(t, store.Present(ctx, domain.Snapshot{RunID: "a", Stage: domain.StageSales, Score: 25}))
	require.NoError(t, store.Present(ctx, domain.Snapshot{RunID: "b", Stage: domain.StageMerch}))

	rr := get(t, handler, "/snapshot")
	require.Equal(t, http.StatusOK, rr.Code)
	var latest domain.Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &latest))
	assert.Equal(t, "b", latest.RunID)

	rr = get(t, handler, "/snapshot/a")
	require.Equal(t, http.StatusOK, rr.Code)
	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))
	assert.Equal(t, domain.StageSales, snap.Stage)
	assert.Equal(t, 25, snap.Score)

	assert.Equal(t, http.StatusNotFound, get(t, handler, "/snapshot/zzz").Code)

	var runs []string
	require.NoError(t, json.Unmarshal(get(t, handler, "/runs").Body.Bytes(), &runs))
	assert.Equal(t, []string{"a", "b"}, runs)
}

func TestMetricsRoute(t *testing.T) {
	handler := inspector.NewHandler(memory.NewStore())
	assert.Equal(t, http.StatusNotFound, get(t, handler, "/metrics").Code)

	m := observability.NewMetrics()
	m.Hooks().OnScore(context.Background(), &domain.SessionEvent{Score: 3})
	handler = inspector.NewHandler(memory.NewStore(), inspector.WithMetrics(m.Handler()))

	rr := get(t, handler, "/metrics")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "sweetwater_score 3")
}

func TestEvents(t *testing.T) {
	b := memory.NewBroadcaster(8)
	srv := httptest.NewServer(inspector.NewHandler(memory.NewStore(), inspector.WithWatcher(b)))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", srv.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: ping\n", line)

	require.Eventually(t, func() bool { return b.Watchers() == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, b.Present(ctx, domain.Snapshot{RunID: "live", Score: 9}))

	for {
		line, err = reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: {") {
			break
		}
	}
	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(strings.TrimSpace(line), "data: ")), &snap))
	assert.Equal(t, "live", snap.RunID)
	assert.Equal(t, 9, snap.Score)
}
