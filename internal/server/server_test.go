package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layout-sim/layout-sim/internal/session"
	"github.com/layout-sim/layout-sim/sim"
)

type wireEvent struct {
	Type    string          `json:"type"`
	RunID   string          `json:"run_id"`
	Payload json.RawMessage `json:"payload"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := New()
	ts := httptest.NewServer(srv.Router)
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
	})
	return ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	// the hub greets every subscriber once it is registered
	ev := readEvent(t, conn)
	require.Equal(t, EventConnected, ev.Type)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) wireEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(10*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev wireEvent
	require.NoError(t, json.Unmarshal(msg, &ev))
	return ev
}

func TestHealthz_ReturnsOK(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestOptimize_StreamsIterationsAndResult(t *testing.T) {
	// GIVEN a subscriber on /ws
	ts := newTestServer(t)
	conn := dial(t, ts)

	// WHEN a seeded 5-iteration run is started
	resp, err := http.Post(ts.URL+"/api/optimize", "application/json",
		strings.NewReader(`{"stations":["A","B","C","D"],"iterations":5,"seed":42}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	var started map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&started))
	runID := started["run_id"]
	require.NotEmpty(t, runID)

	// THEN the subscriber sees started, 5 iterations and done, in order
	ev := readEvent(t, conn)
	assert.Equal(t, EventStarted, ev.Type)
	assert.Equal(t, runID, ev.RunID)
	for i := 1; i <= 5; i++ {
		ev = readEvent(t, conn)
		require.Equal(t, EventIteration, ev.Type)
		var rec struct {
			Iteration int `json:"iteration"`
		}
		require.NoError(t, json.Unmarshal(ev.Payload, &rec))
		assert.Equal(t, i, rec.Iteration)
	}
	ev = readEvent(t, conn)
	require.Equal(t, EventDone, ev.Type)
	var res ResultPayload
	require.NoError(t, json.Unmarshal(ev.Payload, &res))
	assert.Len(t, res.History, 6)
	assert.Len(t, res.BestLayout, 4)
	assert.Equal(t, int64(42), res.Seed)
	assert.Equal(t, res.BestScore, res.History[5])
}

func TestOptimize_InvalidConfig_BadRequest(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name string
		body string
	}{
		{"single station", `{"stations":["A"]}`},
		{"zero jobs", `{"num_jobs":0}`},
		{"unknown field", `{"stationz":["A","B"]}`},
		{"malformed", `{`},
		{"too many jobs", `{"num_jobs":10001}`},
		{"too many iterations", `{"iterations":100001}`},
		{"duration above cap", `{"duration":{"min":1,"max":9223372036854775807}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/optimize", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestCheckLimits(t *testing.T) {
	// GIVEN a valid config at every limit
	cfg := session.DefaultConfig()
	cfg.NumJobs = maxNumJobs
	cfg.Iterations = maxIterations
	require.NoError(t, checkLimits(cfg))

	// WHEN any bound is exceeded by one
	// THEN the config is rejected as invalid
	over := cfg
	over.NumJobs++
	assert.ErrorIs(t, checkLimits(over), sim.ErrInvalidArgument)
	over = cfg
	over.Iterations++
	assert.ErrorIs(t, checkLimits(over), sim.ErrInvalidArgument)
	over = cfg
	over.Stations = make([]string, maxStations+1)
	for i := range over.Stations {
		over.Stations[i] = fmt.Sprintf("S%d", i)
	}
	assert.ErrorIs(t, checkLimits(over), sim.ErrInvalidArgument)
}

func TestOptimize_WrongMethod_NotAllowed(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/optimize")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestCORS_Preflight(t *testing.T) {
	ts := newTestServer(t)
	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/optimize", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
