package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ChizhovVadim/draughts/pkg/engine"
	"github.com/ChizhovVadim/draughts/pkg/eval"
)

func newTestServer(t *testing.T) *httptest.Server {
	var options = engine.NewOptions()
	options.NoRandom = true
	var ts = httptest.NewServer(New(options, 4, zerolog.Nop()).Routes())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, body string, out any) int {
	var resp, err = http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	var ts = newTestServer(t)
	var resp, err = http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "ok", body["status"])
}

func TestMoves(t *testing.T) {
	var ts = newTestServer(t)

	var resp movesResponse
	require.Equal(t, http.StatusOK, post(t, ts, "/api/v1/moves", `{"side":"white"}`, &resp))
	require.False(t, resp.Forced)
	sort.Strings(resp.Moves)
	require.Equal(t, []string{"a3-b4", "c3-b4", "c3-d4", "e3-d4", "e3-f4", "g3-f4", "g3-h4"}, resp.Moves)

	resp = movesResponse{}
	require.Equal(t, http.StatusOK, post(t, ts, "/api/v1/moves",
		`{"board":"8/8/5b2/8/3b4/2w5/8/8","side":"w","square":"c3"}`, &resp))
	require.True(t, resp.Forced)
	require.Equal(t, []string{"c3:e5"}, resp.Moves)
}

func TestMovesErrors(t *testing.T) {
	var ts = newTestServer(t)
	var cases = []struct {
		body   string
		status int
	}{
		{`{"board":"8/8"}`, http.StatusBadRequest},
		{`{"side":"red"}`, http.StatusBadRequest},
		{`{"square":"z9"}`, http.StatusBadRequest},
		{`{"square":"d4"}`, http.StatusUnprocessableEntity},
		{`not json`, http.StatusBadRequest},
	}
	for _, test := range cases {
		var resp errorResponse
		require.Equal(t, test.status, post(t, ts, "/api/v1/moves", test.body, &resp), test.body)
		require.NotEmpty(t, resp.Error, test.body)
	}
}

func TestEvaluate(t *testing.T) {
	var ts = newTestServer(t)

	var resp evaluateResponse
	require.Equal(t, http.StatusOK, post(t, ts, "/api/v1/evaluate", `{"scoring":"Simple"}`, &resp))
	require.InDelta(t, 1.0, resp.Score, 1e-9)

	resp = evaluateResponse{}
	require.Equal(t, http.StatusOK, post(t, ts, "/api/v1/evaluate",
		`{"board":"8/8/8/8/8/2w5/8/8","side":"w"}`, &resp))
	require.Equal(t, eval.ValueWin, resp.Score)

	require.Equal(t, http.StatusBadRequest, post(t, ts, "/api/v1/evaluate", `{"scoring":"best"}`, nil))
}

func TestBestTurn(t *testing.T) {
	var ts = newTestServer(t)

	var resp bestTurnResponse
	require.Equal(t, http.StatusOK, post(t, ts, "/api/v1/best-turn",
		`{"board":"8/8/5b2/8/3b4/2w5/8/8","side":"w","depth":2,"scoring":"Simple","pruning":"O0"}`, &resp))
	require.Equal(t, "c3:e5:g7", resp.Turn)
	require.Equal(t, []string{"c3:e5", "e5:g7"}, resp.Moves)
	require.Equal(t, eval.ValueWin, resp.Score)
	require.Equal(t, 2, resp.Depth)
	require.False(t, resp.GameOver)

	resp = bestTurnResponse{}
	require.Equal(t, http.StatusOK, post(t, ts, "/api/v1/best-turn", `{"depth":100}`, &resp))
	require.Equal(t, 4, resp.Depth)
	require.NotEmpty(t, resp.Turn)

	resp = bestTurnResponse{}
	require.Equal(t, http.StatusOK, post(t, ts, "/api/v1/best-turn",
		`{"board":"8/8/8/8/8/2w5/8/8","side":"b"}`, &resp))
	require.True(t, resp.GameOver)
	require.Empty(t, resp.Turn)
	require.Empty(t, resp.Moves)
	require.Equal(t, eval.ValueLoss, resp.Score)
}
