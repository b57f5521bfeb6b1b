package status

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mogaika/w3x_skeleton_browser/pack/w3x"
)

func lastStatus(t *testing.T, h *Hub) status {
	t.Helper()
	var s status
	require.NoError(t, json.Unmarshal(h.LastMessage(), &s))
	return s
}

func TestHubStatus(t *testing.T) {
	h := NewHub()
	assert.Nil(t, h.LastMessage())

	h.Progress(float32(math.NaN()), "loading %s", "a.w3x")
	s := lastStatus(t, h)
	assert.Equal(t, "loading a.w3x", s.Message)
	assert.Equal(t, PROGRESS, s.Type)
	assert.Zero(t, s.Progress)

	h.Error("failed %d", 2)
	assert.Equal(t, ERROR, lastStatus(t, h).Type)
}

func TestReporter(t *testing.T) {
	h := NewHub()
	var rep w3x.Reporter = Reporter{Hub: h, Job: "job-1"}
	rep.Report(w3x.Diagnostic{Kind: w3x.DanglingParent, Pivot: "BONE01", Message: "lost"})

	s := lastStatus(t, h)
	assert.Equal(t, DIAGNOSTIC, s.Type)
	assert.Equal(t, "job-1", s.Job)
	assert.Contains(t, s.Message, "dangling-parent")
}

func TestServeWs(t *testing.T) {
	h := NewHub()
	h.Info("first")

	server := httptest.NewServer(http.HandlerFunc(h.ServeWs))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	// last message is replayed on connect
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")

	h.Info("second")
	_, data, err = conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), "second")
	assert.Equal(t, 1, h.ClientsCount())
}
