package chat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"secret-keeper-backend/internal/ai/aitest"
	"secret-keeper-backend/internal/engine"
	"secret-keeper-backend/internal/logger"
	"secret-keeper-backend/internal/narrator"
	"secret-keeper-backend/internal/session"
	"secret-keeper-backend/internal/trials"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	eng := engine.New(session.NewMemoryStore(), narrator.New(aitest.Failing(), nil), nil)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", ChatHandler(eng, logger.Nop()))
	mux.HandleFunc("/health", HealthHandler)
	mux.HandleFunc("/", RootHandler("Gate"))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, body string) (*http.Response, engine.Reply) {
	t.Helper()
	res, err := srv.Client().Post(srv.URL+"/api/chat", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()

	var reply engine.Reply
	if res.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(res.Body).Decode(&reply))
	}
	return res, reply
}

func TestChatHandler_FullRun(t *testing.T) {
	srv := newServer(t)

	// First message on a new session always narrates, whatever it says.
	_, r := post(t, srv, `{"session_id":"s1","message":"I am curious and furious"}`)
	assert.Equal(t, 1, r.Chapter)
	_, riddle := trials.Fallback(1)
	assert.Equal(t, riddle, r.Question)

	_, r = post(t, srv, `{"session_id":"s1","message":"I am curious and furious"}`)
	assert.Equal(t, 2, r.Chapter)
	assert.Equal(t, "FRAG-1", r.Fragment)

	_, r = post(t, srv, `{"session_id":"s1","message":"  START "}`)
	assert.Equal(t, 2, r.Chapter)
	assert.Empty(t, r.Fragment)

	_, r = post(t, srv, `{"session_id":"s1","message":"power"}`)
	assert.Equal(t, 3, r.Chapter)

	_, r = post(t, srv, `{"session_id":"s1","message":"I realise it: peace"}`)
	assert.True(t, r.Unlocked)
	assert.Contains(t, r.Reply, trials.FinalSecret)
	assert.Equal(t, "", r.Question)
}

func TestChatHandler_Validation(t *testing.T) {
	srv := newServer(t)

	res, _ := post(t, srv, `{"session_id":"   ","message":"begin"}`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, _ = post(t, srv, `not json`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	get, err := srv.Client().Get(srv.URL + "/api/chat")
	require.NoError(t, err)
	get.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, get.StatusCode)
}

func TestRootAndHealth(t *testing.T) {
	srv := newServer(t)

	res, err := srv.Client().Get(srv.URL + "/")
	require.NoError(t, err)
	defer res.Body.Close()
	var body map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, map[string]string{"status": "ok", "service": "Gate"}, body)

	health, err := srv.Client().Get(srv.URL + "/health")
	require.NoError(t, err)
	health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)

	missing, err := srv.Client().Get(srv.URL + "/nope")
	require.NoError(t, err)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestWantsStep(t *testing.T) {
	assert.True(t, wantsStep(session.State{}, false, "anything"))
	assert.True(t, wantsStep(session.State{Chapter: 0}, true, "anything"))
	assert.True(t, wantsStep(session.State{Chapter: 2}, true, "begin"))
	assert.False(t, wantsStep(session.State{Chapter: 2}, true, "beginning"))
	assert.False(t, wantsStep(session.State{Chapter: 1}, true, "I am angry"))
}
