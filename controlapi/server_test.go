package controlapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benbjohnson/clock"
	"github.com/steersuite/crowdsim/controlapi"
	"github.com/steersuite/crowdsim/engine"
)

func newTestServer(t *testing.T) *controlapi.Server {
	t.Helper()
	eng := engine.New(engine.Options{Clock: clock.NewMock(), FixedTimestep: 10 * time.Millisecond})
	require.NoError(t, eng.Init(nil))

	return controlapi.NewServer(eng)
}

func TestServer_PauseResumeStop(t *testing.T) {
	s := newTestServer(t)

	assert.False(t, s.Paused())
	assert.False(t, s.ShouldStop())

	rec := doRequest(s, http.MethodPost, "/pause")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, s.Paused())

	rec = doRequest(s, http.MethodPost, "/resume")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, s.Paused())

	rec = doRequest(s, http.MethodPost, "/stop")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, s.ShouldStop())
}

func TestServer_Status(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "frame")
	assert.Contains(t, body, "real_fps")
	assert.Equal(t, false, body["paused"])
}

func doRequest(s *controlapi.Server, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	return rec
}
