package scheduler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerrad567/smarthome-sync/internal/infrastructure/config"
)

const schedulerReply = `{"rawRDF":"@prefix ns1: <http://example.org/> .","lightToggle":{"roomsWithPeople":["Kitchen_1"],"roomsWithLightsOnAndNoPeople":["Den"],"roomsWithPeopleAndLightsOff":[]}}`

func TestForward_RelaysBodyVerbatim(t *testing.T) {
	var gotBody, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, schedulerReply)
	}))
	defer srv.Close()

	f := NewForwarder(config.SchedulerConfig{URL: srv.URL + "/generate_rdf", Timeout: 2})
	sent := `{"rooms":[{"name":"Kitchen 1"}],"extra":true}`

	resp, err := f.Forward(context.Background(), []byte(sent))
	require.NoError(t, err)

	assert.Equal(t, sent, gotBody)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, schedulerReply, string(resp.Body))
	assert.Equal(t, "application/json", resp.ContentType)

	summary, ok := resp.Summary()
	require.True(t, ok)
	assert.Equal(t, []string{"Kitchen_1"}, summary.RoomsWithPeople)
	assert.Equal(t, []string{"Den"}, summary.RoomsWithLightsOnAndNoPeople)
	assert.Empty(t, summary.RoomsWithPeopleAndLightsOff)
}

func TestForward_UpstreamErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"Missing JSON in request"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := NewForwarder(config.SchedulerConfig{URL: srv.URL}).Forward(context.Background(), []byte(`{}`))

	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "status code 400")
}

func TestForward_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewForwarder(config.SchedulerConfig{URL: url}).Forward(context.Background(), []byte(`{}`))
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestForward_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	f := NewForwarder(config.SchedulerConfig{URL: srv.URL})
	f.client.Timeout = 50 * time.Millisecond

	_, err := f.Forward(context.Background(), []byte(`{}`))
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestForward_NotConfigured(t *testing.T) {
	_, err := NewForwarder(config.SchedulerConfig{}).Forward(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSummary_Missing(t *testing.T) {
	_, ok := Response{Body: []byte(`{"rawRDF":""}`)}.Summary()
	assert.False(t, ok)

	_, ok = Response{Body: []byte(`not json`)}.Summary()
	assert.False(t, ok)
}
