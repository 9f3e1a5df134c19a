package scheduler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/nerrad567/smarthome-sync/internal/infrastructure/config"
)

const (
	defaultTimeout = 10 * time.Second

	// maxResponseSize caps the relayed scheduler body at 4MB.
	maxResponseSize = 4 << 20
)

// Response is the scheduler's answer.
type Response struct {
	ContentType string
	Body        []byte
}

// LightToggle is the scheduler's advice for each room set.
type LightToggle struct {
	RoomsWithPeople              []string `json:"roomsWithPeople"`
	RoomsWithLightsOnAndNoPeople []string `json:"roomsWithLightsOnAndNoPeople"`
	RoomsWithPeopleAndLightsOff  []string `json:"roomsWithPeopleAndLightsOff"`
}

// Summary decodes the lightToggle member of the body. ok is false when the
// body carries none.
func (r Response) Summary() (LightToggle, bool) {
	raw := gjson.GetBytes(r.Body, "lightToggle")
	if !raw.IsObject() {
		return LightToggle{}, false
	}
	var lt LightToggle
	if err := json.Unmarshal([]byte(raw.Raw), &lt); err != nil {
		return LightToggle{}, false
	}
	return lt, true
}

// Forwarder posts catalogs to the light scheduler.
type Forwarder struct {
	url    string
	client *http.Client
}

// NewForwarder creates a forwarder for cfg.
func NewForwarder(cfg config.SchedulerConfig) *Forwarder {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Forwarder{
		url:    cfg.URL,
		client: &http.Client{Timeout: timeout},
	}
}

// URL returns the scheduler endpoint.
func (f *Forwarder) URL() string {
	return f.url
}

// Forward posts body unchanged and returns the scheduler's reply.
// Any transport failure or non-2xx reply wraps ErrUpstream.
func (f *Forwarder) Forward(ctx context.Context, body []byte) (Response, error) {
	if f.url == "" {
		return Response{}, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return Response{}, fmt.Errorf("%w: reading response: %w", ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Response{}, fmt.Errorf("%w: request failed with status code %d", ErrUpstream, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	return Response{ContentType: contentType, Body: data}, nil
}
