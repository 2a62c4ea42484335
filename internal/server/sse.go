package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Preview stream event names
const (
	eventPreview = "preview"
	eventError   = "error"
)

// previewStream writes the server-sent events of GET /preview/stream. Each preview
// event carries the document revision as its event id.
type previewStream struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// newPreviewStream sets the event-stream headers and advises clients to reconnect after retry
func newPreviewStream(w http.ResponseWriter, retry time.Duration) (*previewStream, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	s := &previewStream{w: w, flusher: flusher}
	if _, err := fmt.Fprintf(w, "retry: %d\n\n", retry.Milliseconds()); err != nil {
		return nil, err
	}
	flusher.Flush()
	return s, nil
}

// Preview sends one render of the given revision
func (s *previewStream) Preview(resp PreviewResponse) error {
	return s.send(eventPreview, strconv.FormatUint(resp.Revision, 10), resp)
}

// Ping keeps idle connections open through proxies
func (s *previewStream) Ping() error {
	if _, err := fmt.Fprint(s.w, ": ping\n\n"); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// Fail reports a terminal stream error to the client
func (s *previewStream) Fail(err error) {
	s.send(eventError, "", map[string]string{"error": err.Error()}) //nolint:errcheck
}

func (s *previewStream) send(event, id string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if id != "" {
		if _, err := fmt.Fprintf(s.w, "id: %s\n", id); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}
