package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// traceTimeout bounds each trace upload; a slow collector must never stall a
// chat turn.
const traceTimeout = 3 * time.Second

// TraceObserver uploads events to a remote trace collector over HTTP. Each
// observer instance represents one run: all events it forwards share a
// UUIDv7 run id and are grouped under the configured project.
//
// Uploads are best-effort: failures are swallowed so tracing can never break
// the pipeline it observes.
type TraceObserver struct {
	endpoint string
	apiKey   string
	project  string
	runID    string
	client   *http.Client
}

// NewTraceObserver creates a TraceObserver posting to endpoint,
// authenticating with apiKey and tagging events with project.
func NewTraceObserver(endpoint, apiKey, project string) *TraceObserver {
	return &TraceObserver{
		endpoint: endpoint,
		apiKey:   apiKey,
		project:  project,
		runID:    uuid.Must(uuid.NewV7()).String(),
		client:   &http.Client{Timeout: traceTimeout},
	}
}

// RunID returns the run identifier attached to every uploaded event.
func (o *TraceObserver) RunID() string {
	return o.runID
}

type traceRecord struct {
	RunID     string         `json:"run_id"`
	Project   string         `json:"project"`
	Type      string         `json:"type"`
	Level     string         `json:"level"`
	Timestamp time.Time      `json:"timestamp"`
	Source    string         `json:"source"`
	Data      map[string]any `json:"data,omitempty"`
}

func (o *TraceObserver) OnEvent(ctx context.Context, event Event) {
	body, err := json.Marshal(traceRecord{
		RunID:     o.runID,
		Project:   o.project,
		Type:      string(event.Type),
		Level:     event.Level.String(),
		Timestamp: event.Timestamp,
		Source:    event.Source,
		Data:      event.Data,
	})
	if err != nil {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}
