package growth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	"github.com/mfalchetti/standgrow/internal/model"
)

// RemoteRunner invokes a growth-model server over HTTP/JSON. Transport
// failures and 5xx responses are retried with exponential backoff behind a
// circuit breaker; model rejections (4xx) come back as-is so the invoker
// can move on to the next configuration candidate.
type RemoteRunner struct {
	baseURL string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker
}

func NewRemoteRunner(baseURL string, timeout time.Duration) *RemoteRunner {
	return &RemoteRunner{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:     "growth-model",
			Interval: 60 * time.Second,
			Timeout:  15 * time.Second,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= 3
			},
		}),
	}
}

type runResponse struct {
	Rows  []model.ModelOutputRow `json:"rows"`
	Error string                 `json:"error,omitempty"`
}

func (r *RemoteRunner) Run(ctx context.Context, in RunInput) ([]model.ModelOutputRow, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode run input: %w", err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second

	var rows []model.ModelOutputRow
	op := func() error {
		out, err := r.cb.Execute(func() (interface{}, error) {
			return r.post(ctx, body)
		})
		if err != nil {
			if _, ok := err.(*modelError); ok {
				return backoff.Permanent(err)
			}
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		rows = out.([]model.ModelOutputRow)
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return rows, nil
}

// modelError marks a rejection by the model itself, as opposed to a
// transport problem. Not retried.
type modelError struct{ msg string }

func (e *modelError) Error() string { return e.msg }

func (r *RemoteRunner) post(ctx context.Context, body []byte) ([]model.ModelOutputRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/v1/run", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var out runResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return nil, fmt.Errorf("decode model response: %w", err)
		}
		return out.Rows, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		var out runResponse
		msg := fmt.Sprintf("model rejected input (status %d)", resp.StatusCode)
		if err := json.NewDecoder(resp.Body).Decode(&out); err == nil && out.Error != "" {
			msg = out.Error
		}
		return nil, &modelError{msg: msg}
	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("model server status %d: %s", resp.StatusCode, string(b))
	}
}
