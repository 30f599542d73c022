// Package storage defines persistence for generation attempt records.
// Attempts are operational telemetry: one row per collaborator call,
// with the gate verdict and timing. Character sheets themselves are
// never persisted.
package storage

import (
	"context"
	"time"
)

// AttemptRecord captures one generation attempt.
type AttemptRecord struct {
	ID         string
	Operation  string // skeleton, remaining, or hints
	Mode       string // generation mode or hint target type
	Attempt    int    // 1-based attempt number within the retry loop
	GatePassed bool
	Problems   int // gate violations counted on this attempt
	Latency    time.Duration
	CreatedAt  time.Time
}

// Recorder persists attempt records.
type Recorder interface {
	RecordAttempt(ctx context.Context, rec AttemptRecord) error
}

// NopRecorder discards attempt records. Used when no store is configured.
type NopRecorder struct{}

// RecordAttempt implements Recorder.
func (NopRecorder) RecordAttempt(context.Context, AttemptRecord) error { return nil }
