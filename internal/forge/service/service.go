// Package service orchestrates the generation pipeline: it calls the
// model collaborator, gates its predictions, retries with feedback, and
// folds accepted content into character sheets.
package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/fateforge/internal/forge/gate"
	"github.com/louisbranch/fateforge/internal/forge/model"
	"github.com/louisbranch/fateforge/internal/forge/storage"
	"github.com/louisbranch/fateforge/internal/platform/errors"
	"github.com/louisbranch/fateforge/internal/platform/id"
	"github.com/louisbranch/fateforge/internal/systems/fatecore"
)

// defaultMaxAttempts bounds the gate-and-retry loop per operation.
const defaultMaxAttempts = 3

// Service runs the generation pipeline around a model collaborator.
type Service struct {
	collaborator model.Collaborator
	recorder     storage.Recorder
	tracer       trace.Tracer
	newID        func() (string, error)
	skillBank    []string
	maxAttempts  int
	now          func() time.Time
}

// Options configures optional Service collaborators. Zero values fall
// back to sensible defaults.
type Options struct {
	Recorder    storage.Recorder
	NewID       func() (string, error)
	SkillBank   []string
	MaxAttempts int
	Now         func() time.Time
}

// New builds a Service around the given collaborator.
func New(collaborator model.Collaborator, opts Options) *Service {
	s := &Service{
		collaborator: collaborator,
		recorder:     opts.Recorder,
		tracer:       otel.Tracer("fateforge/forge"),
		newID:        opts.NewID,
		skillBank:    opts.SkillBank,
		maxAttempts:  opts.MaxAttempts,
		now:          opts.Now,
	}
	if s.recorder == nil {
		s.recorder = storage.NopRecorder{}
	}
	if s.newID == nil {
		s.newID = id.NewID
	}
	if len(s.skillBank) == 0 {
		s.skillBank = fatecore.DefaultSkills()
	}
	if s.maxAttempts <= 0 {
		s.maxAttempts = defaultMaxAttempts
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// ValidationError reports that every attempt at an operation was
// rejected by the gates. Problems holds the last attempt's violations.
type ValidationError struct {
	Attempts int
	Problems []gate.Problem
	cause    error
}

func newValidationError(attempts int, problems []gate.Problem) *ValidationError {
	return &ValidationError{
		Attempts: attempts,
		Problems: problems,
		cause: errors.WithMetadata(errors.CodeValidationFailed, "generated content failed validation",
			map[string]string{"Attempts": strconv.Itoa(attempts)}),
	}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed after %d attempts: %d problems", e.Attempts, len(e.Problems))
}

func (e *ValidationError) Unwrap() error {
	return e.cause
}

// record persists one generation attempt. Audit failures are logged
// and never fail the operation.
func (s *Service) record(ctx context.Context, operation string, mode gate.Mode, attempt int, problems []gate.Problem, started time.Time) {
	recordID, err := s.newID()
	if err != nil {
		log.Printf("generate id for attempt record: %v", err)
		return
	}
	finished := s.now()
	rec := storage.AttemptRecord{
		ID:         recordID,
		Operation:  operation,
		Mode:       string(mode),
		Attempt:    attempt,
		GatePassed: gate.Passed(problems),
		Problems:   len(problems),
		Latency:    finished.Sub(started),
		CreatedAt:  finished,
	}
	if err := s.recorder.RecordAttempt(ctx, rec); err != nil {
		log.Printf("record %s attempt %d: %v", operation, attempt, err)
	}
}

// feedbackFrom flattens gate problems into a retry prompt line.
func feedbackFrom(problems []gate.Problem) string {
	return strings.Join(gate.Messages(problems), " ")
}

// atIndex rewrites candidate-relative problem paths onto a list
// position, so "aspect.name" becomes "aspects[0].name".
func atIndex(section string, index int, problems []gate.Problem) []gate.Problem {
	out := make([]gate.Problem, len(problems))
	for i, p := range problems {
		field := p.Path
		if dot := strings.LastIndex(field, "."); dot >= 0 {
			field = field[dot+1:]
		}
		out[i] = gate.Problem{
			Path:    fmt.Sprintf("%s[%d].%s", section, index, field),
			Message: p.Message,
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int, fallback int) int {
	if n == nil {
		return fallback
	}
	return *n
}
