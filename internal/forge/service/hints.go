package service

import (
	"context"
	"strings"

	"github.com/louisbranch/fateforge/internal/forge/domain"
	"github.com/louisbranch/fateforge/internal/forge/gate"
	"github.com/louisbranch/fateforge/internal/forge/hints"
	"github.com/louisbranch/fateforge/internal/forge/model"
	"github.com/louisbranch/fateforge/internal/platform/errors"
)

// HintsInput asks for usage hints on one aspect or stunt.
type HintsInput struct {
	Sheet      domain.Sheet
	TargetType string
	TargetID   string
	Tone       string
}

// GenerateHints produces GM and player usage hints for the target.
// Predictions that fail the hints gate are retried with feedback, but
// the last prediction is normalized regardless: the normalizer
// synthesizes whatever the model failed to provide, so this operation
// never fails validation.
func (s *Service) GenerateHints(ctx context.Context, in HintsInput) (hints.Response, error) {
	ctx, span := s.tracer.Start(ctx, "forge.GenerateHints")
	defer span.End()

	targetType := strings.ToLower(strings.TrimSpace(in.TargetType))
	if targetType != gate.TargetAspect && targetType != gate.TargetStunt {
		return hints.Response{}, errors.WithMetadata(errors.CodeForgeInvalidTarget, "target type must be aspect or stunt",
			map[string]string{"Target": in.TargetType})
	}

	var feedback string
	var pred model.HintsPrediction
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		started := s.now()
		p, err := s.collaborator.Hints(ctx, model.HintsRequest{
			Sheet:      in.Sheet,
			TargetType: targetType,
			TargetID:   in.TargetID,
			Tone:       in.Tone,
			Feedback:   feedback,
		})
		if err != nil {
			return hints.Response{}, errors.Wrap(errors.CodeForgeCollaboratorFailed, "hints prediction", err)
		}
		pred = p

		problems := gate.CheckHints(targetType, hintCandidates(pred.Hints))
		s.record(ctx, "hints", "", attempt, problems, started)
		if gate.Passed(problems) {
			break
		}
		feedback = feedbackFrom(problems)
	}

	return hints.Normalize(in.Sheet, targetType, in.TargetID, pred, s.newID)
}

func hintCandidates(raw []any) []gate.HintCandidate {
	out := make([]gate.HintCandidate, 0, len(raw))
	for _, h := range raw {
		out = append(out, gate.HintCandidate{
			Type:      model.StringField(h, "type"),
			Title:     model.StringField(h, "title"),
			Narrative: model.StringField(h, "narrative"),
			Mechanics: model.StringField(h, "mechanics"),
		})
	}
	return out
}
