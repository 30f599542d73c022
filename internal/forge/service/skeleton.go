package service

import (
	"context"
	"strings"

	"github.com/louisbranch/fateforge/internal/forge/domain"
	"github.com/louisbranch/fateforge/internal/forge/gate"
	"github.com/louisbranch/fateforge/internal/forge/model"
	"github.com/louisbranch/fateforge/internal/platform/errors"
)

// SkeletonInput is the premise a character skeleton is generated from.
type SkeletonInput struct {
	Idea      string   `json:"idea"`
	Setting   string   `json:"setting,omitempty"`
	SkillList []string `json:"skillList,omitempty"`
}

// Skeleton is the first-stage generation result: the two core aspects
// plus a full skill ordering.
type Skeleton struct {
	HighConcept string         `json:"highConcept"`
	Trouble     string         `json:"trouble"`
	Skills      []domain.Skill `json:"skills"`
}

// GenerateSkeleton produces a character skeleton for the given premise.
// Predictions that fail the skeleton gate are retried with the gate's
// problems as feedback; when every attempt fails the error unwraps to
// a ValidationError.
func (s *Service) GenerateSkeleton(ctx context.Context, in SkeletonInput) (Skeleton, error) {
	ctx, span := s.tracer.Start(ctx, "forge.GenerateSkeleton")
	defer span.End()

	idea := strings.TrimSpace(in.Idea)
	if idea == "" {
		return Skeleton{}, errors.New(errors.CodeForgeEmptyIdea, "idea is required")
	}
	skills := in.SkillList
	if len(skills) == 0 {
		skills = s.skillBank
	}

	var feedback string
	var lastProblems []gate.Problem
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		started := s.now()
		pred, err := s.collaborator.Skeleton(ctx, model.SkeletonRequest{
			Idea:      idea,
			Setting:   in.Setting,
			SkillList: skills,
			Feedback:  feedback,
		})
		if err != nil {
			return Skeleton{}, errors.Wrap(errors.CodeForgeCollaboratorFailed, "skeleton prediction", err)
		}

		problems := gate.CheckSkeleton(skills, gate.SkeletonCandidate{
			HighConcept:  pred.HighConcept,
			Trouble:      pred.Trouble,
			RankedSkills: pred.RankedSkills,
		})
		s.record(ctx, "skeleton", "", attempt, problems, started)
		if gate.Passed(problems) {
			return buildSkeleton(in, skills, pred), nil
		}
		lastProblems = problems
		feedback = feedbackFrom(problems)
	}

	return Skeleton{}, newValidationError(s.maxAttempts, lastProblems)
}

// buildSkeleton sanitizes the predicted skill ordering against the
// allowed list and assigns descending ranks with stable content-derived
// ids.
func buildSkeleton(in SkeletonInput, allowed []string, pred model.SkeletonPrediction) Skeleton {
	canonical := make(map[string]string, len(allowed))
	for _, name := range allowed {
		canonical[strings.ToLower(name)] = name
	}

	seen := make(map[string]bool, len(pred.RankedSkills))
	var sanitized []string
	for _, name := range pred.RankedSkills {
		key := strings.ToLower(strings.TrimSpace(name))
		if canonical[key] == "" || seen[key] {
			continue
		}
		sanitized = append(sanitized, canonical[key])
		seen[key] = true
	}
	if len(sanitized) == 0 {
		sanitized = append(sanitized, allowed...)
	}

	ranked := make([]domain.Skill, 0, len(sanitized))
	total := len(sanitized)
	for idx, name := range sanitized {
		ranked = append(ranked, domain.Skill{
			ID:   domain.StableSkillID(name),
			Name: name,
			Rank: total - idx,
		})
	}

	highConcept := strings.TrimSpace(pred.HighConcept)
	if highConcept == "" {
		highConcept = in.Idea
	}
	trouble := strings.TrimSpace(pred.Trouble)
	if trouble == "" {
		trouble = in.Setting
		if strings.TrimSpace(trouble) == "" {
			trouble = "Unknown trouble"
		}
	}

	return Skeleton{HighConcept: highConcept, Trouble: trouble, Skills: ranked}
}

// SampleSkeleton returns a fixed demo sheet. It exercises the full
// response shape without a model round trip.
func SampleSkeleton() domain.Sheet {
	return domain.Sheet{
		ID: "00000000-0000-0000-0000-000000000001",
		Meta: domain.Meta{
			Idea:       "Wandering swordsman seeking redemption",
			Setting:    "Low fantasy",
			LadderType: "1-4",
		},
		Aspects: []domain.Aspect{
			{ID: "aspect-1", Name: domain.AspectHighConcept, Description: "Haunted Ronin on a Redemption Path"},
			{ID: "aspect-2", Name: domain.AspectTrouble, Description: "Past Sins Catch Up at the Worst Time"},
		},
		Skills: []domain.Skill{
			{ID: "skill-1", Name: "Fight", Rank: 3},
			{ID: "skill-2", Name: "Notice", Rank: 2},
			{ID: "skill-3", Name: "Stealth", Rank: 1},
		},
		Stunts: []domain.Stunt{
			{ID: "stunt-1", Name: "Iaijutsu Strike", Description: "+2 to Fight when acting first in a duel."},
		},
	}
}
