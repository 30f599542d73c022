package model

import (
	"context"

	"github.com/louisbranch/fateforge/internal/forge/domain"
	"github.com/louisbranch/fateforge/internal/forge/gate"
)

// SkeletonRequest asks the collaborator for a character skeleton.
type SkeletonRequest struct {
	Idea      string
	Setting   string
	SkillList []string
	Feedback  string
}

// SkeletonPrediction is the collaborator's proposed skeleton.
type SkeletonPrediction struct {
	HighConcept  string   `json:"high_concept"`
	Trouble      string   `json:"trouble"`
	RankedSkills []string `json:"ranked_skills"`
}

// RemainingRequest asks the collaborator for remaining sheet details.
type RemainingRequest struct {
	Sheet           domain.Sheet
	Mode            gate.Mode
	AllowOverwrite  bool
	Count           int
	TargetSkillName string
	ActionType      string
	Note            string
	SkillBank       []string
	AspectSlotsLeft int
	Feedback        string
}

// RemainingPrediction is the collaborator's proposed suggestion delta.
type RemainingPrediction struct {
	Aspects []domain.AspectSuggestion `json:"aspects"`
	Skills  []domain.SkillSuggestion  `json:"skills"`
	Stunts  []domain.StuntSuggestion  `json:"stunts"`
	Notes   string                    `json:"notes"`
}

// HintsRequest asks the collaborator for GM hints on one aspect or stunt.
type HintsRequest struct {
	Sheet      domain.Sheet
	TargetType string
	TargetID   string
	Tone       string
	Feedback   string
}

// HintsPrediction carries raw hint objects. Hints stay loosely typed
// here; the normalizer extracts fields through the Field boundary.
type HintsPrediction struct {
	Hints []any  `json:"hints"`
	Notes string `json:"notes"`
}

// Collaborator produces raw sheet content. Implementations wrap a
// language model; predictions carry no validity guarantees and must
// pass the gates before use.
type Collaborator interface {
	Skeleton(ctx context.Context, req SkeletonRequest) (SkeletonPrediction, error)
	Remaining(ctx context.Context, req RemainingRequest) (RemainingPrediction, error)
	Hints(ctx context.Context, req HintsRequest) (HintsPrediction, error)
}
