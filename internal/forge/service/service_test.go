package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/louisbranch/fateforge/internal/forge/domain"
	"github.com/louisbranch/fateforge/internal/forge/model"
	"github.com/louisbranch/fateforge/internal/forge/storage"
)

// fakeCollaborator replays canned predictions, one per attempt, and
// captures the feedback each attempt carried. The last prediction
// repeats once the script runs out.
type fakeCollaborator struct {
	skeletons []model.SkeletonPrediction
	remaining []model.RemainingPrediction
	hints     []model.HintsPrediction

	err       error
	feedbacks []string
	calls     int
}

func (f *fakeCollaborator) Skeleton(_ context.Context, req model.SkeletonRequest) (model.SkeletonPrediction, error) {
	f.feedbacks = append(f.feedbacks, req.Feedback)
	if f.err != nil {
		return model.SkeletonPrediction{}, f.err
	}
	pred := pick(f.skeletons, f.calls)
	f.calls++
	return pred, nil
}

func (f *fakeCollaborator) Remaining(_ context.Context, req model.RemainingRequest) (model.RemainingPrediction, error) {
	f.feedbacks = append(f.feedbacks, req.Feedback)
	if f.err != nil {
		return model.RemainingPrediction{}, f.err
	}
	pred := pick(f.remaining, f.calls)
	f.calls++
	return pred, nil
}

func (f *fakeCollaborator) Hints(_ context.Context, req model.HintsRequest) (model.HintsPrediction, error) {
	f.feedbacks = append(f.feedbacks, req.Feedback)
	if f.err != nil {
		return model.HintsPrediction{}, f.err
	}
	pred := pick(f.hints, f.calls)
	f.calls++
	return pred, nil
}

func pick[T any](list []T, i int) T {
	if i >= len(list) {
		i = len(list) - 1
	}
	return list[i]
}

// memRecorder keeps attempt records in memory for assertions.
type memRecorder struct {
	mu      sync.Mutex
	records []storage.AttemptRecord
}

func (m *memRecorder) RecordAttempt(_ context.Context, rec storage.AttemptRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

// sequentialIDs returns predictable ids id-1, id-2, ...
func sequentialIDs() func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return fmt.Sprintf("id-%d", n), nil
	}
}

func testService(collab model.Collaborator, rec storage.Recorder) *Service {
	return New(collab, Options{
		Recorder: rec,
		NewID:    sequentialIDs(),
	})
}

// testSheet is a minimal sheet with both core aspects and a few
// skills, on the 1-4 ladder.
func testSheet() domain.Sheet {
	return domain.Sheet{
		ID: "sheet-1",
		Meta: domain.Meta{
			Idea:       "Gruff bounty hunter",
			Setting:    "Space western",
			LadderType: "1-4",
		},
		Aspects: []domain.Aspect{
			{ID: "aspect-hc", Name: domain.AspectHighConcept, Description: "Gruff bounty hunter with a code"},
			{ID: "aspect-tr", Name: domain.AspectTrouble, Description: "Wanted in three systems"},
		},
		Skills: []domain.Skill{
			{ID: "skill-fight", Name: "Fight", Rank: 3},
			{ID: "skill-notice", Name: "Notice", Rank: 2},
			{ID: "skill-stealth", Name: "Stealth", Rank: 1},
		},
		Stunts: []domain.Stunt{
			{ID: "stunt-1", Name: "Quick Draw", Description: "+2 to Shoot when acting first in a gunfight."},
		},
	}
}
