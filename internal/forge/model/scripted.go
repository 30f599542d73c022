package model

import (
	"context"
	"strings"
)

// Scripted is a deterministic collaborator used when no generation
// backend is configured. It derives well-formed content from the
// request alone, which keeps local development and tests offline.
type Scripted struct{}

// Skeleton implements Collaborator.
func (Scripted) Skeleton(_ context.Context, req SkeletonRequest) (SkeletonPrediction, error) {
	idea := sanitizeLine(req.Idea)
	if idea == "" {
		idea = "A wandering adventurer"
	}
	return SkeletonPrediction{
		HighConcept:  idea,
		Trouble:      "Trouble always finds " + strings.ToLower(firstWord(idea)),
		RankedSkills: append([]string(nil), req.SkillList...),
	}, nil
}

// Remaining implements Collaborator. It returns an empty delta; the
// orchestration layer synthesizes mode-appropriate fallback content.
func (Scripted) Remaining(context.Context, RemainingRequest) (RemainingPrediction, error) {
	return RemainingPrediction{}, nil
}

// Hints implements Collaborator.
func (Scripted) Hints(_ context.Context, req HintsRequest) (HintsPrediction, error) {
	if req.TargetType == "stunt" {
		return HintsPrediction{Hints: []any{
			map[string]any{
				"type":      "trigger",
				"title":     "Trigger",
				"narrative": "The stunt's core situation comes up.",
				"mechanics": "Apply the stunt's bonus to the roll.",
			},
			map[string]any{
				"type":      "edge_case",
				"title":     "Edge Case",
				"narrative": "The situation only partly matches the stunt.",
				"mechanics": "GM rules whether the bonus applies before the roll.",
			},
			map[string]any{
				"type":      "synergy",
				"title":     "Synergy",
				"narrative": "Another skill sets up the stunt.",
				"mechanics": "Stack a created advantage's free invoke with the stunt bonus.",
			},
		}}, nil
	}
	return HintsPrediction{Hints: []any{
		map[string]any{
			"type":      "invoke",
			"title":     "Invoke",
			"narrative": "Leverage the aspect to gain advantage.",
			"mechanics": "Spend a fate point for +2 or reroll.",
		},
		map[string]any{
			"type":      "compel",
			"title":     "Compel",
			"narrative": "The aspect complicates the scene.",
			"mechanics": "Offer a fate point to accept the complication.",
		},
	}}, nil
}

// sanitizeLine strips newlines and mechanical tokens so templated text
// passes the aspect gates.
func sanitizeLine(text string) string {
	s := strings.NewReplacer("\n", " ", "\r", " ", "+", " ", "-", " ").Replace(text)
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) > 100 {
		s = string(runes[:100])
	}
	return strings.TrimSpace(s)
}

func firstWord(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "them"
	}
	return fields[0]
}

var _ Collaborator = Scripted{}
var _ Collaborator = (*OpenAICollaborator)(nil)
