package gate

import (
	"fmt"
	"strings"
)

// Target categories for GM hint generation.
const (
	TargetAspect = "aspect"
	TargetStunt  = "stunt"
)

// HintCandidate is a raw model-proposed GM hint.
type HintCandidate struct {
	Type      string
	Title     string
	Narrative string
	Mechanics string
}

// CheckHints validates a GM hint candidate list for the given target
// category. An empty result means the candidates passed.
func CheckHints(target string, hints []HintCandidate) []Problem {
	if len(hints) == 0 {
		return []Problem{{Path: "hints", Message: "hints must be a non-empty list."}}
	}

	var problems []Problem
	for i, h := range hints {
		fields := []struct {
			name  string
			value string
		}{
			{"type", h.Type},
			{"title", h.Title},
			{"narrative", h.Narrative},
			{"mechanics", h.Mechanics},
		}
		for _, f := range fields {
			if strings.TrimSpace(f.value) == "" {
				problems = append(problems, Problem{
					Path:    fmt.Sprintf("hints[%d].%s", i, f.name),
					Message: fmt.Sprintf("hint[%d].%s must be non-empty.", i, f.name),
				})
			}
		}
	}

	if strings.EqualFold(strings.TrimSpace(target), TargetStunt) {
		if len(hints) != 3 {
			problems = append(problems, Problem{
				Path:    "hints",
				Message: "stunt target must yield exactly 3 hints.",
			})
		}
		seen := make(map[string]bool, len(hints))
		for _, h := range hints {
			seen[strings.ToLower(strings.TrimSpace(h.Type))] = true
		}
		if !seen["trigger"] || !seen["edge_case"] || !seen["synergy"] {
			problems = append(problems, Problem{
				Path:    "hints",
				Message: "stunt target must include trigger, edge_case, and synergy hints.",
			})
		}
	} else {
		if len(hints) != 2 && len(hints) != 3 {
			problems = append(problems, Problem{
				Path:    "hints",
				Message: "aspect target must yield 2 or 3 hints.",
			})
		}
	}

	return problems
}
