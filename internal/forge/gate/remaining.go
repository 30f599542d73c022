package gate

import (
	"fmt"
	"strings"
)

// Mode selects which sheet section a remaining-details generation run
// targets.
type Mode string

// Supported generation modes.
const (
	ModeAspects     Mode = "aspects"
	ModeStunts      Mode = "stunts"
	ModeSingleStunt Mode = "single_stunt"
	ModeSkills      Mode = "skills"
	ModeHighConcept Mode = "high_concept"
	ModeTrouble     Mode = "trouble"
)

// Description limits for remaining suggestions. Stunts get extra room
// for mechanics language.
const (
	maxAspectDescLen = 140
	maxStuntDescLen  = 200
)

// RemainingCandidate is a model-proposed aspect or stunt suggestion.
type RemainingCandidate struct {
	AspectName        string
	AspectDescription string
	StuntName         string
	StuntDescription  string
}

// CheckRemaining validates a remaining-details candidate for the given
// mode. An empty result means the candidate passed.
func CheckRemaining(mode Mode, c RemainingCandidate) []Problem {
	var problems []Problem

	switch mode {
	case ModeAspects, ModeHighConcept, ModeTrouble:
		if strings.TrimSpace(c.AspectName) == "" {
			problems = append(problems, Problem{
				Path:    "aspect.name",
				Message: "aspect.name must be non-empty.",
			})
		}
		problems = append(problems, checkSentence("aspect.description", c.AspectDescription, maxAspectDescLen)...)
	case ModeStunts, ModeSingleStunt:
		if strings.TrimSpace(c.StuntName) == "" {
			problems = append(problems, Problem{
				Path:    "stunt.name",
				Message: "stunt.name must be non-empty.",
			})
		}
		problems = append(problems, checkSentence("stunt.description", c.StuntDescription, maxStuntDescLen)...)
	default:
		problems = append(problems, Problem{
			Path:    "mode",
			Message: "mode must be one of aspects|stunts|high_concept|trouble|single_stunt",
		})
	}

	return problems
}

func checkSentence(path, text string, maxLen int) []Problem {
	if strings.TrimSpace(text) == "" {
		return []Problem{{Path: path, Message: fmt.Sprintf("%s must be non-empty.", path)}}
	}
	var problems []Problem
	if runeLen(text) > maxLen {
		problems = append(problems, Problem{
			Path:    path,
			Message: fmt.Sprintf("%s should be concise (<= %d chars).", path, maxLen),
		})
	}
	if !isSingleSentence(text) {
		problems = append(problems, Problem{
			Path:    path,
			Message: fmt.Sprintf("%s must be a single sentence.", path),
		})
	}
	return problems
}
