package gate

import (
	"fmt"
	"strings"
)

const maxAspectTextLen = 120

// SkeletonCandidate is a model-proposed character skeleton.
type SkeletonCandidate struct {
	HighConcept  string
	Trouble      string
	RankedSkills []string
}

// CheckSkeleton validates a skeleton candidate against the allowed
// skill list. An empty result means the candidate passed.
func CheckSkeleton(allowedSkills []string, c SkeletonCandidate) []Problem {
	var problems []Problem

	problems = append(problems, checkAspectText("highConcept", c.HighConcept, "High Concept:")...)
	problems = append(problems, checkAspectText("trouble", c.Trouble, "Trouble:")...)

	hc := strings.TrimSpace(c.HighConcept)
	tr := strings.TrimSpace(c.Trouble)
	if hc != "" && tr != "" && strings.EqualFold(hc, tr) {
		problems = append(problems, Problem{
			Path:    "trouble",
			Message: "highConcept and trouble must be distinct.",
		})
	}

	problems = append(problems, checkRankedSkills(allowedSkills, c.RankedSkills)...)
	return problems
}

func checkAspectText(path, value, label string) []Problem {
	var problems []Problem
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return []Problem{{Path: path, Message: fmt.Sprintf("%s must be a non-empty string.", path)}}
	}
	if runeLen(value) > maxAspectTextLen {
		problems = append(problems, Problem{
			Path:    path,
			Message: fmt.Sprintf("%s should be concise (<=%d chars).", path, maxAspectTextLen),
		})
	}
	if !isSingleSentence(value) {
		problems = append(problems, Problem{
			Path:    path,
			Message: fmt.Sprintf("%s must be a single sentence.", path),
		})
	}
	if hasMechanicalTokens(value) {
		problems = append(problems, Problem{
			Path:    path,
			Message: fmt.Sprintf("%s should not contain mechanical tokens like +2 or dice.", path),
		})
	}
	lowered := strings.ToLower(trimmed)
	if strings.HasPrefix(lowered, "high concept:") || strings.HasPrefix(lowered, "trouble:") {
		problems = append(problems, Problem{
			Path:    path,
			Message: fmt.Sprintf("%s should not include leading labels (e.g., %q).", path, label),
		})
	}
	return problems
}

func checkRankedSkills(allowedSkills, ranked []string) []Problem {
	if len(ranked) == 0 {
		return []Problem{{Path: "rankedSkills", Message: "rankedSkills must be a non-empty list."}}
	}

	var problems []Problem
	if len(ranked) != len(allowedSkills) {
		problems = append(problems, Problem{
			Path:    "rankedSkills",
			Message: "rankedSkills must include all and only the allowed skills.",
		})
	}

	allowed := make(map[string]bool, len(allowedSkills))
	for _, s := range allowedSkills {
		allowed[strings.TrimSpace(s)] = true
	}

	seen := make(map[string]bool, len(ranked))
	for i, s := range ranked {
		path := fmt.Sprintf("rankedSkills[%d]", i)
		if strings.TrimSpace(s) == "" {
			problems = append(problems, Problem{
				Path:    path,
				Message: "Each ranked skill must be a non-empty string.",
			})
			continue
		}
		if seen[s] {
			problems = append(problems, Problem{
				Path:    path,
				Message: "rankedSkills must not contain duplicates.",
			})
		}
		seen[s] = true
		if !onlySimpleChars(s) {
			problems = append(problems, Problem{
				Path:    path,
				Message: fmt.Sprintf("Skill %q contains invalid characters.", s),
			})
		}
		if !allowed[strings.TrimSpace(s)] {
			problems = append(problems, Problem{
				Path:    path,
				Message: fmt.Sprintf("Skill %q not in allowed list.", s),
			})
		}
	}
	return problems
}
