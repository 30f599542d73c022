// Package gate holds the hard structural checks applied to generated
// content before it reaches a character sheet. Gates are pure
// predicates: they collect every violation instead of stopping at the
// first, so the full list can feed a retry prompt or an error response.
package gate

import (
	"strings"
	"unicode/utf8"
)

// Problem is a single gate violation tied to a field path.
type Problem struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Passed reports whether a check produced no violations.
func Passed(problems []Problem) bool {
	return len(problems) == 0
}

// Messages flattens problems into their message strings, for retry
// feedback prompts.
func Messages(problems []Problem) []string {
	out := make([]string, len(problems))
	for i, p := range problems {
		out[i] = p.Message
	}
	return out
}

// mechanicalTokens are dice and modifier fragments that must not appear
// in aspect text.
var mechanicalTokens = []string{
	"+2", "+1", "-1", "-2", "++", "--", "+", "-",
	"d4", "d6", "d8", "d10", "d12", "d20", "d100",
}

func hasMechanicalTokens(text string) bool {
	lowered := strings.ToLower(text)
	for _, tok := range mechanicalTokens {
		if strings.Contains(lowered, tok) {
			return true
		}
	}
	return false
}

// isSingleSentence accepts text without line breaks and with at most one
// of each sentence-ending punctuation mark.
func isSingleSentence(text string) bool {
	if strings.ContainsAny(text, "\n\r") {
		return false
	}
	stripped := strings.TrimSpace(text)
	if stripped == "" {
		return false
	}
	if strings.Count(stripped, ".") > 1 || strings.Count(stripped, "?") > 1 || strings.Count(stripped, "!") > 1 {
		return false
	}
	return true
}

// onlySimpleChars accepts letters, spaces, apostrophes, and hyphens.
func onlySimpleChars(text string) bool {
	for _, ch := range text {
		switch {
		case ch >= 'a' && ch <= 'z':
		case ch >= 'A' && ch <= 'Z':
		case ch == ' ' || ch == '\'' || ch == '-':
		default:
			return false
		}
	}
	return true
}

func runeLen(text string) int {
	return utf8.RuneCountInString(strings.TrimSpace(text))
}
