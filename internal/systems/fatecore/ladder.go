// Package fatecore implements the deterministic rules of Fate Core
// character sheets: skill ladders, pyramid balancing, padding, and
// ranking similarity.
package fatecore

import (
	"strings"

	"github.com/louisbranch/fateforge/internal/platform/errors"
)

// Ladder identifies a supported skill ladder.
type Ladder string

// Supported ladders.
const (
	// Ladder14 ranks skills from Average (+1) to Great (+4).
	Ladder14 Ladder = "1-4"
	// Ladder15 ranks skills from Average (+1) to Superb (+5).
	Ladder15 Ladder = "1-5"
)

// DefaultPyramidCap is the maximum number of skills a padded pyramid holds.
const DefaultPyramidCap = 10

// ParseLadder resolves a ladder identifier. An empty value defaults to
// the 1-4 ladder. Unknown identifiers are rejected.
func ParseLadder(value string) (Ladder, error) {
	switch strings.TrimSpace(value) {
	case "", string(Ladder14):
		return Ladder14, nil
	case string(Ladder15):
		return Ladder15, nil
	default:
		return "", errors.WithMetadata(errors.CodeFatecoreInvalidLadder,
			"unknown skill ladder", map[string]string{"Ladder": value})
	}
}

// Ranks returns the ladder's ranks in descending order.
func (l Ladder) Ranks() []int {
	if l == Ladder15 {
		return []int{5, 4, 3, 2, 1}
	}
	return []int{4, 3, 2, 1}
}

// Top returns the highest rank on the ladder.
func (l Ladder) Top() int {
	return l.Ranks()[0]
}

// Bottom returns the lowest rank on the ladder.
func (l Ladder) Bottom() int {
	ranks := l.Ranks()
	return ranks[len(ranks)-1]
}

// Clamp coerces an out-of-range rank onto the ladder. Ranks above the
// top clamp to the top, everything else out of range clamps to the bottom.
func (l Ladder) Clamp(rank int) int {
	top := l.Top()
	bottom := l.Bottom()
	if rank >= bottom && rank <= top {
		return rank
	}
	if rank > top {
		return top
	}
	return bottom
}

// MinimumQuota returns the minimum count of skills per rank a finished
// pyramid must hold. The bottom rank carries no minimum here; padding
// computes it from the pyramid cap.
func (l Ladder) MinimumQuota() map[int]int {
	if l == Ladder15 {
		return map[int]int{5: 0, 4: 1, 3: 2, 2: 3}
	}
	return map[int]int{4: 1, 3: 2, 2: 3}
}
