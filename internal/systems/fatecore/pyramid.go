package fatecore

import "sort"

// RankedSkill is a skill placed on the ladder.
type RankedSkill struct {
	ID   string
	Name string
	Rank int
}

// BalancePyramid reshapes skill ranks into a valid pyramid: every rank
// must hold no more skills than the rank below it.
//
// Protected skills keep their position and are only clamped onto the
// ladder. The remaining skills are placed highest rank first and demoted
// until the pyramid invariant holds, then a repair pass demotes
// unprotected skills out of overfull ranks. Protected entries come first
// in the result, in their input order.
func BalancePyramid(skills []RankedSkill, protected map[string]bool, ladder Ladder) []RankedSkill {
	ranks := ladder.Ranks()
	bottom := ladder.Bottom()

	nextLower := make(map[int]int, len(ranks))
	rankIndex := make(map[int]int, len(ranks))
	for i, r := range ranks {
		rankIndex[r] = i
		if i+1 < len(ranks) {
			nextLower[r] = ranks[i+1]
		} else {
			nextLower[r] = bottom
		}
	}

	count := make(map[int]int, len(ranks))

	var locked, others []RankedSkill
	for _, s := range skills {
		if protected[s.ID] {
			locked = append(locked, s)
		} else {
			others = append(others, s)
		}
	}

	placed := make([]RankedSkill, 0, len(skills))

	for _, s := range locked {
		s.Rank = ladder.Clamp(s.Rank)
		placed = append(placed, s)
		count[s.Rank]++
	}

	sort.SliceStable(others, func(i, j int) bool {
		return others[i].Rank > others[j].Rank
	})
	for _, s := range others {
		r := ladder.Clamp(s.Rank)
		for rankIndex[r] < len(ranks)-1 {
			lower := nextLower[r]
			if count[r]+1 <= count[lower] {
				break
			}
			r = lower
		}
		s.Rank = r
		placed = append(placed, s)
		count[r]++
	}

	// Repair pass: resolve ranks still holding more skills than the rank
	// below, preferring to demote unprotected skills from the overfull
	// rank, otherwise promoting an unprotected skill from elsewhere into
	// the rank below.
	for i := 0; i+1 < len(ranks); i++ {
		high := ranks[i]
		low := ranks[i+1]
		for count[high] > count[low] {
			idx := findUnprotectedAtRank(placed, protected, high)
			if idx == -1 {
				filler := findUnprotectedOutside(placed, protected, high, low)
				if filler == -1 {
					break
				}
				count[placed[filler].Rank]--
				placed[filler].Rank = low
				count[low]++
				continue
			}
			placed[idx].Rank = low
			count[high]--
			count[low]++
		}
	}

	return placed
}

func findUnprotectedAtRank(placed []RankedSkill, protected map[string]bool, rank int) int {
	for i, s := range placed {
		if s.Rank == rank && !protected[s.ID] {
			return i
		}
	}
	return -1
}

func findUnprotectedOutside(placed []RankedSkill, protected map[string]bool, high, low int) int {
	for i, s := range placed {
		if s.Rank != high && s.Rank != low && !protected[s.ID] {
			return i
		}
	}
	return -1
}
