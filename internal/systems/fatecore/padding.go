package fatecore

import "strings"

// PadPyramid fills a pyramid up to the ladder's per-rank minimum quota
// by drawing fresh skills from the bank, then re-balances the result.
//
// The bottom rank's quota is whatever room the cap leaves after the
// fixed quotas above it. Bank names already present in the pyramid are
// skipped, compared case-insensitively. New entries carry no ID; callers
// assign identifiers afterwards. When the bank runs dry, padding stops
// short of the quota.
func PadPyramid(items []RankedSkill, protected map[string]bool, ladder Ladder, bank []string, totalMax int) []RankedSkill {
	ranks := ladder.Ranks()
	quota := ladder.MinimumQuota()

	requiredSum := 0
	for _, n := range quota {
		requiredSum += n
	}
	bottomQuota := totalMax - requiredSum
	if bottomQuota < 0 {
		bottomQuota = 0
	}
	quota[ladder.Bottom()] = bottomQuota

	usedNames := make(map[string]bool, len(items))
	counts := make(map[int]int, len(ranks))
	for _, r := range ranks {
		counts[r] = 0
	}
	for _, it := range items {
		usedNames[strings.ToLower(strings.TrimSpace(it.Name))] = true
		if _, ok := counts[it.Rank]; ok {
			counts[it.Rank]++
		}
	}

	bankIdx := 0
	nextBankName := func() (string, bool) {
		for bankIdx < len(bank) {
			name := bank[bankIdx]
			bankIdx++
			key := strings.ToLower(strings.TrimSpace(name))
			if key != "" && !usedNames[key] {
				usedNames[key] = true
				return name, true
			}
		}
		return "", false
	}

	padded := make([]RankedSkill, len(items))
	copy(padded, items)
	for _, r := range ranks {
		need := quota[r] - counts[r]
		for n := 0; n < need; n++ {
			name, ok := nextBankName()
			if !ok {
				break
			}
			padded = append(padded, RankedSkill{Name: name, Rank: r})
			counts[r]++
		}
	}

	return BalancePyramid(padded, protected, ladder)
}
