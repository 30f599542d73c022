package fatecore

// FootruleSimilarity computes the normalized Spearman footrule
// similarity between two rankings, in [0, 1]. 1.0 means identical
// order; 0.0 means maximally distant, mismatched items, or mismatched
// lengths.
func FootruleSimilarity(reference, candidate []string) float64 {
	if len(reference) == 0 || len(reference) != len(candidate) {
		return 0
	}

	n := len(reference)
	refPos := make(map[string]int, n)
	for i, item := range reference {
		refPos[item] = i
	}
	candPos := make(map[string]int, n)
	for i, item := range candidate {
		candPos[item] = i
	}
	if len(refPos) != len(candPos) {
		return 0
	}

	footrule := 0
	for item, ri := range refPos {
		ci, ok := candPos[item]
		if !ok {
			return 0
		}
		if ri > ci {
			footrule += ri - ci
		} else {
			footrule += ci - ri
		}
	}

	// Max footrule distance over permutations of 0..n-1.
	maxDist := (n * n) / 2
	if n%2 == 1 {
		maxDist = (n*n - 1) / 2
	}
	if maxDist == 0 {
		return 1
	}

	similarity := 1 - float64(footrule)/float64(maxDist)
	if similarity < 0 {
		return 0
	}
	return similarity
}
