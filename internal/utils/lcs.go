package utils

// IndexPair is one matched element of a longest common subsequence: seq1[I1]
// equals seq2[I2], and both indices strictly increase along the result.
type IndexPair struct {
	I1 int
	I2 int
}

// ComputeLCS returns the longest common subsequence of two token sequences as
// an ordered list of index pairs, using classic O(n*m) dynamic programming
// over exact equality.
//
// Tie-break: backtracking prefers the diagonal on token equality and otherwise
// steps through seq1 when both directions score equally, so when several
// maximal subsequences exist, matches bind as late as possible in seq1. With
// duplicate tokens this decides which occurrence is reported as "the same"
// element; callers relying on the choice should pin it with tests.
func ComputeLCS(seq1, seq2 []string) []IndexPair {
	n, m := len(seq1), len(seq2)
	if n == 0 || m == 0 {
		return nil
	}

	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if seq1[i-1] == seq2[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] >= dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}

	var pairs []IndexPair
	for i, j := n, m; i > 0 && j > 0; {
		switch {
		case seq1[i-1] == seq2[j-1]:
			pairs = append(pairs, IndexPair{I1: i - 1, I2: j - 1})
			i--
			j--
		case dp[i-1][j] >= dp[i][j-1]:
			i--
		default:
			j--
		}
	}

	// Backtracking walks from the end; restore increasing order.
	for l, r := 0, len(pairs)-1; l < r; l, r = l+1, r-1 {
		pairs[l], pairs[r] = pairs[r], pairs[l]
	}
	return pairs
}
