package diff

import (
	"sort"
	"strings"

	"github.com/tyngw/mdtable-diff/internal/types"
	"github.com/tyngw/mdtable-diff/internal/utils"
)

// exactMatchStrategy settles the whole diff when the normalized header
// sequences are element-wise identical: identity mapping, no changes. Headers
// differing only by case or whitespace must land here and report no change.
func (d *ColumnDetector) exactMatchStrategy(st *detectState) {
	if len(st.oldNorm) != len(st.newNorm) {
		return
	}
	for i := range st.oldNorm {
		if st.oldNorm[i] != st.newNorm[i] {
			return
		}
	}

	for i := range st.oldNorm {
		st.accept(i, i, types.ColumnPositionUnchanged, 1.0)
	}
	st.tag(HeuristicExactMatch)
}

// lcsMatchStrategy anchors columns via the longest common subsequence of the
// normalized headers. Matched columns are unchanged; whatever falls between
// the anchors is left for the later layers to classify as renamed, added or
// deleted based on where it sits relative to its matched neighbors.
func (d *ColumnDetector) lcsMatchStrategy(st *detectState) {
	pairs := utils.ComputeLCS(st.oldNorm, st.newNorm)
	if len(pairs) == 0 {
		return
	}

	for _, p := range pairs {
		st.accept(p.I1, p.I2, types.ColumnPositionUnchanged, 1.0)
	}
	st.tag(HeuristicLCSMatch)
}

type fuzzyCandidate struct {
	oldIdx int
	newIdx int
	score  float64
}

// fuzzyMatchStrategy pairs leftover old and new columns whose raw headers are
// similar enough to be the same column under a different name. The highest
// scoring pair at or above the similarity threshold wins each round; accepted
// pairs are renames, not an independent add+delete. Pairs that would cross an
// already accepted match are rejected to keep the mapping monotonic.
func (d *ColumnDetector) fuzzyMatchStrategy(st *detectState) {
	unmatchedOld := st.unmatchedOld()
	unmatchedNew := st.unmatchedNew()
	if len(unmatchedOld) == 0 || len(unmatchedNew) == 0 {
		return
	}

	var candidates []fuzzyCandidate
	for _, i := range unmatchedOld {
		for _, j := range unmatchedNew {
			score := utils.CalculateSimilarity(st.oldHeaders[i], st.newHeaders[j])
			if score >= d.SimilarityThreshold {
				candidates = append(candidates, fuzzyCandidate{oldIdx: i, newIdx: j, score: score})
			}
		}
	}

	if accepted := acceptCandidates(st, candidates, types.ColumnPositionRenamed); accepted > 0 {
		st.tag(HeuristicFuzzyMatch)
	}
}

// samplingStrategy is the last resort for columns still unmatched: when data
// rows are available for both versions, compare cell values at the same row
// index across candidate pairs. A high proportion of matching values means
// the columns are the same despite an unrelated header change. It runs only
// on the leftovers, so it can break ties among low-confidence candidates but
// never override an exact, LCS or fuzzy match.
func (d *ColumnDetector) samplingStrategy(st *detectState) {
	if len(st.oldRows) == 0 || len(st.newRows) == 0 {
		return
	}
	unmatchedOld := st.unmatchedOld()
	unmatchedNew := st.unmatchedNew()
	if len(unmatchedOld) == 0 || len(unmatchedNew) == 0 {
		return
	}

	var candidates []fuzzyCandidate
	for _, i := range unmatchedOld {
		for _, j := range unmatchedNew {
			if agreement, ok := d.cellAgreement(st, i, j); ok {
				candidates = append(candidates, fuzzyCandidate{oldIdx: i, newIdx: j, score: agreement})
			}
		}
	}

	if accepted := acceptCandidates(st, candidates, types.ColumnPositionRenamed); accepted > 0 {
		st.tag(HeuristicSamplingCorrection)
	}
}

// cellAgreement measures how often the old column i and new column j hold the
// same trimmed value at the same row index. ok is false when no row offers
// both cells, when agreement falls below the sampling threshold, or when the
// agreeing cells are all empty (empty-cell agreement proves nothing).
func (d *ColumnDetector) cellAgreement(st *detectState, oldIdx, newIdx int) (float64, bool) {
	rows := min(len(st.oldRows), len(st.newRows))

	compared, agree, nonEmptyAgree := 0, 0, 0
	for r := 0; r < rows; r++ {
		if oldIdx >= len(st.oldRows[r]) || newIdx >= len(st.newRows[r]) {
			continue
		}
		compared++
		oldCell := strings.TrimSpace(st.oldRows[r][oldIdx])
		newCell := strings.TrimSpace(st.newRows[r][newIdx])
		if oldCell == newCell {
			agree++
			if oldCell != "" {
				nonEmptyAgree++
			}
		}
	}

	if compared == 0 || nonEmptyAgree == 0 {
		return 0, false
	}
	agreement := float64(agree) / float64(compared)
	if agreement < d.SamplingThreshold {
		return 0, false
	}
	return agreement, true
}

// acceptCandidates greedily accepts the best-scoring candidate pairs, highest
// score first (ties to the lowest old then new index), skipping pairs whose
// side is already taken or that would cross an accepted match.
func acceptCandidates(st *detectState, candidates []fuzzyCandidate, typ types.ColumnPositionType) int {
	sort.Slice(candidates, func(a, b int) bool {
		ca, cb := candidates[a], candidates[b]
		if ca.score != cb.score {
			return ca.score > cb.score
		}
		if ca.oldIdx != cb.oldIdx {
			return ca.oldIdx < cb.oldIdx
		}
		return ca.newIdx < cb.newIdx
	})

	usedNew := make(map[int]bool)
	for _, j := range st.match {
		usedNew[j] = true
	}

	accepted := 0
	for _, c := range candidates {
		if _, taken := st.match[c.oldIdx]; taken {
			continue
		}
		if usedNew[c.newIdx] {
			continue
		}
		if !st.orderConsistent(c.oldIdx, c.newIdx) {
			continue
		}
		st.accept(c.oldIdx, c.newIdx, typ, c.score)
		usedNew[c.newIdx] = true
		accepted++
	}
	return accepted
}
