package diff

import (
	"sort"

	"github.com/tyngw/mdtable-diff/internal/types"
	"github.com/tyngw/mdtable-diff/internal/utils"
)

// Detection thresholds pinned by the test suite. The similarity threshold is
// the minimum normalized edit-distance score at which two unmatched headers
// are accepted as a rename; the sampling threshold is the minimum fraction of
// agreeing cell values at which two columns with unrelated headers are still
// treated as the same column.
const (
	DefaultSimilarityThreshold = 0.6
	DefaultSamplingThreshold   = 0.5
)

// Heuristic tags recorded in ColumnDiffResult.Heuristics, in the order the
// corresponding strategy fired.
const (
	HeuristicExactMatch         = "exact_match"
	HeuristicLCSMatch           = "lcs_match"
	HeuristicFuzzyMatch         = "fuzzy_match"
	HeuristicSamplingCorrection = "sampling_correction"
	HeuristicCountFallback      = "count_fallback"
)

// ColumnDetector infers column-level structural changes between two versions
// of a table. Header text alone is ambiguous — a rename looks like an
// add+delete and insertions are not always at the edge — so detection runs an
// ordered chain of fallback strategies (exact, LCS, fuzzy, sampling), each of
// which only touches columns the earlier layers left unmatched.
type ColumnDetector struct {
	SimilarityThreshold float64
	SamplingThreshold   float64
}

// NewColumnDetector returns a detector with the default thresholds.
func NewColumnDetector() *ColumnDetector {
	return &ColumnDetector{
		SimilarityThreshold: DefaultSimilarityThreshold,
		SamplingThreshold:   DefaultSamplingThreshold,
	}
}

// Detect classifies the column changes between oldHeaders and newHeaders.
// oldRows and newRows are optional data-row samples; when both are present
// they feed the sampling-correction layer. Empty header lists are valid
// (all-added or all-removed) and never an error.
func (d *ColumnDetector) Detect(oldHeaders, newHeaders []string, oldRows, newRows [][]string) types.ColumnDiffResult {
	st := newDetectState(oldHeaders, newHeaders, oldRows, newRows)

	for _, strat := range []columnStrategy{
		d.exactMatchStrategy,
		d.lcsMatchStrategy,
		d.fuzzyMatchStrategy,
		d.samplingStrategy,
	} {
		strat(st)
		if st.settled() {
			break
		}
	}

	return st.finalize()
}

// DetectFromCounts handles the headerless fallback: only old and new column
// counts are known (typically from a deleted row's cell count against the
// current row width), so with no identity information the structural change is
// assumed to sit at the end of the row — append or truncate.
func (d *ColumnDetector) DetectFromCounts(oldCount, newCount int) types.ColumnDiffResult {
	if oldCount < 0 {
		oldCount = 0
	}
	if newCount < 0 {
		newCount = 0
	}

	result := types.ColumnDiffResult{
		OldColumnCount: oldCount,
		NewColumnCount: newCount,
		ChangeType:     types.ColumnChangeNone,
		Mapping:        make([]int, oldCount),
		Heuristics:     []string{HeuristicCountFallback},
	}

	// Guessed identity carries reduced confidence throughout.
	const guessConfidence = 0.5

	shared := min(oldCount, newCount)
	for i := 0; i < shared; i++ {
		result.Mapping[i] = i
		result.Positions = append(result.Positions, types.ColumnPosition{
			Index:      i,
			Type:       types.ColumnPositionUnchanged,
			Confidence: guessConfidence,
		})
	}
	for i := shared; i < newCount; i++ {
		result.AddedColumns = append(result.AddedColumns, i)
		result.Positions = append(result.Positions, types.ColumnPosition{
			Index:      i,
			Type:       types.ColumnPositionAdded,
			Confidence: guessConfidence,
		})
	}
	for i := shared; i < oldCount; i++ {
		result.Mapping[i] = -1
		result.DeletedColumns = append(result.DeletedColumns, i)
		result.Positions = append(result.Positions, types.ColumnPosition{
			Index:      i,
			Type:       types.ColumnPositionRemoved,
			Confidence: guessConfidence,
		})
	}

	switch {
	case newCount > oldCount:
		result.ChangeType = types.ColumnChangeAdded
	case oldCount > newCount:
		result.ChangeType = types.ColumnChangeRemoved
	}

	return result
}

// columnStrategy mutates the detection state; a strategy that has no opinion
// leaves the state untouched.
type columnStrategy func(*detectState)

type detectState struct {
	oldHeaders []string
	newHeaders []string
	oldNorm    []string
	newNorm    []string
	oldRows    [][]string
	newRows    [][]string

	match      map[int]int                         // old index -> accepted new index
	matchType  map[int]types.ColumnPositionType    // by old index: unchanged or renamed
	confidence map[int]float64                     // by old index
	heuristics []string
}

func newDetectState(oldHeaders, newHeaders []string, oldRows, newRows [][]string) *detectState {
	st := &detectState{
		oldHeaders: oldHeaders,
		newHeaders: newHeaders,
		oldNorm:    make([]string, len(oldHeaders)),
		newNorm:    make([]string, len(newHeaders)),
		oldRows:    oldRows,
		newRows:    newRows,
		match:      make(map[int]int),
		matchType:  make(map[int]types.ColumnPositionType),
		confidence: make(map[int]float64),
	}
	for i, h := range oldHeaders {
		st.oldNorm[i] = utils.NormalizeHeader(h)
	}
	for i, h := range newHeaders {
		st.newNorm[i] = utils.NormalizeHeader(h)
	}
	return st
}

// settled reports whether every old and new column has an accepted pair, i.e.
// the layers so far fully account for the difference.
func (st *detectState) settled() bool {
	return len(st.match) == len(st.oldHeaders) && len(st.match) == len(st.newHeaders)
}

func (st *detectState) accept(oldIdx, newIdx int, typ types.ColumnPositionType, conf float64) {
	st.match[oldIdx] = newIdx
	st.matchType[oldIdx] = typ
	st.confidence[oldIdx] = conf
}

func (st *detectState) tag(heuristic string) {
	st.heuristics = append(st.heuristics, heuristic)
}

func (st *detectState) unmatchedOld() []int {
	var out []int
	for i := range st.oldHeaders {
		if _, ok := st.match[i]; !ok {
			out = append(out, i)
		}
	}
	return out
}

func (st *detectState) unmatchedNew() []int {
	used := make(map[int]bool, len(st.match))
	for _, j := range st.match {
		used[j] = true
	}
	var out []int
	for j := range st.newHeaders {
		if !used[j] {
			out = append(out, j)
		}
	}
	return out
}

// orderConsistent reports whether pairing (oldIdx, newIdx) preserves relative
// order against every already accepted pair. Accepted pairs never cross, so
// the final mapping stays monotonic.
func (st *detectState) orderConsistent(oldIdx, newIdx int) bool {
	for i, j := range st.match {
		if (oldIdx < i) != (newIdx < j) {
			return false
		}
	}
	return true
}

// finalize builds the ColumnDiffResult from the accepted pairs: the old->new
// mapping, the add/delete index sets, per-column position events (new-side
// order first, then removed old columns), and the overall change type.
func (st *detectState) finalize() types.ColumnDiffResult {
	result := types.ColumnDiffResult{
		OldColumnCount: len(st.oldHeaders),
		NewColumnCount: len(st.newHeaders),
		Mapping:        make([]int, len(st.oldHeaders)),
		Heuristics:     st.heuristics,
	}

	oldByNew := make(map[int]int, len(st.match))
	for i := range st.oldHeaders {
		if j, ok := st.match[i]; ok {
			result.Mapping[i] = j
			oldByNew[j] = i
		} else {
			result.Mapping[i] = -1
			result.DeletedColumns = append(result.DeletedColumns, i)
		}
	}
	sort.Ints(result.DeletedColumns)

	renamed := 0
	for j, header := range st.newHeaders {
		if i, ok := oldByNew[j]; ok {
			if st.matchType[i] == types.ColumnPositionRenamed {
				renamed++
			}
			result.Positions = append(result.Positions, types.ColumnPosition{
				Index:      j,
				Header:     header,
				Type:       st.matchType[i],
				Confidence: st.confidence[i],
			})
			continue
		}
		result.AddedColumns = append(result.AddedColumns, j)
		result.Positions = append(result.Positions, types.ColumnPosition{
			Index:      j,
			Header:     header,
			Type:       types.ColumnPositionAdded,
			Confidence: 1.0,
		})
	}
	for _, i := range result.DeletedColumns {
		result.Positions = append(result.Positions, types.ColumnPosition{
			Index:      i,
			Header:     st.oldHeaders[i],
			Type:       types.ColumnPositionRemoved,
			Confidence: 1.0,
		})
	}

	added, deleted := len(result.AddedColumns), len(result.DeletedColumns)
	switch {
	case added == 0 && deleted == 0 && renamed == 0:
		result.ChangeType = types.ColumnChangeNone
	case added > 0 && deleted == 0 && renamed == 0:
		result.ChangeType = types.ColumnChangeAdded
	case deleted > 0 && added == 0 && renamed == 0:
		result.ChangeType = types.ColumnChangeRemoved
	case renamed > 0 && added == 0 && deleted == 0:
		result.ChangeType = types.ColumnChangeRenamed
	default:
		result.ChangeType = types.ColumnChangeMixed
	}

	return result
}
