package diff

import (
	"github.com/tyngw/mdtable-diff/internal/types"
	"github.com/tyngw/mdtable-diff/internal/utils"
)

// DiffSource supplies unified-diff text for a file between two revisions.
// Implementations should produce zero-context (--unified=0) output. Returning
// an error or an empty string both mean "no diff available" to the analyzer.
type DiffSource interface {
	UnifiedDiff(filePath, revRange string) (string, error)
}

// Analyzer reconciles a parsed table against version-control history: it
// fetches the file's unified diff (through a short-lived cache), maps it to
// row-level changes, and derives column-level changes from the row diffs.
// Absence, timeout or failure of the diff source always resolves to empty
// results, never an error — rendering treats "no diff data" as unchanged.
type Analyzer struct {
	source   DiffSource
	cache    *Cache
	detector *ColumnDetector
}

// NewAnalyzer wires a diff source to the row and column detectors. A nil
// cache gets default TTL and wall-clock time; a nil detector gets default
// thresholds.
func NewAnalyzer(source DiffSource, cache *Cache, detector *ColumnDetector) *Analyzer {
	if cache == nil {
		cache = NewCache(0, nil)
	}
	if detector == nil {
		detector = NewColumnDetector()
	}
	return &Analyzer{source: source, cache: cache, detector: detector}
}

// RowDiffs returns the row-level changes for one table of filePath across
// revRange.
func (a *Analyzer) RowDiffs(filePath, revRange string, table types.TableData) []types.RowDiff {
	changes := a.lineChanges(filePath, revRange, table)
	return MapRowDiffs(changes, table.StartLine, len(table.Rows))
}

// ColumnDiffs returns the column-level changes for one table of filePath
// across revRange, informed by the row diffs.
func (a *Analyzer) ColumnDiffs(filePath, revRange string, table types.TableData) types.ColumnDiffResult {
	return a.ColumnDiffsFromRows(a.RowDiffs(filePath, revRange, table), table)
}

// ColumnDiffsFromRows performs row-diff-informed column detection: the old
// header list is reconstructed from the deleted header line when the diff
// contains one (otherwise the header is unchanged), and deleted data rows
// provide the old-side samples for the sampling layer. For headerless tables
// only cell counts are known, so detection falls back to the count-based
// end-of-row heuristic.
func (a *Analyzer) ColumnDiffsFromRows(rowDiffs []types.RowDiff, table types.TableData) types.ColumnDiffResult {
	oldHeaders := table.Headers
	var oldRows [][]string

	for _, d := range rowDiffs {
		if d.Status != types.RowStatusDeleted {
			continue
		}
		switch {
		case d.Row == types.HeaderRowIndex:
			oldHeaders = utils.SplitTableRow(d.OldContent)
		case d.Row >= 0:
			oldRows = append(oldRows, utils.SplitTableRow(d.OldContent))
		}
	}

	if len(table.Headers) == 0 && len(oldHeaders) == 0 {
		oldCount := maxRowWidth(oldRows)
		newCount := maxRowWidth(table.Rows)
		if oldCount == 0 {
			// No old-side evidence at all; assume the shape is unchanged.
			oldCount = newCount
		}
		return a.detector.DetectFromCounts(oldCount, newCount)
	}

	return a.detector.Detect(oldHeaders, table.Headers, oldRows, table.Rows)
}

// FileChanged drops every cached diff for filePath; called on file-change
// notification so the next request consults the diff source again.
func (a *Analyzer) FileChanged(filePath string) {
	a.cache.InvalidateFile(filePath)
}

// lineChanges fetches and parses the diff for one table, consulting the cache
// first. Misses are cached too, so a burst of UI refreshes against an
// unavailable source does not hammer it.
func (a *Analyzer) lineChanges(filePath, revRange string, table types.TableData) []types.LineChange {
	key := CacheKey(filePath, table.StartLine, table.EndLine)
	if changes, ok := a.cache.Get(key); ok {
		return changes
	}

	if a.source == nil {
		return nil
	}
	diffText, err := a.source.UnifiedDiff(filePath, revRange)
	if err != nil {
		a.cache.Put(key, nil)
		return nil
	}

	changes := utils.ParseUnifiedDiff(diffText)
	a.cache.Put(key, changes)
	return changes
}

func maxRowWidth(rows [][]string) int {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	return width
}
