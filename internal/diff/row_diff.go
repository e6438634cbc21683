package diff

import (
	"github.com/tyngw/mdtable-diff/internal/types"
)

// rowOffset converts a 1-based source line number into a table row index:
// header -2, separator -1, data rows from 0. tableStartLine is the 0-based
// source line of the header row.
func rowOffset(lineNumber, tableStartLine int) int {
	return lineNumber - tableStartLine - 1 - 2
}

// MapRowDiffs turns line-level diff records into row-level diffs relative to
// the current table. Within each hunk, deletions and additions are paired up
// for min(deleted, added) entries; each pair is emitted as a deleted entry
// immediately followed by an added entry at the row index derived from the
// added line, which is how a modified row is represented. Leftover additions
// become pure added rows; leftover deletions become synthetic deleted rows
// (IsDeletedRow) positioned by their old line numbers. Entries outside
// [-2, rowCount) are dropped and duplicates collapse to the first occurrence.
//
// Malformed or empty input yields an empty list, never an error: downstream
// rendering treats "no diff data" as "render unchanged".
func MapRowDiffs(changes []types.LineChange, tableStartLine, rowCount int) []types.RowDiff {
	if len(changes) == 0 {
		return nil
	}

	var diffs []types.RowDiff
	for _, h := range groupByHunk(changes) {
		diffs = append(diffs, mapHunk(h, tableStartLine)...)
	}

	diffs = filterRowRange(diffs, rowCount)
	return dedupeRowDiffs(diffs)
}

type hunkGroup struct {
	deleted []types.LineChange
	added   []types.LineChange
}

// groupByHunk buckets changes per hunk, preserving input order. HunkIDs are
// monotonically increasing, so groups come out in encounter order.
func groupByHunk(changes []types.LineChange) []hunkGroup {
	var groups []hunkGroup
	index := make(map[int]int)

	for _, c := range changes {
		gi, ok := index[c.HunkID]
		if !ok {
			gi = len(groups)
			index[c.HunkID] = gi
			groups = append(groups, hunkGroup{})
		}
		switch c.Status {
		case types.LineStatusDeleted:
			groups[gi].deleted = append(groups[gi].deleted, c)
		case types.LineStatusAdded:
			groups[gi].added = append(groups[gi].added, c)
		}
	}

	return groups
}

func mapHunk(h hunkGroup, tableStartLine int) []types.RowDiff {
	var diffs []types.RowDiff

	pairCount := min(len(h.deleted), len(h.added))

	// Paired delete/add at one row index renders as "this row changed".
	for i := 0; i < pairCount; i++ {
		row := rowOffset(h.added[i].LineNumber, tableStartLine)
		diffs = append(diffs,
			types.RowDiff{
				Row:        row,
				Status:     types.RowStatusDeleted,
				OldContent: h.deleted[i].Content,
			},
			types.RowDiff{
				Row:        row,
				Status:     types.RowStatusAdded,
				NewContent: h.added[i].Content,
			},
		)
	}

	// Remaining additions are new rows beyond the paired region.
	for _, c := range h.added[pairCount:] {
		diffs = append(diffs, types.RowDiff{
			Row:        rowOffset(c.LineNumber, tableStartLine),
			Status:     types.RowStatusAdded,
			NewContent: c.Content,
		})
	}

	// Remaining deletions have no counterpart in the current table; they are
	// ghost rows shown only for their removed content.
	for _, c := range h.deleted[pairCount:] {
		diffs = append(diffs, types.RowDiff{
			Row:          rowOffset(c.LineNumber, tableStartLine),
			Status:       types.RowStatusDeleted,
			OldContent:   c.Content,
			IsDeletedRow: true,
		})
	}

	return diffs
}

// filterRowRange drops entries outside [-2, rowCount): anything before the
// header or past the last real row is noise from context lines.
func filterRowRange(diffs []types.RowDiff, rowCount int) []types.RowDiff {
	var kept []types.RowDiff
	for _, d := range diffs {
		if d.Row < types.HeaderRowIndex || d.Row >= rowCount {
			continue
		}
		kept = append(kept, d)
	}
	return kept
}

type rowDiffKey struct {
	row        int
	status     types.RowStatus
	oldContent string
}

// dedupeRowDiffs collapses entries identical in (row, status) — and for
// deleted entries also in old content — keeping the first occurrence.
func dedupeRowDiffs(diffs []types.RowDiff) []types.RowDiff {
	seen := make(map[rowDiffKey]bool, len(diffs))
	var unique []types.RowDiff

	for _, d := range diffs {
		key := rowDiffKey{row: d.Row, status: d.Status}
		if d.Status == types.RowStatusDeleted {
			key.oldContent = d.OldContent
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, d)
	}

	return unique
}
