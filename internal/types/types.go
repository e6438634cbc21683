package types

// LineStatus classifies a single line-level change from a unified diff.
type LineStatus string

const (
	LineStatusAdded   LineStatus = "added"
	LineStatusDeleted LineStatus = "deleted"
)

// LineChange is one added or deleted line extracted from a unified diff.
// LineNumber is 1-based: the old-file line for deletions, the new-file line
// for additions. HunkID increases monotonically per hunk so that pairing of
// deletions and additions stays local to one contiguous change region.
type LineChange struct {
	LineNumber int
	Status     LineStatus
	Content    string
	HunkID     int
}

// Reserved row indices used by RowDiff.Row. Data rows are zero-based.
const (
	HeaderRowIndex    = -2
	SeparatorRowIndex = -1
)

// RowStatus classifies a table row against the previous revision.
type RowStatus string

const (
	RowStatusUnchanged RowStatus = "unchanged"
	RowStatusAdded     RowStatus = "added"
	RowStatusDeleted   RowStatus = "deleted"
)

// RowDiff describes one row-level change in the current table. A modified row
// is represented as a deleted entry immediately followed by an added entry
// with the same Row; there is no separate "modified" status.
type RowDiff struct {
	Row        int
	Status     RowStatus
	OldContent string
	NewContent string
	// IsDeletedRow marks a synthetic row that exists only to display removed
	// content; it does not correspond to any live data row.
	IsDeletedRow bool
}

// ColumnChangeType is the overall classification of a column-level diff.
type ColumnChangeType string

const (
	ColumnChangeNone    ColumnChangeType = "none"
	ColumnChangeAdded   ColumnChangeType = "added"
	ColumnChangeRemoved ColumnChangeType = "removed"
	ColumnChangeRenamed ColumnChangeType = "renamed"
	ColumnChangeMixed   ColumnChangeType = "mixed"
)

// ColumnPositionType classifies a single column event.
type ColumnPositionType string

const (
	ColumnPositionAdded     ColumnPositionType = "added"
	ColumnPositionRemoved   ColumnPositionType = "removed"
	ColumnPositionRenamed   ColumnPositionType = "renamed"
	ColumnPositionUnchanged ColumnPositionType = "unchanged"
)

// ColumnPosition is one column event for UI decoration. Index is a new-table
// column index except for removed columns, where it is the old-table index.
type ColumnPosition struct {
	Index      int
	Header     string
	Type       ColumnPositionType
	Confidence float64
}

// ColumnDiffResult is the full output of column-level change detection.
// Mapping has one entry per old column: the new column index it survives at,
// or -1 if the column was deleted. Heuristics records which detection
// strategies fired, in order, for diagnostics and tests.
type ColumnDiffResult struct {
	OldColumnCount int
	NewColumnCount int
	ChangeType     ColumnChangeType
	AddedColumns   []int
	DeletedColumns []int
	Mapping        []int
	Positions      []ColumnPosition
	Heuristics     []string
}

// TableData is the strongly-typed boundary record produced by the markdown
// table parser: ordered headers, ordered data rows, and the table's 0-based
// line range in the source document. StartLine is the header line; the
// separator line is StartLine+1 and data row 0 is StartLine+2.
type TableData struct {
	Headers   []string
	Rows      [][]string
	StartLine int
	EndLine   int
}
