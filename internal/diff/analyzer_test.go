package diff

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyngw/mdtable-diff/internal/types"
)

type stubSource struct {
	diff  string
	err   error
	calls int
}

func (s *stubSource) UnifiedDiff(filePath, revRange string) (string, error) {
	s.calls++
	return s.diff, s.err
}

func sampleTable() types.TableData {
	return types.TableData{
		Headers:   []string{"Name", "Age"},
		Rows:      [][]string{{"alice", "30"}, {"bob", "25"}},
		StartLine: 0,
		EndLine:   3,
	}
}

func TestAnalyzerRowDiffs(t *testing.T) {
	source := &stubSource{diff: `@@ -3 +3 @@
-| bob | 25 |
+| bob | 26 |
`}
	a := NewAnalyzer(source, NewCache(time.Minute, nil), nil)

	got := a.RowDiffs("doc.md", "", sampleTable())

	expect := []types.RowDiff{
		{Row: 0, Status: types.RowStatusDeleted, OldContent: "| bob | 25 |"},
		{Row: 0, Status: types.RowStatusAdded, NewContent: "| bob | 26 |"},
	}
	assert.Equal(t, expect, got)
}

func TestAnalyzerEmptyAndFailedSource(t *testing.T) {
	table := sampleTable()

	empty := NewAnalyzer(&stubSource{diff: ""}, nil, nil)
	assert.Empty(t, empty.RowDiffs("doc.md", "", table))
	assert.Equal(t, types.ColumnChangeNone, empty.ColumnDiffs("doc.md", "", table).ChangeType)

	failing := NewAnalyzer(&stubSource{err: errors.New("not a repository")}, nil, nil)
	assert.Empty(t, failing.RowDiffs("doc.md", "", table))
	assert.Equal(t, types.ColumnChangeNone, failing.ColumnDiffs("doc.md", "", table).ChangeType)

	nilSource := NewAnalyzer(nil, nil, nil)
	assert.Empty(t, nilSource.RowDiffs("doc.md", "", table))
}

func TestAnalyzerCachesWithinTTL(t *testing.T) {
	source := &stubSource{diff: "@@ -3 +3 @@\n-| bob | 25 |\n+| bob | 26 |\n"}
	clock := &fakeClock{t: time.Unix(0, 0)}
	a := NewAnalyzer(source, NewCache(5*time.Second, clock.now), nil)
	table := sampleTable()

	a.RowDiffs("doc.md", "", table)
	a.RowDiffs("doc.md", "", table)
	assert.Equal(t, 1, source.calls, "burst of requests should hit the source once")

	clock.advance(6 * time.Second)
	a.RowDiffs("doc.md", "", table)
	assert.Equal(t, 2, source.calls, "expired entry should refetch")
}

func TestAnalyzerFileChangedInvalidates(t *testing.T) {
	source := &stubSource{diff: ""}
	a := NewAnalyzer(source, NewCache(time.Minute, nil), nil)
	table := sampleTable()

	a.RowDiffs("doc.md", "", table)
	a.FileChanged("doc.md")
	a.RowDiffs("doc.md", "", table)

	assert.Equal(t, 2, source.calls)
}

func TestAnalyzerColumnDiffsFromHeaderChange(t *testing.T) {
	// The deleted header line supplies the old header list.
	source := &stubSource{diff: `@@ -1 +1 @@
-| Name | Age |
+| Name | Age | City |
`}
	a := NewAnalyzer(source, nil, nil)
	table := types.TableData{
		Headers:   []string{"Name", "Age", "City"},
		Rows:      [][]string{{"alice", "30", "oslo"}},
		StartLine: 0,
		EndLine:   3,
	}

	got := a.ColumnDiffs("doc.md", "", table)

	assert.Equal(t, types.ColumnChangeAdded, got.ChangeType)
	assert.Equal(t, []int{2}, got.AddedColumns)
	assert.Equal(t, []int{0, 1}, got.Mapping)
}

func TestAnalyzerColumnDiffsUnchangedHeader(t *testing.T) {
	// Data-only changes leave the header untouched: columns report NONE.
	source := &stubSource{diff: `@@ -3 +3 @@
-| bob | 25 |
+| bob | 26 |
`}
	a := NewAnalyzer(source, nil, nil)

	got := a.ColumnDiffs("doc.md", "", sampleTable())
	assert.Equal(t, types.ColumnChangeNone, got.ChangeType)
}

func TestAnalyzerColumnDiffsHeaderlessFallsBackToCounts(t *testing.T) {
	rowDiffs := []types.RowDiff{
		{Row: 0, Status: types.RowStatusDeleted, OldContent: "| a | b |"},
		{Row: 0, Status: types.RowStatusAdded, NewContent: "| a | b | c |"},
	}
	table := types.TableData{
		Rows:      [][]string{{"a", "b", "c"}},
		StartLine: 0,
		EndLine:   2,
	}

	a := NewAnalyzer(nil, nil, nil)
	got := a.ColumnDiffsFromRows(rowDiffs, table)

	require.Equal(t, []string{HeuristicCountFallback}, got.Heuristics)
	assert.Equal(t, types.ColumnChangeAdded, got.ChangeType)
	assert.Equal(t, []int{2}, got.AddedColumns)
	assert.Equal(t, []int{0, 1}, got.Mapping)
}

func TestAnalyzerColumnDiffsRenameViaSampling(t *testing.T) {
	source := &stubSource{diff: `@@ -1,3 +1,3 @@
-| Fruit | Qty |
+| Fruit | Stock |
 | --- | --- |
-| apple | 3 |
+| apple | 3 |
`}
	a := NewAnalyzer(source, nil, nil)
	table := types.TableData{
		Headers:   []string{"Fruit", "Stock"},
		Rows:      [][]string{{"apple", "3"}},
		StartLine: 0,
		EndLine:   2,
	}

	got := a.ColumnDiffs("doc.md", "", table)

	assert.Equal(t, types.ColumnChangeRenamed, got.ChangeType)
	assert.Contains(t, got.Heuristics, HeuristicSamplingCorrection)
}
