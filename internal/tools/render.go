package tools

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/tyngw/mdtable-diff/internal/types"
	"github.com/tyngw/mdtable-diff/internal/utils"
)

// RenderRowDiffs writes the current table with diff markers: '+' for added
// rows, '-' for removed content (including ghost rows that only exist in the
// old revision), and ' ' for unchanged rows. Cells are padded by display
// width so CJK headers line up.
func RenderRowDiffs(w io.Writer, table types.TableData, diffs []types.RowDiff) {
	byRow := make(map[int][]types.RowDiff)
	for _, d := range diffs {
		byRow[d.Row] = append(byRow[d.Row], d)
	}

	widths := columnWidths(table, diffs)

	writeRow := func(marker string, cells []string) {
		fmt.Fprintf(w, "%s %s\n", marker, formatRow(cells, widths))
	}
	writeOldContent := func(entries []types.RowDiff) {
		for _, d := range entries {
			if d.Status == types.RowStatusDeleted {
				writeRow("-", utils.SplitTableRow(d.OldContent))
			}
		}
	}
	markerFor := func(entries []types.RowDiff) string {
		for _, d := range entries {
			if d.Status == types.RowStatusAdded {
				return "+"
			}
		}
		return " "
	}

	writeOldContent(byRow[types.HeaderRowIndex])
	writeRow(markerFor(byRow[types.HeaderRowIndex]), table.Headers)

	writeOldContent(byRow[types.SeparatorRowIndex])
	writeRow(markerFor(byRow[types.SeparatorRowIndex]), separatorCells(widths, len(table.Headers)))

	for r, cells := range table.Rows {
		writeOldContent(byRow[r])
		writeRow(markerFor(byRow[r]), cells)
	}
}

// RenderColumnDiff writes a one-line classification followed by per-column
// events and the heuristic trail.
func RenderColumnDiff(w io.Writer, result types.ColumnDiffResult) {
	fmt.Fprintf(w, "columns: %s (%d -> %d)\n", result.ChangeType, result.OldColumnCount, result.NewColumnCount)

	for _, p := range result.Positions {
		if p.Type == types.ColumnPositionUnchanged {
			continue
		}
		header := p.Header
		if header == "" {
			header = "(no header)"
		}
		fmt.Fprintf(w, "  [%d] %s %s (confidence %.2f)\n", p.Index, header, p.Type, p.Confidence)
	}

	if len(result.Heuristics) > 0 {
		fmt.Fprintf(w, "  heuristics: %s\n", strings.Join(result.Heuristics, ", "))
	}
}

// columnWidths sizes each column to its widest cell across the current table
// and any removed content, measured in terminal display cells.
func columnWidths(table types.TableData, diffs []types.RowDiff) []int {
	var widths []int

	grow := func(cells []string) {
		for i, c := range cells {
			for len(widths) <= i {
				widths = append(widths, 3)
			}
			if w := runewidth.StringWidth(c); w > widths[i] {
				widths[i] = w
			}
		}
	}

	grow(table.Headers)
	for _, row := range table.Rows {
		grow(row)
	}
	for _, d := range diffs {
		if d.Status == types.RowStatusDeleted {
			grow(utils.SplitTableRow(d.OldContent))
		}
	}

	return widths
}

func formatRow(cells []string, widths []int) string {
	var b strings.Builder
	b.WriteString("|")
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := width - runewidth.StringWidth(cell)
		if pad < 0 {
			pad = 0
		}
		b.WriteString(" " + cell + strings.Repeat(" ", pad) + " |")
	}
	return b.String()
}

func separatorCells(widths []int, columns int) []string {
	if columns <= 0 {
		columns = len(widths)
	}
	cells := make([]string, columns)
	for i := range cells {
		w := 3
		if i < len(widths) {
			w = widths[i]
		}
		cells[i] = strings.Repeat("-", w)
	}
	return cells
}
