package table

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/tyngw/mdtable-diff/internal/types"
)

// ParseTables extracts every pipe table from a markdown document using
// goldmark's table extension. Each result carries the ordered header list,
// the ordered data rows and the table's 0-based line range in source, with
// StartLine pointing at the header line. Documents without tables yield an
// empty slice; parsing never fails.
func ParseTables(source []byte) []types.TableData {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	root := md.Parser().Parse(text.NewReader(source))

	var tables []types.TableData
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != east.KindTable {
			return ast.WalkContinue, nil
		}
		if t, ok := extractTable(n, source); ok {
			tables = append(tables, t)
		}
		// Tables do not nest.
		return ast.WalkSkipChildren, nil
	})

	return tables
}

func extractTable(node ast.Node, source []byte) (types.TableData, bool) {
	var data types.TableData
	headerOffset := -1

	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.Kind() {
		case east.KindTableHeader:
			cells, offset := rowCells(child, source)
			data.Headers = cells
			headerOffset = offset
		case east.KindTableRow:
			cells, _ := rowCells(child, source)
			data.Rows = append(data.Rows, cells)
		}
	}

	if headerOffset < 0 {
		// Header position is the anchor for all row-index math; without it
		// the table cannot be located in the source.
		return types.TableData{}, false
	}

	data.StartLine = lineOfOffset(source, headerOffset)
	// header + separator + data rows; pipe tables are contiguous.
	data.EndLine = data.StartLine + 1 + len(data.Rows)
	return data, true
}

// rowCells returns the trimmed source text of each cell in a header or data
// row, plus the byte offset of the row's first piece of content (-1 when the
// row is entirely empty).
func rowCells(row ast.Node, source []byte) ([]string, int) {
	var cells []string
	rowOffset := -1

	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		start, end := segmentBounds(cell)
		if start < 0 {
			cells = append(cells, "")
			continue
		}
		if rowOffset < 0 || start < rowOffset {
			rowOffset = start
		}
		cells = append(cells, strings.TrimSpace(string(source[start:end])))
	}

	return cells, rowOffset
}

// segmentBounds finds the source span covered by a node's inline content by
// walking its text descendants. Returns (-1, -1) for empty cells.
func segmentBounds(node ast.Node) (int, int) {
	start, end := -1, -1

	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			seg := t.Segment
			if start < 0 || seg.Start < start {
				start = seg.Start
			}
			if seg.Stop > end {
				end = seg.Stop
			}
		}
		return ast.WalkContinue, nil
	})

	return start, end
}

func lineOfOffset(source []byte, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}
	return bytes.Count(source[:offset], []byte{'\n'})
}
