package utils

import (
	"strconv"
	"strings"

	godiff "github.com/sourcegraph/go-diff/diff"

	"github.com/tyngw/mdtable-diff/internal/types"
)

// ParseUnifiedDiff converts raw unified-diff text into a flat, ordered list of
// line-level change records. Deletions carry old-file line numbers, additions
// carry new-file line numbers, and HunkID partitions the list into contiguous
// runs, one per hunk. Empty or hunk-less input yields an empty list; a hunk
// whose header cannot be parsed is skipped while surrounding hunks are still
// processed.
func ParseUnifiedDiff(diffText string) []types.LineChange {
	if strings.TrimSpace(diffText) == "" {
		return nil
	}

	var changes []types.LineChange
	hunkID := 0

	for _, block := range splitHunkBlocks(diffText) {
		parsed := parseHunkBlock(block)
		if parsed == nil {
			continue
		}
		hunkID++
		for i := range parsed {
			parsed[i].HunkID = hunkID
		}
		changes = append(changes, parsed...)
	}

	return changes
}

// splitHunkBlocks cuts the diff text into per-hunk blocks, each starting with
// its @@ header. Everything before the first header (git headers, index lines,
// ---/+++ file markers) is dropped.
func splitHunkBlocks(diffText string) []string {
	var blocks []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = nil
		}
	}

	for _, line := range strings.Split(diffText, "\n") {
		if strings.HasPrefix(line, "@@") {
			flush()
			current = []string{line}
			continue
		}
		if current == nil {
			continue
		}
		if strings.HasPrefix(line, "diff ") || strings.HasPrefix(line, "index ") ||
			strings.HasPrefix(line, "--- ") || strings.HasPrefix(line, "+++ ") {
			// Next file section; close the running hunk.
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return blocks
}

// parseHunkBlock parses one @@-delimited block. go-diff does the strict
// parsing; if it rejects the block (blank context lines and the like are legal
// in practice but not in the library's grammar), a lenient manual scan is used
// instead so one odd hunk never discards its neighbors.
func parseHunkBlock(block string) []types.LineChange {
	hunks, err := godiff.ParseHunks([]byte(block))
	if err == nil {
		var changes []types.LineChange
		for _, h := range hunks {
			changes = append(changes, walkHunkBody(string(h.Body), int(h.OrigStartLine), int(h.NewStartLine))...)
		}
		return changes
	}

	lines := strings.Split(block, "\n")
	oldStart, newStart, ok := parseHunkHeader(lines[0])
	if !ok {
		return nil
	}
	return walkHunkBody(strings.Join(lines[1:], "\n"), oldStart, newStart)
}

// walkHunkBody walks the body lines of a single hunk, tracking old and new
// line counters from the hunk's start positions.
func walkHunkBody(body string, oldLine, newLine int) []types.LineChange {
	var changes []types.LineChange

	for _, line := range strings.Split(body, "\n") {
		switch {
		case strings.HasPrefix(line, "---") || strings.HasPrefix(line, "+++"):
			// File markers, not hunk content.
		case strings.HasPrefix(line, "-"):
			changes = append(changes, types.LineChange{
				LineNumber: oldLine,
				Status:     types.LineStatusDeleted,
				Content:    line[1:],
			})
			oldLine++
		case strings.HasPrefix(line, "+"):
			changes = append(changes, types.LineChange{
				LineNumber: newLine,
				Status:     types.LineStatusAdded,
				Content:    line[1:],
			})
			newLine++
		case strings.HasPrefix(line, "\\"):
			// "\ No newline at end of file" carries no line content.
		case line == "":
			// Blank separator, ignore.
		default:
			// Context line present in both versions.
			oldLine++
			newLine++
		}
	}

	return changes
}

// parseHunkHeader extracts the old and new start lines from a header of the
// form "@@ -oldStart[,oldCount] +newStart[,newCount] @@".
func parseHunkHeader(header string) (oldStart, newStart int, ok bool) {
	fields := strings.Fields(header)
	if len(fields) < 3 || fields[0] != "@@" {
		return 0, 0, false
	}

	oldStart, ok = parseRangeStart(fields[1], "-")
	if !ok {
		return 0, 0, false
	}
	newStart, ok = parseRangeStart(fields[2], "+")
	if !ok {
		return 0, 0, false
	}
	return oldStart, newStart, true
}

func parseRangeStart(field, prefix string) (int, bool) {
	if !strings.HasPrefix(field, prefix) {
		return 0, false
	}
	field = strings.TrimPrefix(field, prefix)
	if idx := strings.Index(field, ","); idx >= 0 {
		field = field[:idx]
	}
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, false
	}
	return n, true
}
