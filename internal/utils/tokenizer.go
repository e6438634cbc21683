package utils

import "strings"

// SplitTableRow splits one line of markdown table-row text into its ordered
// cell strings. One optional leading and one optional trailing pipe are
// stripped, then the line is scanned character by character: a pipe separates
// cells only when it is neither backslash-escaped nor inside an inline code
// span. Code spans are tracked by exact backtick-run length, so a span opened
// by a double-backtick run is only closed by another double-backtick run.
// Cell content is trimmed but otherwise kept verbatim (escape sequences are
// not unescaped).
//
// A line that tokenizes to nothing meaningful (empty, or made up entirely of
// delimiters) yields an empty list rather than a list of empty strings.
func SplitTableRow(line string) []string {
	s := strings.TrimSpace(line)
	if s == "" {
		return nil
	}

	if strings.HasPrefix(s, "|") {
		s = s[1:]
	}
	if strings.HasSuffix(s, "|") && !isEscapedAt(s, len(s)-1) {
		s = s[:len(s)-1]
	}

	var cells []string
	var cell strings.Builder
	codeTicks := 0 // length of the backtick run that opened the current span; 0 = outside

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			cell.WriteByte(c)
			i++
			cell.WriteByte(s[i])
		case c == '`':
			run := 1
			for i+run < len(s) && s[i+run] == '`' {
				run++
			}
			if codeTicks == 0 {
				codeTicks = run
			} else if run == codeTicks {
				codeTicks = 0
			}
			cell.WriteString(s[i : i+run])
			i += run - 1
		case c == '|' && codeTicks == 0:
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteByte(c)
		}
	}
	cells = append(cells, strings.TrimSpace(cell.String()))

	for _, c := range cells {
		if c != "" {
			return cells
		}
	}
	return nil
}

// isEscapedAt reports whether the byte at index i is preceded by an odd number
// of backslashes.
func isEscapedAt(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}
