package transcode

import (
	"regexp"
	"strings"
)

var lineBreakRe = regexp.MustCompile(`\r?\n`)

// FormatFlat renders m as tab-separated lines joined by "\n".
func FormatFlat(m Matrix) string {
	lines := make([]string, len(m))
	for i, row := range m {
		lines[i] = strings.Join(row, "\t")
	}
	return strings.Join(lines, "\n")
}

// ParseFlat splits flat text into rows and tab-separated cells.
// Blank lines are dropped.
func ParseFlat(text string) Matrix {
	var m Matrix
	for _, line := range lineBreakRe.Split(text, -1) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		m = append(m, strings.Split(line, "\t"))
	}
	return m
}
