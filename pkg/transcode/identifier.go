package transcode

import (
	"path/filepath"
	"regexp"
	"strings"
)

// UnsetIdentifier fills the code column when no identifier is known.
const UnsetIdentifier = "unset"

var (
	bracketRe     = regexp.MustCompile(`\[([^\[\]]*)\]`)
	parenthesisRe = regexp.MustCompile(`\(([^()]*)\)`)
)

// ExtractIdentifier reads the identifier from a file name such as
// "menu [A12].xlsx" or "menu (A12).xlsx". Brackets win over parentheses.
func ExtractIdentifier(filename string) (string, bool) {
	base := filepath.Base(filename)
	for _, re := range []*regexp.Regexp{bracketRe, parenthesisRe} {
		for _, m := range re.FindAllStringSubmatch(base, -1) {
			if id := strings.TrimSpace(m[1]); id != "" {
				return id, true
			}
		}
	}
	return "", false
}
