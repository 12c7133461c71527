package changelog

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// Rules whose report line shows only the original value with whitespace marked.
const (
	ruleWhitespace = "Whitespace normalization"
	ruleLineBreaks = "Line breaks removed"
)

// wsMarker replaces whitespace that a rule removed.
const wsMarker = "□"

var (
	reportPolicy *bluemonday.Policy
	policyOnce   sync.Once
	markdown     = goldmark.New()
)

func initPolicy() {
	policyOnce.Do(func() {
		reportPolicy = bluemonday.NewPolicy()
		reportPolicy.AllowElements(
			"h1", "h2", "p", "br",
			"strong", "em", "code",
			"ul", "ol", "li",
		)
	})
}

// Report renders events for human review.
type Report struct {
	Title  string
	Events []Event
}

// NewReport builds a report from a snapshot of the log.
func NewReport(title string, log *Log) *Report {
	return &Report{Title: title, Events: log.Events()}
}

// Summary returns the change count line, e.g. "3 changes".
func (r *Report) Summary() string {
	n := len(r.Events)
	if n == 1 {
		return "1 change"
	}
	return strconv.Itoa(n) + " changes"
}

// Markdown renders the report as a CommonMark document.
// Cell text is escaped so it never turns into markup.
func (r *Report) Markdown() string {
	var b strings.Builder

	if r.Title != "" {
		fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(r.Title))
	}
	fmt.Fprintf(&b, "**%s**\n\n", r.Summary())

	for _, e := range r.Events {
		b.WriteString("- ")
		if e.Location != "" {
			fmt.Fprintf(&b, "`%s` ", strings.ReplaceAll(e.Location, "`", ""))
		}
		fmt.Fprintf(&b, "**%s**: ", escapeMarkdown(e.Rule))

		switch e.Rule {
		case ruleWhitespace:
			fmt.Fprintf(&b, "\"%s\"", escapeMarkdown(markWhitespace(e.Before)))
		case ruleLineBreaks:
			fmt.Fprintf(&b, "\"%s\"", escapeMarkdown(markLineBreaks(e.Before)))
		case RuleNotice:
			b.WriteString(escapeMarkdown(e.After))
		default:
			fmt.Fprintf(&b, "\"%s\" → \"%s\"", escapeMarkdown(e.Before), escapeMarkdown(e.After))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// HTML renders the Markdown report and sanitizes the result.
func (r *Report) HTML() (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(r.Markdown()), &buf); err != nil {
		return "", fmt.Errorf("changelog: render report: %w", err)
	}
	initPolicy()
	return reportPolicy.Sanitize(buf.String()), nil
}

// escapeMarkdown backslash-escapes ASCII punctuation and flattens line breaks.
func escapeMarkdown(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\r' || r == '\n':
			b.WriteByte(' ')
		case r < 0x80 && strings.ContainsRune("\\`*_{}[]()<>#+-.!|~\"'&", r):
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// markWhitespace replaces leading, trailing and repeated spaces and line
// breaks with a visible marker.
func markWhitespace(s string) string {
	runes := []rune(s)
	marked := make([]bool, len(runes))

	for i := 0; i < len(runes) && runes[i] == ' '; i++ {
		marked[i] = true
	}
	for i := len(runes) - 1; i >= 0 && runes[i] == ' '; i-- {
		marked[i] = true
	}
	for i := 0; i < len(runes); {
		if runes[i] != ' ' {
			i++
			continue
		}
		start := i
		for i < len(runes) && runes[i] == ' ' {
			i++
		}
		if i-start >= 2 {
			for j := start; j < i; j++ {
				marked[j] = true
			}
		}
	}

	var b strings.Builder
	for i, r := range runes {
		if marked[i] || r == '\r' || r == '\n' {
			b.WriteString(wsMarker)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func markLineBreaks(s string) string {
	return strings.NewReplacer("\r", wsMarker, "\n", wsMarker).Replace(s)
}
