// Package output renders task items for the dump commands.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Format selects how a task list is rendered.
type Format string

const (
	// Inspect renders items as a bracketed, single-quoted array:
	// [ 'Go to the store', 'Eat cake' ]
	Inspect Format = "inspect"

	// JSON renders items as a JSON array of strings.
	JSON Format = "json"

	// Lines renders one numbered item per line: "{N:>4}  {TITLE}\n".
	Lines Format = "lines"
)

// inspectWidth is the widest single-line inspect rendering, in runes,
// before items are broken onto their own lines.
const inspectWidth = 72

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat parses a format name (case-insensitive, trimmed).
// An empty name selects Inspect.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", string(Inspect):
		return Inspect, nil
	case string(JSON):
		return JSON, nil
	case string(Lines):
		return Lines, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
}

// Render returns the full rendering of items in the given format.
// The result is meant to be written in a single call.
func Render(items []string, f Format) []byte {
	var buf bytes.Buffer
	switch f {
	case JSON:
		renderJSON(&buf, items)
	case Lines:
		renderLines(&buf, items)
	default:
		renderInspect(&buf, items)
	}
	return buf.Bytes()
}

func renderInspect(buf *bytes.Buffer, items []string) {
	if len(items) == 0 {
		buf.WriteString("[]\n")
		return
	}

	quoted := make([]string, len(items))
	width := 4 // "[ " + " ]"
	for i, item := range items {
		quoted[i] = quote(item)
		width += utf8.RuneCountInString(quoted[i]) + 2
	}

	if width <= inspectWidth {
		buf.WriteString("[ ")
		buf.WriteString(strings.Join(quoted, ", "))
		buf.WriteString(" ]\n")
		return
	}

	buf.WriteString("[\n")
	for i, q := range quoted {
		buf.WriteString("  ")
		buf.WriteString(q)
		if i < len(quoted)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("]\n")
}

var inspectEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// quote wraps s in single quotes, escaping anything that would make the
// element ambiguous.
func quote(s string) string {
	return "'" + inspectEscaper.Replace(s) + "'"
}

func renderJSON(buf *bytes.Buffer, items []string) {
	if items == nil {
		items = []string{}
	}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// Encoding a []string cannot fail.
	_ = enc.Encode(items)
}

func renderLines(buf *bytes.Buffer, items []string) {
	for i, item := range items {
		fmt.Fprintf(buf, "%4d  %s\n", i+1, normalizeTitle(item))
	}
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
