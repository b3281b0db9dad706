// Package tasklist provides TaskList, an ordered, immutable container of
// task descriptions.
package tasklist

import (
	"io"
	"os"

	"taskdump/internal/output"
)

// TaskList holds task descriptions in insertion order.
// The zero value is an empty list.
type TaskList struct {
	items []string
}

// New creates a TaskList from initial. A nil or empty initial yields an
// empty list. Contents are not validated; empty strings and duplicates
// are kept as given. The slice is copied.
func New(initial []string) *TaskList {
	items := make([]string, len(initial))
	copy(items, initial)
	return &TaskList{items: items}
}

// Items returns a copy of the items in order. Never nil.
func (l *TaskList) Items() []string {
	items := make([]string, len(l.items))
	copy(items, l.items)
	return items
}

// Len returns the number of items.
func (l *TaskList) Len() int {
	return len(l.items)
}

// Dump writes the list to standard output using the inspect format.
func (l *TaskList) Dump() error {
	return l.DumpTo(os.Stdout, output.Inspect)
}

// DumpTo writes the list to w in format f using exactly one Write call.
// Write errors are returned as-is.
func (l *TaskList) DumpTo(w io.Writer, f output.Format) error {
	_, err := w.Write(output.Render(l.items, f))
	return err
}
