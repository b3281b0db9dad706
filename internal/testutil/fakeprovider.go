// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"taskdump/internal/source"
)

// DefaultListName is the title FakeProvider gives the default list.
const DefaultListName = "My Tasks"

// FakeProvider is an in-memory source.Provider for testing.
// Lists are matched by title, case-insensitive and trimmed.
type FakeProvider struct {
	mu     sync.RWMutex
	titles []string
	items  map[string][]string // title -> items

	// Err, if set, is returned by every Items call.
	Err error

	// Requested records the list names passed to List, in order.
	Requested []string
}

// NewFakeProvider creates a FakeProvider with an empty default list.
func NewFakeProvider() *FakeProvider {
	f := &FakeProvider{items: make(map[string][]string)}
	f.AddList(DefaultListName)
	return f
}

// AddList adds an empty list. Adding a title twice makes it ambiguous.
func (f *FakeProvider) AddList(title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.titles = append(f.titles, title)
	if _, ok := f.items[title]; !ok {
		f.items[title] = nil
	}
}

// AddItems appends items to the list with the given title.
func (f *FakeProvider) AddItems(title string, items ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[title] = append(f.items[title], items...)
}

// List implements source.Provider.
func (f *FakeProvider) List(name string) source.Source {
	f.mu.Lock()
	f.Requested = append(f.Requested, name)
	f.mu.Unlock()
	return fakeList{provider: f, name: strings.TrimSpace(name)}
}

type fakeList struct {
	provider *FakeProvider
	name     string
}

func (l fakeList) Items(ctx context.Context) ([]string, error) {
	f := l.provider
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	title := DefaultListName
	if l.name != "" {
		var matches []string
		for _, t := range f.titles {
			if strings.EqualFold(strings.TrimSpace(t), l.name) {
				matches = append(matches, t)
			}
		}
		switch len(matches) {
		case 0:
			return nil, fmt.Errorf("%w: %s", source.ErrNotFound, l.name)
		case 1:
			title = matches[0]
		default:
			return nil, fmt.Errorf("%w: %s", source.ErrAmbiguous, l.name)
		}
	}

	result := make([]string, len(f.items[title]))
	copy(result, f.items[title])
	return result, nil
}
