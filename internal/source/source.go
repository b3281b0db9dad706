// Package source defines where the initial items of a task list come from.
package source

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a named list does not exist.
	ErrNotFound = errors.New("list not found")

	// ErrAmbiguous is returned when a list name matches more than one list.
	ErrAmbiguous = errors.New("ambiguous list name")

	// ErrAuth is returned when credentials are missing, expired or revoked.
	ErrAuth = errors.New("token expired or revoked (run: taskdump login)")
)

// Source supplies the initial items for a task list.
type Source interface {
	// Items returns task descriptions in order.
	Items(ctx context.Context) ([]string, error)
}

// Static is a Source backed by a fixed slice.
type Static []string

// Items implements Source. The returned slice is a copy.
func (s Static) Items(ctx context.Context) ([]string, error) {
	items := make([]string, len(s))
	copy(items, s)
	return items, nil
}

// Sample returns the built-in example list printed when no arguments are given.
func Sample() Static {
	return Static{
		"Go to the store",
		"Finish screencast",
		"Eat cake",
	}
}

// Provider hands out sources for named remote lists.
// An empty name selects the provider's default list.
type Provider interface {
	List(name string) Source
}
