package models

import (
	"fmt"
	"sort"
	"time"
)

// TestListItem is one ordered entry of a test list: either a test or a
// sublist, never both.
type TestListItem struct {
	Order   int
	Test    *TestDefinition
	Sublist *TestListDefinition
}

// TestListDefinition is the unit of work a user performs at once: an ordered
// sequence of tests, with at most one level of sublist nesting.
type TestListDefinition struct {
	Id          string
	Name        string
	Slug        string
	Description string
	Items       []TestListItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FlattenedTests returns the tests of the list in performance order, sublists
// expanded in place.
func (tl TestListDefinition) FlattenedTests() []TestDefinition {
	items := make([]TestListItem, len(tl.Items))
	copy(items, tl.Items)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })

	var tests []TestDefinition
	for _, item := range items {
		switch {
		case item.Test != nil:
			tests = append(tests, *item.Test)
		case item.Sublist != nil:
			tests = append(tests, item.Sublist.FlattenedTests()...)
		}
	}
	return tests
}

// Validate enforces the definition-time invariants: unique slugs across the
// flattened set and sublist nesting of depth one. Evaluation relies on both.
func (tl TestListDefinition) Validate() error {
	for _, item := range tl.Items {
		if item.Sublist == nil {
			continue
		}
		for _, sub := range item.Sublist.Items {
			if sub.Sublist != nil {
				return ErrSublistTooDeep
			}
		}
	}

	seen := make(map[string]bool)
	for _, test := range tl.FlattenedTests() {
		if seen[test.Slug] {
			return fmt.Errorf("slug '%s': %w", test.Slug, ErrDuplicateTestSlug)
		}
		seen[test.Slug] = true
	}
	return nil
}
