// Package builder owns portfolio state and runs the read, render, display and
// persist cycle after every user action.
package builder

import "github.com/jonathan/portfolio-builder/internal/types"

// The functions below are the only transitions of the section order. Each
// returns a new slice and leaves its input untouched.

// AddSection appends name verbatim. Duplicates and unrecognized names are allowed.
func AddSection(order []types.SectionID, name types.SectionID) []types.SectionID {
	next := make([]types.SectionID, 0, len(order)+1)
	next = append(next, order...)
	return append(next, name)
}

// RemoveSection drops every occurrence of name.
func RemoveSection(order []types.SectionID, name types.SectionID) []types.SectionID {
	next := make([]types.SectionID, 0, len(order))
	for _, id := range order {
		if id != name {
			next = append(next, id)
		}
	}
	return next
}

// MoveSectionUp swaps the entry at index with the one before it. Out of
// range indexes, including 0, leave the order unchanged.
func MoveSectionUp(order []types.SectionID, index int) []types.SectionID {
	return swap(order, index, index-1)
}

// MoveSectionDown swaps the entry at index with the one after it. Out of
// range indexes, including the last, leave the order unchanged.
func MoveSectionDown(order []types.SectionID, index int) []types.SectionID {
	return swap(order, index, index+1)
}

func swap(order []types.SectionID, i, j int) []types.SectionID {
	next := make([]types.SectionID, len(order))
	copy(next, order)
	if i < 0 || j < 0 || i >= len(order) || j >= len(order) {
		return next
	}
	next[i], next[j] = next[j], next[i]
	return next
}
