package builder

import (
	"testing"

	"github.com/jonathan/portfolio-builder/internal/types"
	"github.com/stretchr/testify/assert"
)

func ids(names ...string) []types.SectionID {
	out := make([]types.SectionID, len(names))
	for i, n := range names {
		out[i] = types.SectionID(n)
	}
	return out
}

func TestAddSection_AppendsVerbatim(t *testing.T) {
	order := ids("about", "skills")
	next := AddSection(order, "experience")

	assert.Equal(t, ids("about", "skills", "experience"), next)
	assert.Equal(t, ids("about", "skills"), order, "input must not change")

	assert.Equal(t, ids("about", "skills", "about"), AddSection(order, "about"))
	assert.Equal(t, ids("x"), AddSection(nil, "x"))
}

func TestRemoveSection(t *testing.T) {
	order := ids("about", "skills", "education")
	assert.Equal(t, ids("about", "education"), RemoveSection(order, "skills"))
	assert.Equal(t, ids("about", "skills", "education"), order)
}

func TestRemoveSection_RemovesAllDuplicates(t *testing.T) {
	order := ids("skills", "about", "skills", "contact", "skills")
	assert.Equal(t, ids("about", "contact"), RemoveSection(order, "skills"))
}

func TestRemoveSection_Missing(t *testing.T) {
	order := ids("about")
	assert.Equal(t, ids("about"), RemoveSection(order, "experience"))
	assert.Empty(t, RemoveSection(nil, "about"))
}

func TestMoveSection(t *testing.T) {
	order := ids("a", "b", "c")

	assert.Equal(t, ids("b", "a", "c"), MoveSectionUp(order, 1))
	assert.Equal(t, ids("a", "c", "b"), MoveSectionUp(order, 2))
	assert.Equal(t, ids("b", "a", "c"), MoveSectionDown(order, 0))
	assert.Equal(t, ids("a", "c", "b"), MoveSectionDown(order, 1))
	assert.Equal(t, ids("a", "b", "c"), order, "input must not change")
}

func TestMoveSection_BoundariesAreNoOps(t *testing.T) {
	order := ids("a", "b", "c")

	tests := []struct {
		name string
		got  []types.SectionID
	}{
		{"up at first index", MoveSectionUp(order, 0)},
		{"down at last index", MoveSectionDown(order, 2)},
		{"up past the end", MoveSectionUp(order, 3)},
		{"down past the end", MoveSectionDown(order, 5)},
		{"up at negative index", MoveSectionUp(order, -1)},
		{"down at negative index", MoveSectionDown(order, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, order, tt.got)
		})
	}

	assert.Empty(t, MoveSectionUp(nil, 0))
}
