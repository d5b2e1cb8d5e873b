package selection

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/quill/internal/engine/rope"
)

// Selections is a non-empty, sorted, non-overlapping set of selections
// with a designated primary.
//
// Operations that return a Selections never modify the receiver. The
// pointer-receiver methods Set, ShiftSubsequentForward and
// ShiftSubsequentBackward mutate in place and are meant for a Clone owned
// by the edit pipeline.
type Selections struct {
	selections []Selection
	primary    int
}

// NewSelections creates a set holding a single selection.
func NewSelections(s Selection) Selections {
	return Selections{selections: []Selection{s}}
}

// FromSlice creates a set from arbitrary selections, sorting and merging
// them. The selection at index primary becomes the primary.
func FromSlice(sels []Selection, primary int) (Selections, error) {
	if len(sels) == 0 || primary < 0 || primary >= len(sels) {
		return Selections{}, ErrInvalidInput
	}
	out := Selections{selections: append([]Selection(nil), sels...), primary: primary}
	return out.sortAndMerge(), nil
}

// Count returns the number of selections.
func (ss Selections) Count() int {
	return len(ss.selections)
}

// PrimaryIndex returns the index of the primary selection.
func (ss Selections) PrimaryIndex() int {
	return ss.primary
}

// Primary returns the primary selection.
func (ss Selections) Primary() Selection {
	return ss.selections[ss.primary]
}

// Nth returns the selection at index i.
func (ss Selections) Nth(i int) Selection {
	return ss.selections[i]
}

// First returns the selection with the lowest start.
func (ss Selections) First() Selection {
	return ss.selections[0]
}

// Last returns the selection with the highest start.
func (ss Selections) Last() Selection {
	return ss.selections[len(ss.selections)-1]
}

// All returns a copy of the selections in order.
func (ss Selections) All() []Selection {
	return append([]Selection(nil), ss.selections...)
}

// Clone returns a deep copy.
func (ss Selections) Clone() Selections {
	return Selections{selections: ss.All(), primary: ss.primary}
}

// Equal reports whether both sets hold the same selections, in the same
// direction, with the same primary.
func (ss Selections) Equal(other Selections) bool {
	if ss.primary != other.primary || len(ss.selections) != len(other.selections) {
		return false
	}
	for i := range ss.selections {
		if !ss.selections[i].SameState(other.selections[i]) {
			return false
		}
	}
	return true
}

// String returns a compact description used in test failures and logs.
func (ss Selections) String() string {
	parts := make([]string, len(ss.selections))
	for i, s := range ss.selections {
		parts[i] = s.String()
		if i == ss.primary {
			parts[i] = "*" + parts[i]
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Validate checks every member and the ordering invariants.
func (ss Selections) Validate(text rope.Rope, semantics CursorSemantics) error {
	if len(ss.selections) == 0 || ss.primary < 0 || ss.primary >= len(ss.selections) {
		return fmt.Errorf("selections %s: %w", ss, ErrInvalidInput)
	}
	for i, s := range ss.selections {
		if err := s.Validate(text, semantics); err != nil {
			return fmt.Errorf("selection %d: %w", i, err)
		}
		if i > 0 && shareContent(ss.selections[i-1].rng, s.rng) {
			return fmt.Errorf("selections %d and %d overlap: %w", i-1, i, ErrInvalidInput)
		}
	}
	return nil
}

// Set replaces the selection at index i without re-sorting.
func (ss *Selections) Set(i int, s Selection) {
	ss.selections[i] = s
}

// ShiftSubsequentForward moves every selection after index i forward by n.
func (ss *Selections) ShiftSubsequentForward(i, n int) {
	for j := i + 1; j < len(ss.selections); j++ {
		ss.selections[j] = ss.selections[j].Shift(n)
	}
}

// ShiftSubsequentBackward moves every selection after index i back by n.
func (ss *Selections) ShiftSubsequentBackward(i, n int) {
	for j := i + 1; j < len(ss.selections); j++ {
		ss.selections[j] = ss.selections[j].Shift(-n)
	}
}

// shareContent reports whether b, sorted after a, collides with it: they
// share at least one position or start at the same index. Touching
// selections such as [3, 4) and [4, 5) stay separate.
func shareContent(a, b Range) bool {
	return b.Start < a.End || a.Start == b.Start
}

// SortAndMerge returns the set sorted by start with colliding members
// merged. The primary follows the member that held it.
func (ss Selections) SortAndMerge() Selections {
	return ss.Clone().sortAndMerge()
}

func (ss Selections) sortAndMerge() Selections {
	type entry struct {
		sel     Selection
		primary bool
	}

	entries := make([]entry, len(ss.selections))
	for i, s := range ss.selections {
		entries[i] = entry{sel: s, primary: i == ss.primary}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].sel.rng, entries[j].sel.rng
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End < b.End
	})

	merged := entries[:1]
	for _, e := range entries[1:] {
		last := &merged[len(merged)-1]
		if !shareContent(last.sel.rng, e.sel.rng) {
			merged = append(merged, e)
			continue
		}
		survivor := last.sel
		if e.primary && !last.primary {
			survivor = e.sel
		}
		survivor.rng = last.sel.rng.Merge(e.sel.rng)
		last.sel = survivor
		last.primary = last.primary || e.primary
	}

	out := Selections{selections: make([]Selection, len(merged))}
	for i, e := range merged {
		out.selections[i] = e.sel
		if e.primary {
			out.primary = i
		}
	}
	return out
}
