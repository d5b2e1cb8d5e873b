package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/quill/internal/engine/rope"
)

func mustSelections(t *testing.T, primary int, sels ...Selection) Selections {
	t.Helper()
	ss, err := FromSlice(sels, primary)
	require.NoError(t, err)
	return ss
}

func ranges(ss Selections) []Range {
	out := make([]Range, ss.Count())
	for i, s := range ss.All() {
		out[i] = s.Range()
	}
	return out
}

func TestFromSliceSortsAndMerges(t *testing.T) {
	ss := mustSelections(t, 2,
		sel(8, 10, Forward),
		sel(0, 2, Forward),
		sel(1, 4, Backward),
		sel(4, 5, Forward),
	)

	assert.Equal(t, []Range{{0, 4}, {4, 5}, {8, 10}}, ranges(ss))
	assert.Equal(t, 0, ss.PrimaryIndex())
	assert.Equal(t, Backward, ss.Primary().Direction(), "survivor takes the primary's direction")

	_, err := FromSlice(nil, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMovePotentiallyOverlappingMerges(t *testing.T) {
	text := rope.FromString(sample)
	ss := mustSelections(t, 1, sel(0, 1, Forward), sel(1, 2, Forward))

	got, err := ss.MovePotentiallyOverlapping(func(s Selection) (Selection, error) {
		return s.MoveLeft(text, Block)
	})
	require.NoError(t, err)
	assert.Equal(t, []Range{{0, 1}}, ranges(got))
	assert.Equal(t, 0, got.PrimaryIndex())
}

func TestMovePotentiallyOverlappingAllFail(t *testing.T) {
	text := rope.FromString(sample)
	ss := mustSelections(t, 0, sel(0, 1, Forward))

	_, err := ss.MovePotentiallyOverlapping(func(s Selection) (Selection, error) {
		return s.MoveLeft(text, Block)
	})
	assert.ErrorIs(t, err, ErrResultsInSameState)
}

func TestMovePotentiallyOverlappingPartial(t *testing.T) {
	text := rope.FromString(sample)
	ss := mustSelections(t, 0, sel(0, 1, Forward), sel(5, 6, Forward))

	got, err := ss.MovePotentiallyOverlapping(func(s Selection) (Selection, error) {
		return s.MoveLeft(text, Block)
	})
	require.NoError(t, err)
	assert.Equal(t, []Range{{0, 1}, {4, 5}}, ranges(got))
}

func TestMoveNonOverlapping(t *testing.T) {
	text := rope.FromString(sample)
	ss := mustSelections(t, 0, sel(0, 3, Forward), sel(5, 6, Forward))

	got, err := ss.MoveNonOverlapping(func(s Selection) (Selection, error) {
		return s.CollapseToCursor(text, Block)
	})
	require.NoError(t, err)
	assert.Equal(t, []Range{{2, 3}, {5, 6}}, ranges(got))

	_, err = got.MoveNonOverlapping(func(s Selection) (Selection, error) {
		return s.CollapseToCursor(text, Block)
	})
	assert.ErrorIs(t, err, ErrResultsInSameState)
}

func TestMoveClearingNonPrimary(t *testing.T) {
	text := rope.FromString(sample)
	ss := mustSelections(t, 1, sel(0, 1, Forward), sel(5, 6, Forward))

	got, err := ss.MoveClearingNonPrimary(func(s Selection) (Selection, error) {
		return s.MoveDocEnd(text, Block)
	})
	require.NoError(t, err)
	assert.Equal(t, []Range{{14, 15}}, ranges(got))

	_, err = got.MoveClearingNonPrimary(func(s Selection) (Selection, error) {
		return s.MoveDocEnd(text, Block)
	})
	assert.ErrorIs(t, err, ErrResultsInSameState)
}

func TestPrimaryManagement(t *testing.T) {
	ss := mustSelections(t, 0, sel(0, 1, Forward), sel(4, 5, Forward), sel(9, 10, Forward))

	next, err := ss.IncrementPrimary()
	require.NoError(t, err)
	assert.Equal(t, 1, next.PrimaryIndex())

	prev, err := ss.DecrementPrimary()
	require.NoError(t, err)
	assert.Equal(t, 2, prev.PrimaryIndex())

	removed, err := prev.RemovePrimary()
	require.NoError(t, err)
	assert.Equal(t, []Range{{0, 1}, {4, 5}}, ranges(removed))
	assert.Equal(t, 0, removed.PrimaryIndex(), "wraps after removing the last")

	removed, err = next.RemovePrimary()
	require.NoError(t, err)
	assert.Equal(t, []Range{{0, 1}, {9, 10}}, ranges(removed))
	assert.Equal(t, 1, removed.PrimaryIndex())

	cleared, err := next.ClearNonPrimary()
	require.NoError(t, err)
	assert.Equal(t, []Range{{4, 5}}, ranges(cleared))

	single := NewSelections(sel(0, 1, Forward))
	_, err = single.ClearNonPrimary()
	assert.ErrorIs(t, err, ErrSingleSelection)
	_, err = single.IncrementPrimary()
	assert.ErrorIs(t, err, ErrSingleSelection)
	_, err = single.DecrementPrimary()
	assert.ErrorIs(t, err, ErrSingleSelection)
	_, err = single.RemovePrimary()
	assert.ErrorIs(t, err, ErrSingleSelection)
}

func TestAddSelectionAboveBelow(t *testing.T) {
	text := rope.FromString("abcdef\nab\nabcdef\n")
	ss := mustSelections(t, 0, sel(12, 14, Forward))

	above, err := ss.AddSelectionAbove(text, Block)
	require.NoError(t, err)
	assert.Equal(t, []Range{{9, 10}, {12, 14}}, ranges(above), "clipped at the short line")
	assert.Equal(t, 1, above.PrimaryIndex())

	above, err = above.AddSelectionAbove(text, Block)
	require.NoError(t, err)
	assert.Equal(t, Range{Start: 2, End: 3}, above.First().Range())

	_, err = above.AddSelectionAbove(text, Block)
	assert.ErrorIs(t, err, ErrCannotAddSelectionAbove)

	below, err := ss.AddSelectionBelow(text, Block)
	require.NoError(t, err)
	assert.Equal(t, []Range{{12, 14}, {17, 18}}, ranges(below))
	assert.Equal(t, 0, below.PrimaryIndex())

	_, err = below.AddSelectionBelow(text, Block)
	assert.ErrorIs(t, err, ErrCannotAddSelectionBelow)

	end := mustSelections(t, 0, sel(17, 18, Forward))
	above, err = end.AddSelectionAbove(text, Block)
	require.NoError(t, err)
	assert.Equal(t, []Range{{10, 11}, {17, 18}}, ranges(above), "projected from the end-of-document cell")
	require.NoError(t, above.Validate(text, Block))

	multi := mustSelections(t, 0, sel(5, 8, Forward))
	_, err = multi.AddSelectionAbove(text, Block)
	assert.ErrorIs(t, err, ErrSpansMultipleLines)
}

func TestSearch(t *testing.T) {
	text := rope.FromString("foo bar foo\nbaz foo\n")
	ss := mustSelections(t, 1, sel(0, 12, Forward), sel(12, 20, Forward))

	got, err := ss.Search(text, "fo+")
	require.NoError(t, err)
	assert.Equal(t, []Range{{0, 3}, {8, 11}, {16, 19}}, ranges(got))
	assert.Equal(t, 2, got.PrimaryIndex(), "first match inside the old primary")

	got, err = ss.Search(text, "bar")
	require.NoError(t, err)
	assert.Equal(t, []Range{{4, 7}}, ranges(got))
	assert.Equal(t, 0, got.PrimaryIndex(), "falls back to the nearest earlier group")

	_, err = ss.Search(text, "qux")
	assert.ErrorIs(t, err, ErrNoSearchMatches)
	_, err = ss.Search(text, "")
	assert.ErrorIs(t, err, ErrNoSearchMatches)
	_, err = ss.Search(text, "(")
	assert.ErrorIs(t, err, ErrNoSearchMatches)
}

func TestSearchMultibyte(t *testing.T) {
	text := rope.FromString("日本 and 日本")
	got, err := NewSelections(sel(0, 9, Forward)).Search(text, "日本")
	require.NoError(t, err)
	assert.Equal(t, []Range{{0, 2}, {7, 9}}, ranges(got))
}

func TestSplit(t *testing.T) {
	text := rope.FromString("a, b,c\n")
	ss := mustSelections(t, 0, sel(0, 6, Forward))

	got, err := ss.Split(text, ", ?")
	require.NoError(t, err)
	assert.Equal(t, []Range{{0, 1}, {3, 4}, {5, 6}}, ranges(got))

	_, err = ss.Split(text, "x")
	assert.ErrorIs(t, err, ErrNoSearchMatches)

	multi := mustSelections(t, 1, sel(0, 1, Forward), sel(3, 6, Forward))
	got, err = multi.Split(text, ",")
	require.NoError(t, err)
	assert.Equal(t, []Range{{0, 1}, {3, 4}, {5, 6}}, ranges(got), "unmatched members are kept")
	assert.Equal(t, 1, got.PrimaryIndex())
}

func TestSurround(t *testing.T) {
	text := rope.FromString(sample)
	ss := mustSelections(t, 0, sel(0, 3, Forward), sel(4, 8, Forward))

	got, err := ss.Surround(text, Block)
	require.NoError(t, err)
	assert.Equal(t, []Range{{0, 1}, {3, 4}, {4, 5}, {8, 9}}, ranges(got))
	assert.Equal(t, 0, got.PrimaryIndex())
	assert.Equal(t, sample, text.String())
}

func TestSurroundDedupes(t *testing.T) {
	text := rope.FromString(sample)
	ss := mustSelections(t, 1, sel(0, 3, Forward), sel(3, 5, Forward))

	got, err := ss.Surround(text, Block)
	require.NoError(t, err)
	assert.Equal(t, []Range{{0, 1}, {3, 4}, {5, 6}}, ranges(got))
	assert.Equal(t, 1, got.PrimaryIndex())
}

func TestSurroundAtDocumentEnd(t *testing.T) {
	text := rope.FromString(sample)
	end := text.LenChars()

	ss := mustSelections(t, 0, sel(10, end+1, Forward))
	got, err := ss.Surround(text, Block)
	require.NoError(t, err)
	assert.Equal(t, []Range{{10, 11}, {end, end + 1}}, ranges(got))
	require.NoError(t, got.Validate(text, Block))

	ss = mustSelections(t, 1, sel(0, 3, Forward), sel(end, end+1, Forward))
	got, err = ss.Surround(text, Block)
	require.NoError(t, err)
	assert.Equal(t, []Range{{0, 1}, {3, 4}, {end, end + 1}}, ranges(got), "end cells collapse into one")
	assert.Equal(t, 2, got.PrimaryIndex())
	require.NoError(t, got.Validate(text, Block))

	ss = mustSelections(t, 0, sel(10, end, Forward))
	got, err = ss.Surround(text, Bar)
	require.NoError(t, err)
	assert.Equal(t, []Range{{10, 11}, {end, end}}, ranges(got))
	require.NoError(t, got.Validate(text, Bar))
}

func TestShiftSubsequent(t *testing.T) {
	ss := mustSelections(t, 0, sel(0, 1, Forward), sel(4, 5, Forward), sel(9, 10, Forward))
	c := ss.Clone()
	c.ShiftSubsequentForward(0, 2)
	assert.Equal(t, []Range{{0, 1}, {6, 7}, {11, 12}}, ranges(c))
	c.ShiftSubsequentBackward(1, 3)
	assert.Equal(t, []Range{{0, 1}, {6, 7}, {8, 9}}, ranges(c))
	assert.Equal(t, []Range{{0, 1}, {4, 5}, {9, 10}}, ranges(ss), "clone is independent")
}

func TestCollectiveMotionKeepsInvariants(t *testing.T) {
	texts := []string{sample, "a\n\nbb ccc\n  d", "x", "日本語\nab\n"}

	rapid.Check(t, func(t *rapid.T) {
		text := rope.FromString(rapid.SampledFrom(texts).Draw(t, "text"))
		semantics := rapid.SampledFrom([]CursorSemantics{Bar, Block}).Draw(t, "semantics")

		n := rapid.IntRange(1, 4).Draw(t, "count")
		var sels []Selection
		for i := 0; i < n; i++ {
			sels = append(sels, Cursor(text, rapid.IntRange(0, text.LenChars()).Draw(t, "at"), semantics))
		}
		ss, err := FromSlice(sels, rapid.IntRange(0, n-1).Draw(t, "primary"))
		if err != nil {
			t.Fatal(err)
		}

		ops := []func(Selection) (Selection, error){
			func(s Selection) (Selection, error) { return s.MoveLeft(text, semantics) },
			func(s Selection) (Selection, error) { return s.ExtendRight(text, semantics) },
			func(s Selection) (Selection, error) { return s.MoveDown(text, semantics) },
			func(s Selection) (Selection, error) { return s.ExtendUp(text, semantics) },
			func(s Selection) (Selection, error) { return s.MoveLineEnd(text, semantics) },
			func(s Selection) (Selection, error) { return s.ExtendWordBoundaryForward(text, semantics) },
			func(s Selection) (Selection, error) { return s.MoveWordBoundaryBackward(text, semantics) },
			func(s Selection) (Selection, error) { return s.ExtendDocEnd(text, semantics) },
		}

		steps := rapid.IntRange(1, 20).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			op := rapid.IntRange(0, len(ops)-1).Draw(t, "op")
			next, err := ss.MovePotentiallyOverlapping(ops[op])
			if err != nil {
				continue
			}
			ss = next
			if err := ss.Validate(text, semantics); err != nil {
				t.Fatalf("after op %d: %v (%s)", op, err, ss)
			}
			for _, s := range ss.All() {
				c := s.Cursor(text, semantics)
				if c < 0 || c > text.LenChars() {
					t.Fatalf("cursor %d outside text", c)
				}
			}
		}
	})
}

func TestCollectiveOpsKeepInvariants(t *testing.T) {
	texts := []string{sample, "a\n\nbb ccc\n  d", "x", "", "(ab) [c\nd]"}

	rapid.Check(t, func(t *rapid.T) {
		text := rope.FromString(rapid.SampledFrom(texts).Draw(t, "text"))
		semantics := rapid.SampledFrom([]CursorSemantics{Bar, Block}).Draw(t, "semantics")
		ss := NewSelections(Cursor(text, rapid.IntRange(0, text.LenChars()).Draw(t, "at"), semantics))

		moves := []Func{
			func(s Selection) (Selection, error) { return s.ExtendDocEnd(text, semantics) },
			func(s Selection) (Selection, error) { return s.ExtendRight(text, semantics) },
			func(s Selection) (Selection, error) { return s.MoveDocEnd(text, semantics) },
			func(s Selection) (Selection, error) { return s.ExtendLineEnd(text, semantics) },
			func(s Selection) (Selection, error) { return s.FlipDirection(text, semantics) },
			func(s Selection) (Selection, error) { return s.CollapseToCursor(text, semantics) },
			func(s Selection) (Selection, error) { return s.SelectLine(text, semantics) },
		}
		ops := []struct {
			name string
			run  func(Selections) (Selections, error)
		}{
			{"move", func(ss Selections) (Selections, error) {
				return ss.MovePotentiallyOverlapping(moves[rapid.IntRange(0, len(moves)-1).Draw(t, "move")])
			}},
			{"surround", func(ss Selections) (Selections, error) { return ss.Surround(text, semantics) }},
			{"above", func(ss Selections) (Selections, error) { return ss.AddSelectionAbove(text, semantics) }},
			{"below", func(ss Selections) (Selections, error) { return ss.AddSelectionBelow(text, semantics) }},
			{"search", func(ss Selections) (Selections, error) { return ss.Search(text, `[a-z]`) }},
			{"split", func(ss Selections) (Selections, error) { return ss.Split(text, `\s`) }},
			{"removePrimary", Selections.RemovePrimary},
			{"incrementPrimary", Selections.IncrementPrimary},
			{"clearNonPrimary", Selections.ClearNonPrimary},
		}

		steps := rapid.IntRange(1, 15).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			op := rapid.SampledFrom(ops).Draw(t, "op")
			next, err := op.run(ss)
			if err != nil {
				continue
			}
			if err := next.Validate(text, semantics); err != nil {
				t.Fatalf("%s on %s: %v (%s)", op.name, ss, err, next)
			}
			ss = next
		}
	})
}
