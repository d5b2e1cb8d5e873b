package rope

import (
	"testing"
	"unicode/utf8"
)

func FuzzInsertRemove(f *testing.F) {
	f.Add("hello", 0, "x", 0, 1)
	f.Add("hello\nworld", 6, "big ", 2, 9)
	f.Add("日本語", 1, "x", 0, 2)
	f.Add("", 0, "emoji 🎉", 0, 0)

	f.Fuzz(func(t *testing.T, initial string, at int, insert string, start, end int) {
		if !utf8.ValidString(initial) || !utf8.ValidString(insert) {
			return
		}

		r := FromString(initial)
		n := r.LenChars()
		at = clamp(at, 0, n)
		r = r.InsertChars(at, insert)

		want := []rune(initial)
		want = append(want[:at], append([]rune(insert), want[at:]...)...)
		if r.String() != string(want) {
			t.Fatalf("after insert: got %q, want %q", r.String(), string(want))
		}

		n = len(want)
		start = clamp(start, 0, n)
		end = clamp(end, start, n)
		r = r.RemoveChars(start, end)
		want = append(want[:start], want[end:]...)
		if r.String() != string(want) {
			t.Fatalf("after remove: got %q, want %q", r.String(), string(want))
		}
	})
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
