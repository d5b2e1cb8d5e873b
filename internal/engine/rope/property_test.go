package rope

import (
	"strings"
	"testing"
	"unicode/utf8"

	"pgregory.net/rapid"
)

func genText() *rapid.Generator[string] {
	return rapid.StringOf(rapid.SampledFrom([]rune{'a', 'b', ' ', '\n', '\t', 'é', '世', '🎉'}))
}

func charIndex(s string, char int) int {
	n := 0
	for i := range s {
		if n == char {
			return i
		}
		n++
	}
	return len(s)
}

func TestEditsMatchStringModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		model := genText().Draw(t, "initial")
		r := FromString(model)

		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			n := utf8.RuneCountInString(model)
			if rapid.Bool().Draw(t, "insert") {
				at := rapid.IntRange(0, n).Draw(t, "at")
				text := genText().Draw(t, "text")
				r = r.InsertChars(at, text)
				b := charIndex(model, at)
				model = model[:b] + text + model[b:]
			} else {
				start := rapid.IntRange(0, n).Draw(t, "start")
				end := rapid.IntRange(start, n).Draw(t, "end")
				r = r.RemoveChars(start, end)
				model = model[:charIndex(model, start)] + model[charIndex(model, end):]
			}

			if r.String() != model {
				t.Fatalf("rope %q != model %q", r.String(), model)
			}
			if r.LenChars() != utf8.RuneCountInString(model) {
				t.Fatalf("LenChars() = %d, want %d", r.LenChars(), utf8.RuneCountInString(model))
			}
		}
	})
}

func TestLineIndexMatchesStringModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		model := genText().Draw(t, "text")
		r := FromString(strings.Repeat(model, 1+rapid.IntRange(0, 40).Draw(t, "repeat")))
		text := r.String()
		lines := strings.SplitAfter(text, "\n")

		if r.LenLines() != len(lines) {
			t.Fatalf("LenLines() = %d, want %d", r.LenLines(), len(lines))
		}

		start := 0
		for i, line := range lines {
			if got := r.Line(i); got != line {
				t.Fatalf("Line(%d) = %q, want %q", i, got, line)
			}
			if got := r.LineToChar(i); got != start {
				t.Fatalf("LineToChar(%d) = %d, want %d", i, got, start)
			}
			if got := r.CharToLine(start); got != i {
				t.Fatalf("CharToLine(%d) = %d, want %d", start, got, i)
			}
			start += utf8.RuneCountInString(line)
		}
	})
}
