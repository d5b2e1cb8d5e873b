package rope

import "unicode/utf8"

// TextSummary holds aggregated metrics for a text span.
// Summaries form a monoid under Add, which lets internal nodes cache the
// totals of their children.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes int

	// Chars is the code point count.
	Chars int

	// Lines is the number of newline characters.
	Lines int

	// LongestLine is the char length of the longest line (excluding newline).
	LongestLine int

	// FirstLineLen is the char length of the first line (excluding newline).
	FirstLineLen int

	// LastLineLen is the char length of the last line.
	LastLineLen int

	// Flags indicate text properties for fast paths.
	Flags TextFlags
}

// TextFlags indicate text properties for optimization fast paths.
type TextFlags uint8

const (
	// FlagASCII indicates all characters are ASCII (< 128).
	FlagASCII TextFlags = 1 << iota

	// FlagHasNewlines indicates the text contains newline characters.
	FlagHasNewlines

	// FlagHasTabs indicates the text contains tab characters.
	FlagHasTabs
)

// Add combines two summaries.
func (s TextSummary) Add(other TextSummary) TextSummary {
	if s.Bytes == 0 {
		return other
	}
	if other.Bytes == 0 {
		return s
	}

	result := TextSummary{
		Bytes: s.Bytes + other.Bytes,
		Chars: s.Chars + other.Chars,
		Lines: s.Lines + other.Lines,
		Flags: s.Flags & other.Flags & FlagASCII,
	}

	if other.Lines > 0 {
		// The last line of s is closed by the first newline of other.
		joined := s.LastLineLen + other.FirstLineLen
		result.LongestLine = max(s.LongestLine, other.LongestLine, joined)
		if s.Lines == 0 {
			result.FirstLineLen = joined
		} else {
			result.FirstLineLen = s.FirstLineLen
		}
		result.LastLineLen = other.LastLineLen
	} else {
		combined := s.LastLineLen + other.LastLineLen
		result.LongestLine = max(s.LongestLine, combined)
		if s.Lines == 0 {
			result.FirstLineLen = combined
		} else {
			result.FirstLineLen = s.FirstLineLen
		}
		result.LastLineLen = combined
	}

	result.Flags |= (s.Flags | other.Flags) & (FlagHasNewlines | FlagHasTabs)
	return result
}

// IsZero returns true if this is the identity summary.
func (s TextSummary) IsZero() bool {
	return s.Bytes == 0
}

// ComputeSummary calculates metrics for a string.
func ComputeSummary(s string) TextSummary {
	sum := TextSummary{Bytes: len(s), Flags: FlagASCII}
	if len(s) == 0 {
		return sum
	}

	lineLen := 0
	for _, r := range s {
		sum.Chars++
		if r >= utf8.RuneSelf {
			sum.Flags &^= FlagASCII
		}

		switch r {
		case '\n':
			if sum.Lines == 0 {
				sum.FirstLineLen = lineLen
			}
			sum.Lines++
			sum.LongestLine = max(sum.LongestLine, lineLen)
			lineLen = 0
			sum.Flags |= FlagHasNewlines
		case '\t':
			sum.Flags |= FlagHasTabs
			lineLen++
		default:
			lineLen++
		}
	}

	sum.LastLineLen = lineLen
	sum.LongestLine = max(sum.LongestLine, lineLen)
	if sum.Lines == 0 {
		sum.FirstLineLen = lineLen
	}
	return sum
}

// charToByteInString converts a char index within s to a byte offset.
// Indices past the end clamp to len(s).
func charToByteInString(s string, char int, ascii bool) int {
	if ascii {
		return min(char, len(s))
	}
	n := 0
	for i := range s {
		if n == char {
			return i
		}
		n++
	}
	return len(s)
}

// nthNewline returns the byte offset just past the nth newline in s
// (1-indexed) and the number of chars before that offset. ok is false if s
// has fewer than n newlines.
func nthNewline(s string, n int) (byteOff, charOff int, ok bool) {
	count := 0
	chars := 0
	for i, r := range s {
		chars++
		if r == '\n' {
			count++
			if count == n {
				return i + 1, chars, true
			}
		}
	}
	return len(s), chars, false
}

// countNewlines returns the number of newlines in s.
func countNewlines(s string) int {
	count := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			count++
		}
	}
	return count
}
