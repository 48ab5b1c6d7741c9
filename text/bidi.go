package text

import (
	"slices"
	"strings"

	"golang.org/x/text/unicode/bidi"
)

// Visual returns s reordered from logical to visual (left-to-right display)
// order following the Unicode Bidirectional Algorithm. Strings without
// right-to-left characters are returned unchanged.
func Visual(s string) string {
	if !hasRTL(s) {
		return s
	}

	var p bidi.Paragraph
	if _, err := p.SetString(s); err != nil {
		return s
	}
	ordering, err := p.Order()
	if err != nil {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := range ordering.NumRuns() {
		run := ordering.Run(i)
		if run.Direction() != bidi.RightToLeft {
			sb.WriteString(run.String())
			continue
		}
		runes := []rune(run.String())
		slices.Reverse(runes)
		sb.WriteString(string(runes))
	}
	return sb.String()
}

func hasRTL(s string) bool {
	for _, r := range s {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.R, bidi.AL, bidi.AN:
			return true
		}
	}
	return false
}
