package metadata

import "strings"

// Separators that site names are glued onto page titles with, in match
// priority order for same-position ties. Spaced variants come first so
// "A - B" cuts at the spaced dash rather than mid-word hyphens.
var titleSeparators = []string{
	" | ", " - ", " — ", " – ", " ! ",
	"!", "|", "-", "—", "–",
	", ", ",", ".", "·",
}

// TrimTitle keeps the part of a page title before the earliest separator
// occurrence, so "My Page | Example Site" becomes "My Page".
func TrimTitle(title string) string {
	earliest := -1
	for _, sep := range titleSeparators {
		idx := strings.Index(title, sep)
		if idx >= 0 && (earliest == -1 || idx < earliest) {
			earliest = idx
		}
	}
	if earliest >= 0 {
		title = title[:earliest]
	}
	return strings.TrimSpace(title)
}

// TrimDescription truncates at the first full stop, keeping it, so multi-
// sentence blurbs reduce to their first sentence.
func TrimDescription(desc string) string {
	if idx := strings.Index(desc, "."); idx >= 0 {
		desc = desc[:idx+1]
	}
	return strings.TrimSpace(desc)
}
