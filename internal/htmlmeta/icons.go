package htmlmeta

import (
	"sort"
	"strings"
)

// ResolveIconCandidates extracts icon candidates from doc and resolves each
// href against pageURL. Candidates that fail to resolve are dropped.
func ResolveIconCandidates(pageURL, doc string) []IconCandidate {
	var out []IconCandidate
	for _, c := range ExtractIconCandidates(doc) {
		abs := AbsoluteURL(pageURL, c.Href)
		if abs == "" {
			continue
		}
		c.AbsoluteHref = abs
		out = append(out, c)
	}
	return out
}

// MaxDeclaredSize returns the largest declared edge among candidates,
// 0 when none declare one.
func MaxDeclaredSize(cands []IconCandidate) int {
	max := 0
	for _, c := range cands {
		if c.Sizes > max {
			max = c.Sizes
		}
	}
	return max
}

// PickBestIconURL chooses the best declared icon for a page. With no usable
// candidates it guesses {origin}/favicon.ico.
func PickBestIconURL(pageURL, doc string) string {
	cands := ResolveIconCandidates(pageURL, doc)
	if len(cands) == 0 {
		origin := Origin(pageURL)
		if origin == "" {
			return ""
		}
		return origin + "/favicon.ico"
	}

	// Stable sort keeps the earliest declaration on score ties.
	sort.SliceStable(cands, func(i, j int) bool {
		return iconScore(cands[i]) > iconScore(cands[j])
	})
	return cands[0].AbsoluteHref
}

// iconScore weights format over size over rel type: an SVG beats any raster
// size, a large apple-touch-icon beats a 16px classic favicon.
func iconScore(c IconCandidate) int {
	score := 10 * c.Sizes
	href := strings.ToLower(c.Href)
	if strings.HasSuffix(href, ".svg") || strings.Contains(strings.ToLower(c.Type), "svg") {
		score += 10000
	}
	if strings.Contains(c.Rel, "apple-touch-icon") {
		score += 500
	}
	if c.Rel == "shortcut icon" {
		score += 50
	}
	if strings.Contains(href, "favicon") {
		score += 10
	}
	return score
}
