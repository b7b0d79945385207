// Package htmlmeta extracts metadata from raw, possibly malformed HTML.
// It works on the token stream rather than a built DOM so that broken
// markup degrades to "no data found" instead of a parse failure.
package htmlmeta

import (
	"strings"

	"golang.org/x/net/html"
)

// MetaSelector names one way a page can declare a metadata value,
// e.g. {Attr: "property", Value: "og:title"}.
type MetaSelector struct {
	Attr  string // "property" or "name"
	Value string
}

// IconCandidate is one icon-family <link> tag found on a page.
type IconCandidate struct {
	Href         string
	Rel          string // lowercased, trimmed
	Sizes        int    // max declared edge in px; 0 when absent or unparsable
	Type         string
	AbsoluteHref string // resolved against the page URL
}

// SizeAny stands in for a declared sizes="any" (scalable) icon.
const SizeAny = 1024

// ExtractMetaContent returns the content attribute of the first <meta> tag
// matching a selector, trying selectors in the given precedence order.
// Returns "" when nothing matches.
func ExtractMetaContent(doc string, selectors []MetaSelector) string {
	metas := collectTags(doc, "meta")
	for _, sel := range selectors {
		for _, attrs := range metas {
			if !strings.EqualFold(attrs[sel.Attr], sel.Value) {
				continue
			}
			if content := attrs["content"]; content != "" {
				return content
			}
		}
	}
	return ""
}

// ExtractTitle returns the inner text of the first <title> tag, or "".
func ExtractTitle(doc string) string {
	z := html.NewTokenizer(strings.NewReader(doc))
	inTitle := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			name, _ := z.TagName()
			inTitle = strings.EqualFold(string(name), "title")
		case html.TextToken:
			if inTitle {
				return strings.TrimSpace(string(z.Text()))
			}
		case html.EndTagToken:
			inTitle = false
		}
	}
}

// ExtractIconCandidates scans all <link> tags and retains the icon-family
// ones: rel containing "icon", or exactly "shortcut icon",
// "apple-touch-icon" or "apple-touch-icon-precomposed" (case-insensitive).
func ExtractIconCandidates(doc string) []IconCandidate {
	var out []IconCandidate
	for _, attrs := range collectTags(doc, "link") {
		rel := strings.ToLower(strings.TrimSpace(attrs["rel"]))
		if !isIconRel(rel) {
			continue
		}
		out = append(out, IconCandidate{
			Href:  attrs["href"],
			Rel:   rel,
			Sizes: parseSizes(attrs["sizes"]),
			Type:  attrs["type"],
		})
	}
	return out
}

func isIconRel(rel string) bool {
	switch rel {
	case "shortcut icon", "apple-touch-icon", "apple-touch-icon-precomposed":
		return true
	}
	return strings.Contains(rel, "icon")
}

// parseSizes reduces a sizes attribute to the largest declared edge.
// "any" maps to SizeAny; unparsable input maps to 0.
func parseSizes(attr string) int {
	attr = strings.ToLower(strings.TrimSpace(attr))
	if attr == "" {
		return 0
	}
	if attr == "any" {
		return SizeAny
	}
	max := 0
	for _, token := range strings.Fields(attr) {
		for _, part := range strings.Split(token, "x") {
			n := 0
			valid := part != ""
			for _, r := range part {
				if r < '0' || r > '9' {
					valid = false
					break
				}
				n = n*10 + int(r-'0')
			}
			if valid && n > max {
				max = n
			}
		}
	}
	return max
}

// collectTags tokenizes doc and returns the attributes of every start or
// self-closing tag with the given name, in document order. Attribute keys
// are lowercased; malformed regions are skipped by the tokenizer.
func collectTags(doc, name string) []map[string]string {
	var out []map[string]string
	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return out
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		tagName, hasAttr := z.TagName()
		if !strings.EqualFold(string(tagName), name) || !hasAttr {
			continue
		}
		attrs := make(map[string]string)
		for {
			key, val, more := z.TagAttr()
			attrs[strings.ToLower(string(key))] = strings.TrimSpace(string(val))
			if !more {
				break
			}
		}
		out = append(out, attrs)
	}
}
