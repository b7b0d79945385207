// Package netscape parses Netscape-format bookmark exports, the tag soup
// every browser's "export bookmarks" feature still produces, into a flat
// list of (category, title, url) records.
package netscape

import (
	"strings"

	"golang.org/x/net/html"
)

// DefaultCategory is assigned to links with no usable enclosing folder.
const DefaultCategory = "Bookmarks"

// rootMarkerAttr flags the browser's toolbar folder, which acts as the
// root of the export.
const rootMarkerAttr = "personal_toolbar_folder"

// Bookmark is one flattened record from an import file.
type Bookmark struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	URL      string `json:"url"`
}

// ParseFlat scans doc for folder headers (H3), list delimiters (DL, /DL)
// and links (A), ignoring everything else, and flattens the folder tree
// into a single category level per record. It never fails on malformed
// input; the worst case is an empty result.
func ParseFlat(doc string) []Bookmark {
	z := html.NewTokenizer(strings.NewReader(doc))

	var (
		bookmarks  []Bookmark
		stack      []string
		pending    string
		hasPending bool
		rootName   string
		rootKnown  bool
	)

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return bookmarks
		}

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.Data {
			case "h3":
				marker := false
				for _, attr := range tok.Attr {
					if strings.EqualFold(attr.Key, rootMarkerAttr) && isTruthy(attr.Val) {
						marker = true
					}
				}
				name := collapseText(innerText(z, "h3"))
				pending, hasPending = name, true
				// The marked folder wins; otherwise the first top-level
				// folder seen becomes the root.
				if marker && !rootKnown {
					rootName, rootKnown = name, true
				} else if !rootKnown && len(stack) == 0 && rootName == "" {
					rootName = name
				}
			case "dl":
				if hasPending {
					stack = append(stack, pending)
					pending, hasPending = "", false
				} else {
					// Structural nesting with no folder header.
					stack = append(stack, "")
				}
			case "a":
				href := ""
				for _, attr := range tok.Attr {
					if strings.EqualFold(attr.Key, "href") {
						href = strings.TrimSpace(attr.Val)
						break
					}
				}
				text := collapseText(innerText(z, "a"))
				if href == "" {
					continue
				}
				title := text
				if title == "" {
					title = href
				}
				bookmarks = append(bookmarks, Bookmark{
					Category: categoryFor(stack, rootName),
					Title:    title,
					URL:      href,
				})
			}
		case html.EndTagToken:
			tok := z.Token()
			if tok.Data == "dl" && len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
}

// categoryFor flattens the folder stack to one level: everything nested
// below the root's first-level folders collapses into those folders.
func categoryFor(stack []string, rootName string) string {
	folders := stack[:0:0]
	for _, name := range stack {
		if strings.TrimSpace(name) != "" {
			folders = append(folders, name)
		}
	}
	if len(folders) == 0 {
		return DefaultCategory
	}
	if rootName != "" && folders[0] == rootName {
		if len(folders) > 1 {
			return folders[1]
		}
		return DefaultCategory
	}
	return folders[0]
}

// innerText consumes tokens up to the matching end tag and returns the
// concatenated text. Stops early at EOF so truncated files cannot hang it.
func innerText(z *html.Tokenizer, endTag string) string {
	var b strings.Builder
	for {
		switch z.Next() {
		case html.TextToken:
			b.Write(z.Text())
		case html.EndTagToken:
			name, _ := z.TagName()
			if string(name) == endTag {
				return b.String()
			}
		case html.ErrorToken:
			return b.String()
		case html.StartTagToken:
			// A new open tag means the element was never closed.
			name, _ := z.TagName()
			if string(name) == "h3" || string(name) == "dl" || string(name) == "a" {
				return b.String()
			}
		}
	}
}

func collapseText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isTruthy(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "", "0", "false", "no":
		return false
	}
	return true
}
