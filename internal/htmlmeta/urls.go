package htmlmeta

import (
	"net/url"
	"strings"
)

// AbsoluteURL resolves a possibly-relative href against base. Returns ""
// for data: URLs and anything that fails to resolve.
func AbsoluteURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(strings.ToLower(href), "data:") {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil || b.Host == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := b.ResolveReference(ref)
	if resolved.Host == "" {
		return ""
	}
	return resolved.String()
}

// Origin returns scheme://host for a page URL, or "" when unparsable.
func Origin(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" || u.Scheme == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
