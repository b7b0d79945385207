// Package urlkey derives stable storage identities from user-supplied URLs.
// Two URLs that differ only in scheme, default port, hostname case, tracking
// parameters, query ordering or a trailing slash map to the same key.
package urlkey

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// ErrInvalidURL marks input that cannot be parsed as a URL even after
// assuming an https scheme.
var ErrInvalidURL = errors.New("invalid url")

// Kind identifies the media object stored for a bookmark.
type Kind string

const (
	KindOGImage Kind = "ogimage"
	KindFavicon Kind = "favicon"
)

// Query parameter names stripped during normalization. Matched
// case-insensitively against the exact name.
var trackingParams = map[string]struct{}{
	"utm_source":      {},
	"utm_medium":      {},
	"utm_campaign":    {},
	"utm_term":        {},
	"utm_content":     {},
	"utm_id":          {},
	"utm_name":        {},
	"utm_reader":      {},
	"utm_viz_id":      {},
	"utm_pubreferrer": {},
	"utm_swu":         {},
	"gclid":           {},
	"fbclid":          {},
	"igshid":          {},
	"mc_cid":          {},
	"mc_eid":          {},
	"ref":             {},
}

// Normalize returns the canonical form of raw. The result is idempotent:
// Normalize(Normalize(u)) == Normalize(u).
func Normalize(raw string) (string, error) {
	u, err := parseLenient(raw)
	if err != nil {
		return "", err
	}

	// http and https are the same identity for key purposes
	u.Scheme = "https"
	u.Fragment = ""

	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if port == "443" || port == "80" {
		port = ""
	}
	if port != "" {
		u.Host = host + ":" + port
	} else {
		u.Host = host
	}

	u.RawQuery = normalizeQuery(u.RawQuery)

	if u.Path != "/" && strings.HasSuffix(u.Path, "/") {
		u.Path = strings.TrimSuffix(u.Path, "/")
	}

	return u.String(), nil
}

// MediaKey returns the content-addressed storage key for raw: a SHA-256 hex
// digest of the normalized URL.
func MediaKey(raw string) (string, error) {
	normalized, err := Normalize(raw)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:]), nil
}

// MediaPath returns the object path for one media kind of a bookmark:
// {userID}/{kind}/{key}.{ext}.
func MediaPath(userID, raw string, kind Kind, ext string) (string, error) {
	key, err := MediaKey(raw)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s/%s.%s", userID, kind, key, strings.TrimPrefix(ext, ".")), nil
}

func parseLenient(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidURL)
	}

	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" && u.Host != "" {
		return u, nil
	}

	// Schemeless input like "example.com/a" parses with an empty host;
	// retry with an assumed https prefix. Input that already carries a
	// scheme separator is genuinely malformed.
	if strings.Contains(raw, "://") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	u, err = url.Parse("https://" + raw)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return u, nil
}

func normalizeQuery(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return rawQuery
	}

	type pair struct{ k, v string }
	var pairs []pair
	for k, vs := range values {
		if _, tracked := trackingParams[strings.ToLower(k)]; tracked {
			continue
		}
		for _, v := range vs {
			pairs = append(pairs, pair{k, v})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].k != pairs[j].k {
			return pairs[i].k < pairs[j].k
		}
		return pairs[i].v < pairs[j].v
	})

	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.v))
	}
	return b.String()
}
