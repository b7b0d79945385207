package metadata

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"

	"mindcave/internal/htmlmeta"
	"mindcave/pkg/logging"
)

const (
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	htmlAccept       = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

	// Declared icons below this edge upscale badly; a rendering service
	// gives consistent output instead.
	minUsableIconSize = 48

	defaultFetchTimeout = 8 * time.Second
)

// Config configures a Resolver.
type Config struct {
	FetchTimeout time.Duration
	UserAgent    string
	// Resolutions, when set, is incremented per resolution with labels
	// (media_type, outcome).
	Resolutions *prometheus.CounterVec
}

// Resolver derives ResolvedMetadata from arbitrary URLs. It is safe for
// concurrent use; each Resolve call is independent.
type Resolver struct {
	client      *resty.Client
	logger      logging.Logger
	resolutions *prometheus.CounterVec
}

// NewResolver builds a resolver with a bounded-timeout HTTP client that
// follows redirects and presents a desktop-browser User-Agent.
func NewResolver(cfg Config, logger logging.Logger) *Resolver {
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = browserUserAgent
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10)).
		SetHeader("User-Agent", userAgent)

	return &Resolver{
		client:      client,
		logger:      logger,
		resolutions: cfg.Resolutions,
	}
}

// Resolve returns metadata for rawURL. It never returns an error: any
// fetch or parse problem degrades to an empty default record, because
// enrichment must not block bookmark creation.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) ResolvedMetadata {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return emptyRecord()
	}

	if id := YouTubeVideoID(rawURL); id != "" {
		r.count(MediaTypeYouTube, "matched")
		return ResolvedMetadata{
			OGImageURL:   YouTubeThumbnailURL(id),
			FaviconURL:   youtubeFaviconURL,
			MediaType:    MediaTypeYouTube,
			MediaEmbedID: id,
		}
	}

	if id := VimeoVideoID(rawURL); id != "" {
		if thumbnail, ok := r.fetchVimeoThumbnail(ctx, id); ok {
			r.count(MediaTypeVimeo, "matched")
			return ResolvedMetadata{
				OGImageURL:   thumbnail,
				FaviconURL:   vimeoFaviconURL,
				MediaType:    MediaTypeVimeo,
				MediaEmbedID: id,
			}
		}
		// Vimeo unreachable: treat like any other page.
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Accept", htmlAccept).
		Get(rawURL)
	if err != nil {
		r.logger.WithFields(logging.Fields{
			"url":   rawURL,
			"error": err.Error(),
		}).Debug("Metadata fetch failed")
		r.count(MediaTypeDefault, "fetch_error")
		return emptyRecord()
	}
	if !resp.IsSuccess() {
		r.logger.WithFields(logging.Fields{
			"url":    rawURL,
			"status": resp.StatusCode(),
		}).Debug("Metadata fetch returned non-success status")
		r.count(MediaTypeDefault, "bad_status")
		return emptyRecord()
	}

	record := r.extract(rawURL, resp.String())
	r.count(MediaTypeDefault, "ok")
	return record
}

func (r *Resolver) extract(pageURL, body string) ResolvedMetadata {
	record := emptyRecord()

	// <title> deliberately outranks og:title here: og values are often the
	// site name rather than the page name.
	title := htmlmeta.ExtractTitle(body)
	if title == "" {
		title = htmlmeta.ExtractMetaContent(body, []htmlmeta.MetaSelector{
			{Attr: "property", Value: "og:title"},
			{Attr: "name", Value: "twitter:title"},
		})
	}
	if title != "" {
		record.Title = TrimTitle(htmlmeta.DecodeEntities(title))
	} else {
		// The hostname fallback skips trimming: the dot separator would
		// cut "example.com" down to "example".
		record.Title = hostnameOf(pageURL)
	}

	if desc := htmlmeta.ExtractMetaContent(body, []htmlmeta.MetaSelector{
		{Attr: "property", Value: "og:description"},
		{Attr: "name", Value: "twitter:description"},
		{Attr: "name", Value: "description"},
	}); desc != "" {
		record.Description = TrimDescription(htmlmeta.DecodeEntities(desc))
	}

	if image := htmlmeta.ExtractMetaContent(body, []htmlmeta.MetaSelector{
		{Attr: "property", Value: "og:image"},
		{Attr: "property", Value: "og:image:secure_url"},
		{Attr: "name", Value: "twitter:image"},
		{Attr: "name", Value: "twitter:image:src"},
	}); image != "" {
		record.OGImageURL = htmlmeta.AbsoluteURL(pageURL, image)
	}

	record.FaviconURL = r.resolveFavicon(pageURL, body)

	return record
}

// resolveFavicon applies the declared-icon scoring, falling back to a
// favicon-rendering service when the page declares no icons or only tiny
// ones.
func (r *Resolver) resolveFavicon(pageURL, body string) string {
	declared := htmlmeta.ExtractIconCandidates(body)
	maxSize := htmlmeta.MaxDeclaredSize(declared)
	if len(declared) == 0 || (maxSize > 0 && maxSize < minUsableIconSize) {
		if host := hostnameOf(pageURL); host != "" {
			return faviconServiceURL(host)
		}
		return ""
	}
	return htmlmeta.PickBestIconURL(pageURL, body)
}

func faviconServiceURL(domain string) string {
	return "https://www.google.com/s2/favicons?domain=" + url.QueryEscape(domain) + "&sz=64"
}

func hostnameOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func (r *Resolver) count(mt MediaType, outcome string) {
	if r.resolutions != nil {
		r.resolutions.WithLabelValues(string(mt), outcome).Inc()
	}
}
