package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
)

// YouTube video IDs are exactly 11 URL-safe characters, reachable through
// watch?v=, /embed/, /v/ or the youtu.be short form.
var youtubePattern = regexp.MustCompile(`(?:youtube\.com/(?:.*[?&]v=|embed/|v/)|youtu\.be/)([A-Za-z0-9_-]{11})`)

var vimeoPattern = regexp.MustCompile(`vimeo\.com/(\d+)`)

const (
	youtubeFaviconURL = "https://www.youtube.com/favicon.ico"
	vimeoFaviconURL   = "https://vimeo.com/favicon.ico"
)

// Overridable in tests.
var vimeoAPIBase = "https://vimeo.com/api/v2"

// YouTubeVideoID extracts the video ID from a YouTube URL, "" when the URL
// is not a recognized YouTube form.
func YouTubeVideoID(rawURL string) string {
	if m := youtubePattern.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}
	return ""
}

// VimeoVideoID extracts the numeric video ID from a Vimeo URL, "" when the
// URL is not a Vimeo video page.
func VimeoVideoID(rawURL string) string {
	if m := vimeoPattern.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}
	return ""
}

// YouTubeThumbnailURL returns the deterministic max-resolution thumbnail
// for a video ID. No request is needed to derive it.
func YouTubeThumbnailURL(id string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", id)
}

type vimeoVideo struct {
	ThumbnailLarge string `json:"thumbnail_large"`
}

// fetchVimeoThumbnail asks Vimeo's public video endpoint for the large
// thumbnail. ok=false means the endpoint was unreachable and the caller
// should fall back to the generic fetch path.
func (r *Resolver) fetchVimeoThumbnail(ctx context.Context, id string) (thumbnail string, ok bool) {
	resp, err := r.client.R().
		SetContext(ctx).
		Get(fmt.Sprintf("%s/video/%s.json", vimeoAPIBase, id))
	if err != nil || !resp.IsSuccess() {
		return "", false
	}

	var videos []vimeoVideo
	if err := json.Unmarshal(resp.Body(), &videos); err != nil || len(videos) == 0 {
		// Reachable but unexpected payload: still the vimeo path, just
		// without a thumbnail.
		return "", true
	}
	return videos[0].ThumbnailLarge, true
}
