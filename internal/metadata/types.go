// Package metadata resolves best-effort page metadata (title, description,
// preview image, favicon) for a bookmarked URL.
package metadata

// MediaType classifies a resolved URL by provider.
type MediaType string

const (
	MediaTypeDefault MediaType = "default"
	MediaTypeYouTube MediaType = "youtube"
	MediaTypeVimeo   MediaType = "vimeo"
)

// ResolvedMetadata is the outcome of one resolution. Enrichment is
// best-effort: every field may be empty, and a resolution never fails
// outright. MediaEmbedID is set exactly when MediaType is youtube or vimeo.
type ResolvedMetadata struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	OGImageURL   string    `json:"og_image_url,omitempty"`
	FaviconURL   string    `json:"favicon_url,omitempty"`
	MediaType    MediaType `json:"media_type"`
	MediaEmbedID string    `json:"media_embed_id,omitempty"`
}

// emptyRecord is the soft-failure result: a valid record with nothing in it.
func emptyRecord() ResolvedMetadata {
	return ResolvedMetadata{MediaType: MediaTypeDefault}
}
