package handlers

import (
	"context"
	"io"

	"mindcave/internal/importer"
	"mindcave/internal/metadata"
	"mindcave/internal/store"
	"mindcave/internal/urlkey"
)

type MetadataResolver interface {
	Resolve(ctx context.Context, rawURL string) metadata.ResolvedMetadata
}

type BookmarkRepo interface {
	Create(ctx context.Context, b store.Bookmark) (store.Bookmark, error)
	Get(ctx context.Context, userID, id string) (store.Bookmark, error)
	List(ctx context.Context, userID, categoryID, search string) ([]store.Bookmark, error)
	Update(ctx context.Context, userID string, b store.Bookmark) (store.Bookmark, error)
	Delete(ctx context.Context, userID, id string) error
}

type CategoryRepo interface {
	Create(ctx context.Context, c store.Category) (store.Category, error)
	List(ctx context.Context, userID string) ([]store.Category, error)
	Update(ctx context.Context, userID string, c store.Category) (store.Category, error)
	Delete(ctx context.Context, userID, id string) error
}

type BookmarkImporter interface {
	Import(ctx context.Context, userID, fileHTML string, opts importer.Options) (importer.Result, error)
}

type MediaStore interface {
	Upload(ctx context.Context, userID, rawURL string, kind urlkey.Kind, ext, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, userID, rawURL string, kind urlkey.Kind, ext string) error
	Exists(ctx context.Context, userID, rawURL string, kind urlkey.Kind) (bool, string, error)
	PublicURL(key string) string
}
