// Package importer turns an uploaded bookmark export file into stored
// bookmarks: parse, create missing categories, bulk insert, then enrich
// each new bookmark with resolved metadata.
package importer

import (
	"context"
	"database/sql"
	"sync"

	"mindcave/internal/metadata"
	"mindcave/internal/netscape"
	"mindcave/internal/store"
	"mindcave/pkg/logging"
)

const defaultEnrichWorkers = 5

// Options controls one import run.
type Options struct {
	// SkipDuplicates drops records whose URL the user already has.
	SkipDuplicates bool
	// Enrich resolves metadata for every imported bookmark after insert.
	Enrich bool
	// Workers caps concurrent metadata resolutions. Zero means the default.
	Workers int
}

// Result reports what an import run did.
type Result struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// BookmarkWriter is the slice of the bookmark store the importer needs.
type BookmarkWriter interface {
	ExistingURLs(ctx context.Context, userID string, urls []string) (map[string]bool, error)
	BulkInsert(ctx context.Context, bookmarks []store.Bookmark) ([]string, error)
	UpdateMetadata(ctx context.Context, userID, id string, title, description, ogImageURL, faviconURL, mediaType, mediaEmbedID string) error
}

// CategoryEnsurer creates missing categories and maps names to IDs.
type CategoryEnsurer interface {
	EnsureNames(ctx context.Context, userID string, names []string) (map[string]string, error)
}

// MetadataResolver resolves enrichment metadata for a URL.
type MetadataResolver interface {
	Resolve(ctx context.Context, rawURL string) metadata.ResolvedMetadata
}

// Importer wires the parser, stores and resolver together.
type Importer struct {
	bookmarks  BookmarkWriter
	categories CategoryEnsurer
	resolver   MetadataResolver
	logger     logging.Logger
}

func New(bookmarks BookmarkWriter, categories CategoryEnsurer, resolver MetadataResolver, logger logging.Logger) *Importer {
	return &Importer{
		bookmarks:  bookmarks,
		categories: categories,
		resolver:   resolver,
		logger:     logger,
	}
}

// Import parses fileHTML and stores its bookmarks for userID. Parse
// problems never fail the run; an unreadable file imports zero records.
func (i *Importer) Import(ctx context.Context, userID, fileHTML string, opts Options) (Result, error) {
	records := netscape.ParseFlat(fileHTML)
	if len(records) == 0 {
		return Result{}, nil
	}

	seenNames := make(map[string]bool, 8)
	names := make([]string, 0, 8)
	urls := make([]string, 0, len(records))
	for _, r := range records {
		if !seenNames[r.Category] {
			seenNames[r.Category] = true
			names = append(names, r.Category)
		}
		urls = append(urls, r.URL)
	}

	categoryIDs, err := i.categories.EnsureNames(ctx, userID, names)
	if err != nil {
		return Result{}, err
	}

	existing := map[string]bool{}
	if opts.SkipDuplicates {
		existing, err = i.bookmarks.ExistingURLs(ctx, userID, urls)
		if err != nil {
			return Result{}, err
		}
	}

	var (
		rows    []store.Bookmark
		skipped int
	)
	inFile := make(map[string]bool, len(records))
	for _, r := range records {
		if opts.SkipDuplicates && (existing[r.URL] || inFile[r.URL]) {
			skipped++
			continue
		}
		inFile[r.URL] = true

		var categoryID sql.NullString
		if id, ok := categoryIDs[r.Category]; ok {
			categoryID = sql.NullString{String: id, Valid: true}
		}
		rows = append(rows, store.Bookmark{
			UserID:     userID,
			CategoryID: categoryID,
			URL:        r.URL,
			Title:      r.Title,
			MediaType:  "default",
		})
	}

	if len(rows) == 0 {
		return Result{Skipped: skipped}, nil
	}

	ids, err := i.bookmarks.BulkInsert(ctx, rows)
	if err != nil {
		return Result{Skipped: skipped}, err
	}

	if opts.Enrich && i.resolver != nil {
		i.enrich(ctx, userID, ids, rows, opts.Workers)
	}

	return Result{Imported: len(ids), Skipped: skipped}, nil
}

type enrichJob struct {
	id  string
	url string
}

// enrich resolves metadata for the inserted bookmarks with a bounded
// worker pool. Failures degrade to the unenriched row.
func (i *Importer) enrich(ctx context.Context, userID string, ids []string, rows []store.Bookmark, workers int) {
	if workers <= 0 {
		workers = defaultEnrichWorkers
	}
	if workers > len(ids) {
		workers = len(ids)
	}

	jobs := make(chan enrichJob)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				record := i.resolver.Resolve(ctx, job.url)
				err := i.bookmarks.UpdateMetadata(ctx, userID, job.id,
					record.Title, record.Description, record.OGImageURL,
					record.FaviconURL, string(record.MediaType), record.MediaEmbedID)
				if err != nil {
					i.logger.WithFields(logging.Fields{
						"bookmark_id": job.id,
						"url":         job.url,
						"error":       err.Error(),
					}).Warn("Failed to store resolved metadata")
				}
			}
		}()
	}

	for idx, id := range ids {
		jobs <- enrichJob{id: id, url: rows[idx].URL}
	}
	close(jobs)
	wg.Wait()
}
