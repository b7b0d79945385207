package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"mindcave/pkg/logging"
)

// InsertBatchSize bounds multi-row inserts so a large import file stays
// within sane statement sizes.
const InsertBatchSize = 200

// ErrNotFound is returned when a row does not exist for the given owner.
var ErrNotFound = fmt.Errorf("not found")

// BookmarkStore persists bookmarks in Postgres.
type BookmarkStore struct {
	db     *sql.DB
	logger logging.Logger
}

func NewBookmarkStore(db *sql.DB, logger logging.Logger) *BookmarkStore {
	return &BookmarkStore{db: db, logger: logger}
}

const bookmarkColumns = `id, user_id, category_id, url, title, description, og_image_url, favicon_url, media_type, media_embed_id, created_at, updated_at`

func scanBookmark(row interface{ Scan(...interface{}) error }) (Bookmark, error) {
	var b Bookmark
	err := row.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.URL, &b.Title, &b.Description,
		&b.OGImageURL, &b.FaviconURL, &b.MediaType, &b.MediaEmbedID, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// Create inserts a bookmark and returns it with generated fields filled in.
func (s *BookmarkStore) Create(ctx context.Context, b Bookmark) (Bookmark, error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.MediaType == "" {
		b.MediaType = "default"
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO bookmarks (id, user_id, category_id, url, title, description, og_image_url, favicon_url, media_type, media_embed_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+bookmarkColumns,
		b.ID, b.UserID, b.CategoryID, b.URL, b.Title, b.Description,
		b.OGImageURL, b.FaviconURL, b.MediaType, b.MediaEmbedID)
	created, err := scanBookmark(row)
	if err != nil {
		return Bookmark{}, fmt.Errorf("insert bookmark: %w", err)
	}
	return created, nil
}

// Get returns one bookmark owned by userID.
func (s *BookmarkStore) Get(ctx context.Context, userID, id string) (Bookmark, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks WHERE user_id = $1 AND id = $2`,
		userID, id)
	b, err := scanBookmark(row)
	if err == sql.ErrNoRows {
		return Bookmark{}, ErrNotFound
	}
	if err != nil {
		return Bookmark{}, fmt.Errorf("get bookmark: %w", err)
	}
	return b, nil
}

// List returns the user's bookmarks, newest first, optionally filtered by
// category and a substring match over title, URL and description.
func (s *BookmarkStore) List(ctx context.Context, userID, categoryID, search string) ([]Bookmark, error) {
	query := `SELECT ` + bookmarkColumns + ` FROM bookmarks WHERE user_id = $1`
	args := []interface{}{userID}
	if categoryID != "" {
		args = append(args, categoryID)
		query += fmt.Sprintf(` AND category_id = $%d`, len(args))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		query += fmt.Sprintf(` AND (title ILIKE $%d OR url ILIKE $%d OR description ILIKE $%d)`, len(args), len(args), len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []Bookmark
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}

// Update rewrites the mutable fields of a bookmark owned by userID.
func (s *BookmarkStore) Update(ctx context.Context, userID string, b Bookmark) (Bookmark, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE bookmarks
		SET category_id = $3, url = $4, title = $5, description = $6,
		    og_image_url = $7, favicon_url = $8, media_type = $9, media_embed_id = $10,
		    updated_at = NOW()
		WHERE user_id = $1 AND id = $2
		RETURNING `+bookmarkColumns,
		userID, b.ID, b.CategoryID, b.URL, b.Title, b.Description,
		b.OGImageURL, b.FaviconURL, b.MediaType, b.MediaEmbedID)
	updated, err := scanBookmark(row)
	if err == sql.ErrNoRows {
		return Bookmark{}, ErrNotFound
	}
	if err != nil {
		return Bookmark{}, fmt.Errorf("update bookmark: %w", err)
	}
	return updated, nil
}

// UpdateMetadata stores freshly resolved enrichment fields without
// touching the user-editable ones.
func (s *BookmarkStore) UpdateMetadata(ctx context.Context, userID, id string, title, description, ogImageURL, faviconURL, mediaType, mediaEmbedID string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE bookmarks
		SET title = CASE WHEN $3 = '' THEN title ELSE $3 END,
		    description = $4, og_image_url = $5, favicon_url = $6,
		    media_type = $7, media_embed_id = $8, updated_at = NOW()
		WHERE user_id = $1 AND id = $2`,
		userID, id, title, description, ogImageURL, faviconURL, mediaType, mediaEmbedID)
	if err != nil {
		return fmt.Errorf("update bookmark metadata: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a bookmark owned by userID.
func (s *BookmarkStore) Delete(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM bookmarks WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ExistingURLs returns the subset of urls already saved by the user, for
// import-time duplicate skipping.
func (s *BookmarkStore) ExistingURLs(ctx context.Context, userID string, urls []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	if len(urls) == 0 {
		return existing, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT url FROM bookmarks WHERE user_id = $1 AND url = ANY($2)`,
		userID, pq.Array(urls))
	if err != nil {
		return nil, fmt.Errorf("query existing urls: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scan url: %w", err)
		}
		existing[u] = true
	}
	return existing, rows.Err()
}

// BulkInsert writes bookmarks in batches of InsertBatchSize inside one
// transaction per batch. Returns the IDs in input order.
func (s *BookmarkStore) BulkInsert(ctx context.Context, bookmarks []Bookmark) ([]string, error) {
	ids := make([]string, 0, len(bookmarks))
	for start := 0; start < len(bookmarks); start += InsertBatchSize {
		end := start + InsertBatchSize
		if end > len(bookmarks) {
			end = len(bookmarks)
		}
		batchIDs, err := s.insertBatch(ctx, bookmarks[start:end])
		if err != nil {
			return ids, err
		}
		ids = append(ids, batchIDs...)
	}
	return ids, nil
}

func (s *BookmarkStore) insertBatch(ctx context.Context, batch []Bookmark) ([]string, error) {
	const cols = 10
	placeholders := make([]string, 0, len(batch))
	args := make([]interface{}, 0, len(batch)*cols)
	ids := make([]string, 0, len(batch))

	for i, b := range batch {
		if b.ID == "" {
			b.ID = uuid.New().String()
		}
		if b.MediaType == "" {
			b.MediaType = "default"
		}
		ids = append(ids, b.ID)
		base := i * cols
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10))
		args = append(args, b.ID, b.UserID, b.CategoryID, b.URL, b.Title, b.Description,
			b.OGImageURL, b.FaviconURL, b.MediaType, b.MediaEmbedID)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bookmarks (id, user_id, category_id, url, title, description, og_image_url, favicon_url, media_type, media_embed_id)
		VALUES `+strings.Join(placeholders, ", "), args...)
	if err != nil {
		return nil, fmt.Errorf("bulk insert bookmarks: %w", err)
	}
	return ids, nil
}
