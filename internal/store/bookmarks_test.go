package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func newMockBookmarkStore(t *testing.T) (*BookmarkStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewBookmarkStore(db, logger), mock
}

func bookmarkRows(bookmarks ...Bookmark) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "category_id", "url", "title", "description",
		"og_image_url", "favicon_url", "media_type", "media_embed_id",
		"created_at", "updated_at",
	})
	for _, b := range bookmarks {
		rows.AddRow(b.ID, b.UserID, b.CategoryID, b.URL, b.Title, b.Description,
			b.OGImageURL, b.FaviconURL, b.MediaType, b.MediaEmbedID, b.CreatedAt, b.UpdatedAt)
	}
	return rows
}

func TestBookmarkStoreGet(t *testing.T) {
	s, mock := newMockBookmarkStore(t)
	now := time.Now()
	want := Bookmark{
		ID: "b1", UserID: "u1", URL: "https://go.dev/", Title: "Go",
		MediaType: "default", CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT `+bookmarkColumns+` FROM bookmarks WHERE user_id = $1 AND id = $2`)).
		WithArgs("u1", "b1").
		WillReturnRows(bookmarkRows(want))

	got, err := s.Get(context.Background(), "u1", "b1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.URL != want.URL || got.Title != want.Title {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet SQL expectations: %v", err)
	}
}

func TestBookmarkStoreListFilters(t *testing.T) {
	s, mock := newMockBookmarkStore(t)
	now := time.Now()
	want := Bookmark{
		ID: "b1", UserID: "u1", URL: "https://go.dev/blog/", Title: "The Go Blog",
		MediaType: "default", CreatedAt: now, UpdatedAt: now,
	}

	query := `SELECT ` + bookmarkColumns + ` FROM bookmarks WHERE user_id = $1` +
		` AND category_id = $2 AND (title ILIKE $3 OR url ILIKE $3 OR description ILIKE $3)` +
		` ORDER BY created_at DESC`
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs("u1", "c1", "%blog%").
		WillReturnRows(bookmarkRows(want))

	got, err := s.List(context.Background(), "u1", "c1", "blog")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].ID != want.ID {
		t.Fatalf("got %+v, want one row %q", got, want.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet SQL expectations: %v", err)
	}
}

func TestBookmarkStoreGetNotFound(t *testing.T) {
	s, mock := newMockBookmarkStore(t)

	mock.ExpectQuery(`SELECT .+ FROM bookmarks WHERE user_id`).
		WithArgs("u1", "missing").
		WillReturnError(sql.ErrNoRows)

	if _, err := s.Get(context.Background(), "u1", "missing"); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestBookmarkStoreDeleteNotFound(t *testing.T) {
	s, mock := newMockBookmarkStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM bookmarks WHERE user_id = $1 AND id = $2`)).
		WithArgs("u1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.Delete(context.Background(), "u1", "missing"); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestBookmarkStoreExistingURLs(t *testing.T) {
	s, mock := newMockBookmarkStore(t)
	urls := []string{"https://a.example.com/", "https://b.example.com/"}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT url FROM bookmarks WHERE user_id = $1 AND url = ANY($2)`)).
		WithArgs("u1", pq.Array(urls)).
		WillReturnRows(sqlmock.NewRows([]string{"url"}).AddRow("https://a.example.com/"))

	existing, err := s.ExistingURLs(context.Background(), "u1", urls)
	if err != nil {
		t.Fatalf("ExistingURLs: %v", err)
	}
	if !existing["https://a.example.com/"] || existing["https://b.example.com/"] {
		t.Fatalf("got %v", existing)
	}
}

func TestBookmarkStoreExistingURLsEmptyInput(t *testing.T) {
	s, _ := newMockBookmarkStore(t)
	existing, err := s.ExistingURLs(context.Background(), "u1", nil)
	if err != nil {
		t.Fatalf("ExistingURLs: %v", err)
	}
	if len(existing) != 0 {
		t.Fatalf("expected empty map without querying, got %v", existing)
	}
}

func TestBookmarkStoreBulkInsertBatches(t *testing.T) {
	s, mock := newMockBookmarkStore(t)

	total := InsertBatchSize*2 + 50
	bookmarks := make([]Bookmark, total)
	for i := range bookmarks {
		bookmarks[i] = Bookmark{
			UserID: "u1",
			URL:    fmt.Sprintf("https://example.com/%d", i),
			Title:  fmt.Sprintf("Page %d", i),
		}
	}

	// 200 + 200 + 50 rows across three statements
	mock.ExpectExec(`INSERT INTO bookmarks`).WillReturnResult(sqlmock.NewResult(0, InsertBatchSize))
	mock.ExpectExec(`INSERT INTO bookmarks`).WillReturnResult(sqlmock.NewResult(0, InsertBatchSize))
	mock.ExpectExec(`INSERT INTO bookmarks`).WillReturnResult(sqlmock.NewResult(0, 50))

	ids, err := s.BulkInsert(context.Background(), bookmarks)
	if err != nil {
		t.Fatalf("BulkInsert: %v", err)
	}
	if len(ids) != total {
		t.Fatalf("got %d ids, want %d", len(ids), total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet SQL expectations: %v", err)
	}
}

func TestBookmarkStoreBulkInsertEmpty(t *testing.T) {
	s, _ := newMockBookmarkStore(t)
	ids, err := s.BulkInsert(context.Background(), nil)
	if err != nil {
		t.Fatalf("BulkInsert: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("got %v, want no ids", ids)
	}
}
