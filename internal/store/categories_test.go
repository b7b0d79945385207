package store

import (
	"context"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sirupsen/logrus"
)

func newMockCategoryStore(t *testing.T) (*CategoryStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewCategoryStore(db, logger), mock
}

func categoryRows(categories ...Category) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "icon", "color", "sort_order", "created_at"})
	for _, c := range categories {
		rows.AddRow(c.ID, c.UserID, c.Name, c.Icon, c.Color, c.SortOrder, c.CreatedAt)
	}
	return rows
}

func TestCategoryStoreList(t *testing.T) {
	s, mock := newMockCategoryStore(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT `+categoryColumns+` FROM categories WHERE user_id = $1 ORDER BY sort_order, name`)).
		WithArgs("u1").
		WillReturnRows(categoryRows(
			Category{ID: "c1", UserID: "u1", Name: "Dev", SortOrder: 0, CreatedAt: now},
			Category{ID: "c2", UserID: "u1", Name: "Reading", SortOrder: 1, CreatedAt: now},
		))

	got, err := s.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Dev" || got[1].Name != "Reading" {
		t.Fatalf("got %+v", got)
	}
}

func TestCategoryStoreEnsureNames(t *testing.T) {
	s, mock := newMockCategoryStore(t)
	now := time.Now()

	upsert := regexp.QuoteMeta(`ON CONFLICT (user_id, name) DO NOTHING`)
	mock.ExpectExec(upsert).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(upsert).WillReturnResult(sqlmock.NewResult(0, 0)) // already exists

	mock.ExpectQuery(`SELECT .+ FROM categories WHERE user_id = \$1`).
		WithArgs("u1").
		WillReturnRows(categoryRows(
			Category{ID: "c1", UserID: "u1", Name: "Dev", CreatedAt: now},
			Category{ID: "c2", UserID: "u1", Name: "Reading", CreatedAt: now},
		))

	byName, err := s.EnsureNames(context.Background(), "u1", []string{"Dev", "Reading"})
	if err != nil {
		t.Fatalf("EnsureNames: %v", err)
	}
	if byName["Dev"] != "c1" || byName["Reading"] != "c2" {
		t.Fatalf("got %v", byName)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet SQL expectations: %v", err)
	}
}

func TestCategoryStoreEnsureNamesEmpty(t *testing.T) {
	s, _ := newMockCategoryStore(t)
	byName, err := s.EnsureNames(context.Background(), "u1", nil)
	if err != nil {
		t.Fatalf("EnsureNames: %v", err)
	}
	if len(byName) != 0 {
		t.Fatalf("expected no work for empty input, got %v", byName)
	}
}

func TestCategoryStoreDeleteNotFound(t *testing.T) {
	s, mock := newMockCategoryStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM categories WHERE user_id = $1 AND id = $2`)).
		WithArgs("u1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.Delete(context.Background(), "u1", "missing"); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
