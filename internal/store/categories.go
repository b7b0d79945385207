package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"mindcave/pkg/logging"
)

// CategoryStore persists per-user categories in Postgres.
type CategoryStore struct {
	db     *sql.DB
	logger logging.Logger
}

func NewCategoryStore(db *sql.DB, logger logging.Logger) *CategoryStore {
	return &CategoryStore{db: db, logger: logger}
}

const categoryColumns = `id, user_id, name, icon, color, sort_order, created_at`

func scanCategory(row interface{ Scan(...interface{}) error }) (Category, error) {
	var c Category
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Icon, &c.Color, &c.SortOrder, &c.CreatedAt)
	return c, err
}

// Create inserts a category. The (user_id, name) uniqueness constraint
// surfaces as an error here; import flows use EnsureNames instead.
func (s *CategoryStore) Create(ctx context.Context, c Category) (Category, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (id, user_id, name, icon, color, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+categoryColumns,
		c.ID, c.UserID, c.Name, c.Icon, c.Color, c.SortOrder)
	created, err := scanCategory(row)
	if err != nil {
		return Category{}, fmt.Errorf("insert category: %w", err)
	}
	return created, nil
}

// List returns the user's categories in display order.
func (s *CategoryStore) List(ctx context.Context, userID string) ([]Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE user_id = $1 ORDER BY sort_order, name`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Update rewrites name, icon, color and sort order of a category owned
// by userID.
func (s *CategoryStore) Update(ctx context.Context, userID string, c Category) (Category, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE categories
		SET name = $3, icon = $4, color = $5, sort_order = $6
		WHERE user_id = $1 AND id = $2
		RETURNING `+categoryColumns,
		userID, c.ID, c.Name, c.Icon, c.Color, c.SortOrder)
	updated, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return Category{}, ErrNotFound
	}
	if err != nil {
		return Category{}, fmt.Errorf("update category: %w", err)
	}
	return updated, nil
}

// Delete removes a category. Bookmarks keep existing with a NULL
// category via the schema's ON DELETE SET NULL.
func (s *CategoryStore) Delete(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM categories WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureNames creates any of the given category names the user does not
// have yet and returns a name-to-ID map covering all of them. Used by
// import to diff file folders against existing categories.
func (s *CategoryStore) EnsureNames(ctx context.Context, userID string, names []string) (map[string]string, error) {
	byName := make(map[string]string, len(names))
	if len(names) == 0 {
		return byName, nil
	}

	for _, name := range names {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO categories (id, user_id, name)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id, name) DO NOTHING`,
			uuid.New().String(), userID, name)
		if err != nil {
			return nil, fmt.Errorf("ensure category %q: %w", name, err)
		}
	}

	categories, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		byName[c.Name] = c.ID
	}
	return byName, nil
}
