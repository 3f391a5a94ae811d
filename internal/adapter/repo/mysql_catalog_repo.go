package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ricky24m/Etiketing-I-AMpelgading-Homeland/internal/usecase"
)

// MySQLCatalogRepo reads the catalog the admin surface maintains (packages
// and camping gear live in the same store as the bookings).
type MySQLCatalogRepo struct{ db *sql.DB }

func NewMySQLCatalogRepo(db *sql.DB) *MySQLCatalogRepo { return &MySQLCatalogRepo{db: db} }

func (r *MySQLCatalogRepo) GetItem(ctx context.Context, name string) (*usecase.CatalogItem, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT name, price, category, unit FROM catalog_item WHERE name = ?`, name)
	var it usecase.CatalogItem
	if err := row.Scan(&it.Name, &it.Price, &it.Category, &it.Unit); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

var _ usecase.Catalog = (*MySQLCatalogRepo)(nil)
