package postgres

import (
	"context"
	"fmt"

	"tpv-server/internal/domain"
	"tpv-server/internal/interfaces"
)

type menuRepository struct {
	db DB
}

func NewMenuRepository(db DB) interfaces.MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) ListByCategory(ctx context.Context, category domain.Category) ([]*domain.MenuItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, price, category
		FROM menu_items
		WHERE category = $1
		ORDER BY name
	`, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var items []*domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.Category); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

func (r *menuRepository) FindItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := r.db.QueryRow(ctx,
		`SELECT id, name, price, category FROM menu_items WHERE id = $1`, id,
	).Scan(&item.ID, &item.Name, &item.Price, &item.Category)
	if err != nil {
		return nil, translateErr(err, domain.ErrMenuItemNotFound)
	}
	return &item, nil
}
