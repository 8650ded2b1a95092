package postgres

import (
	"context"
	"fmt"

	"tpv-server/internal/domain"
	"tpv-server/internal/interfaces"
)

type tableRepository struct {
	db DB
}

func NewTableRepository(db DB) interfaces.TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) List(ctx context.Context) ([]*domain.Table, error) {
	rows, err := r.db.Query(ctx, `SELECT id, number, state FROM tables ORDER BY number`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	var tables []*domain.Table
	for rows.Next() {
		var t domain.Table
		if err := rows.Scan(&t.ID, &t.Number, &t.State); err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		tables = append(tables, &t)
	}
	return tables, rows.Err()
}

func (r *tableRepository) FindByNumber(ctx context.Context, number int) (*domain.Table, error) {
	var t domain.Table
	err := r.db.QueryRow(ctx,
		`SELECT id, number, state FROM tables WHERE number = $1`, number,
	).Scan(&t.ID, &t.Number, &t.State)
	if err != nil {
		return nil, translateErr(err, domain.ErrTableNotFound)
	}
	return &t, nil
}
