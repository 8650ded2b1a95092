// Package floor answers occupancy queries. The occupied/free flag itself is
// derived state owned by the ledger lifecycle; nothing here mutates it.
package floor

import (
	"context"

	"tpv-server/internal/domain"
	"tpv-server/internal/interfaces"
)

type Service struct {
	tables interfaces.TableRepository
}

func NewService(tables interfaces.TableRepository) *Service {
	return &Service{tables: tables}
}

// Tables lists all tables with their occupancy state, ordered by number.
func (s *Service) Tables(ctx context.Context) ([]*domain.Table, error) {
	return s.tables.List(ctx)
}
