// Package catalog serves the read-mostly reference data: waitstaff login
// and the article menu.
package catalog

import (
	"context"

	"tpv-server/internal/adapter/logger"
	"tpv-server/internal/domain"
	"tpv-server/internal/interfaces"
)

type Service struct {
	employees interfaces.EmployeeRepository
	menu      interfaces.MenuRepository
	logger    logger.Logger
}

func NewService(employees interfaces.EmployeeRepository, menu interfaces.MenuRepository, lgr logger.Logger) *Service {
	return &Service{
		employees: employees,
		menu:      menu,
		logger:    lgr,
	}
}

// Login matches a waitstaff code. A miss returns domain.ErrInvalidCredential,
// which is a normal negative result rather than a failure.
func (s *Service) Login(ctx context.Context, code string) (*domain.Employee, error) {
	emp, err := s.employees.FindByCode(ctx, code)
	if err != nil {
		s.logger.Debug("login_rejected", "Login code not matched", "", nil)
		return nil, err
	}

	s.logger.Debug("login_accepted", "Employee logged in", "", map[string]any{
		"employee_id": emp.ID,
	})
	return emp, nil
}

// MenuItems lists the articles of one category, ordered by name.
func (s *Service) MenuItems(ctx context.Context, category domain.Category) ([]*domain.MenuItem, error) {
	return s.menu.ListByCategory(ctx, category)
}
