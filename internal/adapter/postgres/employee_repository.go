package postgres

import (
	"context"

	"tpv-server/internal/domain"
	"tpv-server/internal/interfaces"
)

type employeeRepository struct {
	db DB
}

func NewEmployeeRepository(db DB) interfaces.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) FindByCode(ctx context.Context, code string) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.QueryRow(ctx,
		`SELECT id, name, code FROM employees WHERE code = $1`, code,
	).Scan(&emp.ID, &emp.Name, &emp.Code)
	if err != nil {
		return nil, translateErr(err, domain.ErrInvalidCredential)
	}
	return &emp, nil
}
