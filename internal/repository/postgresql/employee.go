package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/workledger/internal/domain/employee"
	"github.com/cmlabs-hris/workledger/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	e.id, e.company_id, e.name, e.phone, e.bank_account, e.daily_salary, e.created_by, e.created_at,
	COALESCE((SELECT ARRAY_AGG(tm.team_id::text ORDER BY tm.team_id) FROM team_members tm WHERE tm.employee_id = e.id), '{}')
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.CompanyID,
		&e.Name,
		&e.Phone,
		&e.BankAccount,
		&e.DailySalary,
		&e.CreatedBy,
		&e.CreatedAt,
		&e.TeamIDs,
	)
	return e, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, company_id, name, phone, bank_account, daily_salary, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, company_id, name, phone, bank_account, daily_salary, created_by, created_at
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query,
		newID(),
		newEmployee.CompanyID,
		newEmployee.Name,
		newEmployee.Phone,
		newEmployee.BankAccount,
		newEmployee.DailySalary,
		newEmployee.CreatedBy,
	).Scan(&e.ID, &e.CompanyID, &e.Name, &e.Phone, &e.BankAccount, &e.DailySalary, &e.CreatedBy, &e.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "uk_company_employee_name") {
			return employee.Employee{}, employee.ErrEmployeeNameExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return e, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	e, err := scanEmployee(q.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees e WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id %s: %w", id, err)
	}
	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, companyID string, nameFilter string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees e WHERE e.company_id = $1`
	args := []interface{}{companyID}
	if nameFilter != "" {
		query += ` AND e.name ILIKE '%' || $2 || '%'`
		args = append(args, nameFilter)
	}
	query += ` ORDER BY e.name`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// ListIDsByCreator implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListIDsByCreator(ctx context.Context, companyID string, createdBy string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT id::text FROM employees WHERE company_id = $1 AND created_by = $2 ORDER BY id`, companyID, createdBy)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees by creator: %w", err)
	}
	defer rows.Close()

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan employee ids: %w", err)
	}
	return ids, nil
}
