package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations.
// Every mutation is recorded in the audit trail in the same transaction.
type EmployeeService interface {
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee removes the employee together with their entries
	DeleteEmployee(ctx context.Context, id string) error
}
