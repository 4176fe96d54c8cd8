package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/worklog-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	transactor   database.Transactor
	employeeRepo employee.EmployeeRepository
	auditService audit.AuditService
}

func NewEmployeeService(
	transactor database.Transactor,
	employeeRepo employee.EmployeeRepository,
	auditService audit.AuditService,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		transactor:   transactor,
		employeeRepo: employeeRepo,
		auditService: auditService,
	}
}

func parseBirthDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	d, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &d
}

func hashPassword(password *string) (*string, error) {
	if password == nil {
		return nil, nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	s := string(hashed)
	return &s, nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.NewEmployeeResponse(emp))
	}
	return responses, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(emp), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to generate employee id: %w", err)
	}
	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	newEmployee := employee.Employee{
		ID:           id.String(),
		Name:         strings.TrimSpace(req.Name),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		BirthDate:    parseBirthDate(req.BirthDate),
		IsAdmin:      req.IsAdmin,
		PasswordHash: passwordHash,
	}

	var created employee.Employee
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		exists, err := s.employeeRepo.ExistsByName(txCtx, newEmployee.Name, nil)
		if err != nil {
			return err
		}
		if exists {
			return employee.ErrEmployeeNameExists
		}

		created, err = s.employeeRepo.Create(txCtx, newEmployee)
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}

		return s.auditService.Record(txCtx, audit.ActionInsert, employee.TableName, created.ID, nil, created.Snapshot())
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee created", "employee_id", created.ID, "actor", audit.ActorFromContext(ctx))
	return employee.NewEmployeeResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	var updated employee.Employee
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.employeeRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		name := strings.TrimSpace(req.Name)
		if name != existing.Name {
			exists, err := s.employeeRepo.ExistsByName(txCtx, name, &existing.ID)
			if err != nil {
				return err
			}
			if exists {
				return employee.ErrEmployeeNameExists
			}
		}

		next := existing
		next.Name = name
		next.FirstName = strings.TrimSpace(req.FirstName)
		next.LastName = strings.TrimSpace(req.LastName)
		next.BirthDate = parseBirthDate(req.BirthDate)
		next.IsAdmin = req.IsAdmin
		if passwordHash != nil {
			next.PasswordHash = passwordHash
		}

		updated, err = s.employeeRepo.Update(txCtx, next)
		if err != nil {
			return fmt.Errorf("failed to update employee: %w", err)
		}

		after := updated.Snapshot()
		if passwordHash != nil {
			// a reset keeps has_password unchanged, so mark it explicitly
			after["password_changed"] = true
		}
		return s.auditService.Record(txCtx, audit.ActionUpdate, employee.TableName, updated.ID, existing.Snapshot(), after)
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee updated", "employee_id", updated.ID, "actor", audit.ActorFromContext(ctx))
	return employee.NewEmployeeResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	err := s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.employeeRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if err := s.employeeRepo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete employee: %w", err)
		}

		return s.auditService.Record(txCtx, audit.ActionDelete, employee.TableName, id, existing.Snapshot(), nil)
	})
	if err != nil {
		if !errors.Is(err, employee.ErrEmployeeNotFound) {
			slog.Error("Failed to delete employee", "employee_id", id, "error", err)
		}
		return err
	}

	slog.Info("Employee deleted", "employee_id", id, "actor", audit.ActorFromContext(ctx))
	return nil
}
