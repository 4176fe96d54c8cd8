package employee

import (
	"time"

	"github.com/cmlabs-hris/worklog-backend-go/internal/pkg/validator"
)

const minPasswordLength = 4

type CreateEmployeeRequest struct {
	Name      string  `json:"name"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	BirthDate *string `json:"birth_date,omitempty"`
	IsAdmin   bool    `json:"is_admin"`
	Password  *string `json:"password,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	errs = append(errs, validateName(r.Name)...)
	errs = append(errs, validateBirthDate(r.BirthDate)...)
	errs = append(errs, validatePassword(r.Password)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEmployeeRequest replaces every field. A nil password keeps the stored one.
type UpdateEmployeeRequest struct {
	ID        string  `json:"-"`
	Name      string  `json:"name"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	BirthDate *string `json:"birth_date,omitempty"`
	IsAdmin   bool    `json:"is_admin"`
	Password  *string `json:"password,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}
	errs = append(errs, validateName(r.Name)...)
	errs = append(errs, validateBirthDate(r.BirthDate)...)
	errs = append(errs, validatePassword(r.Password)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateName(name string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if validator.IsEmpty(name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}
	return errs
}

func validateBirthDate(birthDate *string) validator.ValidationErrors {
	if birthDate == nil || *birthDate == "" {
		return nil
	}
	d, ok := validator.IsValidDate(*birthDate)
	if !ok {
		return validator.ValidationErrors{{
			Field:   "birth_date",
			Message: "birth_date must be in YYYY-MM-DD format",
		}}
	}
	if d.After(time.Now()) {
		return validator.ValidationErrors{{
			Field:   "birth_date",
			Message: "birth_date cannot be in the future",
		}}
	}
	return nil
}

func validatePassword(password *string) validator.ValidationErrors {
	if password == nil {
		return nil
	}
	if len(*password) < minPasswordLength {
		return validator.ValidationErrors{{
			Field:   "password",
			Message: ErrPasswordTooShort.Error(),
		}}
	}
	return nil
}

type EmployeeResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	BirthDate   *string `json:"birth_date"`
	IsAdmin     bool    `json:"is_admin"`
	HasPassword bool    `json:"has_password"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	var birthDate *string
	if e.BirthDate != nil {
		s := e.BirthDate.Format("2006-01-02")
		birthDate = &s
	}
	return EmployeeResponse{
		ID:          e.ID,
		Name:        e.Name,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		BirthDate:   birthDate,
		IsAdmin:     e.IsAdmin,
		HasPassword: e.PasswordHash != nil,
		CreatedAt:   e.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   e.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
