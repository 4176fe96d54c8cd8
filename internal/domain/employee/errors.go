package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeNameExists = errors.New("employee name already exists")
	ErrPasswordTooShort   = errors.New("password must be at least 4 characters")
)
