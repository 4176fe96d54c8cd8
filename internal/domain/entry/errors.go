package entry

import "errors"

var (
	ErrEntryNotFound   = errors.New("entry not found")
	ErrInvalidCategory = errors.New("invalid category")
)
