package report

import "errors"

var ErrInvalidDateRange = errors.New("from must not be after to")
