package punch

import "errors"

var (
	ErrPunchNotFound    = errors.New("punch not found")
	ErrInvalidDirection = errors.New("direction must be IN or OUT")
)
