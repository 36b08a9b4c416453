package worksite

import "errors"

var (
	ErrWorkSiteNotFound = errors.New("work site not found")
)
