package runlog

import "errors"

var (
	ErrRunLogNotFound = errors.New("reconciliation run log not found")
)
