package shift

import "errors"

var ErrShiftNotFound = errors.New("shift type not found")
