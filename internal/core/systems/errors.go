package systems

import "errors"

var ErrDuplicateSystem = errors.New("system already registered")
