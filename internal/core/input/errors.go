package input

import "errors"

var (
	ErrUnknownAction    = errors.New("unknown input action")
	ErrDuplicateBinding = errors.New("key bound to more than one action")
)
