package config

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrUnknownClip   = errors.New("unknown clip id")
	ErrDuplicateClip = errors.New("duplicate clip id")
	ErrMissingClip   = errors.New("missing clip")
)
