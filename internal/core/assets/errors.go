package assets

import "errors"

var (
	ErrNotAFile         = errors.New("asset path is not a regular file")
	ErrAlreadyRequested = errors.New("assets already requested")
	ErrNotRequested     = errors.New("no assets requested")
)
