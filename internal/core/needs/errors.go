package needs

import "errors"

var (
	ErrUnknownNeed   = errors.New("unknown need")
	ErrDuplicateNeed = errors.New("need configured twice")
)
