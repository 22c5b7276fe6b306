package animation

import "errors"

var ErrUnknownClip = errors.New("unknown animation clip")
