package motion

import "errors"

var ErrUnknownPolicy = errors.New("unknown collision policy")
