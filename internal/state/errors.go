package state

import "errors"

var ErrUnknownOperation = errors.New("unknown operation")
