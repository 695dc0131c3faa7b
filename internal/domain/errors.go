package domain

import "errors"

// ErrUnknownStatus is returned when a string does not name a known status
var ErrUnknownStatus = errors.New("domain: unknown status")
