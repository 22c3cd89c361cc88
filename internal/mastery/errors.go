package mastery

import "errors"

// ErrInvalidStatus is returned when decoding an unknown status name.
var ErrInvalidStatus = errors.New("mastery: invalid status")
