package domain

import "errors"

// ErrPartNotFound is returned when a part id cannot be resolved by the repository.
var ErrPartNotFound = errors.New("part not found")
