package services

import "errors"

// ErrNotFound is returned when no gallery or hub has the requested slug
var ErrNotFound = errors.New("not found")
