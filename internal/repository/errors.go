package repository

import "errors"

// ErrNotFound is returned when a lookup by id matches no row.
// Services translate it into their own taxonomy.
var ErrNotFound = errors.New("not found")
