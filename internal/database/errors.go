package database

import "errors"

// ErrNotFound is returned when a row is absent or, for owner-scoped
// mutations, exists but belongs to someone else. The two cases are
// deliberately indistinguishable so existence never leaks.
var ErrNotFound = errors.New("not found")
