package repository

import "errors"

// ErrNotFound is returned by every repository when the addressed row does not
// exist. Services translate it at their boundary; any other error is an
// infrastructure failure and must stay distinguishable from absence.
var ErrNotFound = errors.New("record not found")
