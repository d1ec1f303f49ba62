// Package repository persists portal data in MySQL. It backs two
// optional components: the MySQL user directory and the built-in
// credential backend. The sentinel errors below let handlers and
// flows distinguish failure scenarios without string matching.
package repository

import "errors"

// ErrEmailExists is returned when registration collides with an
// existing email address. Handlers translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a user id has no matching row.
// Handlers translate this into HTTP 404.
var ErrNotFound = errors.New("user not found")
