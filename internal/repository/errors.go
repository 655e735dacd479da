// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// booking engine and handlers to distinguish between different failure
// scenarios without inspecting driver-specific errors. For example,
// ErrConflict signals that a confirmed reservation already occupies the
// requested (table, timestamp) slot, while ErrNotFound indicates that a
// referenced entity does not exist or has been deactivated.
package repository

import "errors"

// ErrNotFound is returned when a requested entity does not exist.
// Handlers should translate this into an HTTP 404 response; the booking
// engine converts it into a rule-specific validation message.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert or update cannot proceed
// because of conflicting state, such as booking a table that already
// has a confirmed reservation for the same exact timestamp. Handlers
// should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned when creating or updating a client would
// duplicate an email address that is already registered.
var ErrEmailExists = errors.New("email already exists")
