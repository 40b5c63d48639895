// Package repository defines the data access layer and the sentinel errors
// shared across it. These sentinel values allow higher layers such as
// services and handlers to distinguish failure scenarios: ErrNotFound maps
// to HTTP 404, ErrForbidden to 403, and the conflict family to 409.
package repository

import "errors"

// ErrNotFound is returned when an event, request, hall or user lookup
// comes up empty. Operations referencing missing rows surface this
// explicitly rather than silently no-opping.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own, such as cancelling another organizer's event
// or resolving a request addressed to someone else.
var ErrForbidden = errors.New("forbidden")

// ErrEmailExists is returned when registering with an email that is
// already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrSlotConflict is returned when a booking would overlap a non-cancelled
// event in the same hall on the same date. It is an expected, recoverable
// outcome; callers branch on it rather than treating it as a failure.
var ErrSlotConflict = errors.New("hall slot conflict")

// ErrEventNotOpen is returned when registering for an event that is not
// CONFIRMED (cancelled or completed).
var ErrEventNotOpen = errors.New("event not open for registration")

// ErrAlreadyResolved is returned when resolving an exchange request that
// is no longer PENDING.
var ErrAlreadyResolved = errors.New("exchange request already resolved")
