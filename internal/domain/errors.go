package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers treat it as a silent no-op or a redirect, never as a 404 page.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when submitted form fields
// fail type or enum checks. The whole update is rejected.
var ErrValidation = errors.New("validation error")

// ErrForbidden is returned when the requesting user does not own the target
// vacation. Handlers redirect exactly as they would for a missing vacation so
// existence is not revealed.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a unique value (e.g. an email) is already taken.
var ErrConflict = errors.New("conflict")

// ErrInvalidCredentials is returned by login for an unknown email or a wrong
// password. Both cases share one error on purpose.
var ErrInvalidCredentials = errors.New("invalid credentials")
