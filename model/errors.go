package model

import "github.com/pkg/errors"

// Domain error kinds shared by every component. Handlers map these to HTTP
// statuses at the boundary, internal code only wraps them with context via
// pkg/errors so callers can still match with errors.Is.
var (
	// ErrValidation: request is malformed or violates a domain rule (e.g.
	// rating score outside [1,10]). The mutation is never attempted.
	ErrValidation = errors.New("validation failed")

	// ErrConflict: a uniqueness constraint absorbed the write (duplicate
	// follow, duplicate list item). No partial state is persisted.
	ErrConflict = errors.New("already exists")

	// ErrNotFound: the referenced user/content/token does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized: the caller is not allowed to mutate the resource
	// (e.g. editing another user's review).
	ErrUnauthorized = errors.New("not authorized")

	// ErrGateway: the external catalog provider is unreachable or returned
	// a non-success status. Never conflated with validation failures.
	ErrGateway = errors.New("upstream provider failure")
)
