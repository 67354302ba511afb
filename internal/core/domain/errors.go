package domain

import "errors"

// Error kinds shared by every layer. Match with errors.Is; drivers and
// services wrap them with %w to attach context.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrRoleMismatch       = errors.New("operation not allowed for role")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotFound           = errors.New("not found")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

// Stable codes rendered to clients. Presentation layers switch on these,
// never on error text.
const (
	CodeInvalidInput       = "invalid_input"
	CodeDuplicateEmail     = "duplicate_email"
	CodeInvalidCredentials = "invalid_credentials"
	CodeUnauthenticated    = "unauthenticated"
	CodeRoleMismatch       = "role_mismatch"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeStoreUnavailable   = "store_unavailable"
	CodeInternal           = "internal"
)

var kindCodes = []struct {
	kind error
	code string
}{
	{ErrInvalidInput, CodeInvalidInput},
	{ErrDuplicateEmail, CodeDuplicateEmail},
	{ErrInvalidCredentials, CodeInvalidCredentials},
	{ErrUnauthenticated, CodeUnauthenticated},
	{ErrRoleMismatch, CodeRoleMismatch},
	{ErrForbidden, CodeForbidden},
	{ErrNotFound, CodeNotFound},
	{ErrStoreUnavailable, CodeStoreUnavailable},
}

// Code returns the stable code for err, or CodeInternal when err does not
// belong to the taxonomy.
func Code(err error) string {
	for _, kc := range kindCodes {
		if errors.Is(err, kc.kind) {
			return kc.code
		}
	}
	return CodeInternal
}

// IsKnown reports whether err belongs to the taxonomy above.
func IsKnown(err error) bool {
	return err != nil && Code(err) != CodeInternal
}
