package auth

import "minicrm/internal/domain"

// ErrInvalidRole rejects signups for any role other than rep or manager.
var ErrInvalidRole = domain.NewValidationError("Role", "oneof")
