package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that no valid session could be resolved for the request.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the caller's subscription tier does not allow the operation.
var ErrForbidden = errors.New("forbidden")

// ErrQuotaExceeded indicates that the caller's daily remote-sync quota is exhausted.
var ErrQuotaExceeded = errors.New("daily sync quota exceeded")

// ErrProvider indicates a failure calling an external data provider, including
// invalidated access tokens and timeouts.
var ErrProvider = errors.New("provider error")
