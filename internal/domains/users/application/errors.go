package application

import "errors"

// ErrTooManyAttempts signals the login rate limit was hit before credentials
// were even checked.
var ErrTooManyAttempts = errors.New("too many login attempts, slow down")
