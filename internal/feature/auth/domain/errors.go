// Package domain defines the domain errors of the auth feature.
package domain

import "errors"

// ErrInvalidCredentials is returned for any failed login attempt. The
// reason (unknown client or wrong secret) is deliberately not exposed.
var ErrInvalidCredentials = errors.New("invalid client id or secret")
