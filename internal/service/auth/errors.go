// Package auth provides the identity context: issuing and validating the
// credentials from which the rest of the system resolves an owner ID.
package auth

import "errors"

// Authentication errors.
var (
	// ErrInvalidToken is returned when a token is malformed or its
	// signature does not verify.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token's expiry has passed.
	ErrExpiredToken = errors.New("token expired")

	// ErrTokenNotYetValid is returned when a token's not-before is in the future.
	ErrTokenNotYetValid = errors.New("token not yet valid")

	// ErrInvalidCredentials is returned when an email/password pair does
	// not match a registered user. Unknown email and wrong password are
	// deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
