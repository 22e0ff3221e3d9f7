package domain

import "errors"

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownUser        = errors.New("unknown user")
	ErrIncompleteProfile  = errors.New("incomplete registration profile")
)

// OTP errors
var (
	ErrNoActiveChallenge = errors.New("no active otp challenge")
	ErrInvalidCode       = errors.New("invalid otp code")
	ErrInvalidPhone      = errors.New("invalid phone number")
)

// Session errors
var (
	ErrNoActiveSession = errors.New("no active session")
	ErrSwitchDisabled  = errors.New("session switch is disabled")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)
