package models

import "errors"

// Application-wide standard errors
var (
	// Common resource/DB errors
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")

	// User & authentication errors
	ErrUserNotFound          = errors.New("user not found")
	ErrUserAlreadyExists     = errors.New("user with this username already exists")
	ErrEmailAlreadyExists    = errors.New("user with this email already exists")
	ErrInvalidCredentials    = errors.New("invalid identifier or password")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrActivationLinkInvalid = errors.New("activation link does not match any user")
	ErrPasswordsDoNotMatch   = errors.New("password and confirmation do not match")

	// Token & session errors
	ErrTokenInvalid    = errors.New("token is invalid")
	ErrTokenMalformed  = errors.New("token is malformed")
	ErrTokenExpired    = errors.New("token has expired")
	ErrSessionNotFound = errors.New("session not found in storage")

	// Catalog errors
	ErrTrackNotFound       = errors.New("track not found")
	ErrCommentNotFound     = errors.New("comment not found")
	ErrDeviceNotFound      = errors.New("device not found")
	ErrBrandNotFound       = errors.New("brand not found")
	ErrTypeNotFound        = errors.New("device type not found")
	ErrBasketEntryNotFound = errors.New("device is not in the basket")
	ErrRatingExists        = errors.New("user has already rated this device")
	ErrRatingOutOfRange    = errors.New("rating must be between 1 and 5")

	// General request/server errors
	ErrInternalServer = errors.New("internal server error")
	ErrInvalidInput   = errors.New("invalid input data")
)
