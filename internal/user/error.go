package user

import "errors"

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAdminUndeletable   = errors.New("cannot delete admin users")
)
