package apperrors

import (
	"errors"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrPasswordTooShort  = errors.New("password is too short")

	ErrArticleAlreadyExists = errors.New("article already exists")
	ErrArticleNotFound      = errors.New("article not found")
)
