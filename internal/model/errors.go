package model

import "errors"

var (
	ErrInvalidSign     = errors.New("unsupported sign")
	ErrInvalidLang     = errors.New("unsupported language")
	ErrInvalidTime     = errors.New("invalid time, expected HH:MM")
	ErrSignNotSelected = errors.New("sign not selected")
)
