package impl

import "errors"

var (
	ErrEmptyPassword = errors.New("empty password")
	ErrEmptySubject  = errors.New("empty subject")
)
