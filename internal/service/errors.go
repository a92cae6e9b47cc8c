package service

import "errors"

var (
	// ErrNotFound: the target id does not exist. Non-exceptional for update/delete.
	ErrNotFound = errors.New("not found")
	// ErrRequired: a required field is empty after trimming.
	ErrRequired = errors.New("required field is empty")
	// ErrUsernameTaken / ErrEmailTaken / ErrNameTaken: uniqueness violations.
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already taken")
	ErrNameTaken     = errors.New("name already taken")
	// ErrUnknownReference: a foreign key points at a missing row.
	ErrUnknownReference = errors.New("referenced record does not exist")
	// ErrReferenced: the row cannot be deleted while other rows reference it.
	ErrReferenced = errors.New("record is referenced by other records")
)
