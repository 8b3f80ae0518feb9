package repository

import "errors"

var (
	// ErrDuplicateIdentity is returned when a username or email is already
	// taken. Nothing is written when it fires.
	ErrDuplicateIdentity = errors.New("username or email already taken")

	// ErrNotFound is returned when a record does not exist — or, for owned
	// records, exists but belongs to someone else. The two cases are
	// deliberately indistinguishable.
	ErrNotFound = errors.New("not found")
)
