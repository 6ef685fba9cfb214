package store

import "errors"

var (
	ErrNotFound    = errors.New("record not found")
	ErrStaleState  = errors.New("state changed since read")
	ErrFocusActive = errors.New("an active focus session already exists")
	ErrNoSnapshot  = errors.New("snapshot not available for in-memory store")
)
