package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches any *NotFoundError.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidID is returned for ids that cannot name a file in the collection.
	ErrInvalidID = errors.New("invalid record id")
)

// NotFoundError reports that no file exists for the requested id.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
