package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. Entity-specific variants below wrap it.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned by RunInTransaction when the
	// transaction itself cannot be started or committed, as opposed to an
	// error from the work executed inside it.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrWordNotFound indicates that the requested vocabulary word does not
	// exist in the store.
	ErrWordNotFound = fmt.Errorf("%w: word", ErrNotFound)

	// ErrProgressNotFound indicates that no scheduling state exists for the
	// requested (user, word) pair.
	ErrProgressNotFound = fmt.Errorf("%w: word progress", ErrNotFound)
)
