package service

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound is returned when no balance record exists for a user
	ErrUserNotFound = errors.New("user not found")

	// ErrPersistence wraps any failure reading or writing the store
	ErrPersistence = errors.New("persistence failure")

	// ErrConcurrentUpdate is returned when an award kept losing the version race
	ErrConcurrentUpdate = errors.New("concurrent update retries exhausted")

	// ErrInvalidSource is returned for an unknown point source
	ErrInvalidSource = errors.New("invalid point source")

	// ErrUserExists is returned by UserRepository.Create when the id is taken
	ErrUserExists = errors.New("user already exists")

	// ErrVersionConflict is returned by UserRepository.UpdatePoints when the
	// stored version moved since it was read
	ErrVersionConflict = errors.New("version conflict")
)

// persistenceError marks err as a store failure while keeping it unwrappable
func persistenceError(action string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", ErrPersistence, action, err)
}
