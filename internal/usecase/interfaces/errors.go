package interfaces

import "errors"

var (
	// ErrStaleState is returned by conditional writes whose precondition on the
	// stored status no longer holds (the record moved on, or does not exist).
	ErrStaleState = errors.New("record state changed")
	// ErrRecordExists is returned when inserting a record whose id is taken.
	ErrRecordExists = errors.New("record already exists")
)
