package nubepurge

import "errors"

// Failure kinds of a run. Every returned error wraps exactly one of these;
// match with errors.Is.
var (
	// ErrMissingInput: the stylesheet or content root is missing, or a file is unreadable.
	ErrMissingInput = errors.New("missing input")
	// ErrEmptyResult: the stylesheet is blank or holds no complete construct.
	ErrEmptyResult = errors.New("empty or malformed purge result")
	// ErrWriteFailure: the output (or its minified sibling) could not be written.
	ErrWriteFailure = errors.New("write failure")
	// ErrUnexpected: anything else, such as an invalid scan pattern or a cancelled context.
	ErrUnexpected = errors.New("unexpected error")
)
