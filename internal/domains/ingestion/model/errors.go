package model

import "errors"

var (
	// ErrUnreadableInput aborts a whole batch: the stream could not be opened,
	// decoded or read, or it has no header row.
	ErrUnreadableInput = errors.New("unreadable input")
	// ErrMalformedRecord rejects a single row the CSV reader could not split.
	ErrMalformedRecord = errors.New("malformed record")
)
