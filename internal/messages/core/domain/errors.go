package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDataFormat marks a malformed snapshot. It is never retried.
	ErrDataFormat = errors.New("data format error")
	// ErrEmptyInput is returned together with a valid, empty Table.
	ErrEmptyInput = errors.New("snapshot has no messages")
)

// DataFormatError describes where a snapshot is malformed.
type DataFormatError struct {
	Line   int    // 1-based; 0 when not tied to a line
	Column string // "" when not tied to a column
	Reason string
}

func (e *DataFormatError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("%s: line %d, column %s: %s", ErrDataFormat, e.Line, e.Column, e.Reason)
	case e.Line > 0:
		return fmt.Sprintf("%s: line %d: %s", ErrDataFormat, e.Line, e.Reason)
	case e.Column != "":
		return fmt.Sprintf("%s: column %s: %s", ErrDataFormat, e.Column, e.Reason)
	default:
		return fmt.Sprintf("%s: %s", ErrDataFormat, e.Reason)
	}
}

func (e *DataFormatError) Is(target error) bool {
	return target == ErrDataFormat
}
