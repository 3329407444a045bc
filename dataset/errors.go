package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrMissingColumn = errors.New("missing column")
	ErrNoPositions   = errors.New("no positions extracted")
	ErrUnknownFormat = errors.New("unsupported output format")
)

// MissingColumnError reports a required CSV column absent from the header.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column %q", e.Column)
}

func (e *MissingColumnError) Is(target error) bool { return target == ErrMissingColumn }
