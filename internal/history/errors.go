package history

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArchive = errors.New("invalid archive")
	ErrSetup          = errors.New("preparing working directory")
	ErrParse          = errors.New("parsing streaming history")
)

// ParseError names the record file that could not be parsed.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrParse, e.File, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}
