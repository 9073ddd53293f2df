// Package pyparser defines the syntax tree the linter works on and the
// interface of the parsers producing it.
package pyparser

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrSyntax is wrapped by every *SyntaxError.
	ErrSyntax = errors.New("invalid syntax")
	// ErrFileTooLarge is returned for sources above the parser's size limit.
	ErrFileTooLarge = errors.New("file too large")
	// ErrInvalidContent is returned for sources that are not valid UTF-8.
	ErrInvalidContent = errors.New("invalid content")
)

// Parser turns Python source text into a Module.
type Parser interface {
	Parse(ctx context.Context, filename string, src []byte) (*Module, error)
}

// SyntaxError reports the first malformed construct found in a source file.
type SyntaxError struct {
	File string
	Line int
	Text string // offending source text, may be empty
}

func (e *SyntaxError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, ErrSyntax)
	}
	return fmt.Sprintf("%s:%d: %s near %q", e.File, e.Line, ErrSyntax, e.Text)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}
