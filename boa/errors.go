package boa

import (
	"errors"
	"fmt"
	"strings"
)

type Error interface {
	error
	GetLocation() Loc
}

type ErrorType int

const (
	ErrorRuntime ErrorType = iota
	ErrorLexer
	ErrorSyntax
	ErrorDuplicateBinding
	ErrorUnboundIdentifier
)

func (t ErrorType) String() string {
	return []string{
		"RuntimeError",
		"LexerError",
		"SyntaxError",
		"DuplicateBindingError",
		"UnboundIdentifierError",
	}[t]
}

// BoaError is the single failure value produced by every stage. Name is
// set for the scope errors and holds the offending identifier.
type BoaError struct {
	Type ErrorType
	Msg  string
	Name string
	Loc  Loc
}

func (e *BoaError) Error() string {
	if e.Loc.FileName != "" {
		return fmt.Sprintf("%s: %s at %s:%s", e.Type.String(), e.Msg, e.Loc.FileName, e.Loc.String())
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Msg)
}

func (e *BoaError) GetLocation() Loc {
	return e.Loc
}

// ShowSource renders the error followed by the offending line and a caret
// underline below the columns it covers.
func (e *BoaError) ShowSource(source string) string {
	lines := strings.Split(source, "\n")
	if e.Loc.Line > 0 && e.Loc.Line <= len(lines) {
		line := lines[e.Loc.Line-1]
		start := max(e.Loc.ColStart-1, 0)
		width := e.Loc.End() - e.Loc.ColStart + 1
		if width < 1 {
			width = 1
		}
		underline := strings.Repeat(" ", start) + strings.Repeat("^", width)
		return fmt.Sprintf("%s\n%s\n%s", e.Error(), line, underline)
	}
	return e.Error()
}

func NewLexerError(msg string, loc Loc) *BoaError {
	return &BoaError{Type: ErrorLexer, Msg: msg, Loc: loc}
}

func NewSyntaxError(msg string, loc Loc) *BoaError {
	return &BoaError{Type: ErrorSyntax, Msg: msg, Loc: loc}
}

func NewDuplicateBindingError(name string, loc Loc) *BoaError {
	return &BoaError{
		Type: ErrorDuplicateBinding,
		Msg:  fmt.Sprintf("Duplicate binding %s", name),
		Name: name,
		Loc:  loc,
	}
}

func NewUnboundIdentifierError(name string, loc Loc) *BoaError {
	return &BoaError{
		Type: ErrorUnboundIdentifier,
		Msg:  fmt.Sprintf("Unbound variable identifier %s", name),
		Name: name,
		Loc:  loc,
	}
}

func NewRuntimeError(msg string, loc Loc) *BoaError {
	return &BoaError{Type: ErrorRuntime, Msg: msg, Loc: loc}
}

// IsErrorType reports whether err wraps a *BoaError of the given kind.
func IsErrorType(err error, kind ErrorType) bool {
	var be *BoaError
	if errors.As(err, &be) {
		return be.Type == kind
	}
	return false
}

type Result[T any] struct {
	Value T
	Err   Error
}

func ResOk[T any](value T) Result[T] {
	return Result[T]{Value: value, Err: nil}
}

func ResErr[T any](err Error) Result[T] {
	return Result[T]{Err: err}
}

func (r Result[T]) IsErr() bool {
	return r.Err != nil
}
