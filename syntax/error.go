package syntax

import (
	"errors"
	"fmt"
)

// Lexical errors.
var (
	// ErrTrailingBackslash indicates the pattern ends with a lone backslash.
	ErrTrailingBackslash = errors.New("backslash cannot end a pattern")

	// ErrInvalidEscape indicates a backslash followed by a character with no escape meaning.
	ErrInvalidEscape = errors.New("character does not follow a backslash")
)

// Syntax errors.
var (
	// ErrMissingParen indicates a group that is never closed.
	ErrMissingParen = errors.New("missing closing )")

	// ErrUnexpectedParen indicates a ) without a matching (.
	ErrUnexpectedParen = errors.New("unexpected )")

	// ErrMissingRepeatArgument indicates a repetition operator with nothing to repeat.
	ErrMissingRepeatArgument = errors.New("missing argument to repetition operator")

	// ErrInvalidRepeat indicates a malformed {m}, {m,} or {m,n} suffix.
	ErrInvalidRepeat = errors.New("invalid repetition syntax")

	// ErrInvalidRepeatRange indicates {m,n} with n < m.
	ErrInvalidRepeatRange = errors.New("invalid repetition range")

	// ErrUnsupported indicates a construct the engine does not implement.
	ErrUnsupported = errors.New("unsupported construct")

	// ErrTooLarge indicates the compiled automaton would exceed the node limit.
	ErrTooLarge = errors.New("pattern too large")
)

// Class separates errors raised while lexing from errors raised while parsing.
type Class uint8

const (
	// Lexical errors come from the tokenizer.
	Lexical Class = iota
	// Syntactic errors come from the parser.
	Syntactic
)

// String returns "lexical" or "syntax".
func (c Class) String() string {
	if c == Lexical {
		return "lexical"
	}
	return "syntax"
}

// Error describes a rejected pattern. Pos is the byte offset of the
// offending item and Expected, when set, names the construct the parser
// was looking for.
type Error struct {
	Pattern  string
	Pos      int
	Err      error
	Expected string
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s error at offset %d in pattern %q: %v", e.Class(), e.Pos, e.Pattern, e.Err)
	if e.Expected != "" {
		msg += " (expected " + e.Expected + ")"
	}
	return msg
}

// Unwrap returns the underlying sentinel.
func (e *Error) Unwrap() error {
	return e.Err
}

// Class reports whether the error is lexical or syntactic.
func (e *Error) Class() Class {
	if errors.Is(e.Err, ErrTrailingBackslash) || errors.Is(e.Err, ErrInvalidEscape) {
		return Lexical
	}
	return Syntactic
}
