// Package syntax lexes flexgen patterns into a flat stream of items.
//
// A pattern is read one code point at a time. Structural characters become
// operator items, decimal digits become digit items and everything else is a
// literal. A backslash turns the following special character into a literal
// item, so `\.` matches a dot while `.` matches any character.
package syntax

import (
	"fmt"
	"strconv"
)

// ItemKind identifies the type of a lexed Item.
type ItemKind uint8

const (
	// Char is a literal code point.
	Char ItemKind = iota
	// Digit is a decimal digit 0-9. Outside of a repetition count it matches
	// the corresponding character.
	Digit
	// Any is the unescaped "." wildcard.
	Any
	// SmallD is \d, any ASCII digit.
	SmallD
	// LargeD is \D, anything but an ASCII digit.
	LargeD

	// EscDot is \.
	EscDot
	// EscStar is \*
	EscStar
	// EscPlus is \+
	EscPlus
	// EscPipe is \|
	EscPipe
	// EscQuestion is \?
	EscQuestion
	// EscParenL is \(
	EscParenL
	// EscParenR is \)
	EscParenR
	// EscBraceL is \{
	EscBraceL
	// EscBraceR is \}
	EscBraceR
	// EscBracketL is \[
	EscBracketL
	// EscBracketR is \]
	EscBracketR
	// EscBackslash is \\
	EscBackslash

	// Star is the unescaped "*" operator.
	Star
	// Plus is the unescaped "+" operator.
	Plus
	// Question is the unescaped "?" operator.
	Question
	// Pipe is the unescaped "|" operator.
	Pipe
	// ParenL opens a group.
	ParenL
	// ParenR closes a group.
	ParenR
	// BraceL opens a counted repetition.
	BraceL
	// BraceR closes a counted repetition.
	BraceR
	// BracketL is an unescaped "[". Character classes are not supported.
	BracketL
	// BracketR is an unescaped "]".
	BracketR
)

var kindNames = [...]string{
	Char:         "Char",
	Digit:        "Digit",
	Any:          "Any",
	SmallD:       "SmallD",
	LargeD:       "LargeD",
	EscDot:       "EscDot",
	EscStar:      "EscStar",
	EscPlus:      "EscPlus",
	EscPipe:      "EscPipe",
	EscQuestion:  "EscQuestion",
	EscParenL:    "EscParenL",
	EscParenR:    "EscParenR",
	EscBraceL:    "EscBraceL",
	EscBraceR:    "EscBraceR",
	EscBracketL:  "EscBracketL",
	EscBracketR:  "EscBracketR",
	EscBackslash: "EscBackslash",
	Star:         "Star",
	Plus:         "Plus",
	Question:     "Question",
	Pipe:         "Pipe",
	ParenL:       "ParenL",
	ParenR:       "ParenR",
	BraceL:       "BraceL",
	BraceR:       "BraceR",
	BracketL:     "BracketL",
	BracketR:     "BracketR",
}

// String returns the name of the kind.
func (k ItemKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ItemKind(%d)", k)
}

// escapedLiterals maps escaped kinds to the character they stand for.
var escapedLiterals = map[ItemKind]rune{
	EscDot:       '.',
	EscStar:      '*',
	EscPlus:      '+',
	EscPipe:      '|',
	EscQuestion:  '?',
	EscParenL:    '(',
	EscParenR:    ')',
	EscBraceL:    '{',
	EscBraceR:    '}',
	EscBracketL:  '[',
	EscBracketR:  ']',
	EscBackslash: '\\',
}

// Item is a single lexed token. Items are immutable values.
type Item struct {
	Kind ItemKind
	// Char is set for Char items.
	Char rune
	// Digit is set for Digit items.
	Digit int
}

// CharItem returns a literal item for r.
func CharItem(r rune) Item {
	return Item{Kind: Char, Char: r}
}

// DigitItem returns a digit item for d (0-9).
func DigitItem(d int) Item {
	return Item{Kind: Digit, Digit: d}
}

// Matches reports whether the item accepts input character r.
// Operator items never match anything.
func (it Item) Matches(r rune) bool {
	switch it.Kind {
	case Char:
		return r == it.Char
	case Digit:
		return r == rune('0'+it.Digit)
	case Any:
		return true
	case SmallD:
		return isDigit(r)
	case LargeD:
		return !isDigit(r)
	}
	if lit, ok := escapedLiterals[it.Kind]; ok {
		return r == lit
	}
	return false
}

// Literal returns the single character the item matches, if there is exactly one.
func (it Item) Literal() (rune, bool) {
	switch it.Kind {
	case Char:
		return it.Char, true
	case Digit:
		return rune('0' + it.Digit), true
	}
	lit, ok := escapedLiterals[it.Kind]
	return lit, ok
}

// IsOperator reports whether the item is an unescaped structural character.
func (it Item) IsOperator() bool {
	return it.Kind >= Star
}

// IsQuantifier reports whether the item starts a repetition suffix.
func (it Item) IsQuantifier() bool {
	switch it.Kind {
	case Star, Plus, Question, BraceL:
		return true
	}
	return false
}

// String renders the item the way it would be written in a pattern.
func (it Item) String() string {
	switch it.Kind {
	case Char:
		return strconv.QuoteRune(it.Char)
	case Digit:
		return strconv.Itoa(it.Digit)
	case Any:
		return "."
	case SmallD:
		return `\d`
	case LargeD:
		return `\D`
	case Star:
		return "*"
	case Plus:
		return "+"
	case Question:
		return "?"
	case Pipe:
		return "|"
	case ParenL:
		return "("
	case ParenR:
		return ")"
	case BraceL:
		return "{"
	case BraceR:
		return "}"
	case BracketL:
		return "["
	case BracketR:
		return "]"
	}
	if lit, ok := escapedLiterals[it.Kind]; ok {
		return `\` + string(lit)
	}
	return it.Kind.String()
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
