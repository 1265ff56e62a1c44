// Package codegen provides code generation helpers and constants.
package codegen

import (
	"go/token"
	"unicode"
	"unicode/utf8"
)

// FlexgenPath is the import path generated code uses for the runtime.
const FlexgenPath = "github.com/KromDaniel/flexgen"

// Variable names used in generated code
const (
	ReceiverName = "t"
	SetName      = "set"
	OptsName     = "opts"
	IndexName    = "i"
	PatternName  = "p"
)

// NamesVar returns the name of the unexported name table for typ.
func NamesVar(typ string) string {
	return LowerFirst(typ) + "Names"
}

// PatternsVar returns the name of the exported pattern table for typ.
func PatternsVar(typ string) string {
	return typ + "Patterns"
}

// SetConstructor returns the name of the generated set constructor for typ.
func SetConstructor(typ string) string {
	return "New" + typ + "Set"
}

// LowerFirst converts the first character of a string to lowercase.
func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

// UpperFirst converts the first character of a string to uppercase.
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// IsExported reports whether name is a valid exported Go identifier that
// is not a keyword.
func IsExported(name string) bool {
	return token.IsIdentifier(name) && token.IsExported(name)
}
