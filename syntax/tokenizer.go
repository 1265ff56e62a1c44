package syntax

import "unicode/utf8"

var escapes = map[rune]ItemKind{
	'd':  SmallD,
	'D':  LargeD,
	'.':  EscDot,
	'*':  EscStar,
	'+':  EscPlus,
	'|':  EscPipe,
	'?':  EscQuestion,
	'(':  EscParenL,
	')':  EscParenR,
	'{':  EscBraceL,
	'}':  EscBraceR,
	'[':  EscBracketL,
	']':  EscBracketR,
	'\\': EscBackslash,
}

var specials = map[rune]ItemKind{
	'.': Any,
	'*': Star,
	'+': Plus,
	'|': Pipe,
	'?': Question,
	'(': ParenL,
	')': ParenR,
	'{': BraceL,
	'}': BraceR,
	'[': BracketL,
	']': BracketR,
}

// Tokenizer produces items from a pattern one at a time.
// It supports a single item of pushback via Back.
type Tokenizer struct {
	pattern string
	pos     int
	// last is the offset of the most recently returned item, -1 once it has been pushed back.
	last int
}

// NewTokenizer returns a tokenizer positioned at the start of pattern.
func NewTokenizer(pattern string) *Tokenizer {
	return &Tokenizer{pattern: pattern, last: -1}
}

// Pattern returns the pattern being lexed.
func (t *Tokenizer) Pattern() string {
	return t.pattern
}

// Pos returns the byte offset of the next unread character.
func (t *Tokenizer) Pos() int {
	return t.pos
}

// Offset returns the byte offset of the most recently returned item.
func (t *Tokenizer) Offset() int {
	if t.last < 0 {
		return t.pos
	}
	return t.last
}

// Reset rewinds the tokenizer to the start of the pattern.
func (t *Tokenizer) Reset() {
	t.pos = 0
	t.last = -1
}

// Next returns the next item. ok is false at the end of the pattern.
func (t *Tokenizer) Next() (item Item, ok bool, err error) {
	if t.pos >= len(t.pattern) {
		return Item{}, false, nil
	}
	start := t.pos
	r := t.readRune()

	if r == '\\' {
		if t.pos >= len(t.pattern) {
			t.pos = start
			return Item{}, false, &Error{Pattern: t.pattern, Pos: start, Err: ErrTrailingBackslash}
		}
		escStart := t.pos
		esc := t.readRune()
		kind, found := escapes[esc]
		if !found {
			t.pos = start
			return Item{}, false, &Error{
				Pattern:  t.pattern,
				Pos:      escStart,
				Err:      ErrInvalidEscape,
				Expected: `one of d D . * + | ? ( ) { } [ ] \`,
			}
		}
		t.last = start
		return Item{Kind: kind}, true, nil
	}

	t.last = start
	if kind, found := specials[r]; found {
		return Item{Kind: kind}, true, nil
	}
	if isDigit(r) {
		return DigitItem(int(r - '0')), true, nil
	}
	return CharItem(r), true, nil
}

// Back pushes the most recently returned item back onto the stream.
// Only one item of pushback is available; a second Back without an
// intervening Next panics.
func (t *Tokenizer) Back() {
	if t.last < 0 {
		panic("syntax: Back called without a preceding Next")
	}
	t.pos = t.last
	t.last = -1
}

func (t *Tokenizer) readRune() rune {
	r, size := utf8.DecodeRuneInString(t.pattern[t.pos:])
	t.pos += size
	return r
}

// Tokens lexes the whole pattern.
func Tokens(pattern string) ([]Item, error) {
	t := NewTokenizer(pattern)
	var items []Item
	for {
		item, ok, err := t.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return items, nil
		}
		items = append(items, item)
	}
}
