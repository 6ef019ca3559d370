package cipher

import (
	"errors"
	"fmt"
)

// Static errors for encode/decode failures and table construction
var (
	// ErrUnsupportedCharacter indicates a character outside the cipher alphabet
	ErrUnsupportedCharacter = errors.New("character is not supported")
	// ErrMalformedInput indicates a coded string that cannot be split into codes
	ErrMalformedInput = errors.New("encrypted text must have an even number of digits")
	// ErrInvalidCode indicates a two-character chunk that is not a known code
	ErrInvalidCode = errors.New("invalid encrypted code")

	// ErrDuplicateCode indicates two symbols share one code
	ErrDuplicateCode = errors.New("duplicate code in table")
	// ErrDuplicateSymbol indicates one symbol is listed twice
	ErrDuplicateSymbol = errors.New("duplicate symbol in table")
	// ErrInvalidCodeFormat indicates a code that is not exactly two ASCII digits
	ErrInvalidCodeFormat = errors.New("code must be two ASCII digits")
)

// UnsupportedCharacterError reports the first character Encode could not map.
type UnsupportedCharacterError struct {
	Char     rune // offending character, after upper-casing
	Position int  // 0-based character offset in the upper-cased text
}

func (e *UnsupportedCharacterError) Error() string {
	return fmt.Sprintf("character '%c' is not supported (position %d)", e.Char, e.Position)
}

func (e *UnsupportedCharacterError) Unwrap() error {
	return ErrUnsupportedCharacter
}

// MalformedInputError reports a coded string of odd length.
type MalformedInputError struct {
	Length int // length in characters
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("%v (got %d)", ErrMalformedInput, e.Length)
}

func (e *MalformedInputError) Unwrap() error {
	return ErrMalformedInput
}

// InvalidCodeError reports a chunk that has no entry in the reverse table.
type InvalidCodeError struct {
	Chunk    string
	Position int // 0-based character offset of the chunk in the coded string
}

func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("%v: %q at position %d", ErrInvalidCode, e.Chunk, e.Position)
}

func (e *InvalidCodeError) Unwrap() error {
	return ErrInvalidCode
}

// TableError describes why a table could not be built.
type TableError struct {
	Symbol rune
	Code   string
	Err    error
}

func (e *TableError) Error() string {
	return fmt.Sprintf("invalid table entry %q -> %q: %v", e.Symbol, e.Code, e.Err)
}

func (e *TableError) Unwrap() error {
	return e.Err
}
