// Package cipher implements the two-digit substitution cipher.
//
// Every symbol of a fixed 50-character alphabet (A-Z, 0-9, space and
// ". ! @ # $ % , ? + - * / '") maps to a two-digit code. Space is "00".
// Coded text is the concatenation of codes with no delimiter, so it is always
// read back in fixed two-character chunks.
//
// The cipher is an obfuscation, not encryption: the table is public and
// fixed.
//
// Example Usage:
//
//	coded, err := cipher.Encode("Hello")  // "3251232353"
//	plain, err := cipher.Decode(coded)    // "Hello"
package cipher

import (
	"slices"
	"strings"
	"sync"
)

// CodeLength is the number of characters in every code.
const CodeLength = 2

// Entry is one symbol/code pair of a Table.
type Entry struct {
	Symbol rune
	Code   string
}

// defaultEntries is the built-in alphabet.
var defaultEntries = []Entry{
	{'A', "11"}, {'B', "21"}, {'C', "31"}, {'D', "41"},
	{'E', "51"}, {'F', "12"}, {'G', "22"}, {'H', "32"},
	{'I', "42"}, {'J', "52"}, {'K', "13"}, {'L', "23"},
	{'M', "33"}, {'N', "43"}, {'O', "53"}, {'P', "14"},
	{'Q', "66"}, {'R', "24"}, {'S', "34"}, {'T', "44"},
	{'U', "54"}, {'V', "15"}, {'W', "25"}, {'X', "35"},
	{'Y', "45"}, {'Z', "55"}, {' ', "00"}, {'.', "90"},
	{'!', "91"}, {'@', "92"}, {'#', "93"}, {'$', "94"},
	{'%', "95"}, {',', "96"}, {'?', "97"}, {'+', "98"},
	{'-', "99"}, {'*', "10"}, {'/', "20"}, {'\'', "30"},
	{'0', "60"}, {'1', "61"}, {'2', "62"}, {'3', "63"},
	{'4', "64"}, {'5', "65"}, {'6', "67"}, {'7', "68"},
	{'8', "69"}, {'9', "70"},
}

// Table is an immutable symbol/code bijection.
// It is safe for concurrent use once constructed.
type Table struct {
	forward map[rune]string
	reverse map[string]rune
	entries []Entry // sorted by code
}

// NewTable builds a Table from entries and rejects anything that is not a
// bijection between symbols and two-digit codes.
func NewTable(entries []Entry) (*Table, error) {
	t := &Table{
		forward: make(map[rune]string, len(entries)),
		reverse: make(map[string]rune, len(entries)),
		entries: make([]Entry, 0, len(entries)),
	}

	for _, e := range entries {
		if !isTwoDigitCode(e.Code) {
			return nil, &TableError{Symbol: e.Symbol, Code: e.Code, Err: ErrInvalidCodeFormat}
		}
		if _, exists := t.forward[e.Symbol]; exists {
			return nil, &TableError{Symbol: e.Symbol, Code: e.Code, Err: ErrDuplicateSymbol}
		}
		if _, exists := t.reverse[e.Code]; exists {
			return nil, &TableError{Symbol: e.Symbol, Code: e.Code, Err: ErrDuplicateCode}
		}
		t.forward[e.Symbol] = e.Code
		t.reverse[e.Code] = e.Symbol
		t.entries = append(t.entries, e)
	}

	slices.SortFunc(t.entries, func(a, b Entry) int {
		return strings.Compare(a.Code, b.Code)
	})

	return t, nil
}

func isTwoDigitCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

var defaultTable = sync.OnceValue(func() *Table {
	t, err := NewTable(defaultEntries)
	if err != nil {
		panic("cipher: built-in table is invalid: " + err.Error())
	}
	return t
})

// DefaultTable returns the built-in 50-symbol table, built on first use.
func DefaultTable() *Table {
	return defaultTable()
}

// Code returns the code for symbol. The symbol must already be upper case.
func (t *Table) Code(symbol rune) (string, bool) {
	code, ok := t.forward[symbol]
	return code, ok
}

// Symbol returns the symbol for a two-character code.
func (t *Table) Symbol(code string) (rune, bool) {
	symbol, ok := t.reverse[code]
	return symbol, ok
}

// Len returns the number of symbols in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the table ordered by code.
func (t *Table) Entries() []Entry {
	return slices.Clone(t.entries)
}
