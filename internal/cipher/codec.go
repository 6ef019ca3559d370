package cipher

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Codec encodes and decodes text with a Table.
// A Codec holds no mutable state and may be shared between goroutines.
type Codec struct {
	table *Table
}

// NewCodec creates a Codec over table. A nil table selects DefaultTable.
func NewCodec(table *Table) *Codec {
	if table == nil {
		table = DefaultTable()
	}
	return &Codec{table: table}
}

// Table returns the table used by the codec.
func (c *Codec) Table() *Table {
	return c.table
}

// Encode upper-cases text and replaces every character with its code.
// The first unsupported character aborts the whole operation with an
// *UnsupportedCharacterError.
func (c *Codec) Encode(text string) (string, error) {
	// Casers carry state, so each call gets its own.
	upper := cases.Upper(language.Und).String(text)

	var builder strings.Builder
	builder.Grow(utf8.RuneCountInString(upper) * CodeLength)

	pos := 0
	for _, char := range upper {
		code, ok := c.table.Code(char)
		if !ok {
			return "", &UnsupportedCharacterError{Char: char, Position: pos}
		}
		builder.WriteString(code)
		pos++
	}

	return builder.String(), nil
}

// Decode splits coded into two-character codes and maps each back to its
// symbol. The result has its first character upper-cased and the rest
// lower-cased, so Decode(Encode("hello World")) is "Hello world".
func (c *Codec) Decode(coded string) (string, error) {
	chars := []rune(coded)
	if len(chars)%CodeLength != 0 {
		return "", &MalformedInputError{Length: len(chars)}
	}

	symbols := make([]rune, 0, len(chars)/CodeLength)
	for i := 0; i < len(chars); i += CodeLength {
		chunk := string(chars[i : i+CodeLength])
		symbol, ok := c.table.Symbol(chunk)
		if !ok {
			return "", &InvalidCodeError{Chunk: chunk, Position: i}
		}
		symbols = append(symbols, symbol)
	}

	return capitalize(symbols), nil
}

// capitalize upper-cases the first symbol and lower-cases the remainder.
func capitalize(symbols []rune) string {
	if len(symbols) == 0 {
		return ""
	}
	head := cases.Upper(language.Und).String(string(symbols[:1]))
	tail := cases.Lower(language.Und).String(string(symbols[1:]))
	return head + tail
}

// Encode encodes text with the default table.
func Encode(text string) (string, error) {
	return NewCodec(nil).Encode(text)
}

// Decode decodes coded text with the default table.
func Decode(coded string) (string, error) {
	return NewCodec(nil).Decode(coded)
}
