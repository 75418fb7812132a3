// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package literal encodes and decodes single-quoted JavaScript string
// literals as they appear in the exported search module.
package literal

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnterminated is returned when input ends before the closing quote.
var ErrUnterminated = errors.New("unterminated string literal")

var quoter = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

// Quote returns s as a single-quoted literal.
func Quote(s string) string {
	return "'" + quoter.Replace(s) + "'"
}

// Unquote decodes the literal at the start of s. It returns the decoded
// value and the number of bytes consumed, including both quotes.
func Unquote(s string) (string, int, error) {
	if !strings.HasPrefix(s, "'") {
		return "", 0, fmt.Errorf("expected opening quote")
	}

	var b strings.Builder
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\'':
			return b.String(), i + 1, nil
		case '\n':
			return "", 0, ErrUnterminated
		case '\\':
			i++
			if i >= len(s) {
				return "", 0, ErrUnterminated
			}
			switch s[i] {
			case '\\', '\'', '"':
				b.WriteByte(s[i])
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case 'u':
				if i+4 >= len(s) {
					return "", 0, ErrUnterminated
				}
				var r rune
				if _, err := fmt.Sscanf(s[i+1:i+5], "%04x", &r); err != nil {
					return "", 0, fmt.Errorf("decoding escape \\u%s: %w", s[i+1:i+5], err)
				}
				b.WriteRune(r)
				i += 4
			default:
				return "", 0, fmt.Errorf("unknown escape \\%c at offset %d", s[i], i)
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", 0, ErrUnterminated
}
