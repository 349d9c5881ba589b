package gnt

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
)

// Character decodes a tag code as the GBK double-byte character it stands for.
// The first GBK byte is the low byte of the little-endian code. Codes which are not
// valid GBK are returned as "?".
func Character(code uint16) string {
	raw := []byte{byte(code), byte(code >> 8)}
	if raw[0] < 0x80 {
		// Single byte (ASCII) codes are padded with a zero byte.
		if raw[1] == 0 {
			return string(rune(raw[0]))
		}
		return "?"
	}
	out, err := simplifiedchinese.GBK.NewDecoder().Bytes(raw)
	if err != nil || !utf8.Valid(out) || utf8.RuneCount(out) != 1 {
		return "?"
	}
	if r, _ := utf8.DecodeRune(out); r == utf8.RuneError {
		return "?"
	}
	return string(out)
}
