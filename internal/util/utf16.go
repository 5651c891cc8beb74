package util

import (
	"errors"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnterminated is returned when no UTF-16 NUL terminator is found.
var ErrUnterminated = errors.New("unterminated UTF-16 string")

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// DecodeUTF16LE decodes one NUL-terminated UTF-16LE string from the start
// of b. The returned count includes the two terminator bytes.
func DecodeUTF16LE(b []byte) (string, int, error) {
	end := -1
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			end = i
			break
		}
	}
	if end < 0 {
		return "", 0, ErrUnterminated
	}
	s, _, err := transform.Bytes(utf16le.NewDecoder(), b[:end])
	if err != nil {
		return "", 0, err
	}
	return string(s), end + 2, nil
}

// EncodeUTF16LE encodes s as UTF-16LE followed by a NUL terminator.
func EncodeUTF16LE(s string) ([]byte, error) {
	out, _, err := transform.Bytes(utf16le.NewEncoder(), []byte(s))
	if err != nil {
		return nil, err
	}
	return append(out, 0, 0), nil
}
