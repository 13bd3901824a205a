package lvimport

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// decodeText turns raw file bytes into text. BOMs are honored first;
// everything else runs through the fixed fallback chain
// UTF-8 -> Windows-1252 -> ISO-8859-1. The chain is a priority list,
// not a retry: each attempt either settles the encoding or hands over
// to the next. Legacy German exports are usually Windows-1252.
func decodeText(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return string(data[3:]), nil
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return decodeUTF16(data[2:], unicode.LittleEndian)
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return decodeUTF16(data[2:], unicode.BigEndian)
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	if decoded, err := charmap.Windows1252.NewDecoder().Bytes(data); err == nil &&
		!bytes.ContainsRune(decoded, utf8.RuneError) {
		return string(decoded), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode file content: %w", err)
	}
	return string(decoded), nil
}

func decodeUTF16(data []byte, endianness unicode.Endianness) (string, error) {
	decoded, err := unicode.UTF16(endianness, unicode.IgnoreBOM).NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode utf-16: %w", err)
	}
	return string(decoded), nil
}
