package extractor

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// BinaryPlaceholder stands in for content that could not be decoded as
// text. The pipeline continues with it rather than aborting.
const BinaryPlaceholder = "[Binary Content]"

// DecodeText converts raw bytes into a string, handling UTF-8/UTF-16
// BOMs and falling back through common single-byte encodings. Content
// that does not look like text at all yields BinaryPlaceholder.
func DecodeText(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return string(data[3:])
	}

	if len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE {
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		if decoded, _, err := transform.Bytes(decoder, data); err == nil {
			return string(decoded)
		}
		return BinaryPlaceholder
	}

	if len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF {
		decoder := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
		if decoded, _, err := transform.Bytes(decoder, data); err == nil {
			return string(decoded)
		}
		return BinaryPlaceholder
	}

	if utf8.Valid(data) {
		if looksBinary(data) {
			return BinaryPlaceholder
		}
		return string(data)
	}

	decoder := charmap.Windows1252.NewDecoder()
	if decoded, _, err := transform.Bytes(decoder, data); err == nil && !looksBinary(decoded) {
		return string(decoded)
	}

	return BinaryPlaceholder
}

// looksBinary samples up to 512 bytes and reports whether less than 80%
// of them are printable or whitespace.
func looksBinary(data []byte) bool {
	sampleSize := 512
	if len(data) < sampleSize {
		sampleSize = len(data)
	}
	if sampleSize == 0 {
		return false
	}

	printableCount := 0
	for i := 0; i < sampleSize; i++ {
		b := data[i]
		if (b >= 32 && b < 127) || b == '\t' || b == '\n' || b == '\r' || b >= 0x80 {
			printableCount++
		}
	}

	return float64(printableCount)/float64(sampleSize) < 0.8
}

// NormalizeNewlines collapses CRLF/CR line endings and strips NUL bytes.
func NormalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.ReplaceAll(text, "\x00", "")
}
