package docparse

import (
	"strings"
	"unicode/utf8"
)

// extractPlain returns content as a string, validating it is UTF-8.
// Invalid sequences are replaced with the replacement character.
func extractPlain(content []byte) string {
	if !utf8.Valid(content) {
		return strings.ToValidUTF8(string(content), "�")
	}
	return string(content)
}
