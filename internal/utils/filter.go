package utils

import (
	"strings"
	"unicode/utf8"
)

// WithinSize reports whether word has between minSize and maxSize characters.
func WithinSize(word string, minSize, maxSize int) bool {
	n := utf8.RuneCountInString(word)
	return minSize <= n && n <= maxSize
}

// EscapeDollar escapes '$' so snippet-aware hosts insert it literally.
func EscapeDollar(s string) string {
	return strings.ReplaceAll(s, "$", `\$`)
}
