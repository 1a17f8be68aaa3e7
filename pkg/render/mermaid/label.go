package mermaid

import "strings"

const (
	// reservedChars trigger quoting when present in a label.
	reservedChars = `:"{}|[]<>()#&`

	quoteEscape = "#quot;"
	lineBreak   = "<br/>"
)

// QuoteLabel prepares text for use inside a node bracket or edge label.
// Empty text renders as an empty quoted pair.
func QuoteLabel(text string) string {
	if text == "" {
		return `""`
	}
	escaped := strings.ReplaceAll(text, "\n", lineBreak)
	if !strings.ContainsAny(text, reservedChars) {
		return escaped
	}
	return `"` + strings.ReplaceAll(escaped, `"`, quoteEscape) + `"`
}

// ShortID returns the bijective base-26 letter code for n:
// 0 → A, 25 → Z, 26 → AA, 27 → AB, 52 → BA.
// Negative inputs are treated as 0.
func ShortID(n int) string {
	if n < 0 {
		n = 0
	}
	var buf []byte
	for n++; n > 0; n = (n - 1) / 26 {
		buf = append(buf, byte('A'+(n-1)%26))
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}
