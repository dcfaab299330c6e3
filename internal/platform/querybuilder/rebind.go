package querybuilder

import "strings"

// Rebind rewrites the builder's $N placeholders to ? for drivers that bind
// positionally (sqlite). Placeholders are emitted in argument order, so a
// plain left-to-right rewrite keeps args aligned. Quoted literals are skipped.
func Rebind(query string) string {
	var out strings.Builder
	out.Grow(len(query))

	inQuote := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		if ch == '\'' {
			inQuote = !inQuote
			out.WriteByte(ch)
			continue
		}
		if ch == '$' && !inQuote && i+1 < len(query) && isDigit(query[i+1]) {
			out.WriteByte('?')
			for i+1 < len(query) && isDigit(query[i+1]) {
				i++
			}
			continue
		}
		out.WriteByte(ch)
	}

	return out.String()
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
