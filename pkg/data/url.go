package data

import (
	"strings"
)

const upperhex = "0123456789ABCDEF"

// EncodeURL percent-encodes the path, query and fragment of raw. The path
// keeps "/" and the query keeps "=" and "&". Valid escapes already in raw
// are left alone, so encoding twice is a no-op.
func EncodeURL(raw string) string {
	rest, fragment, hasFragment := strings.Cut(raw, "#")
	rest, query, _ := strings.Cut(rest, "?")

	authority := ""
	if i := strings.Index(rest, "://"); i >= 0 {
		end := len(rest)
		if j := strings.IndexByte(rest[i+3:], '/'); j >= 0 {
			end = i + 3 + j
		}
		authority, rest = rest[:end], rest[end:]
	}

	var b strings.Builder
	b.WriteString(authority)
	b.WriteString(quote(rest, "/"))
	if query != "" {
		b.WriteByte('?')
		b.WriteString(quote(query, "=&"))
	}
	if hasFragment && fragment != "" {
		b.WriteByte('#')
		b.WriteString(quote(fragment, ""))
	}
	return b.String()
}

func quote(s, safe string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case unreserved(c) || strings.IndexByte(safe, c) >= 0:
			b.WriteByte(c)
		case c == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]):
			b.WriteString(s[i : i+3])
			i += 2
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		}
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return c == '-' || c == '.' || c == '_' || c == '~'
}

func ishex(c byte) bool {
	switch {
	case '0' <= c && c <= '9', 'a' <= c && c <= 'f', 'A' <= c && c <= 'F':
		return true
	}
	return false
}
