package pofile

import (
	"strings"
	"unicode/utf8"
)

// Unescape decodes the backslash escapes of a PO string literal body.
//
// The C escapes \a \b \t \n \v \f \r, the quoted characters \" \\ \' \?,
// three-digit octal \NNN and two-digit hex \xHH are recognised. Any other
// sequence drops the backslash and keeps the following character. A lone
// trailing backslash is kept. Octal and hex escapes produce a single byte,
// so UTF-8 sequences written byte-by-byte survive intact. Octal values
// above \377 do not fit a byte and are treated as an unknown escape.
func Unescape(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch esc := s[i]; esc {
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 't':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		case 'v':
			b.WriteByte('\v')
		case 'f':
			b.WriteByte('\f')
		case 'r':
			b.WriteByte('\r')
		case 'x':
			if i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
				b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
				i += 2
			} else {
				b.WriteByte(esc)
			}
		default:
			if i+2 < len(s) && esc <= '3' && isOctal(esc) && isOctal(s[i+1]) && isOctal(s[i+2]) {
				v := int(esc-'0')<<6 | int(s[i+1]-'0')<<3 | int(s[i+2]-'0')
				b.WriteByte(byte(v))
				i += 2
			} else {
				b.WriteByte(esc)
			}
		}
	}
	return b.String()
}

// Escape encodes a raw string for use inside a PO string literal.
//
// BEL, backspace, tab, vertical tab, form feed, carriage return, double
// quote and backslash are escaped. Bytes that are not part of a valid UTF-8
// sequence become three-digit octal escapes, so the output stays valid
// UTF-8 and Unescape restores the original bytes. Newlines are left alone:
// the serializer splits on them before escaping each segment.
func Escape(s string) string {
	if utf8.ValidString(s) && !strings.ContainsAny(s, "\a\b\t\v\f\r\"\\") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			c := s[i]
			b.WriteByte('\\')
			b.WriteByte('0' + c>>6)
			b.WriteByte('0' + c>>3&7)
			b.WriteByte('0' + c&7)
			i++
			continue
		}
		switch r {
		case '\a':
			b.WriteString(`\a`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\v':
			b.WriteString(`\v`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// extract returns the decoded body of a keyword or continuation line: the
// text after the first double quote, minus one trailing double quote.
// A line without any quote has an empty body.
func extract(line string) string {
	line = strings.TrimSpace(line)
	i := strings.IndexByte(line, '"')
	if i < 0 {
		return ""
	}
	body := line[i+1:]
	body = strings.TrimSuffix(body, `"`)
	return Unescape(body)
}

func isOctal(c byte) bool { return c >= '0' && c <= '7' }

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
