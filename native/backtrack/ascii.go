package backtrack

import "strings"

// ASCII forms of the shorthand classes. PCRE2 without UCP matches \d, \w
// and \s against ASCII only; regexp2 always uses Unicode categories.
const (
	asciiDigit = `0-9`
	asciiWord  = `0-9A-Za-z_`
	asciiSpace = `\t\n\v\f\r\x20`

	// Complements used inside a bracket class, where a negated class cannot
	// be nested. They stop at U+FFFF.
	asciiNotDigit = `\x00-/:-\uFFFF`
	asciiNotWord  = "\\x00-/:-@\\[-\\^`{-\\uFFFF"
	asciiNotSpace = `\x00-\x08\x0E-\x1F!-\uFFFF`

	asciiBoundary    = `(?:(?<=[` + asciiWord + `])(?![` + asciiWord + `])|(?<![` + asciiWord + `])(?=[` + asciiWord + `]))`
	asciiNotBoundary = `(?:(?<=[` + asciiWord + `])(?=[` + asciiWord + `])|(?<![` + asciiWord + `])(?![` + asciiWord + `]))`
)

// asciiClasses rewrites \d \w \s \b and their negations in src to ASCII
// equivalents. Other escapes are copied unchanged.
func asciiClasses(src string) string {
	var b strings.Builder
	b.Grow(len(src))

	inClass := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\\' && i+1 < len(src):
			i++
			b.WriteString(asciiEscape(src[i-1:i+1], inClass))
		case inClass:
			if c == ']' {
				inClass = false
			}
			b.WriteByte(c)
		case c == '[':
			inClass = true
			b.WriteByte(c)
			// A ']' right after '[' or '[^' is a literal member.
			if i+1 < len(src) && src[i+1] == '^' {
				i++
				b.WriteByte('^')
			}
			if i+1 < len(src) && src[i+1] == ']' {
				i++
				b.WriteByte(']')
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// asciiEscape maps the two-byte escape esc.
func asciiEscape(esc string, inClass bool) string {
	if inClass {
		switch esc[1] {
		case 'd':
			return asciiDigit
		case 'D':
			return asciiNotDigit
		case 'w':
			return asciiWord
		case 'W':
			return asciiNotWord
		case 's':
			return asciiSpace
		case 'S':
			return asciiNotSpace
		}
		return esc
	}

	switch esc[1] {
	case 'd':
		return `[` + asciiDigit + `]`
	case 'D':
		return `[^` + asciiDigit + `]`
	case 'w':
		return `[` + asciiWord + `]`
	case 'W':
		return `[^` + asciiWord + `]`
	case 's':
		return `[` + asciiSpace + `]`
	case 'S':
		return `[^` + asciiSpace + `]`
	case 'b':
		return asciiBoundary
	case 'B':
		return asciiNotBoundary
	}
	return esc
}
