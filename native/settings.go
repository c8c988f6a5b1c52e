package native

// Check applies the context limits to pattern the way PCRE2 does before
// parsing. It returns errCode 0 when pattern is within limits, otherwise a
// compile error code and the offending byte offset.
//
// Drivers that cannot hand the limits to their engine call Check first.
func (s ContextSettings) Check(pattern []byte) (errCode int, errOffset int) {
	if s.MaxPatternLength > 0 && len(pattern) > s.MaxPatternLength {
		return ErrorPatternTooLong, 0
	}
	if s.ParensNestLimit > 0 {
		if off := nestOverflow(pattern, s.ParensNestLimit); off >= 0 {
			return ErrorParenthesesNestTooDeep, off
		}
	}
	return 0, 0
}

// nestOverflow returns the offset of the first '(' that nests deeper than
// limit, or -1. Escaped parentheses and parentheses inside character classes
// do not count.
func nestOverflow(pattern []byte, limit int) int {
	depth := 0
	inClass := false
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; {
		case c == '\\':
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
			// A ']' right after '[' or '[^' is a literal member.
			if i+1 < len(pattern) && pattern[i+1] == '^' {
				i++
			}
			if i+1 < len(pattern) && pattern[i+1] == ']' {
				i++
			}
		case c == '(':
			depth++
			if depth > limit {
				return i
			}
		case c == ')':
			if depth > 0 {
				depth--
			}
		}
	}
	return -1
}
