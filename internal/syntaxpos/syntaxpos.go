// Package syntaxpos locates syntax errors in a pattern.
//
// The pure-Go drivers compile with engines whose errors carry no byte
// position. Go's regexp/syntax parser reports the offending fragment of the
// pattern instead, which is enough to recover a PCRE2-style error code and
// offset for the common mistakes (dangling quantifiers, unbalanced brackets,
// trailing backslashes).
package syntaxpos

import (
	"errors"
	"regexp/syntax"
	"strings"

	"github.com/coregx/pcrex/native"
)

// Locate parses pattern with Perl flags and, if it is rejected, returns the
// PCRE2 compile error code and byte offset. ok is false when the parser
// accepts the pattern or the error cannot be placed.
func Locate(pattern string) (code int, offset int, ok bool) {
	_, err := syntax.Parse(pattern, syntax.Perl)
	if err == nil {
		return 0, 0, false
	}
	var serr *syntax.Error
	if !errors.As(err, &serr) {
		return 0, 0, false
	}
	return FromError(serr), Offset(pattern, serr), true
}

// FromError maps a regexp/syntax error code to a PCRE2 compile error code.
func FromError(err *syntax.Error) int {
	switch err.Code {
	case syntax.ErrTrailingBackslash:
		return native.ErrorEndBackslash
	case syntax.ErrInvalidEscape:
		return native.ErrorUnknownEscape
	case syntax.ErrInvalidRepeatSize:
		return native.ErrorQuantifierOutOfOrder
	case syntax.ErrMissingBracket:
		return native.ErrorMissingSquareBracket
	case syntax.ErrInvalidCharClass:
		return native.ErrorEscapeInvalidInClass
	case syntax.ErrInvalidCharRange:
		return native.ErrorClassRangeOrder
	case syntax.ErrMissingRepeatArgument, syntax.ErrInvalidRepeatOp:
		return native.ErrorQuantifierInvalid
	case syntax.ErrInvalidPerlOp:
		return native.ErrorInvalidAfterParensQ
	case syntax.ErrMissingParen:
		return native.ErrorMissingClosingParen
	case syntax.ErrUnexpectedParen:
		return native.ErrorUnmatchedClosingParen
	case syntax.ErrNestingDepth:
		return native.ErrorParenthesesNestTooDeep
	case syntax.ErrLarge:
		return native.ErrorPatternTooLarge
	case syntax.ErrInvalidUTF8:
		return native.ErrorBadUTFString
	case syntax.ErrInvalidNamedCapture:
		return native.ErrorGroupNameInvalid
	}
	return native.ErrorSyntax
}

// Offset returns the byte offset in pattern where err was detected.
//
// Errors about something missing at the end of the pattern report
// len(pattern), as PCRE2 does. Otherwise the fragment carried by the error
// is searched for in the pattern.
func Offset(pattern string, err *syntax.Error) int {
	switch err.Code {
	case syntax.ErrMissingParen, syntax.ErrMissingBracket, syntax.ErrTrailingBackslash:
		return len(pattern)
	case syntax.ErrUnexpectedParen:
		// The parser reports the whole pattern here.
		return strayParen(pattern)
	}
	if err.Expr == "" || err.Expr == pattern {
		return 0
	}
	if i := strings.Index(pattern, err.Expr); i >= 0 {
		return i
	}
	return 0
}

// strayParen returns the offset of the first ')' with no matching '(',
// skipping escapes and character classes.
func strayParen(pattern string) int {
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
		case c == '(':
			depth++
		case c == ')':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return 0
}
