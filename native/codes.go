package native

import "strconv"

// Match error codes (negative). Values match PCRE2.
const (
	ErrorNoMatch      = -1
	ErrorPartial      = -2
	ErrorUTF8Err1     = -3
	ErrorBadData      = -29
	ErrorBadMagic     = -31
	ErrorBadMode      = -32
	ErrorBadOffset    = -33
	ErrorBadOption    = -34
	ErrorBadUTFOffset = -36
	ErrorInternal     = -44
	ErrorMatchLimit   = -47
	ErrorNoMemory     = -48
	ErrorNull         = -51
	ErrorDepthLimit   = -53
	ErrorHeapLimit    = -63
)

// Compile error codes (positive). Values match PCRE2.
const (
	ErrorEndBackslash           = 101
	ErrorUnknownEscape          = 103
	ErrorQuantifierOutOfOrder   = 104
	ErrorQuantifierTooBig       = 105
	ErrorMissingSquareBracket   = 106
	ErrorEscapeInvalidInClass   = 107
	ErrorClassRangeOrder        = 108
	ErrorQuantifierInvalid      = 109
	ErrorInvalidAfterParensQ    = 111
	ErrorMissingClosingParen    = 114
	ErrorBadSubpatternRef       = 115
	ErrorBadCompileOption       = 117
	ErrorParenthesesNestTooDeep = 119
	ErrorPatternTooLarge        = 120
	ErrorHeapFailed             = 121
	ErrorUnmatchedClosingParen  = 122
	ErrorLookbehindNotFixed     = 125
	ErrorBadUTFString           = 144
	ErrorGroupNameInvalid       = 162
	ErrorPatternTooLong         = 188

	// ErrorSyntax is reported by pure-Go drivers for syntax errors that have
	// no finer PCRE2 equivalent.
	ErrorSyntax = 199
)

var errorMessages = map[int]string{
	ErrorNoMatch:      "no match",
	ErrorPartial:      "partial match",
	ErrorUTF8Err1:     "UTF-8 error: invalid byte sequence in subject",
	ErrorBadData:      "bad data value",
	ErrorBadMagic:     "magic number missing",
	ErrorBadMode:      "pattern compiled in wrong mode",
	ErrorBadOffset:    "bad offset value",
	ErrorBadOption:    "bad option value",
	ErrorBadUTFOffset: "offset in UTF-8 string not at start of character",
	ErrorInternal:     "internal error - pattern overwritten?",
	ErrorMatchLimit:   "match limit exceeded",
	ErrorNoMemory:     "no more memory",
	ErrorNull:         "NULL argument passed with non-zero length",
	ErrorDepthLimit:   "matching depth limit exceeded",
	ErrorHeapLimit:    "heap limit exceeded",

	ErrorEndBackslash:           "\\ at end of pattern",
	ErrorUnknownEscape:          "unrecognized character follows \\",
	ErrorQuantifierOutOfOrder:   "numbers out of order in {} quantifier",
	ErrorQuantifierTooBig:       "number too big in {} quantifier",
	ErrorMissingSquareBracket:   "missing terminating ] for character class",
	ErrorEscapeInvalidInClass:   "escape sequence is invalid in character class",
	ErrorClassRangeOrder:        "range out of order in character class",
	ErrorQuantifierInvalid:      "quantifier does not follow a repeatable item",
	ErrorInvalidAfterParensQ:    "unrecognized character after (? or (?-",
	ErrorMissingClosingParen:    "missing closing parenthesis",
	ErrorBadSubpatternRef:       "reference to non-existent subpattern",
	ErrorBadCompileOption:       "unrecognised compile-time option bit(s)",
	ErrorParenthesesNestTooDeep: "parentheses are too deeply nested",
	ErrorPatternTooLarge:        "regular expression is too large",
	ErrorHeapFailed:             "failed to allocate heap memory",
	ErrorUnmatchedClosingParen:  "unmatched closing parenthesis",
	ErrorLookbehindNotFixed:     "lookbehind assertion is not fixed length",
	ErrorBadUTFString:           "UTF-8 error: invalid byte sequence in pattern",
	ErrorGroupNameInvalid:       "subpattern name expected",
	ErrorPatternTooLong:         "pattern string is longer than the limit set by the application",
	ErrorSyntax:                 "syntax error in pattern",
}

// ErrorMessage returns the standard text for a PCRE2 error code. Drivers
// without their own message source use it to implement
// Library.ErrorMessage.
func ErrorMessage(code int) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "unknown error code " + strconv.Itoa(code)
}
