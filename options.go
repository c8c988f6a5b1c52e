package pcrex

import "github.com/coregx/pcrex/native"

// Options is a bitmask of compile flags. The values are those of the
// underlying engine (PCRE2) and can be combined with |.
type Options = native.CompileOption

// MatchOptions is a bitmask of match-time flags.
type MatchOptions = native.MatchOption

// Compile flags accepted by Build.
const (
	Caseless          = native.Caseless
	DollarEndOnly     = native.DollarEndOnly
	DotAll            = native.DotAll
	DupNames          = native.DupNames
	Extended          = native.Extended
	ExtendedMore      = native.ExtendedMore
	FirstLine         = native.FirstLine
	Multiline         = native.Multiline
	NeverUCP          = native.NeverUCP
	NeverUTF          = native.NeverUTF
	NoAutoCapture     = native.NoAutoCapture
	NoAutoPossess     = native.NoAutoPossess
	NoDotstarAnchor   = native.NoDotstarAnchor
	NoStartOptimize   = native.NoStartOptimize
	UCP               = native.UCP
	Ungreedy          = native.Ungreedy
	UTF               = native.UTF
	AllowEmptyClass   = native.AllowEmptyClass
	AltBSUX           = native.AltBSUX
	AltCircumflex     = native.AltCircumflex
	AltVerbnames      = native.AltVerbnames
	MatchUnsetBackref = native.MatchUnsetBackref
	NeverBackslashC   = native.NeverBackslashC
	Literal           = native.Literal
	Anchored          = native.Anchored
	EndAnchored       = native.EndAnchored
	NoUTFCheck        = native.NoUTFCheck
)

// SupportedOptions is the allow-mask for compile options. It is the
// compile-only flag space of the engine minus callouts, offset limits and
// invalid-UTF matching, which this package does not expose.
const SupportedOptions = Caseless | DollarEndOnly | DotAll | DupNames |
	Extended | ExtendedMore | FirstLine | Multiline | NeverUCP | NeverUTF |
	NoAutoCapture | NoAutoPossess | NoDotstarAnchor | NoStartOptimize |
	UCP | Ungreedy | UTF | AllowEmptyClass | AltBSUX | AltCircumflex |
	AltVerbnames | MatchUnsetBackref | NeverBackslashC | Literal |
	Anchored | EndAnchored | NoUTFCheck

// DefaultOptions enables UTF-8 interpretation of pattern and subject and
// Unicode properties for \d, \w, \s and friends. It is slower per match
// than ASCIIOptions but required for non-ASCII patterns.
const DefaultOptions = UCP | UTF

// ASCIIOptions is the fast-path alternative to DefaultOptions: bytes are
// matched as Latin-1 code units and character classes are ASCII-only.
const ASCIIOptions Options = 0

// DefaultMatchOptions skips the engine's UTF-8 validity check of the
// subject. Callers must pass valid UTF-8 to patterns compiled with UTF;
// invalid input gives unspecified results.
const DefaultMatchOptions = native.MatchNoUTFCheck

// validateOptions checks opts against SupportedOptions.
func validateOptions(opts Options) error {
	if extra := opts &^ SupportedOptions; extra != 0 {
		return &OptionError{Options: opts, Unsupported: extra}
	}
	return nil
}
