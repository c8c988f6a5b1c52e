package native

// CompileOption is a bitmask of pattern compile flags. Values match PCRE2.
type CompileOption uint32

// Compile-only flags.
const (
	AllowEmptyClass   CompileOption = 0x00000001
	AltBSUX           CompileOption = 0x00000002
	AutoCallout       CompileOption = 0x00000004
	Caseless          CompileOption = 0x00000008
	DollarEndOnly     CompileOption = 0x00000010
	DotAll            CompileOption = 0x00000020
	DupNames          CompileOption = 0x00000040
	Extended          CompileOption = 0x00000080
	FirstLine         CompileOption = 0x00000100
	MatchUnsetBackref CompileOption = 0x00000200
	Multiline         CompileOption = 0x00000400
	NeverUCP          CompileOption = 0x00000800
	NeverUTF          CompileOption = 0x00001000
	NoAutoCapture     CompileOption = 0x00002000
	NoAutoPossess     CompileOption = 0x00004000
	NoDotstarAnchor   CompileOption = 0x00008000
	NoStartOptimize   CompileOption = 0x00010000
	UCP               CompileOption = 0x00020000
	Ungreedy          CompileOption = 0x00040000
	UTF               CompileOption = 0x00080000
	NeverBackslashC   CompileOption = 0x00100000
	AltCircumflex     CompileOption = 0x00200000
	AltVerbnames      CompileOption = 0x00400000
	UseOffsetLimit    CompileOption = 0x00800000
	ExtendedMore      CompileOption = 0x01000000
	Literal           CompileOption = 0x02000000
	MatchInvalidUTF   CompileOption = 0x04000000
)

// Flags shared between compile and match.
const (
	EndAnchored CompileOption = 0x20000000
	NoUTFCheck  CompileOption = 0x40000000
	Anchored    CompileOption = 0x80000000
)

// MatchOption is a bitmask of match-time flags. Values match PCRE2.
type MatchOption uint32

// Match flags.
const (
	NotBOL          MatchOption = 0x00000001
	NotEOL          MatchOption = 0x00000002
	NotEmpty        MatchOption = 0x00000004
	NotEmptyAtStart MatchOption = 0x00000008
	PartialSoft     MatchOption = 0x00000010
	PartialHard     MatchOption = 0x00000020

	MatchEndAnchored = MatchOption(EndAnchored)
	MatchNoUTFCheck  = MatchOption(NoUTFCheck)
	MatchAnchored    = MatchOption(Anchored)
)

// Unset marks an ovector entry for a group that did not participate in the
// match (PCRE2_UNSET).
const Unset = ^uint(0)

// Has reports whether all bits of flag are set in o.
func (o CompileOption) Has(flag CompileOption) bool {
	return o&flag == flag
}

// Has reports whether all bits of flag are set in o.
func (o MatchOption) Has(flag MatchOption) bool {
	return o&flag == flag
}
