// Package backtrack is a pure-Go native.Library built on
// github.com/dlclark/regexp2, a backtracking engine with Perl/PCRE-style
// syntax including lookbehind, lookahead and backreferences.
//
// regexp2 works on runes; the driver keeps the PCRE2 contract of byte
// offsets by decoding each subject once per match-data block and mapping
// rune positions back to bytes.
//
// Without UCP, \d, \w, \s and \b are rewritten to their ASCII forms before
// compilation, since regexp2 classes are always Unicode-aware.
package backtrack

import (
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"github.com/coregx/pcrex/internal/conv"
	"github.com/coregx/pcrex/internal/syntaxpos"
	"github.com/coregx/pcrex/native"
)

// Name is the registry name of this driver.
const Name = "backtrack"

func init() {
	native.MustRegister(Name, func() native.Library { return New() })
}

// supported lists the compile flags this driver can honour.
const supported = native.Caseless | native.Multiline | native.DotAll |
	native.Extended | native.NoAutoCapture | native.Literal |
	native.UTF | native.UCP | native.NoUTFCheck |
	native.Anchored | native.EndAnchored

// supportedMatch lists the match flags this driver can honour.
const supportedMatch = native.MatchNoUTFCheck | native.MatchAnchored

// Library implements native.Library on regexp2.
type Library struct {
	contexts  native.Table[native.ContextHandle, native.ContextSettings]
	codes     native.Table[native.CodeHandle, *code]
	matchData native.Table[native.MatchDataHandle, *matchData]
}

type code struct {
	re       *regexp2.Regexp
	opts     native.CompileOption
	captures int
}

type matchData struct {
	mu      sync.Mutex
	ovector []uint

	// Decoded form of the last subject seen, reused while the caller
	// iterates over the same bytes.
	utf     bool
	src     []byte // caller's slice, compared by identity
	subject []byte // copy, compared by content
	runes   []rune
	offsets []int // byte offset of runes[i]; offsets[len(runes)] == len(subject)
	decodes int   // full decodes performed
}

// New returns a ready driver.
func New() *Library {
	return &Library{}
}

// Name implements native.Library.
func (l *Library) Name() string { return Name }

// NewCompileContext implements native.Library.
func (l *Library) NewCompileContext(settings native.ContextSettings) native.ContextHandle {
	return l.contexts.Put(settings)
}

// FreeCompileContext implements native.Library.
func (l *Library) FreeCompileContext(ctx native.ContextHandle) {
	l.contexts.Delete(ctx)
}

// Compile implements native.Library.
func (l *Library) Compile(pattern []byte, opts native.CompileOption, ctx native.ContextHandle) (native.CodeHandle, int, int) {
	settings, _ := l.contexts.Get(ctx)
	if errCode, off := settings.Check(pattern); errCode != 0 {
		return 0, errCode, off
	}
	if opts&^supported != 0 {
		return 0, native.ErrorBadCompileOption, 0
	}
	utf := opts.Has(native.UTF)
	if utf && !opts.Has(native.NoUTFCheck) && !utf8.Valid(pattern) {
		return 0, native.ErrorBadUTFString, firstInvalid(pattern)
	}

	src := string(pattern)
	if !utf {
		src = latin1(pattern)
	}
	if opts.Has(native.Literal) {
		src = regexp2.Escape(src)
	} else if !opts.Has(native.UCP) {
		src = asciiClasses(src)
	}
	closing := ")"
	if opts.Has(native.Extended) {
		// A trailing comment would swallow the closing parenthesis.
		closing = "\n)"
	}
	if opts.Has(native.Anchored) {
		src = `\G(?:` + src + closing
	}
	if opts.Has(native.EndAnchored) {
		src = `(?:` + src + closing + `\z`
	}

	re, err := regexp2.Compile(src, translate(opts))
	if err != nil {
		if errCode, off, ok := syntaxpos.Locate(string(pattern)); ok {
			return 0, errCode, off
		}
		return 0, native.ErrorSyntax, len(pattern)
	}
	c := &code{
		re:       re,
		opts:     opts,
		captures: len(re.GetGroupNumbers()) - 1,
	}
	return l.codes.Put(c), 0, 0
}

// translate maps PCRE2 compile flags onto regexp2 options.
func translate(opts native.CompileOption) regexp2.RegexOptions {
	ropts := regexp2.RegexOptions(regexp2.None)
	if opts.Has(native.Caseless) {
		ropts |= regexp2.IgnoreCase
	}
	if opts.Has(native.Multiline) {
		ropts |= regexp2.Multiline
	}
	if opts.Has(native.DotAll) {
		ropts |= regexp2.Singleline
	}
	if opts.Has(native.Extended) {
		ropts |= regexp2.IgnorePatternWhitespace
	}
	if opts.Has(native.NoAutoCapture) {
		ropts |= regexp2.ExplicitCapture
	}
	return ropts
}

// CaptureCount implements native.Library.
func (l *Library) CaptureCount(h native.CodeHandle) int {
	c, ok := l.codes.Get(h)
	if !ok {
		return 0
	}
	return c.captures
}

// FreeCode implements native.Library.
func (l *Library) FreeCode(h native.CodeHandle) {
	l.codes.Delete(h)
}

// NewMatchData implements native.Library.
func (l *Library) NewMatchData(h native.CodeHandle) native.MatchDataHandle {
	c, ok := l.codes.Get(h)
	if !ok {
		return 0
	}
	return l.matchData.Put(&matchData{
		ovector: make([]uint, 2*(c.captures+1)),
	})
}

// FreeMatchData implements native.Library.
func (l *Library) FreeMatchData(h native.MatchDataHandle) {
	l.matchData.Delete(h)
}

// Ovector implements native.Library.
func (l *Library) Ovector(h native.MatchDataHandle) []uint {
	md, ok := l.matchData.Get(h)
	if !ok {
		return nil
	}
	return md.ovector
}

// OvectorCount implements native.Library.
func (l *Library) OvectorCount(h native.MatchDataHandle) int {
	md, ok := l.matchData.Get(h)
	if !ok {
		return 0
	}
	return len(md.ovector) / 2
}

// Match implements native.Library.
func (l *Library) Match(h native.CodeHandle, subject []byte, start int, opts native.MatchOption, mh native.MatchDataHandle) int {
	c, ok := l.codes.Get(h)
	if !ok {
		return native.ErrorBadMagic
	}
	md, ok := l.matchData.Get(mh)
	if !ok {
		return native.ErrorNull
	}
	if start < 0 || start > len(subject) {
		return native.ErrorBadOffset
	}
	if opts&^supportedMatch != 0 {
		return native.ErrorBadOption
	}
	utf := c.opts.Has(native.UTF)
	noCheck := !utf || opts.Has(native.MatchNoUTFCheck) || c.opts.Has(native.NoUTFCheck)
	if !noCheck && !utf8.Valid(subject) {
		return native.ErrorUTF8Err1
	}

	md.mu.Lock()
	defer md.mu.Unlock()

	md.decode(subject, start, utf)
	at := sort.SearchInts(md.offsets, start)
	if md.offsets[at] != start && !noCheck {
		return native.ErrorBadUTFOffset
	}

	m, err := c.re.FindRunesMatchStartingAt(md.runes, at)
	if err != nil {
		return native.ErrorMatchLimit
	}
	if m == nil {
		return native.ErrorNoMatch
	}
	if opts.Has(native.MatchAnchored) && m.Index != at {
		return native.ErrorNoMatch
	}

	groups := m.Groups()
	if len(groups) > len(md.ovector)/2 {
		// Ovector too small: PCRE2 reports 0 and fills what fits.
		md.fill(groups[:len(md.ovector)/2])
		return 0
	}
	return md.fill(groups)
}

// fill writes group offsets into the ovector and returns one more than the
// highest group that participated.
func (md *matchData) fill(groups []regexp2.Group) int {
	for i := range md.ovector {
		md.ovector[i] = native.Unset
	}
	rc := 0
	for i, g := range groups {
		if len(g.Captures) == 0 {
			continue
		}
		md.ovector[2*i] = conv.IntToUint(md.offsets[g.Index])
		md.ovector[2*i+1] = conv.IntToUint(md.offsets[g.Index+g.Length])
		rc = i + 1
	}
	return rc
}

// decode converts subject to runes unless it is the subject decoded last.
// Without utf every byte is one Latin-1 character.
//
// A search past offset 0 in the very slice decoded last is taken to be the
// next step of a scan, and the bytes are not compared again.
func (md *matchData) decode(subject []byte, start int, utf bool) {
	if md.offsets != nil && md.utf == utf {
		if start > 0 && sameSlice(md.src, subject) {
			return
		}
		if string(md.subject) == string(subject) {
			md.src = subject
			return
		}
	}
	md.decodes++
	md.utf = utf
	md.src = subject
	md.subject = append(md.subject[:0], subject...)
	md.runes = md.runes[:0]
	md.offsets = md.offsets[:0]
	for i := 0; i < len(subject); {
		r, size := rune(subject[i]), 1
		if utf {
			r, size = utf8.DecodeRune(subject[i:])
		}
		md.runes = append(md.runes, r)
		md.offsets = append(md.offsets, i)
		i += size
	}
	md.offsets = append(md.offsets, len(subject))
}

// sameSlice reports whether a and b share their first element and length.
func sameSlice(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

// latin1 reinterprets each byte of b as a code point.
func latin1(b []byte) string {
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}

// ErrorMessage implements native.Library.
func (l *Library) ErrorMessage(code int) string {
	return native.ErrorMessage(code)
}

// Live reports the number of live handles of each kind.
func (l *Library) Live() (contexts, codes, matchData int) {
	return l.contexts.Len(), l.codes.Len(), l.matchData.Len()
}

func firstInvalid(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(b)
}
