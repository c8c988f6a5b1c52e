// Package linear is a pure-Go native.Library built on the coregex
// meta-engine. Matching is guaranteed O(m*n): there is no backtracking, and
// therefore no lookaround or backreferences. Syntax is RE2/Go.
//
// The meta-engine decides whether a match exists at or after the start
// offset. Once it has, the span and capture groups are read from a
// regexp.Regexp compiled from the same source, which is linear as well and
// reports leftmost-first submatches.
package linear

import (
	"regexp"
	"unicode/utf8"

	"github.com/coregx/coregex"
	"github.com/coregx/coregex/meta"

	"github.com/coregx/pcrex/internal/conv"
	"github.com/coregx/pcrex/internal/syntaxpos"
	"github.com/coregx/pcrex/native"
)

// Name is the registry name of this driver.
const Name = "linear"

func init() {
	native.MustRegister(Name, func() native.Library { return New() })
}

const supported = native.Caseless | native.Multiline | native.DotAll |
	native.Ungreedy | native.Literal | native.UTF | native.UCP |
	native.NoUTFCheck | native.Anchored | native.EndAnchored

const supportedMatch = native.MatchNoUTFCheck | native.MatchAnchored

// Library implements native.Library on coregex.
type Library struct {
	config    meta.Config
	contexts  native.Table[native.ContextHandle, native.ContextSettings]
	codes     native.Table[native.CodeHandle, *code]
	matchData native.Table[native.MatchDataHandle, []uint]
}

type code struct {
	engine *meta.Engine

	// spans finds the leftmost match from the start of the text.
	// spansAfter is `\A(?s:.)(?s:.*?)(src)`: applied one character before
	// the start offset it yields the leftmost match at or after the offset
	// in group 1, with that character as left context for \b and ^.
	spans      *regexp.Regexp
	spansAfter *regexp.Regexp

	opts     native.CompileOption
	captures int
}

// New returns a driver using the default meta-engine configuration.
func New() *Library {
	return NewWithConfig(meta.DefaultConfig())
}

// NewWithConfig returns a driver that compiles every pattern with config.
func NewWithConfig(config meta.Config) *Library {
	return &Library{config: config}
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
	// RE2 syntax is parsed as UTF-8 whatever the UTF flag says.
	if !opts.Has(native.NoUTFCheck) && !utf8.Valid(pattern) {
		return 0, native.ErrorBadUTFString, 0
	}

	src := string(pattern)
	if opts.Has(native.Literal) {
		src = coregex.QuoteMeta(src)
	} else if errCode, off, bad := syntaxpos.Locate(src); bad {
		return 0, errCode, off
	}
	if flags := inlineFlags(opts); flags != "" {
		src = "(?" + flags + ")" + src
	}
	if opts.Has(native.EndAnchored) {
		src = `(?:` + src + `)\z`
	}

	engine, err := meta.CompileWithConfig(src, l.config)
	if err != nil {
		return 0, native.ErrorPatternTooLarge, 0
	}
	spans, err := regexp.Compile(src)
	if err != nil {
		return 0, native.ErrorPatternTooLarge, 0
	}
	spansAfter, err := regexp.Compile(`\A(?s:.)(?s:.*?)(` + src + `)`)
	if err != nil {
		return 0, native.ErrorPatternTooLarge, 0
	}
	return l.codes.Put(&code{
		engine:     engine,
		spans:      spans,
		spansAfter: spansAfter,
		opts:       opts,
		captures:   spans.NumSubexp(),
	}), 0, 0
}

func inlineFlags(opts native.CompileOption) string {
	var flags []byte
	if opts.Has(native.Caseless) {
		flags = append(flags, 'i')
	}
	if opts.Has(native.Multiline) {
		flags = append(flags, 'm')
	}
	if opts.Has(native.DotAll) {
		flags = append(flags, 's')
	}
	if opts.Has(native.Ungreedy) {
		flags = append(flags, 'U')
	}
	return string(flags)
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
	return l.matchData.Put(make([]uint, 2*(c.captures+1)))
}

// FreeMatchData implements native.Library.
func (l *Library) FreeMatchData(h native.MatchDataHandle) {
	l.matchData.Delete(h)
}

// Ovector implements native.Library.
func (l *Library) Ovector(h native.MatchDataHandle) []uint {
	ov, _ := l.matchData.Get(h)
	return ov
}

// OvectorCount implements native.Library.
func (l *Library) OvectorCount(h native.MatchDataHandle) int {
	ov, _ := l.matchData.Get(h)
	return len(ov) / 2
}

// Match implements native.Library.
func (l *Library) Match(h native.CodeHandle, subject []byte, start int, opts native.MatchOption, mh native.MatchDataHandle) int {
	c, ok := l.codes.Get(h)
	if !ok {
		return native.ErrorBadMagic
	}
	ov, ok := l.matchData.Get(mh)
	if !ok || len(ov) < 2 {
		return native.ErrorNull
	}
	if start < 0 || start > len(subject) {
		return native.ErrorBadOffset
	}
	if opts&^supportedMatch != 0 {
		return native.ErrorBadOption
	}
	noCheck := !c.opts.Has(native.UTF) ||
		opts.Has(native.MatchNoUTFCheck) || c.opts.Has(native.NoUTFCheck)
	if !noCheck {
		if !utf8.Valid(subject) {
			return native.ErrorUTF8Err1
		}
		if start < len(subject) && !utf8.RuneStart(subject[start]) {
			return native.ErrorBadUTFOffset
		}
	}

	if _, _, found := c.engine.FindIndicesAt(subject, start); !found {
		return native.ErrorNoMatch
	}
	loc := c.locate(subject, start)
	if loc == nil {
		return native.ErrorNoMatch
	}
	anchored := c.opts.Has(native.Anchored) || opts.Has(native.MatchAnchored)
	if anchored && loc[0] != start {
		return native.ErrorNoMatch
	}

	rc := 0
	for i := range ov {
		ov[i] = native.Unset
	}
	for i := 0; 2*i+1 < len(loc) && 2*i+1 < len(ov); i++ {
		if loc[2*i] < 0 {
			continue
		}
		ov[2*i] = conv.IntToUint(loc[2*i])
		ov[2*i+1] = conv.IntToUint(loc[2*i+1])
		rc = i + 1
	}
	return rc
}

// locate returns the submatch offsets of the leftmost match at or after
// start, relative to subject, or nil.
func (c *code) locate(subject []byte, start int) []int {
	if start == 0 {
		return c.spans.FindSubmatchIndex(subject)
	}
	_, width := utf8.DecodeLastRune(subject[:start])
	from := start - width
	loc := c.spansAfter.FindSubmatchIndex(subject[from:])
	if loc == nil {
		return nil
	}
	out := loc[2:]
	for i, off := range out {
		if off >= 0 {
			out[i] = off + from
		}
	}
	return out
}

// ErrorMessage implements native.Library.
func (l *Library) ErrorMessage(code int) string {
	return native.ErrorMessage(code)
}
