// Package literal is a native.Library for patterns compiled with the
// Literal flag. The needle is searched with a coregx/ahocorasick automaton,
// so there is no pattern syntax at all and compilation cannot fail on
// content.
package literal

import (
	"bytes"
	"unicode/utf8"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/pcrex/internal/conv"
	"github.com/coregx/pcrex/native"
)

// Name is the registry name of this driver.
const Name = "literal"

func init() {
	native.MustRegister(Name, func() native.Library { return New() })
}

const supported = native.Literal | native.UTF | native.UCP |
	native.NoUTFCheck | native.Anchored | native.EndAnchored

const supportedMatch = native.MatchNoUTFCheck | native.MatchAnchored | native.MatchEndAnchored

// Library implements native.Library with Aho-Corasick search.
type Library struct {
	contexts  native.Table[native.ContextHandle, native.ContextSettings]
	codes     native.Table[native.CodeHandle, *code]
	matchData native.Table[native.MatchDataHandle, []uint]
}

type code struct {
	needle    []byte
	automaton *ahocorasick.Automaton // nil for the empty needle
	opts      native.CompileOption
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

// Compile implements native.Library. The Literal flag is required.
func (l *Library) Compile(pattern []byte, opts native.CompileOption, ctx native.ContextHandle) (native.CodeHandle, int, int) {
	settings, _ := l.contexts.Get(ctx)
	// Parentheses in a literal are plain bytes, so only the length limit applies.
	settings.ParensNestLimit = 0
	if errCode, off := settings.Check(pattern); errCode != 0 {
		return 0, errCode, off
	}
	if !opts.Has(native.Literal) || opts&^supported != 0 {
		return 0, native.ErrorBadCompileOption, 0
	}
	if !opts.Has(native.NoUTFCheck) && opts.Has(native.UTF) && !utf8.Valid(pattern) {
		return 0, native.ErrorBadUTFString, 0
	}

	c := &code{
		needle: bytes.Clone(pattern),
		opts:   opts,
	}
	if len(pattern) > 0 {
		builder := ahocorasick.NewBuilder()
		builder.AddPattern(c.needle)
		auto, err := builder.Build()
		if err != nil {
			return 0, native.ErrorHeapFailed, 0
		}
		c.automaton = auto
	}
	return l.codes.Put(c), 0, 0
}

// CaptureCount implements native.Library. Literals have no groups.
func (l *Library) CaptureCount(native.CodeHandle) int { return 0 }

// FreeCode implements native.Library.
func (l *Library) FreeCode(h native.CodeHandle) {
	l.codes.Delete(h)
}

// NewMatchData implements native.Library.
func (l *Library) NewMatchData(h native.CodeHandle) native.MatchDataHandle {
	if _, ok := l.codes.Get(h); !ok {
		return 0
	}
	return l.matchData.Put(make([]uint, 2))
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
	if c.opts.Has(native.UTF) && !opts.Has(native.MatchNoUTFCheck) && !c.opts.Has(native.NoUTFCheck) {
		if !utf8.Valid(subject) {
			return native.ErrorUTF8Err1
		}
	}

	anchored := c.opts.Has(native.Anchored) || opts.Has(native.MatchAnchored)
	endAnchored := c.opts.Has(native.EndAnchored) || opts.Has(native.MatchEndAnchored)

	var s, e int
	switch {
	case endAnchored:
		// Only one candidate position.
		s = len(subject) - len(c.needle)
		if s < start || !bytes.Equal(subject[s:], c.needle) {
			return native.ErrorNoMatch
		}
		e = len(subject)
	case c.automaton == nil:
		s, e = start, start
	case start >= len(subject):
		return native.ErrorNoMatch
	default:
		m := c.automaton.Find(subject, start)
		if m == nil {
			return native.ErrorNoMatch
		}
		s, e = m.Start, m.End
	}
	if anchored && s != start {
		return native.ErrorNoMatch
	}
	ov[0] = conv.IntToUint(s)
	ov[1] = conv.IntToUint(e)
	return 1
}

// ErrorMessage implements native.Library.
func (l *Library) ErrorMessage(code int) string {
	return native.ErrorMessage(code)
}
