package pcrex

import (
	"github.com/coregx/pcrex/internal/conv"
	"github.com/coregx/pcrex/native"
)

// MatchData owns a native match-data block: the offset-pair buffer every
// match call writes into.
//
// Slot 0 holds the span of the whole match; slots 1..N hold capture groups.
// The buffer is overwritten by each match, so MatchData is the one piece of
// mutable state in a Regex.
type MatchData struct {
	lib     native.Library
	handle  native.MatchDataHandle
	ovector []uint // engine-owned view, fixed at allocation
	slots   int

	// populated is set once a match has succeeded; before that the
	// ovector holds no meaningful offsets.
	populated bool
}

// newMatchData allocates a match-data block sized for p.
func newMatchData(p *Pattern) (*MatchData, error) {
	h := p.lib.NewMatchData(p.handle)
	if h == 0 {
		return nil, &ResourceError{Library: p.lib.Name(), Resource: "match data"}
	}
	slots := p.lib.OvectorCount(h)
	ov := p.lib.Ovector(h)
	if len(ov) > 2*slots {
		ov = ov[:2*slots]
	}
	return &MatchData{
		lib:     p.lib,
		handle:  h,
		ovector: ov,
		slots:   len(ov) / 2,
	}, nil
}

// Slots returns the number of offset pairs the block holds.
func (md *MatchData) Slots() int { return md.slots }

// Pair returns the offsets of slot i from the last successful match.
// ok is false if i is out of range, no match has succeeded yet, or the
// group did not participate.
func (md *MatchData) Pair(i int) (start, end int, ok bool) {
	if !md.populated || i < 0 || i >= md.slots {
		return -1, -1, false
	}
	return conv.OffsetPair(md.ovector[2*i], md.ovector[2*i+1])
}

// Offsets returns a copy of the offset vector from the last successful
// match, 2*Slots() entries long. Returns nil before the first success.
func (md *MatchData) Offsets() []uint {
	if !md.populated {
		return nil
	}
	out := make([]uint, len(md.ovector))
	copy(out, md.ovector)
	return out
}

// free releases the native handle. Safe to call more than once.
func (md *MatchData) free() {
	if md.handle == 0 {
		return
	}
	md.ovector = nil
	md.populated = false
	md.lib.FreeMatchData(md.handle)
	md.handle = 0
}
