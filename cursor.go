package pcrex

import (
	"errors"
	"unicode/utf8"
)

// Matches is a cursor over the successive non-overlapping matches of a
// Regex in one subject.
//
// Each step is a FindAt call starting where the previous match ended.
// After an empty match the next search starts one character further on,
// and an empty match ending where the previous match ended is skipped, so
// a scan over n bytes makes at most n+1 steps.
//
// Example:
//
//	it := re.FindIter(subject)
//	for m, ok := it.Next(); ok; m, ok = it.Next() {
//	    fmt.Println(m.Start(), m.End())
//	}
//	if err := it.Err(); err != nil {
//	    return err
//	}
type Matches struct {
	re      *Regex
	subject []byte
	utf     bool

	lastEnd   int // next search start; never decreases
	lastMatch int // end of the last reported match, -1 before the first
	done      bool
	err       error
}

func newMatches(re *Regex, subject []byte) *Matches {
	it := &Matches{re: re}
	it.Reset(subject)
	return it
}

// Next returns the next match. ok is false when the scan is finished,
// either because no more matches exist or because the engine failed; in
// the latter case Err reports the failure.
func (it *Matches) Next() (m Match, ok bool) {
	for !it.done {
		if it.lastEnd > len(it.subject) {
			it.done = true
			break
		}

		found, err := it.re.FindAt(it.subject, it.lastEnd, DefaultMatchOptions)
		if err != nil {
			if !errors.Is(err, ErrNoMatch) {
				it.err = err
			}
			it.done = true
			break
		}

		if found.IsEmpty() {
			it.lastEnd = found.end + it.width(found.end)
			if found.end == it.lastMatch {
				continue
			}
		} else {
			it.lastEnd = found.end
		}
		it.lastMatch = found.end
		return found, true
	}
	return Match{}, false
}

// width is the step taken past an empty match at pos: one byte, or one
// whole UTF-8 sequence for UTF patterns so the next start stays on a
// character boundary.
func (it *Matches) width(pos int) int {
	if !it.utf || pos >= len(it.subject) {
		return 1
	}
	_, size := utf8.DecodeRune(it.subject[pos:])
	return size
}

// Err returns the engine failure that stopped the scan, if any.
// Running out of matches is not an error.
func (it *Matches) Err() error {
	return it.err
}

// Reset rewinds the cursor to scan subject from the beginning.
func (it *Matches) Reset(subject []byte) {
	it.subject = subject
	it.utf = it.re.pattern.options.Has(UTF)
	it.lastEnd = 0
	it.lastMatch = -1
	it.done = false
	it.err = nil
}
