// Package nativetest provides a native.Library double for tests.
//
// Counting wraps a real driver, records every allocation and release per
// handle kind, and can be told to fail allocations or force match results.
package nativetest

import (
	"sync"

	"github.com/coregx/pcrex/native"
)

// Counts is a snapshot of the calls seen by a Counting library.
type Counts struct {
	ContextsCreated  int
	ContextsFreed    int
	CodesCreated     int
	CodesFreed       int
	MatchDataCreated int
	MatchDataFreed   int
	CompileCalls     int
	MatchCalls       int

	// BadFrees counts frees of handles that were never issued or were
	// already freed.
	BadFrees int
}

// Balanced reports whether every handle created has been freed exactly once.
func (c Counts) Balanced() bool {
	return c.ContextsCreated == c.ContextsFreed &&
		c.CodesCreated == c.CodesFreed &&
		c.MatchDataCreated == c.MatchDataFreed &&
		c.BadFrees == 0
}

// Counting is a native.Library that delegates to Inner and counts.
type Counting struct {
	Inner native.Library

	// FailContext makes NewCompileContext return the null handle.
	FailContext bool
	// FailMatchData makes NewMatchData return the null handle.
	FailMatchData bool
	// MatchResult, when non-nil, is returned by Match instead of running
	// the inner driver.
	MatchResult *int

	mu        sync.Mutex
	counts    Counts
	contexts  map[native.ContextHandle]bool
	codes     map[native.CodeHandle]bool
	matchData map[native.MatchDataHandle]bool
}

// New wraps inner.
func New(inner native.Library) *Counting {
	return &Counting{
		Inner:     inner,
		contexts:  make(map[native.ContextHandle]bool),
		codes:     make(map[native.CodeHandle]bool),
		matchData: make(map[native.MatchDataHandle]bool),
	}
}

// Counts returns a snapshot of the counters.
func (c *Counting) Counts() Counts {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts
}

// ForceMatchResult makes every subsequent Match return rc.
func (c *Counting) ForceMatchResult(rc int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.MatchResult = &rc
}

// Name implements native.Library.
func (c *Counting) Name() string { return "counting(" + c.Inner.Name() + ")" }

// NewCompileContext implements native.Library.
func (c *Counting) NewCompileContext(settings native.ContextSettings) native.ContextHandle {
	if c.FailContext {
		return 0
	}
	h := c.Inner.NewCompileContext(settings)
	if h != 0 {
		c.mu.Lock()
		c.counts.ContextsCreated++
		c.contexts[h] = true
		c.mu.Unlock()
	}
	return h
}

// FreeCompileContext implements native.Library.
func (c *Counting) FreeCompileContext(h native.ContextHandle) {
	c.mu.Lock()
	if c.contexts[h] {
		delete(c.contexts, h)
		c.counts.ContextsFreed++
	} else if h != 0 {
		c.counts.BadFrees++
	}
	c.mu.Unlock()
	c.Inner.FreeCompileContext(h)
}

// Compile implements native.Library.
func (c *Counting) Compile(pattern []byte, opts native.CompileOption, ctx native.ContextHandle) (native.CodeHandle, int, int) {
	h, errCode, errOffset := c.Inner.Compile(pattern, opts, ctx)
	c.mu.Lock()
	c.counts.CompileCalls++
	if h != 0 {
		c.counts.CodesCreated++
		c.codes[h] = true
	}
	c.mu.Unlock()
	return h, errCode, errOffset
}

// CaptureCount implements native.Library.
func (c *Counting) CaptureCount(h native.CodeHandle) int {
	return c.Inner.CaptureCount(h)
}

// FreeCode implements native.Library.
func (c *Counting) FreeCode(h native.CodeHandle) {
	c.mu.Lock()
	if c.codes[h] {
		delete(c.codes, h)
		c.counts.CodesFreed++
	} else if h != 0 {
		c.counts.BadFrees++
	}
	c.mu.Unlock()
	c.Inner.FreeCode(h)
}

// NewMatchData implements native.Library.
func (c *Counting) NewMatchData(code native.CodeHandle) native.MatchDataHandle {
	if c.FailMatchData {
		return 0
	}
	h := c.Inner.NewMatchData(code)
	if h != 0 {
		c.mu.Lock()
		c.counts.MatchDataCreated++
		c.matchData[h] = true
		c.mu.Unlock()
	}
	return h
}

// FreeMatchData implements native.Library.
func (c *Counting) FreeMatchData(h native.MatchDataHandle) {
	c.mu.Lock()
	if c.matchData[h] {
		delete(c.matchData, h)
		c.counts.MatchDataFreed++
	} else if h != 0 {
		c.counts.BadFrees++
	}
	c.mu.Unlock()
	c.Inner.FreeMatchData(h)
}

// Ovector implements native.Library.
func (c *Counting) Ovector(h native.MatchDataHandle) []uint {
	return c.Inner.Ovector(h)
}

// OvectorCount implements native.Library.
func (c *Counting) OvectorCount(h native.MatchDataHandle) int {
	return c.Inner.OvectorCount(h)
}

// Match implements native.Library.
func (c *Counting) Match(code native.CodeHandle, subject []byte, start int, opts native.MatchOption, md native.MatchDataHandle) int {
	c.mu.Lock()
	c.counts.MatchCalls++
	forced := c.MatchResult
	c.mu.Unlock()
	if forced != nil {
		return *forced
	}
	return c.Inner.Match(code, subject, start, opts, md)
}

// ErrorMessage implements native.Library.
func (c *Counting) ErrorMessage(code int) string {
	return c.Inner.ErrorMessage(code)
}
