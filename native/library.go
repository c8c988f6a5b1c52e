// Package native defines the boundary between pcrex and the matching engine
// that actually runs patterns.
//
// An engine is exposed as a Library: a small set of synchronous primitives
// modelled on the PCRE2 8-bit API (compile, match-data allocation, ovector
// access, match, free). Every resource a Library hands out is an opaque
// handle; the zero handle is the null handle and signals allocation or
// compilation failure. Ownership of a handle stays with whoever received it
// until it is passed to the matching Free function.
//
// Option bits and error codes use the PCRE2 numeric values so that a cgo
// driver can pass them through unchanged while pure-Go drivers translate
// them to their own engines.
//
// Drivers register themselves by name:
//
//	func init() {
//	    native.Register("backtrack", func() native.Library { return New() })
//	}
package native

import (
	"fmt"
	"sort"
	"sync"
)

// ContextSettings configures a compile context.
//
// Zero values mean "use the library default".
type ContextSettings struct {
	// MaxPatternLength rejects patterns longer than this many bytes
	// (PCRE2 pcre2_set_max_pattern_length).
	MaxPatternLength int

	// ParensNestLimit caps the nesting depth of parentheses
	// (PCRE2 pcre2_set_parens_nest_limit).
	ParensNestLimit int
}

// Library is a handle-based regular expression engine.
//
// Implementations must be safe for concurrent use as long as no single
// MatchDataHandle is used by two Match calls at once.
type Library interface {
	// Name returns the registry name of the driver.
	Name() string

	// NewCompileContext allocates a compile context. Returns the null handle
	// if allocation fails.
	NewCompileContext(settings ContextSettings) ContextHandle

	// FreeCompileContext releases a compile context. Freeing the null
	// handle is a no-op.
	FreeCompileContext(ctx ContextHandle)

	// Compile compiles pattern. On failure the null handle is returned
	// together with a positive compile error code and the byte offset in
	// pattern where compilation stopped.
	Compile(pattern []byte, opts CompileOption, ctx ContextHandle) (code CodeHandle, errCode int, errOffset int)

	// CaptureCount returns the number of capturing groups in a compiled
	// pattern, not counting the whole match.
	CaptureCount(code CodeHandle) int

	// FreeCode releases a compiled pattern.
	FreeCode(code CodeHandle)

	// NewMatchData allocates a match-data block sized for code. Returns the
	// null handle if allocation fails.
	NewMatchData(code CodeHandle) MatchDataHandle

	// FreeMatchData releases a match-data block.
	FreeMatchData(md MatchDataHandle)

	// Ovector returns the offset-pair vector of md. The returned slice
	// aliases the block's storage and is overwritten by every Match call.
	Ovector(md MatchDataHandle) []uint

	// OvectorCount returns the number of offset pairs md can hold.
	OvectorCount(md MatchDataHandle) int

	// Match runs one match attempt of code against subject beginning at
	// byte offset start. A positive result is one more than the highest
	// pair set in md's ovector; ErrorNoMatch means no match; any other
	// negative value is an error code.
	Match(code CodeHandle, subject []byte, start int, opts MatchOption, md MatchDataHandle) int

	// ErrorMessage returns the text for a compile (positive) or match
	// (negative) error code.
	ErrorMessage(code int) string
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Library{}
)

// Register makes a driver available under name.
// It returns an error if name is empty or already taken.
func Register(name string, ctor func() Library) error {
	if name == "" || ctor == nil {
		return fmt.Errorf("native: invalid driver registration %q", name)
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[name]; dup {
		return fmt.Errorf("native: driver %q already registered", name)
	}
	registry[name] = ctor
	return nil
}

// MustRegister is like Register but panics on error. It is meant for driver
// init functions.
func MustRegister(name string, ctor func() Library) {
	if err := Register(name, ctor); err != nil {
		panic(err.Error())
	}
}

// Lookup returns a new instance of the driver registered under name.
func Lookup(name string) (Library, bool) {
	registryMu.RLock()
	ctor, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// Names returns the registered driver names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
