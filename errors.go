package pcrex

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Use errors.Is to test for them; the concrete errors
// returned by this package carry more detail.
var (
	// ErrInvalidOption indicates a compile option bitmask with bits outside
	// SupportedOptions. It is reported before the engine is called.
	ErrInvalidOption = errors.New("pcrex: unsupported compile option")

	// ErrNoMatch indicates that a single match attempt found nothing.
	// It is the normal end of a scan, not a failure.
	ErrNoMatch = errors.New("pcrex: no match")

	// ErrMatchFailed indicates that the engine reported an unexpected
	// result for a match call. See MatchError.
	ErrMatchFailed = errors.New("pcrex: match failed")

	// ErrResourceExhausted indicates that the engine could not allocate a
	// compile context or match-data block.
	ErrResourceExhausted = errors.New("pcrex: engine resources exhausted")

	// ErrContextConsumed indicates a CompileContext used a second time.
	ErrContextConsumed = errors.New("pcrex: compile context already consumed")

	// ErrClosed indicates use of a Regex after Close.
	ErrClosed = errors.New("pcrex: regex is closed")
)

// OptionError reports a compile bitmask containing unsupported bits.
type OptionError struct {
	Options     Options
	Unsupported Options
}

// Error implements the error interface.
func (e *OptionError) Error() string {
	return fmt.Sprintf("pcrex: unsupported compile option bits %#08x in %#08x",
		uint32(e.Unsupported), uint32(e.Options))
}

// Is makes errors.Is(err, ErrInvalidOption) true.
func (e *OptionError) Is(target error) bool {
	return target == ErrInvalidOption
}

// CompileError reports a pattern rejected by the engine.
type CompileError struct {
	Pattern string
	Code    int // engine compile error code
	Offset  int // byte offset in Pattern where compilation failed
	Message string
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "pcrex: compile error at offset %d", e.Offset)
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	fmt.Fprintf(&b, " (code %d)", e.Code)
	return b.String()
}

// MatchError reports an engine result that is neither a match nor "no
// match". The Regex always sizes its match data from its own pattern, so
// this indicates an engine fault or a resource limit rather than bad input.
type MatchError struct {
	Code    int // raw engine result
	Message string
}

// Error implements the error interface.
func (e *MatchError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("pcrex: match error (code %d)", e.Code)
	}
	return fmt.Sprintf("pcrex: match error: %s (code %d)", e.Message, e.Code)
}

// Is makes errors.Is(err, ErrMatchFailed) true.
func (e *MatchError) Is(target error) bool {
	return target == ErrMatchFailed
}

// ResourceError reports a failed engine allocation.
type ResourceError struct {
	Library  string
	Resource string // "compile context" or "match data"
}

// Error implements the error interface.
func (e *ResourceError) Error() string {
	return fmt.Sprintf("pcrex: %s could not allocate %s", e.Library, e.Resource)
}

// Is makes errors.Is(err, ErrResourceExhausted) true.
func (e *ResourceError) Is(target error) bool {
	return target == ErrResourceExhausted
}
