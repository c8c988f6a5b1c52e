package pcrex

import "github.com/coregx/pcrex/native"

// Pattern owns a compiled-pattern handle.
//
// A Pattern is read-only after compilation. It is owned by the Regex that
// compiled it and released by Regex.Close.
type Pattern struct {
	lib      native.Library
	handle   native.CodeHandle
	source   string
	options  Options
	captures int
}

// compilePattern compiles source in the engine that owns ctx. ctx is
// consumed and released on every path, including option validation
// failure.
func compilePattern(source string, opts Options, ctx *CompileContext) (*Pattern, error) {
	defer ctx.release()

	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	h, err := ctx.take()
	if err != nil {
		return nil, err
	}

	lib := ctx.lib
	code, errCode, errOffset := lib.Compile([]byte(source), opts, h)
	if code == 0 {
		return nil, &CompileError{
			Pattern: source,
			Code:    errCode,
			Offset:  errOffset,
			Message: lib.ErrorMessage(errCode),
		}
	}
	return &Pattern{
		lib:      lib,
		handle:   code,
		source:   source,
		options:  opts,
		captures: lib.CaptureCount(code),
	}, nil
}

// Source returns the pattern text.
func (p *Pattern) Source() string { return p.source }

// Options returns the compile options.
func (p *Pattern) Options() Options { return p.options }

// CaptureCount returns the number of capturing groups, not counting the
// whole match.
func (p *Pattern) CaptureCount() int { return p.captures }

// free releases the native handle. Safe to call more than once.
func (p *Pattern) free() {
	if p.handle == 0 {
		return
	}
	p.lib.FreeCode(p.handle)
	p.handle = 0
}
