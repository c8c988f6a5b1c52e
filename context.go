package pcrex

import "github.com/coregx/pcrex/native"

// CompileContext owns a native compile-context handle.
//
// A context is one-shot: the first compilation that uses it releases it,
// whether compilation succeeds or fails. A released context cannot be used
// again.
type CompileContext struct {
	lib      native.Library
	handle   native.ContextHandle
	settings native.ContextSettings
	consumed bool
}

// NewCompileContext allocates a compile context in lib.
//
// If the engine cannot allocate the context a *ResourceError is returned.
func NewCompileContext(lib native.Library, settings native.ContextSettings) (*CompileContext, error) {
	h := lib.NewCompileContext(settings)
	if h == 0 {
		return nil, &ResourceError{Library: lib.Name(), Resource: "compile context"}
	}
	return &CompileContext{lib: lib, handle: h, settings: settings}, nil
}

// Settings returns the settings the context was created with.
func (c *CompileContext) Settings() native.ContextSettings {
	return c.settings
}

// take hands the handle to a compilation and marks the context consumed.
func (c *CompileContext) take() (native.ContextHandle, error) {
	if c.consumed {
		return 0, ErrContextConsumed
	}
	c.consumed = true
	return c.handle, nil
}

// release frees the native handle. Safe to call more than once.
func (c *CompileContext) release() {
	if c.handle == 0 {
		return
	}
	c.lib.FreeCompileContext(c.handle)
	c.handle = 0
	c.consumed = true
}
