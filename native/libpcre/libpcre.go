//go:build cgo && pcre2

package libpcre

/*
#cgo pkg-config: libpcre2-8
#define PCRE2_CODE_UNIT_WIDTH 8
#include <stdlib.h>
#include <pcre2.h>
*/
import "C"

import (
	"unsafe"

	"github.com/coregx/pcrex/native"
)

// Name is the registry name of this driver.
const Name = "pcre2"

func init() {
	native.MustRegister(Name, func() native.Library { return New() })
}

// Library implements native.Library on libpcre2-8.
type Library struct {
	contexts  native.Table[native.ContextHandle, *C.pcre2_compile_context_8]
	codes     native.Table[native.CodeHandle, *C.pcre2_code_8]
	matchData native.Table[native.MatchDataHandle, *matchData]
}

type matchData struct {
	md      *C.pcre2_match_data_8
	ovector []uint // view over pcre2_get_ovector_pointer_8
}

// New returns a ready driver.
func New() *Library {
	return &Library{}
}

// Name implements native.Library.
func (l *Library) Name() string { return Name }

// NewCompileContext implements native.Library.
func (l *Library) NewCompileContext(settings native.ContextSettings) native.ContextHandle {
	ctx := C.pcre2_compile_context_create_8(nil)
	if ctx == nil {
		return 0
	}
	if settings.MaxPatternLength > 0 {
		C.pcre2_set_max_pattern_length_8(ctx, C.PCRE2_SIZE(settings.MaxPatternLength))
	}
	if settings.ParensNestLimit > 0 {
		C.pcre2_set_parens_nest_limit_8(ctx, C.uint32_t(settings.ParensNestLimit))
	}
	return l.contexts.Put(ctx)
}

// FreeCompileContext implements native.Library.
func (l *Library) FreeCompileContext(h native.ContextHandle) {
	if ctx, ok := l.contexts.Delete(h); ok {
		C.pcre2_compile_context_free_8(ctx)
	}
}

// Compile implements native.Library.
func (l *Library) Compile(pattern []byte, opts native.CompileOption, h native.ContextHandle) (native.CodeHandle, int, int) {
	ctx, _ := l.contexts.Get(h)

	var errCode C.int
	var errOffset C.PCRE2_SIZE
	code := C.pcre2_compile_8(
		bytePtr(pattern),
		C.PCRE2_SIZE(len(pattern)),
		C.uint32_t(opts),
		&errCode,
		&errOffset,
		ctx,
	)
	if code == nil {
		return 0, int(errCode), int(errOffset)
	}
	return l.codes.Put(code), 0, 0
}

// CaptureCount implements native.Library.
func (l *Library) CaptureCount(h native.CodeHandle) int {
	code, ok := l.codes.Get(h)
	if !ok {
		return 0
	}
	var n C.uint32_t
	if C.pcre2_pattern_info_8(code, C.PCRE2_INFO_CAPTURECOUNT, unsafe.Pointer(&n)) != 0 {
		return 0
	}
	return int(n)
}

// FreeCode implements native.Library.
func (l *Library) FreeCode(h native.CodeHandle) {
	if code, ok := l.codes.Delete(h); ok {
		C.pcre2_code_free_8(code)
	}
}

// NewMatchData implements native.Library.
func (l *Library) NewMatchData(h native.CodeHandle) native.MatchDataHandle {
	code, ok := l.codes.Get(h)
	if !ok {
		return 0
	}
	md := C.pcre2_match_data_create_from_pattern_8(code, nil)
	if md == nil {
		return 0
	}
	ptr := C.pcre2_get_ovector_pointer_8(md)
	n := int(C.pcre2_get_ovector_count_8(md))
	return l.matchData.Put(&matchData{
		md:      md,
		ovector: unsafe.Slice((*uint)(unsafe.Pointer(ptr)), 2*n),
	})
}

// FreeMatchData implements native.Library.
func (l *Library) FreeMatchData(h native.MatchDataHandle) {
	if md, ok := l.matchData.Delete(h); ok {
		md.ovector = nil
		C.pcre2_match_data_free_8(md.md)
	}
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
	code, ok := l.codes.Get(h)
	if !ok {
		return native.ErrorBadMagic
	}
	md, ok := l.matchData.Get(mh)
	if !ok {
		return native.ErrorNull
	}
	if start < 0 {
		return native.ErrorBadOffset
	}
	rc := C.pcre2_match_8(
		code,
		bytePtr(subject),
		C.PCRE2_SIZE(len(subject)),
		C.PCRE2_SIZE(start),
		C.uint32_t(opts),
		md.md,
		nil,
	)
	return int(rc)
}

// ErrorMessage implements native.Library.
func (l *Library) ErrorMessage(code int) string {
	var buf [256]C.PCRE2_UCHAR8
	n := C.pcre2_get_error_message_8(C.int(code), &buf[0], C.PCRE2_SIZE(len(buf)))
	if n < 0 {
		return native.ErrorMessage(code)
	}
	return C.GoStringN((*C.char)(unsafe.Pointer(&buf[0])), n)
}

// empty backs zero-length patterns and subjects; older PCRE2 releases
// reject a NULL pointer even when the length is zero.
var empty = [1]byte{}

func bytePtr(b []byte) *C.PCRE2_UCHAR8 {
	if len(b) == 0 {
		return (*C.PCRE2_UCHAR8)(unsafe.Pointer(&empty[0]))
	}
	return (*C.PCRE2_UCHAR8)(unsafe.Pointer(&b[0]))
}
