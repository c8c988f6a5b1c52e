//go:build cgo && pcre2

package pcrex

import (
	"github.com/coregx/pcrex/native"
	"github.com/coregx/pcrex/native/libpcre"
)

func newDefaultLibrary() native.Library {
	return libpcre.New()
}
