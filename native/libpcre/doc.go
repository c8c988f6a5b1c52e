// Package libpcre is a native.Library backed by the system PCRE2 library
// (libpcre2-8) through cgo. Every handle maps to a real pcre2_*_8 object and
// option bits and error codes are passed through unchanged.
//
// The driver is only compiled with cgo enabled and the pcre2 build tag:
//
//	go build -tags pcre2 ./...
//
// pkg-config must be able to find libpcre2-8. When built this way the
// driver registers itself as "pcre2" and becomes the default library of
// package pcrex.
package libpcre
