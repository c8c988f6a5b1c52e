// Package pcrex provides a safe wrapper around a handle-based regular
// expression engine with the PCRE2 calling convention.
//
// The engine itself lives behind the native.Library interface. pcrex owns
// the native handles the engine hands out (compile contexts, compiled
// patterns and match-data blocks), releases them exactly once, and turns
// the engine's integer result codes into Go errors.
//
// Basic usage:
//
//	re, err := pcrex.Compile(`(?<=\d{4})[^\d\s]{3,11}(?=\S)`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer re.Close()
//
//	for m, err := range re.All(subject) {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(m.Start(), m.End(), m.String())
//	}
//
// Engines:
//   - backtrack: pure Go, Perl/PCRE syntax including lookaround (default)
//   - linear: pure Go, RE2 syntax, linear-time matching
//   - literal: pure Go, Aho-Corasick search for Literal patterns
//   - pcre2: libpcre2-8 through cgo, default when built with -tags pcre2
//
// A Regex serializes its own match calls. For parallel matching with one
// pattern, give each goroutine its own Regex, or use a Pool.
package pcrex

import (
	"iter"
	"sync"

	"github.com/coregx/pcrex/native"
)

// Regex represents a compiled regular expression together with the
// match-data block its matches are written into.
//
// A Regex is safe for concurrent use; concurrent matches are serialized.
// Close must be called to release the native handles.
//
// Example:
//
//	re := pcrex.MustCompile(`hello`)
//	defer re.Close()
//	if re.IsMatch([]byte("hello world")) {
//	    println("matched!")
//	}
type Regex struct {
	mu      sync.Mutex
	lib     native.Library
	source  string
	pattern *Pattern
	md      *MatchData
	closed  bool
}

// Compile compiles a pattern with DefaultOptions in the default engine.
//
// Example:
//
//	re, err := pcrex.Compile(`\d{3}-\d{4}`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(source string) (*Regex, error) {
	return Build(source, DefaultOptions)
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
//
// Example:
//
//	var digits = pcrex.MustCompile(`\d+`)
func MustCompile(source string) *Regex {
	re, err := Compile(source)
	if err != nil {
		panic("pcrex: Compile(`" + source + "`): " + err.Error())
	}
	return re
}

// Build compiles source with opts in the default engine.
//
// Unsupported option bits are rejected with an *OptionError before the
// engine is called. Patterns the engine rejects produce a *CompileError
// carrying the engine's code and the byte offset of the failure.
func Build(source string, opts Options) (*Regex, error) {
	cfg := DefaultConfig()
	cfg.Options = opts
	return BuildWithConfig(source, cfg)
}

// BuildWithConfig compiles source with the engine, options and context
// settings in cfg.
//
// Example:
//
//	cfg := pcrex.DefaultConfig()
//	cfg.Library, _ = pcrex.LibraryByName("linear")
//	cfg.Options = pcrex.Caseless
//	re, err := pcrex.BuildWithConfig(`hello`, cfg)
func BuildWithConfig(source string, cfg Config) (*Regex, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx, err := NewCompileContext(cfg.Library, cfg.Context)
	if err != nil {
		return nil, err
	}
	pat, err := compilePattern(source, cfg.Options, ctx)
	if err != nil {
		return nil, err
	}
	md, err := newMatchData(pat)
	if err != nil {
		pat.free()
		return nil, err
	}

	return &Regex{
		lib:     cfg.Library,
		source:  source,
		pattern: pat,
		md:      md,
	}, nil
}

// FindAt makes one match attempt in subject, starting no earlier than byte
// offset start.
//
// It returns ErrNoMatch if there is no match at or after start. Any other
// engine result is reported as a *MatchError. For patterns compiled with
// UTF, subject must be valid UTF-8 and start must fall on a character
// boundary unless opts omits MatchNoUTFCheck.
func (r *Regex) FindAt(subject []byte, start int, opts MatchOptions) (Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return Match{}, ErrClosed
	}
	if start < 0 || start > len(subject) {
		return Match{}, r.matchError(native.ErrorBadOffset)
	}

	rc := r.lib.Match(r.pattern.handle, subject, start, opts, r.md.handle)
	switch {
	case rc == native.ErrorNoMatch:
		r.md.populated = false
		return Match{}, ErrNoMatch
	case rc > 0 && rc <= r.md.slots:
		// success
	default:
		// rc == 0 means the ovector was too small, which cannot happen
		// for match data sized from this pattern.
		r.md.populated = false
		return Match{}, r.matchError(rc)
	}

	r.md.populated = true
	s, e, ok := r.md.Pair(0)
	if !ok || e > len(subject) {
		r.md.populated = false
		return Match{}, r.matchError(native.ErrorInternal)
	}
	return Match{subject: subject, start: s, end: e}, nil
}

func (r *Regex) matchError(code int) *MatchError {
	return &MatchError{Code: code, Message: r.lib.ErrorMessage(code)}
}

// Find returns the leftmost match in subject.
func (r *Regex) Find(subject []byte) (Match, error) {
	return r.FindAt(subject, 0, DefaultMatchOptions)
}

// IsMatch reports whether subject contains any match of the pattern.
// Engine failures are reported as no match.
func (r *Regex) IsMatch(subject []byte) bool {
	_, err := r.FindAt(subject, 0, DefaultMatchOptions)
	return err == nil
}

// MatchString reports whether s contains any match of the pattern.
func (r *Regex) MatchString(s string) bool {
	return r.IsMatch([]byte(s))
}

// FindIter returns a cursor over the successive non-overlapping matches in
// subject. The cursor borrows r and subject; neither may be released while
// it is in use.
func (r *Regex) FindIter(subject []byte) *Matches {
	return newMatches(r, subject)
}

// All returns an iterator over the successive non-overlapping matches in
// subject. If the scan stops on an engine failure, the final pair carries
// the error.
//
// Example:
//
//	for m, err := range re.All(subject) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(m)
//	}
func (r *Regex) All(subject []byte) iter.Seq2[Match, error] {
	return func(yield func(Match, error) bool) {
		it := r.FindIter(subject)
		for m, ok := it.Next(); ok; m, ok = it.Next() {
			if !yield(m, nil) {
				return
			}
		}
		if err := it.Err(); err != nil {
			yield(Match{}, err)
		}
	}
}

// FindAll returns the successive non-overlapping matches in subject.
// If n > 0, it returns at most n matches. If n < 0, it returns all matches.
// If n == 0, the result is nil.
//
// Example:
//
//	re := pcrex.MustCompile(`\d+`)
//	matches, _ := re.FindAll([]byte("1 2 3"), -1)
//	// matches span "1", "2", "3"
func (r *Regex) FindAll(subject []byte, n int) ([]Match, error) {
	if n == 0 {
		return nil, nil
	}

	var matches []Match
	it := r.FindIter(subject)
	for m, ok := it.Next(); ok; m, ok = it.Next() {
		matches = append(matches, m)
		if n > 0 && len(matches) >= n {
			break
		}
	}
	return matches, it.Err()
}

// FindAllString is like FindAll but returns the matched text.
func (r *Regex) FindAllString(s string, n int) ([]string, error) {
	matches, err := r.FindAll([]byte(s), n)
	if len(matches) == 0 {
		return nil, err
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = s[m.start:m.end]
	}
	return out, err
}

// Count returns the number of non-overlapping matches in subject.
// If n > 0, it counts at most n matches.
func (r *Regex) Count(subject []byte, n int) (int, error) {
	if n == 0 {
		return 0, nil
	}

	count := 0
	it := r.FindIter(subject)
	for _, ok := it.Next(); ok; _, ok = it.Next() {
		count++
		if n > 0 && count >= n {
			break
		}
	}
	return count, it.Err()
}

// ReplaceAllFunc returns a copy of src in which every match has been
// replaced by the return value of repl applied to the matched bytes.
//
// Example:
//
//	re := pcrex.MustCompile(`\d+`)
//	out, _ := re.ReplaceAllFunc([]byte("1 2 3"), bytes.ToUpper)
func (r *Regex) ReplaceAllFunc(src []byte, repl func([]byte) []byte) ([]byte, error) {
	matches, err := r.FindAll(src, -1)
	if err != nil {
		return nil, err
	}

	result := make([]byte, 0, len(src))
	lastEnd := 0
	for _, m := range matches {
		result = append(result, src[lastEnd:m.start]...)
		result = append(result, repl(m.Bytes())...)
		lastEnd = m.end
	}
	return append(result, src[lastEnd:]...), nil
}

// ReplaceAllLiteral returns a copy of src with every match replaced by
// repl. The replacement is substituted directly.
func (r *Regex) ReplaceAllLiteral(src, repl []byte) ([]byte, error) {
	return r.ReplaceAllFunc(src, func([]byte) []byte { return repl })
}

// Split slices s into the substrings between matches.
//
// The count determines the number of substrings to return:
//
//	n > 0: at most n substrings; the last substring will be the unsplit remainder.
//	n == 0: the result is nil (zero substrings)
//	n < 0: all substrings
func (r *Regex) Split(s string, n int) ([]string, error) {
	if n == 0 {
		return nil, nil
	}

	matches, err := r.FindAll([]byte(s), -1)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return []string{s}, nil
	}

	result := make([]string, 0, len(matches)+1)
	beg, end := 0, 0
	for _, m := range matches {
		if n > 0 && len(result) == n-1 {
			break
		}
		end = m.start
		// An empty match at the start produces no empty leading field.
		if m.end != 0 {
			result = append(result, s[beg:end])
		}
		beg = m.end
	}
	if end != len(s) {
		result = append(result, s[beg:])
	}
	return result, nil
}

// LastOffsets returns a copy of the offset pairs written by the most
// recent successful match: 2*(NumSubexp()+1) entries, with unset groups
// holding native.Unset. It returns nil if the last match attempt failed.
func (r *Regex) LastOffsets() []uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	return r.md.Offsets()
}

// NumSubexp returns the number of capturing groups in the pattern.
func (r *Regex) NumSubexp() int {
	return r.pattern.captures
}

// String returns the source text used to compile the pattern.
func (r *Regex) String() string {
	return r.source
}

// Options returns the compile options the pattern was built with.
func (r *Regex) Options() Options {
	return r.pattern.options
}

// Library returns the engine the pattern was compiled in.
func (r *Regex) Library() native.Library {
	return r.lib
}

func (r *Regex) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Close releases the match-data block and then the compiled pattern.
// Close is idempotent.
func (r *Regex) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	r.md.free()
	r.pattern.free()
	return nil
}
