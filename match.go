package pcrex

import "fmt"

// Match is one match in a subject: the byte span [Start, End) and a view
// of the subject it was found in.
//
// Match is a value type. It shares memory with the subject passed to the
// find call and stays valid as long as that subject is not modified.
type Match struct {
	subject    []byte
	start, end int
}

// Start returns the byte offset of the first matched byte.
func (m Match) Start() int { return m.start }

// End returns the byte offset just past the last matched byte.
func (m Match) End() int { return m.end }

// Len returns End() - Start().
func (m Match) Len() int { return m.end - m.start }

// IsEmpty reports whether the match spans no bytes.
func (m Match) IsEmpty() bool { return m.start == m.end }

// Bytes returns the matched bytes. The result aliases the subject and has
// no spare capacity.
func (m Match) Bytes() []byte {
	if m.subject == nil {
		return nil
	}
	return m.subject[m.start:m.end:m.end]
}

// String returns the matched text.
func (m Match) String() string {
	return string(m.Bytes())
}

// Format implements fmt.Formatter. %s prints the matched text, %d the
// span and %v both.
func (m Match) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		_, _ = f.Write(m.Bytes())
	case 'v':
		fmt.Fprintf(f, "[%d,%d) %q", m.start, m.end, m.Bytes())
	case 'd':
		fmt.Fprintf(f, "[%d,%d)", m.start, m.end)
	default:
		fmt.Fprintf(f, "%%!%c(pcrex.Match=[%d,%d))", verb, m.start, m.end)
	}
}
