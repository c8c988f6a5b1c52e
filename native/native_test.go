package native

import (
	"strings"
	"sync"
	"testing"
)

func TestTable(t *testing.T) {
	var tab Table[CodeHandle, string]

	a := tab.Put("a")
	b := tab.Put("b")
	if a == 0 || b == 0 || a == b {
		t.Fatalf("handles a=%d b=%d", a, b)
	}
	if v, ok := tab.Get(a); !ok || v != "a" {
		t.Errorf("Get(a) = %q, %v", v, ok)
	}
	if tab.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tab.Len())
	}

	if _, ok := tab.Delete(a); !ok {
		t.Error("Delete(a) reported false")
	}
	if _, ok := tab.Delete(a); ok {
		t.Error("second Delete(a) reported true")
	}
	if _, ok := tab.Delete(0); ok {
		t.Error("Delete(0) reported true")
	}
	if _, ok := tab.Get(a); ok {
		t.Error("Get after Delete reported true")
	}

	// Freed handles are never reissued.
	if c := tab.Put("c"); c == a || c == b {
		t.Errorf("Put reissued handle %d", c)
	}
}

func TestTableConcurrent(t *testing.T) {
	var tab Table[MatchDataHandle, int]
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				h := tab.Put(i)
				if v, ok := tab.Get(h); !ok || v != i {
					t.Errorf("Get(%d) = %d, %v", h, v, ok)
				}
				tab.Delete(h)
			}
		}(i)
	}
	wg.Wait()
	if tab.Len() != 0 {
		t.Errorf("Len() = %d after all deletes", tab.Len())
	}
}

func TestContextSettingsCheck(t *testing.T) {
	tests := []struct {
		name     string
		settings ContextSettings
		pattern  string
		code     int
		offset   int
	}{
		{"no limits", ContextSettings{}, "((((a))))", 0, 0},
		{"length ok", ContextSettings{MaxPatternLength: 3}, "abc", 0, 0},
		{"length exceeded", ContextSettings{MaxPatternLength: 3}, "abcd", ErrorPatternTooLong, 0},
		{"nesting ok", ContextSettings{ParensNestLimit: 2}, "(a(b))(c)", 0, 0},
		{"nesting exceeded", ContextSettings{ParensNestLimit: 2}, "(a(b(c)))", ErrorParenthesesNestTooDeep, 4},
		{"escaped parens", ContextSettings{ParensNestLimit: 1}, `(\(\(a)`, 0, 0},
		{"parens in class", ContextSettings{ParensNestLimit: 1}, `([(])`, 0, 0},
		{"bracket first in class", ContextSettings{ParensNestLimit: 1}, `([](])`, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, off := tt.settings.Check([]byte(tt.pattern))
			if code != tt.code || off != tt.offset {
				t.Errorf("Check(%q) = %d, %d, want %d, %d", tt.pattern, code, off, tt.code, tt.offset)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{ErrorNoMatch, "no match"},
		{ErrorMissingClosingParen, "missing closing parenthesis"},
		{ErrorPatternTooLong, "pattern string is longer than the limit set by the application"},
	}
	for _, tt := range tests {
		if got := ErrorMessage(tt.code); got != tt.want {
			t.Errorf("ErrorMessage(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}

	if got := ErrorMessage(-12345); !strings.Contains(got, "-12345") {
		t.Errorf("ErrorMessage(unknown) = %q, want the code in the text", got)
	}
}

func TestOptionHas(t *testing.T) {
	opts := UTF | UCP
	if !opts.Has(UTF) || !opts.Has(UTF|UCP) {
		t.Error("Has reported a set flag as missing")
	}
	if opts.Has(Caseless) || opts.Has(UTF|Caseless) {
		t.Error("Has reported a missing flag as set")
	}
	if !(MatchNoUTFCheck | MatchAnchored).Has(MatchAnchored) {
		t.Error("MatchOption.Has failed")
	}
}

type stubLibrary struct{ Library }

func (stubLibrary) Name() string { return "stub" }

func TestRegistry(t *testing.T) {
	if err := Register("test-stub", func() Library { return stubLibrary{} }); err != nil {
		t.Fatal(err)
	}
	if err := Register("test-stub", func() Library { return stubLibrary{} }); err == nil {
		t.Error("duplicate Register succeeded")
	}
	if err := Register("", func() Library { return stubLibrary{} }); err == nil {
		t.Error("Register with empty name succeeded")
	}
	if err := Register("test-nil", nil); err == nil {
		t.Error("Register with nil constructor succeeded")
	}

	lib, ok := Lookup("test-stub")
	if !ok || lib.Name() != "stub" {
		t.Errorf("Lookup = %v, %v", lib, ok)
	}
	if _, ok := Lookup("test-missing"); ok {
		t.Error("Lookup of unknown name succeeded")
	}

	found := false
	names := Names()
	for i, name := range names {
		if i > 0 && names[i-1] > name {
			t.Errorf("Names() not sorted: %v", names)
		}
		if name == "test-stub" {
			found = true
		}
	}
	if !found {
		t.Errorf("Names() = %v, missing test-stub", names)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustRegister of a duplicate did not panic")
		}
	}()
	MustRegister("test-stub", func() Library { return stubLibrary{} })
}
