package nativetest

import (
	"testing"

	"github.com/coregx/pcrex/native"
	"github.com/coregx/pcrex/native/literal"
)

func TestCounting(t *testing.T) {
	c := New(literal.New())

	ctx := c.NewCompileContext(native.ContextSettings{})
	code, _, _ := c.Compile([]byte("ab"), native.Literal, ctx)
	c.FreeCompileContext(ctx)
	md := c.NewMatchData(code)

	if rc := c.Match(code, []byte("xab"), 0, 0, md); rc != 1 {
		t.Fatalf("rc = %d", rc)
	}
	c.ForceMatchResult(native.ErrorMatchLimit)
	if rc := c.Match(code, []byte("xab"), 0, 0, md); rc != native.ErrorMatchLimit {
		t.Fatalf("forced rc = %d", rc)
	}

	got := c.Counts()
	if got.Balanced() {
		t.Error("Balanced() with live handles")
	}
	c.FreeMatchData(md)
	c.FreeCode(code)
	c.FreeCode(code)

	got = c.Counts()
	want := Counts{
		ContextsCreated: 1, ContextsFreed: 1,
		CodesCreated: 1, CodesFreed: 1,
		MatchDataCreated: 1, MatchDataFreed: 1,
		CompileCalls: 1, MatchCalls: 2,
		BadFrees: 1,
	}
	if got != want {
		t.Errorf("Counts() = %+v, want %+v", got, want)
	}
}

func TestFailures(t *testing.T) {
	c := New(literal.New())
	c.FailContext = true
	if h := c.NewCompileContext(native.ContextSettings{}); h != 0 {
		t.Error("FailContext did not fail")
	}

	c.FailContext = false
	c.FailMatchData = true
	ctx := c.NewCompileContext(native.ContextSettings{})
	code, _, _ := c.Compile([]byte("a"), native.Literal, ctx)
	if md := c.NewMatchData(code); md != 0 {
		t.Error("FailMatchData did not fail")
	}
	c.FreeCode(code)
	c.FreeCompileContext(ctx)

	if !c.Counts().Balanced() {
		t.Errorf("counts = %+v", c.Counts())
	}
}
