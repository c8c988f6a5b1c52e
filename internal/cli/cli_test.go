package cli_test

import (
	"bytes"
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/pcrex/internal/cli"
	"github.com/coregx/pcrex/sender"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "abc123", Date: "today"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := cli.NewRootCommand(cli.BuildInfo{})
	assert.Equal(t, "pcrex", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	for _, name := range []string{"match", "send", "listen", "engines", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestMatchGolden(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"match_default", []string{"match", "--color", "never"}},
		{"match_digits", []string{"match", "--color", "never", "-p", `\d+`, "a1 b22 c333"}},
		{"match_empty", []string{"match", "--color", "never", "-p", `a*`, "ab a"}},
		{"match_linear", []string{"match", "--color", "never", "-e", "linear", "-o", "caseless", "-p", `h\w+`, "Hello hi HELP"}},
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, "", tt.args...)
			require.NoError(t, err)
			g.Assert(t, tt.name, []byte(out))
		})
	}
}

func TestMatchNoMatches(t *testing.T) {
	out, err := execute(t, "", "match", "--color", "never", "-p", `\d`, "letters")
	require.ErrorIs(t, err, cli.ErrNoMatches)
	assert.Equal(t, "0 matches\n", out)
}

func TestMatchStdinAndLimit(t *testing.T) {
	out, err := execute(t, "x1 x2 x3", "match", "--color", "never", "-p", `x\d`, "-f", "-", "-n", "2")
	require.NoError(t, err)
	assert.Equal(t, "[0,2)\t\"x1\"\n[3,5)\t\"x2\"\n2 matches\n", out)
}

func TestMatchConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pcrex.yaml")
	content := "pattern: 'b+'\nsubject: 'abbbc'\noptions: [ascii]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	out, err := execute(t, "", "--config", path, "match", "--color", "never")
	require.NoError(t, err)
	assert.Equal(t, "[1,4)\t\"bbb\"\n1 match\n", out)
}

func TestMatchErrors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{"compile error", []string{"match", "-p", "*", "x"}, "compile error at offset 0"},
		{"bad color", []string{"match", "--color", "rainbow", "x"}, "invalid --color"},
		{"unknown engine", []string{"match", "-e", "perl", "x"}, "unknown engine"},
		{"unknown option", []string{"match", "-o", "jit", "x"}, "unknown option"},
		{"missing file", []string{"match", "-f", "/nonexistent/subject.txt"}, "failed to read subject"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestEngines(t *testing.T) {
	out, err := execute(t, "", "engines")
	require.NoError(t, err)
	assert.Contains(t, out, "backtrack")
	assert.Contains(t, out, "linear")
	assert.Contains(t, out, "literal")
	assert.Contains(t, out, "(default)")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "version=test")
	assert.Contains(t, out, "commit=abc123")
}

func TestSend(t *testing.T) {
	ln, err := sender.ListenUDP("127.0.0.1:0", sender.ListenOptions{})
	require.NoError(t, err)
	defer ln.Close()

	_, err = execute(t, "", "send", "--addr", ln.Addr().String())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	payload, _, err := ln.Receive(ctx)
	require.NoError(t, err)
	assert.Equal(t, "y(Y", string(payload))
}

func TestListen(t *testing.T) {
	// Reserve a port, then hand it to the command.
	reserved, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := reserved.LocalAddr().String()
	require.NoError(t, reserved.Close())

	type result struct {
		out string
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := execute(t, "", "listen", "--addr", addr, "--count", "1", "--timeout", "10s")
		done <- result{out, err}
	}()

	conn, err := sender.DialUDP(addr)
	require.NoError(t, err)
	defer conn.Close()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case res := <-done:
			require.NoError(t, res.err)
			assert.Contains(t, res.out, `"ping"`)
			return
		case <-ticker.C:
			// The listener may not be bound yet; keep sending.
			if _, err := conn.Send([]byte("ping")); err != nil && !errors.Is(err, sender.ErrClosed) {
				t.Logf("send: %v", err)
			}
		}
	}
}
