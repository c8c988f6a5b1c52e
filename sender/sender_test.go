package sender

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUDPRoundTrip(t *testing.T) {
	ln, err := ListenUDP("127.0.0.1:0", ListenOptions{ReceiveBuffer: 1 << 16})
	require.NoError(t, err)
	defer ln.Close()

	u, err := DialUDP(ln.Addr().String())
	require.NoError(t, err)
	defer u.Close()

	n, err := u.Send([]byte("y(Y"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	payload, from, err := ln.Receive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("y(Y"), payload)
	assert.Equal(t, u.LocalAddr().(*net.UDPAddr).Port, from.(*net.UDPAddr).Port)
}

func TestDialBindsEphemeralPort(t *testing.T) {
	u, err := DialUDP("127.0.0.1:7878")
	require.NoError(t, err)
	defer u.Close()

	local, ok := u.LocalAddr().(*net.UDPAddr)
	require.True(t, ok)
	assert.NotZero(t, local.Port)
	assert.Equal(t, "127.0.0.1:7878", u.RemoteAddr())
}

func TestDialErrors(t *testing.T) {
	_, err := DialUDP("not an address")
	require.Error(t, err)

	var se *SendError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "dial", se.Op)
	assert.Contains(t, err.Error(), "sender: dial")
}

func TestSendAfterClose(t *testing.T) {
	u, err := DialUDP("127.0.0.1:7878")
	require.NoError(t, err)
	require.NoError(t, u.Close())
	require.NoError(t, u.Close())

	_, err = u.Send([]byte("x"))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestReceiveHonorsContext(t *testing.T) {
	ln, err := ListenUDP("127.0.0.1:0", ListenOptions{})
	require.NoError(t, err)
	defer ln.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, _, err = ln.Receive(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestServe(t *testing.T) {
	ln, err := ListenUDP("127.0.0.1:0", ListenOptions{})
	require.NoError(t, err)
	defer ln.Close()

	u, err := DialUDP(ln.Addr().String())
	require.NoError(t, err)
	defer u.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	want := []string{"one", "two", "three"}
	for _, s := range want {
		_, err := u.Send([]byte(s))
		require.NoError(t, err)
	}

	var got []string
	err = ln.Serve(ctx, func(b []byte, _ net.Addr) {
		got = append(got, string(b))
		if len(got) == len(want) {
			cancel()
		}
	})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestListenErrors(t *testing.T) {
	_, err := ListenUDP("256.0.0.1:0", ListenOptions{})
	require.Error(t, err)

	var se *SendError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "listen", se.Op)
	assert.NotNil(t, errors.Unwrap(err))
}
