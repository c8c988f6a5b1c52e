package sender

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/charmbracelet/log"
)

// MaxDatagram is the largest payload Receive returns.
const MaxDatagram = 65507

// pollInterval bounds how long a blocked read goes without checking the
// context.
const pollInterval = 200 * time.Millisecond

// ListenOptions configures a Listener.
type ListenOptions struct {
	// ReceiveBuffer sets SO_RCVBUF on platforms that support it.
	// Zero keeps the system default.
	ReceiveBuffer int

	// Logger receives per-datagram debug logs from Serve.
	// Nil disables logging.
	Logger *log.Logger
}

// Listener receives datagrams on a bound UDP socket.
type Listener struct {
	conn   *net.UDPConn
	logger *log.Logger
	buf    []byte
}

// ListenUDP binds addr for receiving.
func ListenUDP(addr string, opts ListenOptions) (*Listener, error) {
	laddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, &SendError{Op: "listen", Addr: addr, Err: err}
	}
	conn, err := net.ListenUDP("udp", laddr)
	if err != nil {
		return nil, &SendError{Op: "listen", Addr: addr, Err: err}
	}
	if opts.ReceiveBuffer > 0 {
		if err := setReceiveBuffer(conn, opts.ReceiveBuffer); err != nil {
			_ = conn.Close()
			return nil, &SendError{Op: "listen", Addr: addr, Err: err}
		}
	}
	return &Listener{
		conn:   conn,
		logger: opts.Logger,
		buf:    make([]byte, MaxDatagram),
	}, nil
}

// Addr returns the bound address, useful when listening on port 0.
func (l *Listener) Addr() net.Addr {
	return l.conn.LocalAddr()
}

// Receive blocks until a datagram arrives or ctx is done. The returned
// slice is a copy owned by the caller.
func (l *Listener) Receive(ctx context.Context) ([]byte, net.Addr, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		if err := l.conn.SetReadDeadline(time.Now().Add(pollInterval)); err != nil {
			return nil, nil, &SendError{Op: "receive", Addr: l.Addr().String(), Err: err}
		}
		n, from, err := l.conn.ReadFromUDP(l.buf)
		if err != nil {
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			return nil, nil, &SendError{Op: "receive", Addr: l.Addr().String(), Err: err}
		}
		out := make([]byte, n)
		copy(out, l.buf[:n])
		return out, from, nil
	}
}

// Serve calls fn for each datagram until ctx is done or the socket fails.
// It returns nil when stopped by ctx.
func (l *Listener) Serve(ctx context.Context, fn func([]byte, net.Addr)) error {
	for {
		payload, from, err := l.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if l.logger != nil {
			l.logger.Debug("datagram received", "from", from.String(), "bytes", len(payload))
		}
		fn(payload, from)
	}
}

// Close releases the socket.
func (l *Listener) Close() error {
	return l.conn.Close()
}
