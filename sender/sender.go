// Package sender transmits matched text as raw datagrams.
//
// Each Send is one UDP datagram carrying the bytes as given; there is no
// framing or acknowledgement. Listener is the receiving side, used by the
// listen command and in tests.
package sender

import (
	"errors"
	"fmt"
	"net"
)

// Sender delivers one payload per call.
type Sender interface {
	Send(b []byte) (int, error)
	Close() error
}

// ErrClosed is returned by Send after Close.
var ErrClosed = errors.New("sender: closed")

// SendError reports a failed socket operation.
type SendError struct {
	Op   string // "dial", "send", "listen" or "receive"
	Addr string
	Err  error
}

// Error implements the error interface.
func (e *SendError) Error() string {
	return fmt.Sprintf("sender: %s %s: %v", e.Op, e.Addr, e.Err)
}

// Unwrap returns the underlying socket error.
func (e *SendError) Unwrap() error { return e.Err }

// UDP is a Sender bound to an ephemeral local port and connected to one
// remote address.
type UDP struct {
	conn *net.UDPConn
	addr string
}

var _ Sender = (*UDP)(nil)

// DialUDP binds an ephemeral port on the unspecified address of the same
// family as addr and connects it to addr.
func DialUDP(addr string) (*UDP, error) {
	raddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, &SendError{Op: "dial", Addr: addr, Err: err}
	}

	laddr := &net.UDPAddr{IP: net.IPv4zero}
	network := "udp4"
	if raddr.IP != nil && raddr.IP.To4() == nil {
		laddr = &net.UDPAddr{IP: net.IPv6unspecified}
		network = "udp6"
	}

	conn, err := net.DialUDP(network, laddr, raddr)
	if err != nil {
		return nil, &SendError{Op: "dial", Addr: addr, Err: err}
	}
	return &UDP{conn: conn, addr: raddr.String()}, nil
}

// Send writes b as a single datagram and returns the number of bytes sent.
func (u *UDP) Send(b []byte) (int, error) {
	if u.conn == nil {
		return 0, ErrClosed
	}
	n, err := u.conn.Write(b)
	if err != nil {
		return n, &SendError{Op: "send", Addr: u.addr, Err: err}
	}
	return n, nil
}

// LocalAddr returns the bound local address.
func (u *UDP) LocalAddr() net.Addr {
	if u.conn == nil {
		return nil
	}
	return u.conn.LocalAddr()
}

// RemoteAddr returns the address datagrams are sent to.
func (u *UDP) RemoteAddr() string { return u.addr }

// Close releases the socket. Close is idempotent.
func (u *UDP) Close() error {
	if u.conn == nil {
		return nil
	}
	err := u.conn.Close()
	u.conn = nil
	return err
}
