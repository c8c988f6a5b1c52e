//go:build !unix

package sender

import "net"

func setReceiveBuffer(conn *net.UDPConn, size int) error {
	return conn.SetReadBuffer(size)
}
