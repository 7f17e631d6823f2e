/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package conn binds a net.Conn to a framed proto.Stream and performs the
// HELLO handshake that establishes protocol-version compatibility and
// exchanges the address family the two peers will use for the rest of the
// session.
package conn

import (
	"context"
	"net"
	"strconv"

	liberr "github.com/nabbar/nsts/errors"
	"github.com/nabbar/nsts/proto"
)

// DefaultPort is the TCP port NSTS listens on and dials by default.
const DefaultPort = 26532

// Connection is one established, handshaken peer connection.
type Connection struct {
	nc    net.Conn
	strm  *proto.Stream
	ipv6  bool
	local string
}

// Raw returns the underlying net.Conn, for profiles that need to derive
// local/remote addresses (e.g. to pass to iperf/ping as target hosts).
func (c *Connection) Raw() net.Conn { return c.nc }

// Stream returns the framed message stream bound to this connection.
func (c *Connection) Stream() *proto.Stream { return c.strm }

// IPv6 reports whether this session negotiated an IPv6 address family.
func (c *Connection) IPv6() bool { return c.ipv6 }

// LocalHost returns the remote peer's view of our own address, as learned
// during the handshake.
func (c *Connection) LocalHost() string { return c.local }

// Close closes the underlying connection.
func (c *Connection) Close() error { return c.nc.Close() }

// Handshake performs the HELLO exchange over c and returns a bound
// Connection. ipv6 declares which address family this side is using and is
// sent to the peer in HELLO; the peer's own ipv6 flag is not compared. A
// version mismatch fails with a liberr.ProtocolError.
func Handshake(ctx context.Context, c net.Conn, ipv6 bool) (*Connection, error) {
	strm := proto.NewStream(c, proto.NewCBORCodec())

	remoteHost, _, err := net.SplitHostPort(c.RemoteAddr().String())
	if err != nil {
		remoteHost = c.RemoteAddr().String()
	}

	type result struct {
		conn *Connection
		err  error
	}
	done := make(chan result, 1)

	go func() {
		sendErr := strm.Send(proto.New("HELLO", map[string]any{
			"version":   int64(proto.Version),
			"remote_ip": remoteHost,
			"ipv6":      ipv6,
		}))
		if sendErr != nil {
			done <- result{nil, sendErr}
			return
		}

		resp, waitErr := strm.WaitType("HELLO")
		if waitErr != nil {
			done <- result{nil, waitErr}
			return
		}

		version, _ := resp.Params["version"].(int64)
		if version != proto.Version {
			done <- result{nil, liberr.Newf(liberr.ProtocolError, nil,
				"incompatible protocol version: local %d, remote %v", proto.Version, resp.Params["version"])}
			return
		}

		local, _ := resp.Params["remote_ip"].(string)

		done <- result{&Connection{nc: c, strm: strm, ipv6: ipv6, local: local}, nil}
	}()

	select {
	case <-ctx.Done():
		_ = c.Close()
		return nil, liberr.New(liberr.ConnectionClosed, "handshake canceled", ctx.Err())
	case r := <-done:
		return r.conn, r.err
	}
}

// Listen opens a TCP listener on host:port, enabling SO_REUSEADDR so a
// restarted server can rebind immediately without waiting out TIME_WAIT.
// network is "tcp4" or "tcp6" depending on the requested address family.
func Listen(ctx context.Context, host string, port int, ipv6 bool) (net.Listener, error) {
	network := "tcp4"
	if ipv6 {
		network = "tcp6"
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))

	lc := net.ListenConfig{
		Control: controlReuseAddr,
	}

	ln, err := lc.Listen(ctx, network, addr)
	if err != nil {
		return nil, liberr.New(liberr.ConnectionClosed, "binding listener on "+addr, err)
	}
	return ln, nil
}
