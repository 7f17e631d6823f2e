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

package conn_test

import (
	"context"
	"net"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/nsts/conn"
)

var _ = Describe("Handshake", func() {
	It("negotiates version and address family over a real TCP pair", func() {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).ToNot(HaveOccurred())
		defer ln.Close()

		type srvResult struct {
			c   *conn.Connection
			err error
		}
		srvDone := make(chan srvResult, 1)

		go func() {
			sc, acceptErr := ln.Accept()
			if acceptErr != nil {
				srvDone <- srvResult{nil, acceptErr}
				return
			}
			c, hsErr := conn.Handshake(context.Background(), sc, false)
			srvDone <- srvResult{c, hsErr}
		}()

		cc, err := net.DialTimeout("tcp", ln.Addr().String(), time.Second)
		Expect(err).ToNot(HaveOccurred())

		clientConn, err := conn.Handshake(context.Background(), cc, false)
		Expect(err).ToNot(HaveOccurred())
		Expect(clientConn.IPv6()).To(BeFalse())

		srv := <-srvDone
		Expect(srv.err).ToNot(HaveOccurred())
		Expect(srv.c.IPv6()).To(BeFalse())
	})
})
