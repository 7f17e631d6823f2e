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

// Package server implements the peer side that waits for a benchmark
// client to connect, then serially dispatches CHECKPROFILE and
// INSTANTIATEPROFILE requests against a profile registry.
package server

import (
	"context"
	"net"
	"sync"

	liberr "github.com/nabbar/nsts/errors"
	"github.com/nabbar/nsts/conn"
	"github.com/nabbar/nsts/logger"
	"github.com/nabbar/nsts/profile"
	"github.com/nabbar/nsts/proto"
)

// Server accepts one client connection at a time and serves its profile
// requests against a fixed registry, exactly as the original single
// threaded dispatcher did.
type Server struct {
	host string
	port int
	ipv6 bool
	reg  *profile.Registry
	log  logger.Logger

	mu   sync.Mutex
	addr net.Addr
}

// New returns a Server bound to host:port. reg is typically
// profile.Default. log may be logger.NewNop().
func New(host string, port int, ipv6 bool, reg *profile.Registry, log logger.Logger) *Server {
	if log == nil {
		log = logger.NewNop()
	}
	return &Server{host: host, port: port, ipv6: ipv6, reg: reg, log: log}
}

// Addr returns the bound listener address, or nil before Serve has
// finished binding. Primarily useful in tests that bind to port 0.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Serve binds a listener on host:port (with SO_REUSEADDR) and serves
// clients one at a time until ctx is canceled or the listener fails.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := conn.Listen(ctx, s.host, s.port, s.ipv6)
	if err != nil {
		return err
	}
	defer func() { _ = ln.Close() }()

	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()

	s.log.Info("server listening", logger.Fields{"host": s.host, "port": s.port, "addr": ln.Addr().String()})

	for {
		nc, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			return liberr.New(liberr.ConnectionClosed, "accept failed", err)
		}

		s.serveOne(ctx, nc)
	}
}

func (s *Server) serveOne(ctx context.Context, nc net.Conn) {
	c, err := conn.Handshake(ctx, nc, s.ipv6)
	if err != nil {
		s.log.Warn("handshake failed", logger.Fields{"error": err.Error()})
		_ = nc.Close()
		return
	}
	defer func() { _ = c.Close() }()

	s.log.Info("client connected", logger.Fields{"remote": c.Raw().RemoteAddr().String()})

	for {
		msg, err := c.Stream().WaitMsg()
		if err != nil {
			if !liberr.Has(err, liberr.ConnectionClosed) {
				s.log.Warn("client dispatch error", logger.Fields{"error": err.Error()})
			}
			return
		}

		switch msg.Type {
		case "CHECKPROFILE":
			profileID, _ := msg.Params["profile_id"].(string)
			if err = profile.ServerRespondCheckProfile(c, s.reg, profileID); err != nil {
				s.log.Warn("check profile failed", logger.Fields{"error": err.Error()})
				return
			}

		case "INSTANTIATEPROFILE":
			ex, err := profile.ServerInstantiateProfile(ctx, c, s.reg, msg)
			if err != nil {
				s.log.Warn("instantiate profile failed", logger.Fields{"error": err.Error()})
				return
			}
			if err = s.runProfile(ctx, ex); err != nil {
				s.log.Warn("profile run failed", logger.Fields{"error": err.Error()})
				return
			}

		default:
			s.log.Warn("unexpected message type", logger.Fields{"type": msg.Type})
		}
	}
}

func (s *Server) runProfile(ctx context.Context, ex *profile.Execution) error {
	executor := ex.Executor()
	defer executor.Cleanup()

	s.log.Info("profile started", logger.Fields{"execution": ex.Name()})

	if err := executor.Run(ctx); err != nil {
		return err
	}
	ex.MarkFinished()

	c := ex.Connection()
	if err := c.Stream().Send(proto.New("EXECUTIONFINISHED", map[string]any{"execution_id": ex.ID()})); err != nil {
		return err
	}
	if _, err := c.Stream().WaitType("EXECUTIONFINISHED"); err != nil {
		return err
	}

	s.log.Info("profile finished", logger.Fields{"execution": ex.Name()})
	return nil
}
