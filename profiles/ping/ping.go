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

// Package ping registers a profile that wraps the system "ping"/"ping6"
// tool to measure round-trip latency.
package ping

import (
	"context"
	"net"
	"strings"
	"time"

	liberr "github.com/nabbar/nsts/errors"
	"github.com/nabbar/nsts/profile"
	"github.com/nabbar/nsts/subexec"
	"github.com/nabbar/nsts/unit"
)

const ID = "ping"

func init() {
	profile.Default.Register(New())
}

// New builds the ping profile descriptor.
func New() *profile.Profile {
	p := profile.NewProfile(ID, "Ping",
		`A wrapper for the "ping" system tool to measure round trip latency.`,
		newSender, newReceiver, nil)

	p.AddResult("rtt", "RTT", func(v any) (unit.Unit, error) {
		s, _ := v.(string)
		return unit.ParseTime(s)
	})

	return p
}

type sender struct {
	*profile.Base
	sub *subexec.Base
}

func newSender(ex *profile.Execution) profile.Executor {
	binary := "ping"
	if ex.Connection() != nil && ex.Connection().IPv6() {
		binary = "ping6"
	}
	return &sender{Base: profile.NewBase(ex), sub: subexec.New(binary)}
}

func (s *sender) IsSupported() bool            { return s.sub.IsSupported() }
func (s *sender) Prepare(context.Context) error { return nil }
func (s *sender) Cleanup()                      { s.sub.Cleanup() }

func (s *sender) Run(ctx context.Context) error {
	remote := s.Context().Connection().Raw().RemoteAddr().String()
	if host, _, err := net.SplitHostPort(remote); err == nil {
		remote = host
	}

	if err := s.sub.Execute(ctx, "-c", "1", remote); err != nil {
		return err
	}

	for s.sub.IsRunning() {
		time.Sleep(200 * time.Millisecond)
	}

	out, err := s.sub.Output()
	if err != nil {
		return err
	}

	rtt, err := parsePingOutput(string(out))
	if err != nil {
		return err
	}

	if err = s.StoreResult("rtt", rtt); err != nil {
		return err
	}

	return s.PropagateResults()
}

// parsePingOutput extracts the average round trip time from the "rtt
// min/avg/max/mdev = a/b/c/d unit" summary line ping prints last.
func parsePingOutput(output string) (unit.Time, error) {
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")

	var summary string
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "rtt") {
			summary = lines[i]
			break
		}
	}
	if summary == "" {
		return 0, liberr.Newf(liberr.ProfileRuntimeError, nil, "ping failed to complete: %s", output)
	}

	fields := strings.Fields(summary)
	if len(fields) < 5 {
		return 0, liberr.Newf(liberr.ProfileRuntimeError, nil, "unexpected ping summary line: %s", summary)
	}

	values := strings.Split(fields[3], "/")
	if len(values) < 2 {
		return 0, liberr.Newf(liberr.ProfileRuntimeError, nil, "unexpected ping rtt values: %s", fields[3])
	}
	unitName := fields[4]

	return unit.ParseTime(values[1] + " " + unitName)
}

type receiver struct {
	*profile.Base
}

func newReceiver(ex *profile.Execution) profile.Executor {
	return &receiver{Base: profile.NewBase(ex)}
}

func (r *receiver) IsSupported() bool            { return true }
func (r *receiver) Prepare(context.Context) error { return nil }
func (r *receiver) Cleanup()                      {}
func (r *receiver) Run(context.Context) error     { return r.CollectResults() }
