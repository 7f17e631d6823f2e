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

// Package iperf registers two profiles wrapping the "iperf" benchmark
// tool: raw TCP throughput ("iperf_tcp") and UDP jitter/loss
// ("iperf_udp_jitter").
package iperf

import (
	"context"
	"net"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	liberr "github.com/nabbar/nsts/errors"
	"github.com/nabbar/nsts/options"
	"github.com/nabbar/nsts/profile"
	"github.com/nabbar/nsts/subexec"
	"github.com/nabbar/nsts/unit"
)

const (
	TCPID    = "iperf_tcp"
	JitterID = "iperf_udp_jitter"
)

func init() {
	profile.Default.Register(newTCPProfile())
	profile.Default.Register(newJitterProfile())
}

func coerceTime(v any) (any, error) {
	switch t := v.(type) {
	case unit.Time:
		return t, nil
	case string:
		return unit.ParseTime(t)
	default:
		return nil, liberr.Newf(liberr.ParseError, nil, "cannot coerce %v into a Time", v)
	}
}

func coerceBitRate(v any) (any, error) {
	switch t := v.(type) {
	case unit.BitRate:
		return t, nil
	case string:
		return unit.ParseBitRate(t)
	default:
		return nil, liberr.Newf(liberr.ParseError, nil, "cannot coerce %v into a BitRate", v)
	}
}

func resultBitRate(v any) (unit.Unit, error) {
	s, _ := v.(string)
	return unit.ParseBitRate(s)
}

func resultTime(v any) (unit.Unit, error) {
	s, _ := v.(string)
	return unit.ParseTime(s)
}

func resultPacket(v any) (unit.Unit, error) {
	s, _ := v.(string)
	return unit.ParsePacket(s)
}

func resultPercentage(v any) (unit.Unit, error) {
	s, _ := v.(string)
	return unit.ParsePercentage(s)
}

func newTCPProfile() *profile.Profile {
	opts := options.NewSet()
	opts.Add("time", "time to transmit for", coerceTime, unit.Time(10))

	p := profile.NewProfile(TCPID, "TCP (iperf)",
		`Wrapper for the "iperf" benchmark tool, to measure raw TCP throughput.`,
		func(ex *profile.Execution) profile.Executor { return newSender(ex, false) },
		func(ex *profile.Execution) profile.Executor { return newReceiver(ex) },
		opts)

	p.AddResult("transfer_rate", "Transfer Rate", resultBitRate)
	return p
}

func newJitterProfile() *profile.Profile {
	opts := options.NewSet()
	opts.Add("time", "time to transmit for", coerceTime, unit.Time(10))
	opts.Add("rate", "rate to send udp packets at", coerceBitRate, unit.BitRate(1e6))

	p := profile.NewProfile(JitterID, "Jitter (iperf)",
		`Wrapper for the "iperf" benchmark tool, to measure latency jittering on UDP transmissions.`,
		func(ex *profile.Execution) profile.Executor { return newSender(ex, true) },
		func(ex *profile.Execution) profile.Executor { return newReceiver(ex) },
		opts)

	p.AddResult("transfer_rate", "Trans. Rate", resultBitRate)
	p.AddResult("jitter", "Jitter", resultTime)
	p.AddResult("lost_packets", "Lost Pck", resultPacket)
	p.AddResult("total_packets", "Total Pck", resultPacket)
	p.AddResult("percentage_lost", "Lost Pck %", resultPercentage)
	return p
}

type sender struct {
	*profile.Base
	sub    *subexec.Base
	jitter bool
}

func newSender(ex *profile.Execution, jitter bool) *sender {
	return &sender{Base: profile.NewBase(ex), sub: subexec.New("iperf"), jitter: jitter}
}

func (s *sender) IsSupported() bool            { return s.sub.IsSupported() }
func (s *sender) Prepare(context.Context) error { return nil }
func (s *sender) Cleanup()                      { s.sub.Cleanup() }

func (s *sender) Run(ctx context.Context) error {
	ipv6 := s.Context().Connection().IPv6()

	serverArgs := []string{"-s"}
	clientArgs := []string{"-y", "C"}
	if ipv6 {
		serverArgs = append(serverArgs, "-V")
		clientArgs = append(clientArgs, "-V")
	}
	if s.jitter {
		serverArgs = append(serverArgs, "-u")
	}

	serverArgsAny := make([]any, len(serverArgs))
	for i, a := range serverArgs {
		serverArgsAny[i] = a
	}

	if err := s.SendSub("STARTSERVER", map[string]any{"server_arguments": serverArgsAny}); err != nil {
		return err
	}
	if _, err := s.WaitSub("OK"); err != nil {
		return err
	}

	timeOpt, _ := s.Context().Options().Get("time")
	timeSeconds := strconv.FormatFloat(float64(timeOpt.(unit.Time)), 'f', -1, 64)

	remote := s.Context().Connection().Raw().RemoteAddr().String()
	if host, _, err := net.SplitHostPort(remote); err == nil {
		remote = host
	}

	args := []string{"-c", remote, "-t", timeSeconds}
	if s.jitter {
		rateOpt, _ := s.Context().Options().Get("rate")
		rate := strconv.FormatFloat(float64(rateOpt.(unit.BitRate)), 'f', -1, 64)
		args = append(args, "-u", "-t", timeSeconds, "-b", rate)
	}
	args = append(args, clientArgs...)

	if err := s.sub.Execute(ctx, args...); err != nil {
		return err
	}
	for s.sub.IsRunning() {
		time.Sleep(200 * time.Millisecond)
	}

	if err := s.SendSub("STOPSERVER", nil); err != nil {
		return err
	}
	if _, err := s.WaitSub("OK"); err != nil {
		return err
	}

	out, err := s.sub.Output()
	if err != nil {
		return err
	}

	if err = s.parseAndStore(string(out)); err != nil {
		return err
	}

	return s.PropagateResults()
}

// parseAndStore parses iperf's "-y C" CSV report. The TCP profile reads
// only the transfer-rate column (index 8); the jitter profile reads the
// second line of UDP-receiver output for jitter/loss columns as well.
func (s *sender) parseAndStore(output string) error {
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return liberr.New(liberr.ProfileRuntimeError, "iperf produced no output", nil)
	}

	fields := strings.Split(lines[0], ",")
	if len(fields) < 9 {
		return liberr.Newf(liberr.ProfileRuntimeError, nil, "unexpected iperf report: %s", lines[0])
	}

	rate, err := unit.ParseBitRate(fields[8])
	if err != nil {
		return err
	}
	if err = s.StoreResult("transfer_rate", rate); err != nil {
		return err
	}

	if !s.jitter {
		return nil
	}

	line := lines[0]
	if len(lines) > 1 && lines[1] != "" {
		line = lines[1]
	}
	udpFields := strings.Split(line, ",")
	if len(udpFields) < 13 {
		return liberr.Newf(liberr.ProfileRuntimeError, nil, "unexpected iperf udp report: %s", line)
	}

	jitter, err := unit.ParseTime(udpFields[9] + "ms")
	if err != nil {
		return err
	}
	lost, err := unit.ParsePacket(udpFields[10])
	if err != nil {
		return err
	}
	total, err := unit.ParsePacket(udpFields[11])
	if err != nil {
		return err
	}
	pctLost, err := unit.ParsePercentage(udpFields[12])
	if err != nil {
		return err
	}

	if err = s.StoreResult("jitter", jitter); err != nil {
		return err
	}
	if err = s.StoreResult("lost_packets", lost); err != nil {
		return err
	}
	if err = s.StoreResult("total_packets", total); err != nil {
		return err
	}
	return s.StoreResult("percentage_lost", pctLost)
}

type receiver struct {
	*profile.Base
	sub *subexec.Base
}

func newReceiver(ex *profile.Execution) *receiver {
	return &receiver{Base: profile.NewBase(ex), sub: subexec.New("iperf")}
}

func (r *receiver) IsSupported() bool            { return r.sub.IsSupported() }
func (r *receiver) Prepare(context.Context) error { return nil }
func (r *receiver) Cleanup()                      { r.sub.Cleanup() }

func (r *receiver) Run(ctx context.Context) error {
	msg, err := r.WaitSub("STARTSERVER")
	if err != nil {
		return err
	}

	rawArgs, _ := msg.Params["server_arguments"].([]any)
	args := make([]string, len(rawArgs))
	for i, a := range rawArgs {
		args[i], _ = a.(string)
	}

	if err = r.sub.Execute(ctx, args...); err != nil {
		return err
	}
	time.Sleep(200 * time.Millisecond)

	if err = r.SendSub("OK", nil); err != nil {
		return err
	}

	// The server subprocess now runs unattended until the sender tells us
	// to stop. Poll it concurrently with waiting for STOPSERVER so a
	// server that dies early is reported instead of hanging the exchange.
	stopped := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stopped:
				return nil
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if !r.sub.IsRunning() {
					return liberr.New(liberr.ProfileRuntimeError, "iperf server exited before STOPSERVER", nil)
				}
			}
		}
	})

	g.Go(func() error {
		defer close(stopped)
		_, werr := r.WaitSub("STOPSERVER")
		return werr
	})

	if err = g.Wait(); err != nil {
		r.sub.Kill()
		return err
	}
	r.sub.Kill()

	if err = r.SendSub("OK", nil); err != nil {
		return err
	}

	return r.CollectResults()
}
