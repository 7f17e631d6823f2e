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

// Package client implements the peer that initiates a benchmark session:
// dial, handshake, ask the server to check and instantiate a profile, run
// it locally, and collect the resulting sample(s).
package client

import (
	"context"
	"net"
	"strconv"
	"time"

	liberr "github.com/nabbar/nsts/errors"
	"github.com/nabbar/nsts/conn"
	"github.com/nabbar/nsts/event"
	"github.com/nabbar/nsts/logger"
	"github.com/nabbar/nsts/options"
	"github.com/nabbar/nsts/profile"
	"github.com/nabbar/nsts/suite"
	"github.com/nabbar/nsts/suitefile"
)

// Event topics published on the Bus supplied to New.
const (
	TopicProfileStarted  = "profile_execution_started"
	TopicProfileFinished = "profile_execution_finished"
	TopicTestStarted     = "test_execution_started"
	TopicTestFinished    = "test_execution_finished"
	TopicSuiteStarted    = "suite_execution_started"
	TopicSuiteFinished   = "suite_execution_finished"
)

// Client dials one server and drives profile executions against it.
type Client struct {
	host string
	port int
	ipv6 bool
	reg  *profile.Registry
	log  logger.Logger
	bus  *event.Bus

	c *conn.Connection
}

// New returns a Client that will dial host:port. reg is typically
// profile.Default. log may be nil (defaults to logger.NewNop()). bus may
// be nil (defaults to a private, unobserved event.Bus).
func New(host string, port int, ipv6 bool, reg *profile.Registry, log logger.Logger, bus *event.Bus) *Client {
	if log == nil {
		log = logger.NewNop()
	}
	if bus == nil {
		bus = event.New()
	}
	return &Client{host: host, port: port, ipv6: ipv6, reg: reg, log: log, bus: bus}
}

// Bus returns the event bus this client publishes lifecycle notifications
// to, so callers can Connect before running anything.
func (cl *Client) Bus() *event.Bus { return cl.bus }

// Connect dials the server and performs the HELLO handshake. The
// resulting connection is reused for every subsequent RunProfile call.
func (cl *Client) Connect(ctx context.Context) error {
	port := cl.port
	if port == 0 {
		port = conn.DefaultPort
	}

	var d net.Dialer
	nc, err := d.DialContext(ctx, "tcp", net.JoinHostPort(cl.host, strconv.Itoa(port)))
	if err != nil {
		return liberr.New(liberr.ConnectionClosed, "dial failed", err)
	}

	c, err := conn.Handshake(ctx, nc, cl.ipv6)
	if err != nil {
		_ = nc.Close()
		return err
	}

	cl.c = c
	cl.log.Info("connected", logger.Fields{"host": cl.host, "port": cl.port})
	return nil
}

// Close closes the underlying connection, if any.
func (cl *Client) Close() error {
	if cl.c == nil {
		return nil
	}
	return cl.c.Close()
}

// RunProfile checks that profileID is supported on both sides, instantiates
// it for direction with rawOptions, runs it, and returns the resulting
// Sample. It mirrors the original run_test: ASSURE, PREPARE, RUN, STOP.
func (cl *Client) RunProfile(ctx context.Context, profileID string, direction profile.Direction, rawOptions map[string]any) (suite.Sample, error) {
	if err := profile.ClientCheckProfile(cl.c, profileID); err != nil {
		return suite.Sample{}, err
	}

	p, ok := cl.reg.Lookup(profileID)
	if !ok {
		return suite.Sample{}, liberr.Newf(liberr.ProtocolError, nil, "unknown profile %q", profileID)
	}

	vals, err := options.NewValues(p.SupportedOptions(), rawOptions)
	if err != nil {
		return suite.Sample{}, err
	}

	ex := profile.NewExecution(p, direction, vals, cl.c, "")

	if !ex.Executor().IsSupported() {
		return suite.Sample{}, liberr.Newf(liberr.ProfileRuntimeError, nil,
			"profile %q is not supported locally", profileID)
	}

	cl.bus.Publish(TopicProfileStarted, cl, map[string]any{"execution": ex.Name(), "profile_id": profileID, "direction": direction.String()})
	cl.log.Debug("preparing execution", logger.Fields{"execution": ex.Name()})

	if err = profile.ClientInstantiateProfile(ctx, ex); err != nil {
		return suite.Sample{}, err
	}

	cl.log.Debug("running execution", logger.Fields{"execution": ex.Name()})
	runErr := ex.Executor().Run(ctx)
	ex.Executor().Cleanup()

	if runErr != nil {
		cl.bus.Publish(TopicProfileFinished, cl, map[string]any{"execution": ex.Name(), "profile_id": profileID, "direction": direction.String(), "error": runErr.Error()})
		return suite.Sample{}, runErr
	}

	if err = profile.ClientExecutionFinished(ex); err != nil {
		cl.bus.Publish(TopicProfileFinished, cl, map[string]any{"execution": ex.Name(), "profile_id": profileID, "direction": direction.String(), "error": err.Error()})
		return suite.Sample{}, err
	}
	ex.MarkFinished()

	cl.bus.Publish(TopicProfileFinished, cl, map[string]any{"execution": ex.Name(), "profile_id": profileID, "direction": direction.String()})
	cl.log.Info("execution finished", logger.Fields{"execution": ex.Name()})

	return suite.SampleFrom(ex), nil
}

// RunTest implements the original's run_test: it runs profileID/direction
// repeatedly (times samples, sleeping interval between each) and returns
// the accumulated Run. test_execution_started/finished bracket the whole
// sample loop exactly once, not each individual sample — RunProfile's own
// profile_execution_started/finished already mark each sample's span. It
// stops and returns the first error encountered; samples collected before
// the failure are still attached to the returned Run.
func (cl *Client) RunTest(ctx context.Context, profileID string, direction profile.Direction, rawOptions map[string]any, times int, interval time.Duration) (*suite.Run, error) {
	run := suite.NewRun(profileID, direction)

	cl.bus.Publish(TopicTestStarted, cl, map[string]any{"profile_id": profileID, "direction": direction.String(), "times": times})

	for i := 0; i < times; i++ {
		sample, err := cl.RunProfile(ctx, profileID, direction, rawOptions)
		if err != nil {
			cl.bus.Publish(TopicTestFinished, cl, map[string]any{"profile_id": profileID, "direction": direction.String(), "error": err.Error()})
			return run, err
		}
		run.PushSample(sample)

		if i < times-1 && interval > 0 {
			select {
			case <-ctx.Done():
				cl.bus.Publish(TopicTestFinished, cl, map[string]any{"profile_id": profileID, "direction": direction.String(), "error": ctx.Err().Error()})
				return run, ctx.Err()
			case <-time.After(interval):
			}
		}
	}

	cl.bus.Publish(TopicTestFinished, cl, map[string]any{"profile_id": profileID, "direction": direction.String(), "samples": len(run.Samples)})
	return run, nil
}

// RunSuite implements the original's run_suite: it runs every test of sp
// via RunTest, one test's own "samples"/"interval" test-options overriding
// defaultSamples/defaultInterval when present, and aggregates every test's
// Run into a suite.Suite. suite_execution_started/finished bracket the
// entire multi-test run exactly once. It stops at the first test that
// fails; Runs collected before the failure are still attached to the
// returned Suite.
func (cl *Client) RunSuite(ctx context.Context, sp *suitefile.Suite, defaultSamples int, defaultInterval time.Duration) (*suite.Suite, error) {
	agg := suite.NewSuite(sp.Global["name"], defaultSamples, defaultInterval)

	cl.bus.Publish(TopicSuiteStarted, cl, map[string]any{"tests": len(sp.Tests)})

	for _, t := range sp.Tests {
		times := defaultSamples
		if raw, ok := t.TestOptions["samples"]; ok {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				times = n
			}
		}
		if raw, ok := t.TestOptions["times"]; ok {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				times = n
			}
		}

		interval := defaultInterval
		if raw, ok := t.TestOptions["interval"]; ok {
			if d, err := time.ParseDuration(raw); err == nil {
				interval = d
			}
		}

		opts := make(map[string]any, len(t.ProfileOptions))
		for k, v := range t.ProfileOptions {
			opts[k] = v
		}

		run, err := cl.RunTest(ctx, t.ProfileID, t.Direction, opts, times, interval)
		agg.PushRun(run)
		if err != nil {
			cl.bus.Publish(TopicSuiteFinished, cl, map[string]any{"runs": len(agg.Runs), "error": err.Error()})
			return agg, err
		}
	}

	cl.bus.Publish(TopicSuiteFinished, cl, map[string]any{"runs": len(agg.Runs)})
	return agg, nil
}
