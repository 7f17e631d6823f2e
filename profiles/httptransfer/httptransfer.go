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

// Package httptransfer registers a profile that times an HTTP transfer:
// the receive side hosts a transient net/http listener serving a
// generated payload, the send side times a "curl" fetch against it. It
// supplements the original apache-bench profile, which this rewrite
// cannot assume is installed, with a self-hosted Go listener instead.
package httptransfer

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	liberr "github.com/nabbar/nsts/errors"
	"github.com/nabbar/nsts/options"
	"github.com/nabbar/nsts/profile"
	"github.com/nabbar/nsts/subexec"
	"github.com/nabbar/nsts/unit"
)

const ID = "http_transfer"

func init() {
	profile.Default.Register(New())
}

// New builds the http_transfer profile descriptor.
func New() *profile.Profile {
	opts := options.NewSet()
	opts.Add("payload_size", "size of the payload to transfer", coercePayloadSize, unit.Byte(10e6))

	p := profile.NewProfile(ID, "HTTP Transfer",
		"Times an HTTP GET transfer against a transient local listener.",
		newSender, newReceiver, opts)

	p.AddResult("transfer_rate", "Transfer Rate", func(v any) (unit.Unit, error) {
		s, _ := v.(string)
		return unit.ParseByteRate(s)
	})
	p.AddResult("time", "Time", func(v any) (unit.Unit, error) {
		s, _ := v.(string)
		return unit.ParseTime(s)
	})

	return p
}

func coercePayloadSize(v any) (any, error) {
	switch t := v.(type) {
	case unit.Byte:
		return t, nil
	case string:
		return unit.ParseByte(t)
	default:
		return nil, liberr.Newf(liberr.ParseError, nil, "cannot coerce %v into a Byte", v)
	}
}

// payload implements io.Reader, streaming n zero bytes without
// allocating the whole buffer, so arbitrarily large payload_size values
// stay cheap to serve.
type payload struct {
	remaining int64
}

func (p *payload) Read(buf []byte) (int, error) {
	if p.remaining <= 0 {
		return 0, nil
	}
	n := int64(len(buf))
	if n > p.remaining {
		n = p.remaining
	}
	for i := int64(0); i < n; i++ {
		buf[i] = 0
	}
	p.remaining -= n
	return int(n), nil
}

type receiver struct {
	*profile.Base
	srv *http.Server
	ln  net.Listener
}

func newReceiver(ex *profile.Execution) profile.Executor {
	return &receiver{Base: profile.NewBase(ex)}
}

func (r *receiver) IsSupported() bool            { return true }
func (r *receiver) Prepare(context.Context) error { return nil }

func (r *receiver) Run(ctx context.Context) error {
	msg, err := r.WaitSub("STARTSERVER")
	if err != nil {
		return err
	}

	size, _ := msg.Params["payload_size"].(float64)
	if size <= 0 {
		size = 10e6
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return liberr.New(liberr.ProfileRuntimeError, "binding http_transfer listener", err)
	}
	r.ln = ln

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Length", strconv.FormatInt(int64(size), 10))
		_, _ = io.Copy(w, &payload{remaining: int64(size)})
	})

	r.srv = &http.Server{Handler: mux}
	go func() { _ = r.srv.Serve(ln) }()

	port := ln.Addr().(*net.TCPAddr).Port
	if err = r.SendSub("OK", map[string]any{"port": int64(port)}); err != nil {
		return err
	}

	if _, err = r.WaitSub("STOPSERVER"); err != nil {
		return err
	}
	r.stopServer()

	if err = r.SendSub("OK", nil); err != nil {
		return err
	}

	return r.CollectResults()
}

func (r *receiver) stopServer() {
	if r.srv != nil {
		_ = r.srv.Close()
		r.srv = nil
	}
}

func (r *receiver) Cleanup() { r.stopServer() }

type sender struct {
	*profile.Base
	sub *subexec.Base
}

func newSender(ex *profile.Execution) profile.Executor {
	return &sender{Base: profile.NewBase(ex), sub: subexec.New("curl")}
}

func (s *sender) IsSupported() bool            { return s.sub.IsSupported() }
func (s *sender) Prepare(context.Context) error { return nil }
func (s *sender) Cleanup()                      { s.sub.Cleanup() }

func (s *sender) Run(ctx context.Context) error {
	sizeOpt, _ := s.Context().Options().Get("payload_size")
	payloadSize, _ := sizeOpt.(unit.Byte)

	if err := s.SendSub("STARTSERVER", map[string]any{"payload_size": float64(payloadSize)}); err != nil {
		return err
	}

	okMsg, err := s.WaitSub("OK")
	if err != nil {
		return err
	}
	port, _ := okMsg.Params["port"].(int64)

	remote := s.Context().Connection().Raw().RemoteAddr().String()
	if host, _, splitErr := net.SplitHostPort(remote); splitErr == nil {
		remote = host
	}
	url := fmt.Sprintf("http://%s/", net.JoinHostPort(remote, strconv.FormatInt(port, 10)))

	if err = s.sub.Execute(ctx, "-s", "-o", "/dev/null", "-w", "%{size_download} %{time_total}", url); err != nil {
		return err
	}
	for s.sub.IsRunning() {
		time.Sleep(200 * time.Millisecond)
	}

	out, err := s.sub.Output()
	if err != nil {
		return err
	}

	if err = s.SendSub("STOPSERVER", nil); err != nil {
		return err
	}
	if _, err = s.WaitSub("OK"); err != nil {
		return err
	}

	if err = s.parseAndStore(string(out)); err != nil {
		return err
	}

	return s.PropagateResults()
}

func (s *sender) parseAndStore(output string) error {
	fields := strings.Fields(strings.TrimSpace(output))
	if len(fields) < 2 {
		return liberr.Newf(liberr.ProfileRuntimeError, nil, "unexpected curl -w output: %q", output)
	}

	bytesDownloaded, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return liberr.New(liberr.ProfileRuntimeError, "parsing curl size_download", err)
	}
	seconds, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return liberr.New(liberr.ProfileRuntimeError, "parsing curl time_total", err)
	}

	elapsed := unit.Time(seconds)
	rate := unit.ByteRate(0)
	if seconds > 0 {
		rate = unit.ByteRate(bytesDownloaded / seconds)
	}

	if err = s.StoreResult("transfer_rate", rate); err != nil {
		return err
	}
	return s.StoreResult("time", elapsed)
}
