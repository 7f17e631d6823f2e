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

// Package subexec provides the subprocess-executor base that profiles
// wrapping an external benchmark tool (iperf, ping, ...) embed: binary
// resolution on PATH, spawn-with-captured-output, non-blocking liveness
// poll, and a forceful, idempotent kill.
package subexec

import (
	"bytes"
	"context"
	"os/exec"
	"sync"

	liberr "github.com/nabbar/nsts/errors"
	encmux "github.com/nabbar/nsts/encoding/mux"
)

// muxDelim separates multiplexed frames written by the child's stdout
// and stderr pipes into the shared raw buffer; chanStdout/chanStderr tag
// which pipe each frame came from so Output can demultiplex them back
// into independent streams instead of one interleaved blob.
const (
	muxDelim   = byte('\n')
	chanStdout = 'o'
	chanStderr = 'e'
)

// Base resolves binaryName on PATH at construction and offers the
// minimal subprocess lifecycle every subprocess-backed profile needs.
// It must only ever have one live child at a time.
type Base struct {
	binaryPath string

	mu     sync.Mutex
	cmd    *exec.Cmd
	raw    *bytes.Buffer
	waited bool
}

// New resolves binaryName on PATH. IsSupported reports false if the
// resolution failed; Execute still refuses to run in that case.
func New(binaryName string) *Base {
	path, _ := exec.LookPath(binaryName)
	return &Base{binaryPath: path}
}

// IsSupported reports whether the binary was found on PATH.
func (b *Base) IsSupported() bool {
	return b.binaryPath != ""
}

// Execute spawns the resolved binary with args, capturing stdout and
// stderr on separate multiplexed channels of one buffer (Output returns
// stdout only). It fails if a previous child is still running or if the
// binary could not be resolved.
func (b *Base) Execute(ctx context.Context, args ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.binaryPath == "" {
		return liberr.New(liberr.ProfileRuntimeError, "subprocess binary is not available on PATH", nil)
	}
	if b.running() {
		return liberr.New(liberr.ProfileRuntimeError, "cannot execute multiple subprocesses simultaneously", nil)
	}

	b.raw = &bytes.Buffer{}
	b.waited = false
	b.cmd = exec.CommandContext(ctx, b.binaryPath, args...)

	mx := encmux.NewMultiplexer(b.raw, muxDelim)
	b.cmd.Stdout = mx.NewChannel(chanStdout)
	b.cmd.Stderr = mx.NewChannel(chanStderr)

	if err := b.cmd.Start(); err != nil {
		return liberr.New(liberr.ProfileRuntimeError, "starting subprocess "+b.binaryPath, err)
	}
	return nil
}

// IsRunning polls the child's state without blocking.
func (b *Base) IsRunning() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.running()
}

func (b *Base) running() bool {
	if b.cmd == nil || b.cmd.Process == nil {
		return false
	}
	if b.cmd.ProcessState != nil {
		return false
	}
	return true
}

// Kill forcefully terminates the child. It is a no-op if no child is
// running, and safe to call repeatedly (from Cleanup, in particular).
func (b *Base) Kill() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.running() {
		return
	}
	_ = b.cmd.Process.Kill()
	if !b.waited {
		b.waited = true
		_ = b.cmd.Wait()
	}
}

// Output blocks until the child exits and returns its captured stdout,
// demultiplexed away from stderr so a caller parsing structured stdout
// (CSV, ...) never sees interleaved diagnostic noise.
func (b *Base) Output() ([]byte, error) {
	b.mu.Lock()
	cmd := b.cmd
	raw := b.raw
	alreadyWaited := b.waited
	b.waited = true
	b.mu.Unlock()

	if cmd == nil {
		return nil, liberr.New(liberr.ProfileRuntimeError, "no subprocess has been executed", nil)
	}

	if !alreadyWaited {
		if err := cmd.Wait(); err != nil {
			if _, ok := err.(*exec.ExitError); !ok {
				stdout, _ := b.demux(raw)
				return stdout, liberr.New(liberr.ProfileRuntimeError, "waiting for subprocess", err)
			}
		}
	}

	stdout, err := b.demux(raw)
	if err != nil {
		return stdout, liberr.New(liberr.ProfileRuntimeError, "demultiplexing subprocess output", err)
	}
	return stdout, nil
}

// demux splits raw's multiplexed frames back into independent stdout and
// stderr buffers, returning only stdout; stderr is discarded beyond
// letting demultiplexing itself succeed, since no caller currently
// surfaces subprocess diagnostics separately from a failing exit code.
func (b *Base) demux(raw *bytes.Buffer) ([]byte, error) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	dmx := encmux.NewDeMultiplexer(bytes.NewReader(raw.Bytes()), muxDelim, 0)
	dmx.NewChannel(chanStdout, stdout)
	dmx.NewChannel(chanStderr, stderr)

	if err := dmx.Copy(); err != nil {
		return stdout.Bytes(), err
	}
	return stdout.Bytes(), nil
}

// Cleanup kills any still-running child. Idempotent.
func (b *Base) Cleanup() {
	b.Kill()
}
