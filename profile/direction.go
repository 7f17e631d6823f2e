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

// Package profile implements the benchmark profile abstraction: the
// Profile descriptor, the per-sample ProfileExecution context, the
// Executor contract concrete profiles implement, and the control-message
// protocol (CHECKPROFILE/INSTANTIATEPROFILE/EXECUTIONFINISHED) that drives
// one execution between the two peers.
package profile

import liberr "github.com/nabbar/nsts/errors"

// Direction picks which side of a profile's traffic an executor plays.
type Direction uint8

const (
	// Send is the active role: it typically drives a subprocess that
	// produces traffic towards the peer.
	Send Direction = iota
	// Receive is the passive role: it typically hosts a listener that
	// observes the traffic the Send side produces.
	Receive
)

// ParseDirection accepts the long and short spellings used on the wire
// and on the command line ("send"/"s", "receive"/"r").
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "send", "s":
		return Send, nil
	case "receive", "r":
		return Receive, nil
	default:
		return 0, liberr.Newf(liberr.ParseError, nil, "%q is not a valid direction", s)
	}
}

// IsSend reports whether d is the Send direction.
func (d Direction) IsSend() bool { return d == Send }

// IsReceive reports whether d is the Receive direction.
func (d Direction) IsReceive() bool { return d == Receive }

// Opposite returns the other direction: the role the server must take
// given the direction the client declared for itself.
func (d Direction) Opposite() Direction {
	if d == Send {
		return Receive
	}
	return Send
}

func (d Direction) String() string {
	if d == Send {
		return "send"
	}
	return "receive"
}
