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

// Package errors provides the coded error taxonomy used across the suite:
// error codes (numeric classification), automatic call-site trace capture,
// and parent-error chaining, compatible with errors.Is/errors.As.
package errors

import "strconv"

// CodeError is a numeric error classification, similar in spirit to HTTP
// status codes, used so callers can branch on error category without
// string-matching messages.
type CodeError uint16

const (
	// UnknownError is the fallback code for errors created outside this
	// package (via Make) that carry no classification.
	UnknownError CodeError = iota

	// ProtocolError: any violation of the handshake/framing/control
	// command contract. Fatal for the connection; neither peer attempts
	// to resynchronize.
	ProtocolError

	// ConnectionClosed: the peer vanished (EOF, reset, timeout).
	ConnectionClosed

	// ProfileRuntimeError: a profile executor failed during prepare/run
	// (e.g. a subprocess produced unparsable output). Fatal to the
	// current sample only.
	ProfileRuntimeError

	// ParseError: unit parsing or suite-file parsing failed.
	ParseError

	// UnknownOption: an options descriptor was asked to coerce/read an
	// id it does not define.
	UnknownOption

	// UnknownMagnitude: a unit was asked to scale to a magnitude name it
	// does not define.
	UnknownMagnitude
)

// String returns the numeric code as a string.
func (c CodeError) String() string {
	return strconv.Itoa(int(c))
}

// Label returns a short human-readable name for the code, used when
// rendering error messages and logs.
func (c CodeError) Label() string {
	switch c {
	case ProtocolError:
		return "protocol"
	case ConnectionClosed:
		return "connection_closed"
	case ProfileRuntimeError:
		return "profile_runtime"
	case ParseError:
		return "parse"
	case UnknownOption:
		return "unknown_option"
	case UnknownMagnitude:
		return "unknown_magnitude"
	default:
		return "unknown"
	}
}
