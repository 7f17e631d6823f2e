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

// Package proto implements the framed control message protocol exchanged
// between the two NSTS peers: a typed Message, a CBOR/base64 wire Codec,
// and a buffered Stream that reads and writes them over a net.Conn.
package proto

import "fmt"

// Version is the protocol version exchanged during the HELLO handshake.
// Peers reject a connection whose remote VERSION does not match.
const Version = 0

// Delimiter terminates every encoded message on the wire.
const Delimiter = '\n'

// Message is one control message exchanged between peers: a type name
// (e.g. "HELLO", "CHECKPROFILE", or a profile-namespaced sub-message
// "__<profile_id>_<name>") and an arbitrary parameter bag.
type Message struct {
	Type   string
	Params map[string]any
}

// New builds a Message, defaulting Params to an empty map when nil is
// given so callers never have to nil-check before indexing it.
func New(msgType string, params map[string]any) Message {
	if params == nil {
		params = map[string]any{}
	}
	return Message{Type: msgType, Params: params}
}

func (m Message) String() string {
	return fmt.Sprintf("[%s %v]", m.Type, m.Params)
}
