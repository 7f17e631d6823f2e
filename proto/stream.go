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

package proto

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"sync"

	liberr "github.com/nabbar/nsts/errors"
)

// Stream wraps an io.ReadWriter (normally a net.Conn) to exchange framed
// Messages. Reads and writes are each safe for single-goroutine sequential
// use; Send may be called concurrently with WaitMsg/WaitType from another
// goroutine, guarded by an internal write mutex.
type Stream struct {
	rw    io.ReadWriter
	codec Codec
	rd    *bufio.Reader
	wmu   sync.Mutex
}

// NewStream wraps rw with the given Codec, buffering reads.
func NewStream(rw io.ReadWriter, codec Codec) *Stream {
	return &Stream{
		rw:    rw,
		codec: codec,
		rd:    bufio.NewReader(rw),
	}
}

// Send encodes and writes msg, terminated by Delimiter.
func (s *Stream) Send(msg Message) error {
	line, err := s.codec.Encode(msg)
	if err != nil {
		return err
	}
	line = append(line, Delimiter)

	s.wmu.Lock()
	defer s.wmu.Unlock()

	if _, err = s.rw.Write(line); err != nil {
		return liberr.New(liberr.ConnectionClosed, "writing message to peer", err)
	}
	return nil
}

// WaitMsg blocks until a full message line is available and decodes it.
// A peer disconnect (io.EOF/io.ErrUnexpectedEOF) surfaces as a
// liberr.ConnectionClosed error.
func (s *Stream) WaitMsg() (Message, error) {
	line, err := s.rd.ReadBytes(Delimiter)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Message{}, liberr.New(liberr.ConnectionClosed, "connection closed by peer", err)
		}
		return Message{}, liberr.New(liberr.ConnectionClosed, "reading message from peer", err)
	}

	line = bytes.TrimSuffix(line, []byte{Delimiter})
	return s.codec.Decode(line)
}

// WaitType blocks for the next message and requires it to be of type
// expected, returning a liberr.ProtocolError naming both types otherwise.
func (s *Stream) WaitType(expected string) (Message, error) {
	msg, err := s.WaitMsg()
	if err != nil {
		return Message{}, err
	}

	if msg.Type != expected {
		return Message{}, liberr.Newf(liberr.ProtocolError, nil,
			"expected message %q but received %q", expected, msg.Type)
	}

	return msg, nil
}
