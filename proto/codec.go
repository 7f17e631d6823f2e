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
	"bytes"
	"encoding/base64"
	"reflect"

	libcbr "github.com/fxamacker/cbor/v2"

	liberr "github.com/nabbar/nsts/errors"
)

// Codec turns a Message into a wire line (without its trailing delimiter)
// and back. Implementations must be safe for concurrent Encode calls and
// concurrent Decode calls, but need not serialize Encode against Decode.
type Codec interface {
	Encode(m Message) ([]byte, error)
	Decode(line []byte) (Message, error)
}

// CBORCodec implements Codec as "<TYPE> <BASE64(CBOR(params))>": the
// params bag is CBOR-marshaled (so Unit-typed values ride their own
// cbor.Marshaler implementations), then standard-base64-encoded so the
// blob never contains whitespace or the delimiter byte.
type CBORCodec struct{}

// NewCBORCodec returns the default wire codec.
func NewCBORCodec() CBORCodec {
	return CBORCodec{}
}

func (CBORCodec) Encode(m Message) ([]byte, error) {
	body, err := libcbr.Marshal(m.Params)
	if err != nil {
		return nil, liberr.Newf(liberr.ProtocolError, err, "encoding params of message %q", m.Type)
	}

	enc := base64.StdEncoding.EncodeToString(body)

	out := make([]byte, 0, len(m.Type)+1+len(enc))
	out = append(out, m.Type...)
	out = append(out, ' ')
	out = append(out, enc...)
	return out, nil
}

// decMode decodes CBOR integers as int64 and nested maps as map[string]any,
// the types the readers of a decoded params bag assert against.
var decMode, _ = libcbr.DecOptions{
	IntDec:         libcbr.IntDecConvertSigned,
	DefaultMapType: reflect.TypeOf(map[string]any(nil)),
}.DecMode()

func (CBORCodec) Decode(line []byte) (Message, error) {
	parts := bytes.SplitN(line, []byte{' '}, 2)

	msgType := string(parts[0])
	if msgType == "" {
		return Message{}, liberr.New(liberr.ProtocolError, "empty message type", nil)
	}

	if len(parts) < 2 {
		return New(msgType, nil), nil
	}

	body, err := base64.StdEncoding.DecodeString(string(parts[1]))
	if err != nil {
		return Message{}, liberr.Newf(liberr.ProtocolError, err, "decoding base64 body of message %q", msgType)
	}

	var params map[string]any
	if len(body) > 0 {
		if err = decMode.Unmarshal(body, &params); err != nil {
			return Message{}, liberr.Newf(liberr.ProtocolError, err, "decoding cbor params of message %q", msgType)
		}
	}

	return New(msgType, params), nil
}
