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

package unit

import "github.com/fxamacker/cbor/v2"

// Packet is a single-magnitude unit ("p"), used for packet counts.
type Packet float64

var packetTable = &table{
	kind:       "Packets",
	magnitudes: []magnitude{{1, "p"}},
	defaultIdx: 0,
}

func ParsePacket(s string) (Packet, error) {
	v, err := packetTable.parse(s)
	if err != nil {
		return 0, err
	}
	return Packet(v), nil
}

func (p Packet) Kind() string { return packetTable.kind }
func (p Packet) Raw() float64 { return float64(p) }
func (p Packet) String() string {
	v, m := p.OptimalScale()
	return formatScaled(v, m)
}

func (p Packet) Scale(magnitude string) (float64, error) {
	return packetTable.scale(float64(p), magnitude)
}

func (p Packet) OptimalScale() (float64, string) {
	return packetTable.optimalScale(float64(p))
}

func (p Packet) OptimalCombinedScale() []Scaled {
	return packetTable.optimalCombinedScale(float64(p))
}

func (p Packet) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Packet) UnmarshalText(b []byte) error {
	v, err := ParsePacket(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p Packet) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(p.String())
}

func (p *Packet) UnmarshalCBOR(b []byte) error {
	var s string
	if err := cbor.Unmarshal(b, &s); err != nil {
		return err
	}
	return p.UnmarshalText([]byte(s))
}
