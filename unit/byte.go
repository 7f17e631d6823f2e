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

// Byte is an information quantity expressed in bytes.
type Byte float64

var byteTable = &table{
	kind: "Information Quantity",
	magnitudes: []magnitude{
		{1, "bytes"},
		{1e3, "KBytes"},
		{1e6, "MBytes"},
		{1e9, "GBytes"},
		{1e12, "TBytes"},
	},
	alt: map[string][]string{
		"bytes":  {"Byte", "B"},
		"KBytes": {"KByte", "Kbyte", "kbyte", "KB"},
		"MBytes": {"MByte", "Mbyte", "MB"},
		"GBytes": {"GByte", "Gbyte", "GB"},
		"TBytes": {"TByte", "Tbyte", "TB"},
	},
	defaultIdx: 0,
}

func ParseByte(s string) (Byte, error) {
	v, err := byteTable.parse(s)
	if err != nil {
		return 0, err
	}
	return Byte(v), nil
}

func (b Byte) Kind() string { return byteTable.kind }
func (b Byte) Raw() float64 { return float64(b) }
func (b Byte) String() string {
	v, m := b.OptimalScale()
	return formatScaled(v, m)
}

func (b Byte) Scale(magnitude string) (float64, error) {
	return byteTable.scale(float64(b), magnitude)
}

func (b Byte) OptimalScale() (float64, string) {
	return byteTable.optimalScale(float64(b))
}

func (b Byte) OptimalCombinedScale() []Scaled {
	return byteTable.optimalCombinedScale(float64(b))
}

func (b Byte) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Byte) UnmarshalText(p []byte) error {
	v, err := ParseByte(string(p))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

func (b Byte) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(b.String())
}

func (b *Byte) UnmarshalCBOR(p []byte) error {
	var s string
	if err := cbor.Unmarshal(p, &s); err != nil {
		return err
	}
	return b.UnmarshalText([]byte(s))
}
