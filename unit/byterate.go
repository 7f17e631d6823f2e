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

// ByteRate is a transfer rate expressed in bytes per second.
type ByteRate float64

var byteRateTable = &table{
	kind: "Transfer Rate",
	magnitudes: []magnitude{
		{1, "bytes/s"},
		{1e3, "KByte/s"},
		{1e6, "MByte/s"},
		{1e9, "GByte/s"},
		{1e12, "TByte/s"},
	},
	alt: map[string][]string{
		"bytes/s": {"Bytes/s", "B/s", "Bps"},
		"KByte/s": {"KBytes/s", "KB/s", "kBps", "KBps"},
		"MByte/s": {"MBytes/s", "MB/s", "MBps"},
		"GByte/s": {"GBytes/s", "GB/s", "GBps"},
		"TByte/s": {"TBytes/s", "TB/s", "TBps"},
	},
	defaultIdx: 0,
}

// ParseByteRate parses a string such as "12 MByte/s".
func ParseByteRate(s string) (ByteRate, error) {
	v, err := byteRateTable.parse(s)
	if err != nil {
		return 0, err
	}
	return ByteRate(v), nil
}

func (b ByteRate) Kind() string { return byteRateTable.kind }
func (b ByteRate) Raw() float64 { return float64(b) }
func (b ByteRate) String() string {
	v, m := b.OptimalScale()
	return formatScaled(v, m)
}

func (b ByteRate) Scale(magnitude string) (float64, error) {
	return byteRateTable.scale(float64(b), magnitude)
}

func (b ByteRate) OptimalScale() (float64, string) {
	return byteRateTable.optimalScale(float64(b))
}

func (b ByteRate) OptimalCombinedScale() []Scaled {
	return byteRateTable.optimalCombinedScale(float64(b))
}

func (b ByteRate) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *ByteRate) UnmarshalText(p []byte) error {
	v, err := ParseByteRate(string(p))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

func (b ByteRate) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(b.String())
}

func (b *ByteRate) UnmarshalCBOR(p []byte) error {
	var s string
	if err := cbor.Unmarshal(p, &s); err != nil {
		return err
	}
	return b.UnmarshalText([]byte(s))
}
