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

// BitRate is a transfer rate expressed in bits per second.
type BitRate float64

var bitRateTable = &table{
	kind: "Transfer Rate",
	magnitudes: []magnitude{
		{1, "bits/s"},
		{1e3, "kbit/s"},
		{1e6, "Mbit/s"},
		{1e9, "Gbit/s"},
		{1e12, "Tbit/s"},
	},
	alt: map[string][]string{
		"bits/s": {"bit/s", "b/s", "bps"},
		"kbit/s": {"Kbit/s", "Kbits/s", "Kb/s", "Kbps"},
		"Mbit/s": {"Mbits/s", "Mb/s", "Mbps"},
		"Gbit/s": {"Gbits/s", "Gb/s", "Gbps"},
		"Tbit/s": {"Tbits/s", "Tb/s", "Tbps"},
	},
	defaultIdx: 0,
}

// ParseBitRate parses a string such as "120 Mbit/s" or "120Mbps".
func ParseBitRate(s string) (BitRate, error) {
	v, err := bitRateTable.parse(s)
	if err != nil {
		return 0, err
	}
	return BitRate(v), nil
}

func (b BitRate) Kind() string  { return bitRateTable.kind }
func (b BitRate) Raw() float64  { return float64(b) }
func (b BitRate) String() string {
	v, m := b.OptimalScale()
	return formatScaled(v, m)
}

func (b BitRate) Scale(magnitude string) (float64, error) {
	return bitRateTable.scale(float64(b), magnitude)
}

func (b BitRate) OptimalScale() (float64, string) {
	return bitRateTable.optimalScale(float64(b))
}

func (b BitRate) OptimalCombinedScale() []Scaled {
	return bitRateTable.optimalCombinedScale(float64(b))
}

func (b BitRate) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *BitRate) UnmarshalText(p []byte) error {
	v, err := ParseBitRate(string(p))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

func (b BitRate) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(b.String())
}

func (b *BitRate) UnmarshalCBOR(p []byte) error {
	var s string
	if err := cbor.Unmarshal(p, &s); err != nil {
		return err
	}
	return b.UnmarshalText([]byte(s))
}
