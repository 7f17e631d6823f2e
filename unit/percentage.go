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

// Percentage is a single-magnitude unit (always "%"), used for loss
// rates and similar ratios.
type Percentage float64

var percentageTable = &table{
	kind:       "Percentage",
	magnitudes: []magnitude{{1, "%"}},
	defaultIdx: 0,
}

func ParsePercentage(s string) (Percentage, error) {
	v, err := percentageTable.parse(s)
	if err != nil {
		return 0, err
	}
	return Percentage(v), nil
}

func (p Percentage) Kind() string { return percentageTable.kind }
func (p Percentage) Raw() float64 { return float64(p) }
func (p Percentage) String() string {
	v, m := p.OptimalScale()
	return formatScaled(v, m)
}

func (p Percentage) Scale(magnitude string) (float64, error) {
	return percentageTable.scale(float64(p), magnitude)
}

func (p Percentage) OptimalScale() (float64, string) {
	return percentageTable.optimalScale(float64(p))
}

func (p Percentage) OptimalCombinedScale() []Scaled {
	return percentageTable.optimalCombinedScale(float64(p))
}

func (p Percentage) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Percentage) UnmarshalText(b []byte) error {
	v, err := ParsePercentage(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p Percentage) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(p.String())
}

func (p *Percentage) UnmarshalCBOR(b []byte) error {
	var s string
	if err := cbor.Unmarshal(b, &s); err != nil {
		return err
	}
	return p.UnmarshalText([]byte(s))
}
