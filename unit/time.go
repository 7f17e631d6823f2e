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

import (
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Time is a duration expressed in seconds. Unlike the std-library
// time.Duration, it supports week-scale formatting and the magnitude
// vocabulary profiles emit (e.g. ping's "rtt 34.2 ms").
type Time float64

var timeTable = &table{
	kind: "Time",
	magnitudes: []magnitude{
		{1e-9, "ns"},
		{1e-6, "us"},
		{1e-3, "ms"},
		{1, "sec"},
		{60, "min"},
		{3600, "hour"},
		{3600 * 24, "day"},
		{3600 * 24 * 7, "week"},
	},
	defaultIdx: 3,
}

// ParseTime parses a string such as "34.2 ms" or "2 min".
func ParseTime(s string) (Time, error) {
	v, err := timeTable.parse(s)
	if err != nil {
		return 0, err
	}
	return Time(v), nil
}

// FromDuration converts a time.Duration to Time.
func FromDuration(d time.Duration) Time {
	return Time(d.Seconds())
}

// Duration converts Time back to a time.Duration.
func (t Time) Duration() time.Duration {
	return time.Duration(float64(t) * float64(time.Second))
}

func (t Time) Kind() string { return timeTable.kind }
func (t Time) Raw() float64 { return float64(t) }
func (t Time) String() string {
	v, m := t.OptimalScale()
	return formatScaled(v, m)
}

func (t Time) Scale(magnitude string) (float64, error) {
	return timeTable.scale(float64(t), magnitude)
}

func (t Time) OptimalScale() (float64, string) {
	return timeTable.optimalScale(float64(t))
}

func (t Time) OptimalCombinedScale() []Scaled {
	return timeTable.optimalCombinedScale(float64(t))
}

func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Time) UnmarshalText(p []byte) error {
	v, err := ParseTime(string(p))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t Time) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(t.String())
}

func (t *Time) UnmarshalCBOR(p []byte) error {
	var s string
	if err := cbor.Unmarshal(p, &s); err != nil {
		return err
	}
	return t.UnmarshalText([]byte(s))
}
