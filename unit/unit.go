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

// Package unit provides typed measurement units (transfer rate, time,
// byte count, percentage, packet count) with parsing, scaling, and
// human-readable rendering.
//
// Each concrete type (BitRate, ByteRate, Time, Percentage, Packet, Byte)
// is a named float64 holding the value in its base magnitude (order 1),
// so native Go arithmetic and comparison operators (+, -, <, ==, ...)
// work directly between values of the same type.
//
// Example usage:
//
//	r, _ := unit.ParseBitRate("120 Mbit/s")
//	fmt.Println(r.String())        // "120 Mbit/s"
//	v, m := r.OptimalScale()       // 120, "Mbit/s"
package unit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	liberr "github.com/nabbar/nsts/errors"
)

// Scaled is one magnitude/value pair, as returned by OptimalCombinedScale.
type Scaled struct {
	Value     float64
	Magnitude string
}

// Unit is implemented by every concrete measurement type in this package.
type Unit interface {
	fmt.Stringer

	// Kind returns the friendly type name ("Transfer Rate", "Time", ...).
	Kind() string

	// Raw returns the value in the type's base (order-1) magnitude.
	Raw() float64

	// Scale returns the value expressed in the given magnitude name.
	Scale(magnitude string) (float64, error)

	// OptimalScale returns the value expressed in the largest magnitude
	// that keeps it >= 1 (or the base magnitude if the value is smaller
	// than every magnitude, or zero).
	OptimalScale() (float64, string)

	// OptimalCombinedScale decomposes the value into a sum of integral
	// magnitudes, largest first (e.g. 90065 bytes -> 90 KBytes + 65 bytes).
	OptimalCombinedScale() []Scaled
}

type magnitude struct {
	order float64
	name  string
}

type table struct {
	kind       string
	magnitudes []magnitude // ascending order
	alt        map[string][]string
	defaultIdx int
}

var parsePattern = regexp.MustCompile(`^\s*(\d+(?:\.\d*)?)\s*([^\s]*)\s*$`)

func (t *table) order(name string) (float64, error) {
	for _, m := range t.magnitudes {
		if m.name == name {
			return m.order, nil
		}
		for _, alt := range t.alt[m.name] {
			if alt == name {
				return m.order, nil
			}
		}
	}

	return 0, liberr.Newf(liberr.UnknownMagnitude, nil,
		"unknown magnitude %q for unit %q", name, t.kind)
}

func (t *table) defaultName() string {
	return t.magnitudes[t.defaultIdx].name
}

func (t *table) parse(s string) (float64, error) {
	m := parsePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, liberr.Newf(liberr.ParseError, nil,
			"cannot parse %q as %s unit", s, t.kind)
	}

	qty, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, liberr.Newf(liberr.ParseError, err,
			"cannot parse %q as %s unit", s, t.kind)
	}

	name := m[2]
	if name == "" {
		name = t.defaultName()
	}

	ord, err := t.order(name)
	if err != nil {
		return 0, err
	}

	return qty * ord, nil
}

func (t *table) scale(raw float64, name string) (float64, error) {
	ord, err := t.order(name)
	if err != nil {
		return 0, err
	}
	return raw / ord, nil
}

func (t *table) optimalScale(raw float64) (float64, string) {
	if raw == 0 {
		return 0, t.defaultName()
	}

	best := t.defaultName()
	for i := len(t.magnitudes) - 1; i >= 0; i-- {
		m := t.magnitudes[i]
		if raw/m.order >= 1 {
			best = m.name
			break
		}
	}

	v, _ := t.scale(raw, best)
	return v, best
}

func (t *table) optimalCombinedScale(raw float64) []Scaled {
	if raw == 0 {
		return []Scaled{{Value: 0, Magnitude: t.defaultName()}}
	}

	var out []Scaled
	value := raw
	for i := len(t.magnitudes) - 1; i >= 0; i-- {
		m := t.magnitudes[i]
		whole := float64(int64(value / m.order))
		if whole >= 1 {
			out = append(out, Scaled{Value: whole, Magnitude: m.name})
			value -= whole * m.order
			if value < 1e-10 {
				break
			}
		}
	}

	if len(out) == 0 {
		out = append(out, Scaled{Value: value, Magnitude: t.magnitudes[0].name})
	}

	return out
}

func formatScaled(v float64, m string) string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", strconv.FormatFloat(v, 'g', -1, 64), m))
}
