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

// Package options provides an insertion-ordered, typed option/result
// descriptor container used by profiles to declare their configuration
// surface and the shape of the values they report back.
package options

import (
	liberr "github.com/nabbar/nsts/errors"
)

// Coerce converts a raw value (typically a string from a suite file or
// command line, or a decoded wire value) into the option's declared Go
// type. It must return an error wrapping liberr.ParseError on failure.
type Coerce func(value any) (any, error)

// Descriptor declares one entry of an option or result set: its id, a
// help string for the end user, the coercion function for its type, and
// (for options only) a default value.
type Descriptor struct {
	ID      string
	Help    string
	Coerce  Coerce
	Default any
}

// Set is an insertion-ordered collection of Descriptors, indexed by id.
// It is the authoring-time declaration shared by every instance of a
// given profile: build it once with Add calls and never mutate it again.
type Set struct {
	order []string
	byID  map[string]Descriptor
}

// NewSet returns an empty, ready to use Set.
func NewSet() *Set {
	return &Set{byID: map[string]Descriptor{}}
}

// Add declares a new entry. Re-adding an existing id replaces its
// descriptor but keeps its original position in Order.
func (s *Set) Add(id, help string, coerce Coerce, def any) {
	if _, exists := s.byID[id]; !exists {
		s.order = append(s.order, id)
	}
	s.byID[id] = Descriptor{ID: id, Help: help, Coerce: coerce, Default: def}
}

// Get returns the descriptor for id, or an UnknownOption error.
func (s *Set) Get(id string) (Descriptor, error) {
	d, ok := s.byID[id]
	if !ok {
		return Descriptor{}, liberr.Newf(liberr.UnknownOption, nil,
			"there is no option with id %q", id)
	}
	return d, nil
}

// Order returns the declared ids in insertion order.
func (s *Set) Order() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of declared entries.
func (s *Set) Len() int {
	return len(s.order)
}

// Values is a bound container of concrete values for a Set: every
// declared id starts at its descriptor's Default, and can be overridden
// through Set, which runs the descriptor's Coerce function.
type Values struct {
	descriptor *Set
	values     map[string]any
}

// NewValues returns a Values bound to descriptor, with every entry
// initialized to its declared default, then overridden by initial
// (id -> raw value, coerced through the descriptor).
func NewValues(descriptor *Set, initial map[string]any) (*Values, error) {
	v := &Values{
		descriptor: descriptor,
		values:     make(map[string]any, descriptor.Len()),
	}

	for _, id := range descriptor.order {
		v.values[id] = descriptor.byID[id].Default
	}

	for id, raw := range initial {
		if err := v.Set(id, raw); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// Descriptor returns the Set this Values is bound to.
func (v *Values) Descriptor() *Set {
	return v.descriptor
}

// Get returns the current value for id.
func (v *Values) Get(id string) (any, error) {
	if _, err := v.descriptor.Get(id); err != nil {
		return nil, err
	}
	return v.values[id], nil
}

// Set coerces raw through id's descriptor and stores the result.
func (v *Values) Set(id string, raw any) error {
	d, err := v.descriptor.Get(id)
	if err != nil {
		return err
	}

	coerced, err := d.Coerce(raw)
	if err != nil {
		return err
	}

	v.values[id] = coerced
	return nil
}

// Len returns the number of values held (always equal to the bound
// descriptor's Len()).
func (v *Values) Len() int {
	return len(v.values)
}

// Map returns a shallow copy of the current values, keyed by id. Useful
// to build the `options` map of an INSTANTIATEPROFILE message.
func (v *Values) Map() map[string]any {
	out := make(map[string]any, len(v.values))
	for k, val := range v.values {
		out[k] = val
	}
	return out
}
