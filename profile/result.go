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

package profile

import (
	liberr "github.com/nabbar/nsts/errors"
	"github.com/nabbar/nsts/unit"
)

// ResultCoerce turns a raw wire value (as decoded off CBOR: typically a
// string in a unit's canonical String() form) into its concrete Unit
// type. Every profile result carries dimension; there is no primitive
// numeric result type.
type ResultCoerce func(raw any) (unit.Unit, error)

// ResultDescriptor declares one entry of a profile's result set.
type ResultDescriptor struct {
	ID          string
	DisplayName string
	Coerce      ResultCoerce
}

// ResultSet is the insertion-ordered, authoring-time declaration of a
// profile's supported results, built once via AddResult before the
// Profile is registered.
type ResultSet struct {
	order []string
	byID  map[string]ResultDescriptor
}

// NewResultSet returns an empty ResultSet.
func NewResultSet() *ResultSet {
	return &ResultSet{byID: map[string]ResultDescriptor{}}
}

// Add declares a new result entry.
func (s *ResultSet) Add(id, displayName string, coerce ResultCoerce) {
	if _, exists := s.byID[id]; !exists {
		s.order = append(s.order, id)
	}
	s.byID[id] = ResultDescriptor{ID: id, DisplayName: displayName, Coerce: coerce}
}

// Get returns the descriptor for id.
func (s *ResultSet) Get(id string) (ResultDescriptor, error) {
	d, ok := s.byID[id]
	if !ok {
		return ResultDescriptor{}, liberr.Newf(liberr.UnknownOption, nil, "there is no result with id %q", id)
	}
	return d, nil
}

// Order returns the declared ids in insertion order.
func (s *ResultSet) Order() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
