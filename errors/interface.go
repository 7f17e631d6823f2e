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

package errors

// Error extends the standard error with a code, parent chaining, and a
// captured call-site trace. All read methods are safe for concurrent use;
// an Error is immutable once constructed.
type Error interface {
	error

	// IsCode reports whether this error's own code equals code (parents
	// are not checked).
	IsCode(code CodeError) bool

	// HasCode reports whether this error or any of its parents carries
	// code.
	HasCode(code CodeError) bool

	// Code returns this error's own classification.
	Code() CodeError

	// Parent returns the immediate parent error, or nil if this error is
	// the root of its chain.
	Parent() error

	// Unwrap implements errors.Is/errors.As chain walking via the parent
	// link.
	Unwrap() error

	// Trace returns the "file:line" the error was created at, or "" if
	// unavailable.
	Trace() string
}

// Is reports whether e can be unwrapped to an Error.
func Is(e error) bool {
	_, ok := e.(Error)
	if ok {
		return true
	}

	type unwrapper interface{ Unwrap() error }
	for u, ok := e.(unwrapper); ok; u, ok = e.(unwrapper) {
		e = u.Unwrap()
		if e == nil {
			return false
		}
		if _, ok := e.(Error); ok {
			return true
		}
	}

	return false
}

// Get returns e as an Error if it (or something in its Unwrap chain) is
// one, nil otherwise.
func Get(e error) Error {
	for e != nil {
		if er, ok := e.(Error); ok {
			return er
		}

		type unwrapper interface{ Unwrap() error }
		u, ok := e.(unwrapper)
		if !ok {
			return nil
		}
		e = u.Unwrap()
	}

	return nil
}

// Has reports whether e carries code anywhere in its chain.
func Has(e error, code CodeError) bool {
	er := Get(e)
	if er == nil {
		return false
	}
	return er.HasCode(code)
}
