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

import (
	"fmt"
	"runtime"
)

type ers struct {
	code CodeError
	msg  string
	prnt error
	trce runtime.Frame
}

// New creates an Error with the given code and message, optionally
// wrapping a parent error.
func New(code CodeError, message string, parent error) Error {
	return &ers{
		code: code,
		msg:  message,
		prnt: parent,
		trce: frame(),
	}
}

// Newf is New with fmt.Sprintf-style message formatting.
func Newf(code CodeError, parent error, pattern string, args ...any) Error {
	return &ers{
		code: code,
		msg:  fmt.Sprintf(pattern, args...),
		prnt: parent,
		trce: frame(),
	}
}

// Make wraps a plain error as an Error with UnknownError code, or returns
// it unchanged if it is already one.
func Make(e error) Error {
	if e == nil {
		return nil
	}
	if er, ok := e.(Error); ok {
		return er
	}

	return &ers{
		code: UnknownError,
		msg:  e.Error(),
		trce: frame(),
	}
}

func (e *ers) Error() string {
	if e.code == UnknownError {
		return e.msg
	}
	return fmt.Sprintf("[%s] %s", e.code.Label(), e.msg)
}

func (e *ers) IsCode(code CodeError) bool {
	return e.code == code
}

func (e *ers) HasCode(code CodeError) bool {
	if e.code == code {
		return true
	}
	if e.prnt == nil {
		return false
	}
	if er, ok := e.prnt.(Error); ok {
		return er.HasCode(code)
	}
	return false
}

func (e *ers) Code() CodeError {
	return e.code
}

func (e *ers) Parent() error {
	return e.prnt
}

func (e *ers) Unwrap() error {
	return e.prnt
}

func (e *ers) Trace() string {
	return traceString(e.trce)
}
