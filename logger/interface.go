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

// Package logger provides structured, leveled logging for the suite's
// engines and profiles, backed by logrus.
package logger

import (
	"github.com/nabbar/nsts/logger/level"
)

// Fields carries structured key/value context attached to a log entry.
type Fields map[string]interface{}

// Logger is the logging surface every engine and profile is given at
// construction time. It never panics and never calls os.Exit: Fatal/Panic
// only affect formatting/level, the caller still decides what to do with
// a returned error.
type Logger interface {
	SetLevel(lvl level.Level)
	GetLevel() level.Level

	// SetFields replaces the structured context attached to every
	// subsequent entry emitted by this Logger.
	SetFields(f Fields)

	// Clone returns a Logger carrying the same backend and level but an
	// independent Fields set, so a profile/execution can add its own
	// fields (execution id, profile id) without mutating the parent.
	Clone() Logger

	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}
