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

package logger

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nabbar/nsts/logger/level"
)

type logrusLogger struct {
	mu  sync.RWMutex
	log *logrus.Logger
	lvl level.Level
	fld Fields
}

// New returns a Logger writing to w at the given level, formatted as
// logfmt-style text via logrus's default TextFormatter.
func New(w io.Writer, lvl level.Level) Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl.Logrus())

	return &logrusLogger{
		log: l,
		lvl: lvl,
		fld: Fields{},
	}
}

// NewNop returns a Logger that discards everything. Used as the default
// for package tests and for callers that do not care about diagnostics.
func NewNop() Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(level.NilLevel.Logrus())

	return &logrusLogger{
		log: l,
		lvl: level.NilLevel,
		fld: Fields{},
	}
}

func (o *logrusLogger) SetLevel(lvl level.Level) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.lvl = lvl
	o.log.SetLevel(lvl.Logrus())
}

func (o *logrusLogger) GetLevel() level.Level {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return o.lvl
}

func (o *logrusLogger) SetFields(f Fields) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.fld = f
}

func (o *logrusLogger) Clone() Logger {
	o.mu.RLock()
	defer o.mu.RUnlock()

	cp := make(Fields, len(o.fld))
	for k, v := range o.fld {
		cp[k] = v
	}

	return &logrusLogger{
		log: o.log,
		lvl: o.lvl,
		fld: cp,
	}
}

func (o *logrusLogger) entry(f Fields) *logrus.Entry {
	o.mu.RLock()
	defer o.mu.RUnlock()

	merged := make(logrus.Fields, len(o.fld)+len(f))
	for k, v := range o.fld {
		merged[k] = v
	}
	for k, v := range f {
		merged[k] = v
	}

	return o.log.WithFields(merged)
}

func (o *logrusLogger) Debug(msg string, f Fields) {
	o.entry(f).Debug(msg)
}

func (o *logrusLogger) Info(msg string, f Fields) {
	o.entry(f).Info(msg)
}

func (o *logrusLogger) Warn(msg string, f Fields) {
	o.entry(f).Warn(msg)
}

func (o *logrusLogger) Error(msg string, f Fields) {
	o.entry(f).Error(msg)
}
