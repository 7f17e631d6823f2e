/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
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

package level_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	loglvl "github.com/nabbar/nsts/logger/level"
)

var _ = Describe("Level", func() {
	Describe("ordering", func() {
		It("runs from most to least severe, NilLevel last", func() {
			Expect(loglvl.PanicLevel).To(BeNumerically("<", loglvl.FatalLevel))
			Expect(loglvl.FatalLevel).To(BeNumerically("<", loglvl.ErrorLevel))
			Expect(loglvl.ErrorLevel).To(BeNumerically("<", loglvl.WarnLevel))
			Expect(loglvl.WarnLevel).To(BeNumerically("<", loglvl.InfoLevel))
			Expect(loglvl.InfoLevel).To(BeNumerically("<", loglvl.DebugLevel))
			Expect(loglvl.DebugLevel).To(BeNumerically("<", loglvl.NilLevel))
		})
	})

	Describe("String", func() {
		It("names every level and falls back to unknown", func() {
			Expect(loglvl.PanicLevel.String()).To(Equal("Critical"))
			Expect(loglvl.FatalLevel.String()).To(Equal("Fatal"))
			Expect(loglvl.ErrorLevel.String()).To(Equal("Error"))
			Expect(loglvl.WarnLevel.String()).To(Equal("Warning"))
			Expect(loglvl.InfoLevel.String()).To(Equal("Info"))
			Expect(loglvl.DebugLevel.String()).To(Equal("Debug"))
			Expect(loglvl.NilLevel.String()).To(Equal(""))
			Expect(loglvl.Level(99).String()).To(Equal("unknown"))
		})
	})

	Describe("Parse", func() {
		It("is case-insensitive and accepts short codes", func() {
			Expect(loglvl.Parse("critical")).To(Equal(loglvl.PanicLevel))
			Expect(loglvl.Parse("CRIT")).To(Equal(loglvl.PanicLevel))
			Expect(loglvl.Parse("Fatal")).To(Equal(loglvl.FatalLevel))
			Expect(loglvl.Parse("ERR")).To(Equal(loglvl.ErrorLevel))
			Expect(loglvl.Parse("WaRnInG")).To(Equal(loglvl.WarnLevel))
			Expect(loglvl.Parse("info")).To(Equal(loglvl.InfoLevel))
			Expect(loglvl.Parse("debug")).To(Equal(loglvl.DebugLevel))
		})

		It("falls back to InfoLevel for unrecognized or NilLevel input", func() {
			Expect(loglvl.Parse("unknown")).To(Equal(loglvl.InfoLevel))
			Expect(loglvl.Parse("")).To(Equal(loglvl.InfoLevel))
			Expect(loglvl.Parse("nil")).To(Equal(loglvl.InfoLevel))
			Expect(loglvl.Parse(" info ")).To(Equal(loglvl.InfoLevel))
		})

		It("round-trips every named level through String", func() {
			for _, lvl := range []loglvl.Level{
				loglvl.PanicLevel, loglvl.FatalLevel, loglvl.ErrorLevel,
				loglvl.WarnLevel, loglvl.InfoLevel, loglvl.DebugLevel,
			} {
				Expect(loglvl.Parse(lvl.String())).To(Equal(lvl))
			}
		})
	})

	Describe("Logrus", func() {
		It("maps every level to its logrus equivalent", func() {
			Expect(loglvl.PanicLevel.Logrus()).To(Equal(logrus.PanicLevel))
			Expect(loglvl.FatalLevel.Logrus()).To(Equal(logrus.FatalLevel))
			Expect(loglvl.ErrorLevel.Logrus()).To(Equal(logrus.ErrorLevel))
			Expect(loglvl.WarnLevel.Logrus()).To(Equal(logrus.WarnLevel))
			Expect(loglvl.InfoLevel.Logrus()).To(Equal(logrus.InfoLevel))
			Expect(loglvl.DebugLevel.Logrus()).To(Equal(logrus.DebugLevel))
		})

		It("disables logging for NilLevel and out-of-range values", func() {
			Expect(loglvl.NilLevel.Logrus()).To(Equal(logrus.Level(math.MaxInt32)))
			Expect(loglvl.Level(99).Logrus()).To(Equal(logrus.Level(math.MaxInt32)))
		})
	})
})
