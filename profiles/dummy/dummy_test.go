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

package dummy

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/nsts/profile"
)

var _ = Describe("Profile registration", func() {
	It("registers the dummy profile with its four options and two results", func() {
		p, ok := profile.Default.Lookup(ID)
		Expect(ok).To(BeTrue())
		Expect(p.SupportedOptions().Order()).To(Equal(
			[]string{"min_transfer", "max_transfer", "min_time", "max_time"}))
		Expect(p.SupportedResults().Order()).To(Equal([]string{"random_transfer", "random_time"}))
	})
})

var _ = Describe("randRange", func() {
	It("stays within [min, max)", func() {
		for i := 0; i < 100; i++ {
			v := randRange(2, 5)
			Expect(v).To(BeNumerically(">=", 2))
			Expect(v).To(BeNumerically("<", 5))
		}
	})

	It("returns min when max <= min", func() {
		Expect(randRange(3, 3)).To(Equal(3.0))
		Expect(randRange(3, 1)).To(Equal(3.0))
	})
})
