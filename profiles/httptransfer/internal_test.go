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

package httptransfer

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/nsts/options"
	"github.com/nabbar/nsts/profile"
)

var _ = Describe("payload reader", func() {
	It("streams exactly the requested number of zero bytes, then reports done", func() {
		p := &payload{remaining: 10}

		buf := make([]byte, 4)
		total := 0
		for {
			n, err := p.Read(buf)
			Expect(err).ToNot(HaveOccurred())
			total += n
			if n == 0 {
				break
			}
		}
		Expect(total).To(Equal(10))
	})
})

var _ = Describe("parseAndStore", func() {
	It("computes the transfer rate and elapsed time from curl -w output", func() {
		p := New()
		opts, err := options.NewValues(p.SupportedOptions(), nil)
		Expect(err).ToNot(HaveOccurred())

		ex := profile.NewExecution(p, profile.Send, opts, nil, "test-execution")
		s, ok := ex.Executor().(*sender)
		Expect(ok).To(BeTrue())

		Expect(s.parseAndStore("1000000 2.0")).To(Succeed())

		results := s.Results()
		Expect(results["transfer_rate"]).ToNot(BeNil())
		Expect(results["time"]).ToNot(BeNil())
	})

	It("errors on malformed curl output", func() {
		p := New()
		opts, err := options.NewValues(p.SupportedOptions(), nil)
		Expect(err).ToNot(HaveOccurred())

		ex := profile.NewExecution(p, profile.Send, opts, nil, "test-execution")
		s := ex.Executor().(*sender)

		Expect(s.parseAndStore("garbage")).To(HaveOccurred())
	})
})
