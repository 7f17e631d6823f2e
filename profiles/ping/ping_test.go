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

package ping

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/nsts/profile"
)

var _ = Describe("Profile registration", func() {
	It("registers the ping profile under the default registry", func() {
		p, ok := profile.Default.Lookup(ID)
		Expect(ok).To(BeTrue())
		Expect(p.ID()).To(Equal("ping"))
		Expect(p.SupportedResults().Order()).To(ContainElement("rtt"))
	})
})

var _ = Describe("parsePingOutput", func() {
	It("extracts the average rtt from a Linux ping summary line", func() {
		out := "PING example.com (1.2.3.4): 56 data bytes\n" +
			"--- example.com ping statistics ---\n" +
			"1 packets transmitted, 1 received, 0% packet loss\n" +
			"rtt min/avg/max/mdev = 10.1/12.5/14.2/1.0 ms\n"

		rtt, err := parsePingOutput(out)
		Expect(err).ToNot(HaveOccurred())
		Expect(float64(rtt)).To(BeNumerically("~", 0.0125, 1e-6))
	})

	It("errors out when no rtt summary line is present", func() {
		_, err := parsePingOutput("ping: cannot resolve host\n")
		Expect(err).To(HaveOccurred())
	})
})
