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

package iperf

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/nsts/options"
	"github.com/nabbar/nsts/profile"
)

func newTestSender(p *profile.Profile) *sender {
	opts, err := options.NewValues(p.SupportedOptions(), nil)
	Expect(err).ToNot(HaveOccurred())

	ex := profile.NewExecution(p, profile.Send, opts, nil, "test-execution")
	s, ok := ex.Executor().(*sender)
	Expect(ok).To(BeTrue())
	return s
}

var _ = Describe("Profile registration", func() {
	It("registers both iperf profiles under the default registry", func() {
		tcp, ok := profile.Default.Lookup(TCPID)
		Expect(ok).To(BeTrue())
		Expect(tcp.SupportedResults().Order()).To(Equal([]string{"transfer_rate"}))

		jitter, ok := profile.Default.Lookup(JitterID)
		Expect(ok).To(BeTrue())
		Expect(jitter.SupportedResults().Order()).To(Equal(
			[]string{"transfer_rate", "jitter", "lost_packets", "total_packets", "percentage_lost"}))
	})
})

var _ = Describe("parseAndStore", func() {
	It("stores the transfer rate for a TCP report", func() {
		s := newTestSender(newTCPProfile())

		csv := "20240101120000,127.0.0.1,5201,127.0.0.1,45678,3,0.0-10.0,1250000000,1000000000"
		Expect(s.parseAndStore(csv)).To(Succeed())

		results := s.Results()
		Expect(results).To(HaveKey("transfer_rate"))
		Expect(results["transfer_rate"]).ToNot(BeNil())
	})

	It("stores jitter and loss columns for a UDP report", func() {
		s := newTestSender(newJitterProfile())
		s.jitter = true

		csv := "20240101120000,127.0.0.1,5201,127.0.0.1,45678,3,0.0-10.0,1250000000,1000000000,0.123,5,1000,0.5"
		Expect(s.parseAndStore(csv)).To(Succeed())

		results := s.Results()
		Expect(results["jitter"]).ToNot(BeNil())
		Expect(results["lost_packets"]).ToNot(BeNil())
		Expect(results["total_packets"]).ToNot(BeNil())
		Expect(results["percentage_lost"]).ToNot(BeNil())
	})

	It("errors on a malformed report", func() {
		s := newTestSender(newTCPProfile())
		Expect(s.parseAndStore("not,enough,fields")).To(HaveOccurred())
	})
})
