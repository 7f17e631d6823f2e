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

package suitefile_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/nsts/profile"
	"github.com/nabbar/nsts/suitefile"
)

var _ = Describe("ParseCommandLineList", func() {
	It("expands a bare profile id into send and receive tests", func() {
		s, err := suitefile.ParseCommandLineList("iperf_tcp")
		Expect(err).ToNot(HaveOccurred())
		Expect(s.Tests).To(HaveLen(2))
		Expect(s.Tests[0]).To(Equal(suitefile.TestSpec{ProfileID: "iperf_tcp", Direction: profile.Send}))
		Expect(s.Tests[1]).To(Equal(suitefile.TestSpec{ProfileID: "iperf_tcp", Direction: profile.Receive}))
	})

	It("honors explicit -s/-r suffixes and a comma-separated list", func() {
		s, err := suitefile.ParseCommandLineList("iperf_tcp-s,ping-r")
		Expect(err).ToNot(HaveOccurred())
		Expect(s.Tests).To(HaveLen(2))
		Expect(s.Tests[0].ProfileID).To(Equal("iperf_tcp"))
		Expect(s.Tests[0].Direction).To(Equal(profile.Send))
		Expect(s.Tests[1].ProfileID).To(Equal("ping"))
		Expect(s.Tests[1].Direction).To(Equal(profile.Receive))
	})

	It("rejects an invalid direction suffix", func() {
		_, err := suitefile.ParseCommandLineList("iperf_tcp-x")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("LoadFile", func() {
	It("parses a global section and per-test profile-scoped options", func() {
		src := `
[global]
log_level = debug

[t1]
profile = iperf_tcp
direction = send
iperf_tcp.payload_size = 10M
times = 3
`
		s, err := suitefile.LoadFile(strings.NewReader(src))
		Expect(err).ToNot(HaveOccurred())
		Expect(s.Global).To(Equal(map[string]string{"log_level": "debug"}))
		Expect(s.Tests).To(HaveLen(1))

		t := s.Tests[0]
		Expect(t.ProfileID).To(Equal("iperf_tcp"))
		Expect(t.Direction).To(Equal(profile.Send))
		Expect(t.ProfileOptions).To(Equal(map[string]string{"payload_size": "10M"}))
		Expect(t.TestOptions).To(Equal(map[string]string{"times": "3"}))
	})

	It("expands a test with no direction into both send and receive", func() {
		src := `
[t1]
profile = dummy
`
		s, err := suitefile.LoadFile(strings.NewReader(src))
		Expect(err).ToNot(HaveOccurred())
		Expect(s.Tests).To(HaveLen(2))
		Expect(s.Tests[0].Direction).To(Equal(profile.Send))
		Expect(s.Tests[1].Direction).To(Equal(profile.Receive))
	})

	It("fails when a test section has no profile entry", func() {
		src := `
[t1]
direction = send
`
		_, err := suitefile.LoadFile(strings.NewReader(src))
		Expect(err).To(HaveOccurred())
	})

	It("ignores blank lines and comments", func() {
		src := `
; a comment
# another comment

[t1]
profile = dummy
direction = receive
`
		s, err := suitefile.LoadFile(strings.NewReader(src))
		Expect(err).ToNot(HaveOccurred())
		Expect(s.Tests).To(HaveLen(1))
		Expect(s.Tests[0].Direction).To(Equal(profile.Receive))
	})
})
