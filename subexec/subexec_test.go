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

package subexec_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/nsts/subexec"
)

var _ = Describe("Base", func() {
	It("reports unsupported for a binary that does not exist on PATH", func() {
		b := subexec.New("nsts-definitely-not-a-real-binary")
		Expect(b.IsSupported()).To(BeFalse())
	})

	It("captures output and reports completion for a real binary", func() {
		b := subexec.New("echo")
		if !b.IsSupported() {
			Skip("echo not found on PATH")
		}

		Expect(b.Execute(context.Background(), "hello")).To(Succeed())

		Eventually(b.IsRunning, time.Second).Should(BeFalse())

		out, err := b.Output()
		Expect(err).ToNot(HaveOccurred())
		Expect(string(out)).To(ContainSubstring("hello"))

		b.Cleanup()
	})
})
