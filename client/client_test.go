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

package client_test

import (
	"context"
	"net"
	"strconv"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/nsts/client"
	"github.com/nabbar/nsts/event"
	"github.com/nabbar/nsts/profile"
	_ "github.com/nabbar/nsts/profiles/dummy"
	"github.com/nabbar/nsts/server"
	"github.com/nabbar/nsts/suitefile"
)

func startTestServer(ctx context.Context) int {
	srv := server.New("127.0.0.1", 0, false, profile.Default, nil)
	go func() { _ = srv.Serve(ctx) }()
	Eventually(srv.Addr, time.Second).ShouldNot(BeNil())

	_, portStr, err := net.SplitHostPort(srv.Addr().String())
	Expect(err).ToNot(HaveOccurred())
	port, err := strconv.Atoi(portStr)
	Expect(err).ToNot(HaveOccurred())
	return port
}

var _ = Describe("Client", func() {
	It("runs a dummy profile once via RunTest and publishes lifecycle events", func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		port := startTestServer(ctx)

		bus := event.New()
		var topics []string
		bus.Connect(client.TopicProfileStarted, func(n event.Notification) { topics = append(topics, n.Topic) })
		bus.Connect(client.TopicProfileFinished, func(n event.Notification) { topics = append(topics, n.Topic) })
		bus.Connect(client.TopicTestStarted, func(n event.Notification) { topics = append(topics, n.Topic) })
		bus.Connect(client.TopicTestFinished, func(n event.Notification) { topics = append(topics, n.Topic) })

		cl := client.New("127.0.0.1", port, false, profile.Default, nil, bus)
		Expect(cl.Connect(ctx)).To(Succeed())
		defer func() { _ = cl.Close() }()

		run, err := cl.RunTest(ctx, "dummy", profile.Send, nil, 1, 0)
		Expect(err).ToNot(HaveOccurred())
		Expect(run.Samples).To(HaveLen(1))
		Expect(run.Samples[0].Results).To(HaveKey("random_transfer"))
		Expect(run.Samples[0].Results).To(HaveKey("random_time"))

		Expect(topics).To(Equal([]string{
			client.TopicTestStarted,
			client.TopicProfileStarted,
			client.TopicProfileFinished,
			client.TopicTestFinished,
		}))
	})

	It("accumulates repeated samples into a Run via RunTest", func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		port := startTestServer(ctx)

		cl := client.New("127.0.0.1", port, false, profile.Default, nil, nil)
		Expect(cl.Connect(ctx)).To(Succeed())
		defer func() { _ = cl.Close() }()

		run, err := cl.RunTest(ctx, "dummy", profile.Send, nil, 3, 0)
		Expect(err).ToNot(HaveOccurred())
		Expect(run.Samples).To(HaveLen(3))

		stats := run.Statistics()
		Expect(stats).To(HaveKey("random_transfer"))
	})

	It("runs every test of a Suite exactly once, bracketed by one suite-level event pair", func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		port := startTestServer(ctx)

		bus := event.New()
		var topics []string
		bus.Connect(client.TopicSuiteStarted, func(n event.Notification) { topics = append(topics, n.Topic) })
		bus.Connect(client.TopicSuiteFinished, func(n event.Notification) { topics = append(topics, n.Topic) })
		bus.Connect(client.TopicTestStarted, func(n event.Notification) { topics = append(topics, n.Topic) })
		bus.Connect(client.TopicTestFinished, func(n event.Notification) { topics = append(topics, n.Topic) })

		cl := client.New("127.0.0.1", port, false, profile.Default, nil, bus)
		Expect(cl.Connect(ctx)).To(Succeed())
		defer func() { _ = cl.Close() }()

		sp := &suitefile.Suite{
			Tests: []suitefile.TestSpec{
				{ProfileID: "dummy", Direction: profile.Send},
				{ProfileID: "dummy", Direction: profile.Receive},
			},
		}

		agg, err := cl.RunSuite(ctx, sp, 2, 0)
		Expect(err).ToNot(HaveOccurred())
		Expect(agg.Runs).To(HaveLen(2))
		Expect(agg.Runs[0].Samples).To(HaveLen(2))
		Expect(agg.Runs[1].Samples).To(HaveLen(2))

		Expect(topics).To(Equal([]string{
			client.TopicSuiteStarted,
			client.TopicTestStarted,
			client.TopicTestFinished,
			client.TopicTestStarted,
			client.TopicTestFinished,
			client.TopicSuiteFinished,
		}))
	})

	It("fails RunProfile for an unsupported profile id", func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		port := startTestServer(ctx)

		cl := client.New("127.0.0.1", port, false, profile.Default, nil, nil)
		Expect(cl.Connect(ctx)).To(Succeed())
		defer func() { _ = cl.Close() }()

		_, err := cl.RunProfile(ctx, "no-such-profile", profile.Send, nil)
		Expect(err).To(HaveOccurred())
	})
})
