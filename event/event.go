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

// Package event implements a small publisher/subscriber bus: engines
// (client, server, suite) publish lifecycle notifications
// (profile/test/suite started and finished) and callers subscribe to
// react to them (progress bars, logs, render output), without the
// engines needing to know who, if anyone, is listening.
package event

import "sync"

// Notification carries what was published: the topic it was sent
// under, the object that sent it, and any extra structured data.
type Notification struct {
	Topic  string
	Sender any
	Extra  map[string]any
}

// Handler receives a Notification. Handlers run synchronously, in
// registration order, on the publisher's goroutine.
type Handler func(n Notification)

// Bus is a topic-keyed registry of Handlers. It is constructible, not a
// package singleton, so independent test/client/server instances never
// share subscribers.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// New returns an empty Bus.
func New() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

// Connect registers fn to run whenever topic is published.
func (b *Bus) Connect(topic string, fn Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], fn)
}

// Publish sends a Notification to every handler connected to topic. It
// is a no-op if nothing is subscribed.
func (b *Bus) Publish(topic string, sender any, extra map[string]any) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[topic]...)
	b.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	n := Notification{Topic: topic, Sender: sender, Extra: extra}
	for _, fn := range handlers {
		fn(n)
	}
}
