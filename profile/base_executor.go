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

package profile

import (
	"fmt"
	"sync"

	liberr "github.com/nabbar/nsts/errors"
	"github.com/nabbar/nsts/proto"
	"github.com/nabbar/nsts/unit"
)

// ResultsProvider is implemented by every concrete executor through its
// embedded *Base. Callers outside this package (e.g. package suite) use
// it to read back an executor's collected/stored results without
// depending on the concrete profile type.
type ResultsProvider interface {
	Results() map[string]unit.Unit
}

// Base is the common executor plumbing every concrete profile embeds: it
// wraps the execution's result slots and the profile-namespaced
// sub-message helpers (send_sub/wait_sub in the original protocol). It
// does not itself implement Executor — concrete profiles embed *Base and
// add IsSupported/Prepare/Run/Cleanup.
type Base struct {
	ctx *Execution

	mu      sync.Mutex
	results map[string]unit.Unit
}

// NewBase returns a Base bound to ctx, with one empty result slot per
// entry in the profile's supported results.
func NewBase(ctx *Execution) *Base {
	b := &Base{
		ctx:     ctx,
		results: make(map[string]unit.Unit),
	}
	for _, id := range ctx.Profile().SupportedResults().Order() {
		b.results[id] = nil
	}
	return b
}

// Context returns the execution this executor belongs to.
func (b *Base) Context() *Execution { return b.ctx }

// Results returns a snapshot of the current result slots.
func (b *Base) Results() map[string]unit.Unit {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make(map[string]unit.Unit, len(b.results))
	for k, v := range b.results {
		out[k] = v
	}
	return out
}

// StoreResult records value under resultID, which must be one of the
// profile's declared result ids.
func (b *Base) StoreResult(resultID string, value unit.Unit) error {
	if _, err := b.ctx.Profile().SupportedResults().Get(resultID); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.results[resultID] = value
	return nil
}

func (b *Base) subType(name string) string {
	return fmt.Sprintf("__%s_%s", b.ctx.Profile().ID(), name)
}

// SendSub sends a profile-namespaced sub-message to the peer.
func (b *Base) SendSub(name string, params map[string]any) error {
	return b.ctx.Connection().Stream().Send(proto.New(b.subType(name), params))
}

// WaitSub blocks for the profile-namespaced sub-message name.
func (b *Base) WaitSub(name string) (proto.Message, error) {
	return b.ctx.Connection().Stream().WaitType(b.subType(name))
}

// PropagateResults sends the current result slots to the peer as a
// RESULTS sub-message.
func (b *Base) PropagateResults() error {
	results := b.Results()

	params := make(map[string]any, len(results))
	for id, v := range results {
		if v == nil {
			continue
		}
		params[id] = v
	}

	return b.SendSub("RESULTS", map[string]any{"results": params})
}

// CollectResults waits for the peer's RESULTS sub-message and coerces
// each value through its result descriptor, overwriting this executor's
// own result slots.
func (b *Base) CollectResults() error {
	msg, err := b.WaitSub("RESULTS")
	if err != nil {
		return err
	}

	raw, ok := msg.Params["results"].(map[string]any)
	if !ok {
		return liberr.New(liberr.ProtocolError, "RESULTS sub-message missing a results mapping", nil)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for id, v := range raw {
		desc, err := b.ctx.Profile().SupportedResults().Get(id)
		if err != nil {
			continue
		}
		value, err := desc.Coerce(v)
		if err != nil {
			return err
		}
		b.results[id] = value
	}

	return nil
}
