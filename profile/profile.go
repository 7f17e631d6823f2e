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
	"context"

	"github.com/nabbar/nsts/options"
)

// Executor is the capability set a concrete profile implements for one
// role (Send or Receive) of one execution. Run may block for the
// duration of the benchmark; Cleanup must be idempotent and safe to call
// after a partial Run.
type Executor interface {
	IsSupported() bool
	Prepare(ctx context.Context) error
	Run(ctx context.Context) error
	Cleanup()
}

// ExecutorFactory builds the Executor for one role of one Execution. The
// core never mixes a Send executor into a Receive role or vice versa.
type ExecutorFactory func(ex *Execution) Executor

// Profile is an immutable descriptor of a benchmark tool: its id, the two
// per-role executor factories, and the option/result contracts both
// peers agree on. Build it once at init time with NewProfile/AddResult,
// then register it; never mutate a Profile after registration.
type Profile struct {
	id              string
	displayName     string
	description     string
	sendFactory     ExecutorFactory
	receiveFactory  ExecutorFactory
	supportedOpts   *options.Set
	supportedResult *ResultSet
}

// NewProfile declares a profile. supportedOptions may be nil, which is
// treated as an empty descriptor set.
func NewProfile(id, displayName, description string, sendFactory, receiveFactory ExecutorFactory, supportedOptions *options.Set) *Profile {
	if supportedOptions == nil {
		supportedOptions = options.NewSet()
	}
	return &Profile{
		id:              id,
		displayName:     displayName,
		description:     description,
		sendFactory:     sendFactory,
		receiveFactory:  receiveFactory,
		supportedOpts:   supportedOptions,
		supportedResult: NewResultSet(),
	}
}

// ID returns the profile's stable identifier (also its wire namespace).
func (p *Profile) ID() string { return p.id }

// DisplayName returns the friendly name shown in listings.
func (p *Profile) DisplayName() string { return p.displayName }

// Description returns the profile's help text.
func (p *Profile) Description() string { return p.description }

// SupportedOptions returns the profile's option descriptor set.
func (p *Profile) SupportedOptions() *options.Set { return p.supportedOpts }

// SupportedResults returns the profile's result descriptor set.
func (p *Profile) SupportedResults() *ResultSet { return p.supportedResult }

// AddResult declares a result entry this profile reports.
func (p *Profile) AddResult(id, displayName string, coerce ResultCoerce) {
	p.supportedResult.Add(id, displayName, coerce)
}

// FactoryFor returns the executor factory for the given direction.
func (p *Profile) FactoryFor(d Direction) ExecutorFactory {
	if d == Send {
		return p.sendFactory
	}
	return p.receiveFactory
}
