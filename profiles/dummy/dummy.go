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

// Package dummy registers a profile that produces random numbers instead
// of exercising the network, used to validate the profile/execution
// machinery end to end without depending on an external tool.
package dummy

import (
	"context"
	"math/rand"

	"github.com/nabbar/nsts/options"
	"github.com/nabbar/nsts/profile"
	"github.com/nabbar/nsts/unit"
)

const ID = "dummy"

func init() {
	profile.Default.Register(New())
}

// New builds the dummy profile descriptor.
func New() *profile.Profile {
	opts := options.NewSet()
	opts.Add("min_transfer", "the minimum random value of transfer", coerceBitRate, unit.BitRate(0))
	opts.Add("max_transfer", "the maximum random value of transfer", coerceBitRate, unit.BitRate(1))
	opts.Add("min_time", "the minimum random value of time", coerceTime, unit.Time(0))
	opts.Add("max_time", "the maximum random value of time", coerceTime, unit.Time(1))

	p := profile.NewProfile(ID, "Dummy SpeedTest",
		"A truly dummy test that returns some random numbers.",
		newSender, newReceiver, opts)

	p.AddResult("random_transfer", "Random Transfer", coerceBitRateResult)
	p.AddResult("random_time", "Random Time", coerceTimeResult)

	return p
}

func coerceBitRate(v any) (any, error) {
	switch t := v.(type) {
	case unit.BitRate:
		return t, nil
	case string:
		return unit.ParseBitRate(t)
	default:
		return unit.ParseBitRate(toString(v))
	}
}

func coerceTime(v any) (any, error) {
	switch t := v.(type) {
	case unit.Time:
		return t, nil
	case string:
		return unit.ParseTime(t)
	default:
		return unit.ParseTime(toString(v))
	}
}

func coerceBitRateResult(v any) (unit.Unit, error) {
	s, _ := v.(string)
	return unit.ParseBitRate(s)
}

func coerceTimeResult(v any) (unit.Unit, error) {
	s, _ := v.(string)
	return unit.ParseTime(s)
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

type sender struct {
	*profile.Base
}

func newSender(ex *profile.Execution) profile.Executor {
	return &sender{Base: profile.NewBase(ex)}
}

func (s *sender) IsSupported() bool              { return true }
func (s *sender) Prepare(context.Context) error   { return nil }
func (s *sender) Cleanup()                        {}

func (s *sender) Run(context.Context) error {
	ctx := s.Context()

	minTransfer, _ := ctx.Options().Get("min_transfer")
	maxTransfer, _ := ctx.Options().Get("max_transfer")
	minTime, _ := ctx.Options().Get("min_time")
	maxTime, _ := ctx.Options().Get("max_time")

	transfer := unit.BitRate(randRange(float64(minTransfer.(unit.BitRate)), float64(maxTransfer.(unit.BitRate))))
	elapsed := unit.Time(randRange(float64(minTime.(unit.Time)), float64(maxTime.(unit.Time))))

	if err := s.StoreResult("random_transfer", transfer); err != nil {
		return err
	}
	if err := s.StoreResult("random_time", elapsed); err != nil {
		return err
	}

	return s.PropagateResults()
}

func randRange(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rand.Float64()*(max-min)
}

type receiver struct {
	*profile.Base
}

func newReceiver(ex *profile.Execution) profile.Executor {
	return &receiver{Base: profile.NewBase(ex)}
}

func (r *receiver) IsSupported() bool            { return true }
func (r *receiver) Prepare(context.Context) error { return nil }
func (r *receiver) Cleanup()                      {}
func (r *receiver) Run(context.Context) error     { return r.CollectResults() }
