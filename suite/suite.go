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

// Package suite accumulates repeated samples of one profile execution
// (a "SpeedTest" run) and reduces them to per-result statistics:
// min/max/mean/population-standard-deviation, the same reduction the
// original multi-sample results container performed.
package suite

import (
	"math"
	"time"

	"github.com/nabbar/nsts/profile"
	"github.com/nabbar/nsts/unit"
)

// Sample is one execution's results plus its wall-clock span.
type Sample struct {
	ExecutionID string
	StartedAt   time.Time
	EndedAt     time.Time
	Results     map[string]unit.Unit
}

// Duration returns EndedAt - StartedAt as a Time unit.
func (s Sample) Duration() unit.Time {
	return unit.FromDuration(s.EndedAt.Sub(s.StartedAt))
}

// SampleFrom builds a Sample from a finished Execution. ex.MarkFinished
// must have been called already.
func SampleFrom(ex *profile.Execution) Sample {
	var results map[string]unit.Unit
	if rp, ok := ex.Executor().(profile.ResultsProvider); ok {
		results = rp.Results()
	}

	return Sample{
		ExecutionID: ex.ID(),
		StartedAt:   ex.StartedAt(),
		EndedAt:     ex.EndedAt(),
		Results:     results,
	}
}

// Statistics is the per-result-id reduction of every sample in a Run:
// min, max, mean and population standard deviation, each expressed in
// the same concrete unit type the samples reported.
type Statistics struct {
	Min    unit.Unit
	Max    unit.Unit
	Mean   unit.Unit
	StdDev unit.Unit
}

// Run accumulates every sample of one profile/direction pair executed
// repeatedly (the "multirun_test" case in the original client).
type Run struct {
	ProfileID string
	Direction profile.Direction
	Samples   []Sample
}

// NewRun returns an empty Run for profileID/direction.
func NewRun(profileID string, direction profile.Direction) *Run {
	return &Run{ProfileID: profileID, Direction: direction}
}

// PushSample appends s to the run.
func (r *Run) PushSample(s Sample) {
	r.Samples = append(r.Samples, s)
}

// ExecutionTime is the sum of every sample's duration.
func (r *Run) ExecutionTime() unit.Time {
	var total unit.Time
	for _, s := range r.Samples {
		total += s.Duration()
	}
	return total
}

// Statistics reduces every sample's results to one Statistics struct per
// result id. A result id missing from a sample (e.g. a profile that
// conditionally reports a value) is skipped for that sample.
func (r *Run) Statistics() map[string]Statistics {
	raw := make(map[string][]float64)
	example := make(map[string]unit.Unit)

	for _, s := range r.Samples {
		for id, v := range s.Results {
			if v == nil {
				continue
			}
			raw[id] = append(raw[id], v.Raw())
			if _, ok := example[id]; !ok {
				example[id] = v
			}
		}
	}

	out := make(map[string]Statistics, len(raw))
	for id, values := range raw {
		mean, min, max, std := reduce(values)
		out[id] = Statistics{
			Min:    rebuild(example[id], min),
			Max:    rebuild(example[id], max),
			Mean:   rebuild(example[id], mean),
			StdDev: rebuild(example[id], std),
		}
	}
	return out
}

// reduce computes mean/min/max/population-stddev over values.
func reduce(values []float64) (mean, min, max, std float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	min, max = values[0], values[0]
	var sum float64
	for _, v := range values {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean = sum / float64(len(values))

	var sqDiff float64
	for _, v := range values {
		d := v - mean
		sqDiff += d * d
	}
	std = math.Sqrt(sqDiff / float64(len(values)))

	return mean, min, max, std
}

// Suite is an ordered list of Runs (one per test of a SpeedTest suite)
// plus the suite-level defaults every test fell back to when it didn't
// declare its own samples/interval.
type Suite struct {
	Name            string
	DefaultSamples  int
	DefaultInterval time.Duration
	Runs            []*Run
}

// NewSuite returns an empty Suite carrying its suite-level defaults.
func NewSuite(name string, defaultSamples int, defaultInterval time.Duration) *Suite {
	return &Suite{Name: name, DefaultSamples: defaultSamples, DefaultInterval: defaultInterval}
}

// PushRun appends r to the suite.
func (s *Suite) PushRun(r *Run) {
	s.Runs = append(s.Runs, r)
}

// rebuild reconstructs a Unit of example's concrete type from a raw
// float64 value. Go has no runtime "construct a value of this other
// value's type" operation, so this switches over the finite set of unit
// kinds this project defines.
func rebuild(example unit.Unit, v float64) unit.Unit {
	switch example.(type) {
	case unit.BitRate:
		return unit.BitRate(v)
	case unit.ByteRate:
		return unit.ByteRate(v)
	case unit.Byte:
		return unit.Byte(v)
	case unit.Time:
		return unit.Time(v)
	case unit.Packet:
		return unit.Packet(v)
	case unit.Percentage:
		return unit.Percentage(v)
	default:
		return nil
	}
}
