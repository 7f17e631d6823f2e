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

// Package render prints suite results to a terminal: a statistics table
// per finished Run, colored pass/fail-style rows for profile errors, and
// a live multi-bar progress display driven off the event bus while a
// suite is running.
package render

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/nabbar/nsts/client"
	"github.com/nabbar/nsts/event"
	"github.com/nabbar/nsts/suite"
)

// RenderStatistics writes run's per-result-id min/max/mean/stddev as a
// table to w, one row per result id in alphabetical order.
func RenderStatistics(w io.Writer, run *suite.Run) {
	stats := run.Statistics()

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	_, _ = fmt.Fprintf(w, "%s (%s) - %d sample(s), %s total\n",
		run.ProfileID, run.Direction.String(), len(run.Samples), run.ExecutionTime().String())

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Result", "Min", "Max", "Mean", "StdDev"})

	for _, id := range ids {
		s := stats[id]
		table.Append([]string{id, s.Min.String(), s.Max.String(), s.Mean.String(), s.StdDev.String()})
	}

	table.Render()
}

// RenderError prints msg to w in the teacher's bold-red "failure" color.
func RenderError(w io.Writer, msg string) {
	_, _ = color.New(color.FgRed, color.Bold).Fprintln(w, msg)
}

// RenderOK prints msg to w in bold green.
func RenderOK(w io.Writer, msg string) {
	_, _ = color.New(color.FgGreen, color.Bold).Fprintln(w, msg)
}

// Progress drives a vbauerster/mpb multi-bar display by subscribing to a
// client event.Bus: one bar per test (profile id + direction), sized to
// its declared sample count and advancing one step per finished sample.
type Progress struct {
	out io.Writer
	p   *mpb.Progress

	mu   sync.Mutex
	bars map[string]*mpb.Bar
}

// NewProgress creates a Progress writing to out and subscribes it to
// bus's test/profile lifecycle topics. Callers should call Wait after the
// suite run completes to let the bars flush.
func NewProgress(out io.Writer, bus *event.Bus) *Progress {
	pr := &Progress{
		out:  out,
		p:    mpb.New(mpb.WithOutput(out)),
		bars: make(map[string]*mpb.Bar),
	}

	bus.Connect(client.TopicTestStarted, pr.onTestStarted)
	bus.Connect(client.TopicProfileFinished, pr.onProfileFinished)

	return pr
}

func barKey(profileID, direction string) string {
	return profileID + "|" + direction
}

func (pr *Progress) onTestStarted(n event.Notification) {
	profileID, _ := n.Extra["profile_id"].(string)
	direction, _ := n.Extra["direction"].(string)
	times, _ := n.Extra["times"].(int)
	if profileID == "" || times <= 0 {
		return
	}

	bar := pr.p.AddBar(int64(times),
		mpb.PrependDecorators(decor.Name(profileID+" ("+direction+")")),
		mpb.AppendDecorators(decor.Percentage()),
	)

	pr.mu.Lock()
	pr.bars[barKey(profileID, direction)] = bar
	pr.mu.Unlock()
}

func (pr *Progress) onProfileFinished(n event.Notification) {
	profileID, _ := n.Extra["profile_id"].(string)
	direction, _ := n.Extra["direction"].(string)

	pr.mu.Lock()
	bar := pr.bars[barKey(profileID, direction)]
	pr.mu.Unlock()

	if bar != nil {
		bar.Increment()
	}
}

// Wait blocks until every bar this Progress owns has completed.
func (pr *Progress) Wait() {
	pr.p.Wait()
}
