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
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nabbar/nsts/conn"
	"github.com/nabbar/nsts/options"
	"github.com/nabbar/nsts/unit"
)

// Execution is the per-sample runtime context shared by both peers: it
// binds a Profile, a Direction, bound Options, the control Connection,
// and the Executor built eagerly from the direction. Both peers hold
// their own Execution for the same execution id; neither ever sees the
// other's Executor directly, only what it propagates over the wire.
type Execution struct {
	id        string
	profile   *Profile
	direction Direction
	opts      *options.Values
	c         *conn.Connection
	executor  Executor

	startedAt time.Time
	endedAt   time.Time
}

// NewExecution builds an Execution, creating its Executor eagerly from
// direction. If executionID is empty, one is generated as
// sha256(profile_id || started_at || nonce).
func NewExecution(p *Profile, direction Direction, opts *options.Values, c *conn.Connection, executionID string) *Execution {
	startedAt := time.Now().UTC()

	if executionID == "" {
		executionID = newExecutionID(p.ID(), startedAt)
	}

	ex := &Execution{
		id:        executionID,
		profile:   p,
		direction: direction,
		opts:      opts,
		c:         c,
		startedAt: startedAt,
	}

	ex.executor = p.FactoryFor(direction)(ex)
	return ex
}

func newExecutionID(profileID string, startedAt time.Time) string {
	h := sha256.New()
	h.Write([]byte(profileID))
	h.Write([]byte(fmt.Sprintf("%d", startedAt.UnixNano())))
	h.Write([]byte(uuid.NewString()))
	return hex.EncodeToString(h.Sum(nil))
}

// ID returns the execution's wire-visible identifier.
func (ex *Execution) ID() string { return ex.id }

// Profile returns the profile this execution runs.
func (ex *Execution) Profile() *Profile { return ex.profile }

// Direction returns the role this peer plays in this execution.
func (ex *Execution) Direction() Direction { return ex.direction }

// Options returns the bound option values for this execution.
func (ex *Execution) Options() *options.Values { return ex.opts }

// Connection returns the control connection this execution runs over.
func (ex *Execution) Connection() *conn.Connection { return ex.c }

// Executor returns the executor built for this execution's direction.
func (ex *Execution) Executor() Executor { return ex.executor }

// Name is a human-readable label for logs: "<profile display name> - <direction>".
func (ex *Execution) Name() string {
	return fmt.Sprintf("%s - %s", ex.profile.DisplayName(), ex.direction)
}

// MarkFinished stamps the execution's end time.
func (ex *Execution) MarkFinished() {
	ex.endedAt = time.Now().UTC()
}

// ExecutionTime returns ended_at - started_at as a Time unit. Call only
// after MarkFinished.
func (ex *Execution) ExecutionTime() unit.Time {
	return unit.FromDuration(ex.endedAt.Sub(ex.startedAt))
}

// StartedAt returns the moment this execution was constructed.
func (ex *Execution) StartedAt() time.Time { return ex.startedAt }

// EndedAt returns the moment MarkFinished was called, or the zero time.
func (ex *Execution) EndedAt() time.Time { return ex.endedAt }
