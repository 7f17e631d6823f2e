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

	liberr "github.com/nabbar/nsts/errors"
	"github.com/nabbar/nsts/conn"
	"github.com/nabbar/nsts/options"
	"github.com/nabbar/nsts/proto"
)

// ClientCheckProfile sends CHECKPROFILE for profileID and validates the
// PROFILEINFO response. It returns a ProtocolError if the peer does not
// have the profile installed and supported; the caller must not attempt
// INSTANTIATEPROFILE afterwards.
func ClientCheckProfile(c *conn.Connection, profileID string) error {
	if err := c.Stream().Send(proto.New("CHECKPROFILE", map[string]any{"profile_id": profileID})); err != nil {
		return err
	}

	resp, err := c.Stream().WaitType("PROFILEINFO")
	if err != nil {
		return err
	}

	installed, _ := resp.Params["installed"].(bool)
	supported, _ := resp.Params["supported"].(bool)

	if !installed || !supported {
		return liberr.Newf(liberr.ProtocolError, nil,
			"profile %q is not supported on the other side", profileID)
	}
	return nil
}

// ClientInstantiateProfile sends INSTANTIATEPROFILE asking the server to
// build the execution in direction.Opposite(), waits for OK (sent only
// after the server's own Prepare succeeds), then runs this side's own
// Prepare before returning.
func ClientInstantiateProfile(ctx context.Context, ex *Execution) error {
	c := ex.Connection()

	err := c.Stream().Send(proto.New("INSTANTIATEPROFILE", map[string]any{
		"profile_id":   ex.Profile().ID(),
		"direction":    ex.Direction().Opposite().String(),
		"execution_id": ex.ID(),
		"options":      ex.Options().Map(),
	}))
	if err != nil {
		return err
	}

	if _, err = c.Stream().WaitType("OK"); err != nil {
		return err
	}

	return ex.Executor().Prepare(ctx)
}

// ClientExecutionFinished sends EXECUTIONFINISHED and waits for the
// server's echo.
func ClientExecutionFinished(ex *Execution) error {
	c := ex.Connection()

	if err := c.Stream().Send(proto.New("EXECUTIONFINISHED", map[string]any{"execution_id": ex.ID()})); err != nil {
		return err
	}

	_, err := c.Stream().WaitType("EXECUTIONFINISHED")
	return err
}

// ServerRespondCheckProfile answers a CHECKPROFILE request by looking up
// profileID in reg and replying with PROFILEINFO. Support is probed with
// a throwaway Receive-direction execution, since IsSupported does not
// depend on direction.
func ServerRespondCheckProfile(c *conn.Connection, reg *Registry, profileID string) error {
	p, installed := reg.Lookup(profileID)

	supported := false
	if installed {
		vals, _ := options.NewValues(p.SupportedOptions(), nil)
		probe := NewExecution(p, Receive, vals, c, "")
		supported = probe.Executor().IsSupported()
	}

	return c.Stream().Send(proto.New("PROFILEINFO", map[string]any{
		"profile_id": profileID,
		"installed":  installed,
		"supported":  supported,
	}))
}

// ServerInstantiateProfile handles an INSTANTIATEPROFILE request: it
// looks up the profile, builds the Execution in the direction the
// client requested for this side, binds options, runs Prepare, and
// replies OK. The caller is then responsible for running Run/Cleanup
// and the EXECUTIONFINISHED exchange.
func ServerInstantiateProfile(ctx context.Context, c *conn.Connection, reg *Registry, msg proto.Message) (*Execution, error) {
	profileID, _ := msg.Params["profile_id"].(string)
	directionStr, _ := msg.Params["direction"].(string)
	executionID, _ := msg.Params["execution_id"].(string)
	rawOptions, _ := msg.Params["options"].(map[string]any)

	p, ok := reg.Lookup(profileID)
	if !ok {
		return nil, liberr.Newf(liberr.ProtocolError, nil, "unknown profile %q", profileID)
	}

	direction, err := ParseDirection(directionStr)
	if err != nil {
		return nil, err
	}

	vals, err := options.NewValues(p.SupportedOptions(), rawOptions)
	if err != nil {
		return nil, err
	}

	ex := NewExecution(p, direction, vals, c, executionID)

	if err = ex.Executor().Prepare(ctx); err != nil {
		return nil, err
	}

	if err = c.Stream().Send(proto.New("OK", nil)); err != nil {
		return nil, err
	}

	return ex, nil
}
