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

// Package suitefile decodes the INI-like suite-file format and the
// comma-separated command-line short form into a list of TestSpecs ready
// to hand to the client engine. Both formats name a profile, an optional
// direction, and profile-scoped options (prefixed "<profile_id>.").
package suitefile

import (
	"bufio"
	"io"
	"strings"

	liberr "github.com/nabbar/nsts/errors"
	"github.com/nabbar/nsts/profile"
)

// TestSpec is one test to run: a profile id, the direction(s) to run it
// in, the options to forward to the profile, and test-level options
// (e.g. "times", "interval") that are not profile-scoped.
type TestSpec struct {
	ProfileID      string
	Direction      profile.Direction
	ProfileOptions map[string]string
	TestOptions    map[string]string
}

// Suite is a parsed suite file or command-line short form: global
// options plus the ordered list of tests to run.
type Suite struct {
	Global map[string]string
	Tests  []TestSpec
}

// ParseCommandLineList parses the comma-separated short form:
// "<profile_id>" (bidirectional, expands to one send + one receive
// TestSpec) or "<profile_id>-s" / "<profile_id>-r" (unidirectional).
func ParseCommandLineList(spec string) (*Suite, error) {
	s := &Suite{Global: map[string]string{}}

	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		idx := strings.LastIndex(entry, "-")
		if idx < 0 {
			s.Tests = append(s.Tests,
				TestSpec{ProfileID: entry, Direction: profile.Send},
				TestSpec{ProfileID: entry, Direction: profile.Receive},
			)
			continue
		}

		profileID := entry[:idx]
		dir, err := profile.ParseDirection(entry[idx+1:])
		if err != nil {
			return nil, liberr.Newf(liberr.ParseError, err, "invalid test spec %q", entry)
		}
		s.Tests = append(s.Tests, TestSpec{ProfileID: profileID, Direction: dir})
	}

	return s, nil
}

// section is one "[name]" block of a suite file: an ordered list of
// key/value pairs, preserving declaration order since a test's options
// are partitioned by whether their key is profile-prefixed.
type section struct {
	name string
	keys []string
	vals map[string]string
}

func (sec *section) set(k, v string) {
	if _, exists := sec.vals[k]; !exists {
		sec.keys = append(sec.keys, k)
	}
	sec.vals[k] = v
}

// LoadFile parses the INI-like suite-file format from r.
func LoadFile(r io.Reader) (*Suite, error) {
	sections, err := parseSections(r)
	if err != nil {
		return nil, err
	}

	s := &Suite{Global: map[string]string{}}

	for _, sec := range sections {
		if sec.name == "global" {
			for _, k := range sec.keys {
				s.Global[k] = sec.vals[k]
			}
			continue
		}

		profileID, ok := sec.vals["profile"]
		if !ok {
			return nil, liberr.Newf(liberr.ParseError, nil,
				"section %q: 'profile' entry is mandatory for every test", sec.name)
		}

		directions := []profile.Direction{profile.Send, profile.Receive}
		if raw, ok := sec.vals["direction"]; ok {
			dir, derr := profile.ParseDirection(raw)
			if derr != nil {
				return nil, liberr.Newf(liberr.ParseError, derr,
					"section %q: invalid direction %q", sec.name, raw)
			}
			directions = []profile.Direction{dir}
		}

		prefix := profileID + "."
		profileOpts := map[string]string{}
		testOpts := map[string]string{}

		for _, k := range sec.keys {
			switch k {
			case "profile", "direction":
				continue
			}
			if strings.HasPrefix(k, prefix) {
				profileOpts[strings.TrimPrefix(k, prefix)] = sec.vals[k]
			} else {
				testOpts[k] = sec.vals[k]
			}
		}

		for _, dir := range directions {
			s.Tests = append(s.Tests, TestSpec{
				ProfileID:      profileID,
				Direction:      dir,
				ProfileOptions: profileOpts,
				TestOptions:    testOpts,
			})
		}
	}

	return s, nil
}

// parseSections does the line-by-line scanning: "[name]" headers,
// "key = value" or "key: value" pairs, "#"/";" full-line comments, and
// blank lines. There is no continuation-line support, matching the
// original's ConfigParser defaults as actually exercised by its suite
// files.
func parseSections(r io.Reader) ([]*section, error) {
	var sections []*section
	var cur *section

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, liberr.Newf(liberr.ParseError, nil, "line %d: malformed section header %q", lineNo, line)
			}
			cur = &section{name: strings.TrimSpace(line[1 : len(line)-1]), vals: map[string]string{}}
			sections = append(sections, cur)
			continue
		}

		if cur == nil {
			return nil, liberr.Newf(liberr.ParseError, nil, "line %d: option outside of any section", lineNo)
		}

		key, val, ok := splitKeyValue(line)
		if !ok {
			return nil, liberr.Newf(liberr.ParseError, nil, "line %d: malformed option line %q", lineNo, line)
		}
		cur.set(key, val)
	}
	if err := sc.Err(); err != nil {
		return nil, liberr.New(liberr.ParseError, "reading suite file", err)
	}

	return sections, nil
}

func splitKeyValue(line string) (key, val string, ok bool) {
	sep := strings.IndexAny(line, "=:")
	if sep < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:sep]), strings.TrimSpace(line[sep+1:]), true
}
