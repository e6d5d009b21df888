/*
 * Copyright 2026 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package trace reads and writes allocation traces: line-based scripts of
// alloc/free operations that can be replayed against a malloc.Allocator.
//
// The format is one operation per line, '#' starts a comment:
//
//	alloc <id> <size>
//	free <id>
package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cloudwego/tagheap/unsafex"
)

// Op is a trace operation.
type Op uint8

const (
	OpAlloc Op = iota + 1
	OpFree
)

func (op Op) String() string {
	switch op {
	case OpAlloc:
		return "alloc"
	case OpFree:
		return "free"
	}
	return "op(" + strconv.Itoa(int(op)) + ")"
}

// Event is one line of a trace.
type Event struct {
	Line int // 1-based source line, 0 for generated events
	Op   Op
	ID   string
	Size int // alloc only
}

func (e Event) String() string {
	if e.Op == OpAlloc {
		return fmt.Sprintf("alloc %s %d", e.ID, e.Size)
	}
	return fmt.Sprintf("%s %s", e.Op, e.ID)
}

// ParseError reports a malformed trace line.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("trace: line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads every event from r.
func Parse(r io.Reader) ([]Event, error) {
	var events []Event
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		// fields alias the scanner buffer until copied
		text := unsafex.BinaryToString(sc.Bytes())
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		e, err := parseFields(fields)
		if err != nil {
			return nil, &ParseError{Line: line, Text: strings.Clone(text), Err: err}
		}
		e.Line = line
		events = append(events, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("trace: read: %w", err)
	}
	return events, nil
}

func parseFields(fields []string) (Event, error) {
	switch fields[0] {
	case "alloc":
		if len(fields) != 3 {
			return Event{}, fmt.Errorf("alloc takes <id> <size>, got %d arguments", len(fields)-1)
		}
		size, err := strconv.Atoi(fields[2])
		if err != nil || size < 0 {
			return Event{}, fmt.Errorf("invalid size %q", fields[2])
		}
		return Event{Op: OpAlloc, ID: strings.Clone(fields[1]), Size: size}, nil
	case "free":
		if len(fields) != 2 {
			return Event{}, fmt.Errorf("free takes <id>, got %d arguments", len(fields)-1)
		}
		return Event{Op: OpFree, ID: strings.Clone(fields[1])}, nil
	}
	return Event{}, fmt.Errorf("unknown operation %q", fields[0])
}

// Write encodes events in the format read by Parse.
func Write(w io.Writer, events []Event) error {
	bw := bufio.NewWriter(w)
	for _, e := range events {
		if _, err := fmt.Fprintln(bw, e.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}
