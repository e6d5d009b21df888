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

package trace

import (
	"errors"
	"fmt"

	"github.com/cloudwego/tagheap/malloc"
)

// Result is the outcome of applying one event.
type Result struct {
	Event  Event
	Offset int   // payload offset of a successful alloc
	Err    error // recoverable allocation failure, wraps malloc.ErrOutOfMemory
	// Skipped is set for a free whose alloc failed, which is a no-op.
	Skipped bool
}

// Replayer applies events to an allocator, tracking which id owns which
// offset.
type Replayer struct {
	a      *malloc.Allocator
	verify bool

	live   map[string]int
	failed map[string]bool
}

// NewReplayer returns a Replayer over a. With verify set, the pool layout
// is checked after every event.
func NewReplayer(a *malloc.Allocator, verify bool) *Replayer {
	return &Replayer{
		a:      a,
		verify: verify,
		live:   make(map[string]int),
		failed: make(map[string]bool),
	}
}

// Apply runs one event. Out-of-memory is reported in Result.Err; a broken
// trace (unknown or duplicate id) or a failed verification is returned as
// the error.
func (r *Replayer) Apply(e Event) (Result, error) {
	res := Result{Event: e}
	switch e.Op {
	case OpAlloc:
		if _, ok := r.live[e.ID]; ok {
			return res, r.errorf(e, "id %q is already allocated", e.ID)
		}
		off, err := r.a.Alloc(e.Size)
		if err != nil {
			if !errors.Is(err, malloc.ErrOutOfMemory) {
				return res, r.errorf(e, "%w", err)
			}
			r.failed[e.ID] = true
			res.Err = err
			break
		}
		delete(r.failed, e.ID)
		r.live[e.ID] = off
		res.Offset = off
	case OpFree:
		off, ok := r.live[e.ID]
		if !ok {
			if r.failed[e.ID] {
				delete(r.failed, e.ID)
				res.Skipped = true
				break
			}
			return res, r.errorf(e, "id %q is not allocated", e.ID)
		}
		delete(r.live, e.ID)
		r.a.Free(off)
		res.Offset = off
	default:
		return res, r.errorf(e, "unknown operation %v", e.Op)
	}
	if r.verify {
		if err := r.a.Verify(); err != nil {
			return res, r.errorf(e, "%w", err)
		}
	}
	return res, nil
}

// Run applies events in order, calling fn (if not nil) with each result.
// It stops at the first error.
func (r *Replayer) Run(events []Event, fn func(Result)) error {
	for _, e := range events {
		res, err := r.Apply(e)
		if err != nil {
			return err
		}
		if fn != nil {
			fn(res)
		}
	}
	return nil
}

// Live returns the ids currently allocated and their payload offsets.
func (r *Replayer) Live() map[string]int {
	live := make(map[string]int, len(r.live))
	for id, off := range r.live {
		live[id] = off
	}
	return live
}

// FreeAll releases every live allocation.
func (r *Replayer) FreeAll() {
	for id, off := range r.live {
		r.a.Free(off)
		delete(r.live, id)
	}
	r.failed = make(map[string]bool)
}

func (r *Replayer) errorf(e Event, format string, args ...interface{}) error {
	return fmt.Errorf("trace: line %d %q: %w", e.Line, e.String(), fmt.Errorf(format, args...))
}
