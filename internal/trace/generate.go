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
	"math/rand"
	"strconv"
)

// GenerateConfig controls Generate.
type GenerateConfig struct {
	Seed    int64
	Ops     int
	MaxSize int // sizes are drawn from [0, MaxSize]

	// FreeRatio is the chance that an event frees a live id instead of
	// allocating. Zero means 1/3.
	FreeRatio float64
}

// Generate returns a random trace. Frees only name ids allocated earlier
// and not yet freed, so the trace replays without errors on any pool; an
// alloc that fails on replay turns its later free into a no-op.
func Generate(cfg GenerateConfig) []Event {
	rng := rand.New(rand.NewSource(cfg.Seed))
	ratio := cfg.FreeRatio
	if ratio <= 0 {
		ratio = 1.0 / 3
	}
	maxSize := cfg.MaxSize
	if maxSize < 0 {
		maxSize = 0
	}

	events := make([]Event, 0, cfg.Ops)
	var live []string
	next := 0
	for i := 0; i < cfg.Ops; i++ {
		if len(live) > 0 && rng.Float64() < ratio {
			idx := rng.Intn(len(live))
			events = append(events, Event{Op: OpFree, ID: live[idx]})
			live[idx] = live[len(live)-1]
			live = live[:len(live)-1]
			continue
		}
		id := "a" + strconv.Itoa(next)
		next++
		events = append(events, Event{Op: OpAlloc, ID: id, Size: rng.Intn(maxSize + 1)})
		live = append(live, id)
	}
	return events
}
