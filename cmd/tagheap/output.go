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

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cloudwego/tagheap/malloc"
)

type blockReport struct {
	Offset int    `json:"offset"`
	Status string `json:"status"`
	Size   int    `json:"size"`
}

type layoutReport struct {
	PoolSize int           `json:"pool_size"`
	Digest   string        `json:"digest"`
	Stats    malloc.Stats  `json:"stats"`
	Blocks   []blockReport `json:"blocks"`

	Events   int `json:"events,omitempty"`
	Failures int `json:"failures,omitempty"`
}

func newLayoutReport(al *malloc.Allocator) *layoutReport {
	rep := &layoutReport{
		PoolSize: al.Size(),
		Digest:   fmt.Sprintf("%016x", al.LayoutDigest()),
		Stats:    al.Stats(),
	}
	al.Walk(func(b malloc.Block) bool {
		rep.Blocks = append(rep.Blocks, blockReport{Offset: b.Offset, Status: b.Status.String(), Size: b.Size})
		return true
	})
	return rep
}

func (a *app) printLayout(w io.Writer, rep *layoutReport) error {
	if a.jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OFFSET\tSTATUS\tSIZE")
	for _, b := range rep.Blocks {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", b.Offset, b.Status, b.Size)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := rep.Stats
	if rep.Events > 0 {
		fmt.Fprintf(w, "events=%d failures=%d\n", rep.Events, rep.Failures)
	}
	fmt.Fprintf(w, "pool=%d blocks=%d used=%d free=%d available=%d max_alloc=%d digest=%s\n",
		rep.PoolSize, s.Blocks, s.UsedBlocks, s.FreeBlocks, s.FreeBytes, s.MaxAlloc, rep.Digest)
	return nil
}
