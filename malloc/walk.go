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

package malloc

import (
	"encoding/binary"
	"fmt"

	"github.com/bytedance/gopkg/util/xxhash3"
)

// Block describes one block of the pool.
type Block struct {
	// Offset is the offset of the header tag.
	Offset int
	Tag
}

// Payload returns the offset of the first payload byte.
func (b Block) Payload() int { return b.Offset + TagSize }

// End returns the offset just past the footer tag.
func (b Block) End() int { return b.Offset + b.Size + Overhead }

func (b Block) String() string {
	return fmt.Sprintf("%s@%d+%d", b.Status, b.Offset, b.Size)
}

// Walk calls fn for every block from the start of the pool until fn returns
// false. It stops early at a block that would run past the pool.
func (a *Allocator) Walk(fn func(Block) bool) {
	for off := 0; off+Overhead <= len(a.buf); {
		b := Block{Offset: off, Tag: DecodeTag(readTag(a.buf, off))}
		if b.End() > len(a.buf) || !fn(b) {
			return
		}
		off = b.End()
	}
}

// Blocks returns all blocks in pool order.
func (a *Allocator) Blocks() []Block {
	var bs []Block
	a.Walk(func(b Block) bool {
		bs = append(bs, b)
		return true
	})
	return bs
}

// Verify checks the layout invariants: blocks tile the pool exactly, every
// footer equals its header, and no two free blocks are adjacent. In debug
// mode it also checks that every live offset is the payload of a used block.
// Errors wrap ErrCorrupted.
func (a *Allocator) Verify() error {
	if a.buf == nil {
		return ErrUninitialized
	}
	used := 0
	prevFree := false
	off := 0
	for off < len(a.buf) {
		if off+Overhead > len(a.buf) {
			return fmt.Errorf("%w: truncated block at %d", ErrCorrupted, off)
		}
		v := readTag(a.buf, off)
		t := DecodeTag(v)
		end := off + t.Size + Overhead
		if end > len(a.buf) {
			return fmt.Errorf("%w: block at %d with size %d overruns pool of %d", ErrCorrupted, off, t.Size, len(a.buf))
		}
		if f := readTag(a.buf, end-TagSize); f != v {
			return fmt.Errorf("%w: block at %d has header %d but footer %d", ErrCorrupted, off, v, f)
		}
		if t.Free() && prevFree {
			return fmt.Errorf("%w: adjacent free blocks at %d", ErrCorrupted, off)
		}
		if !t.Free() {
			used++
			if a.live != nil {
				if _, ok := a.live[off+TagSize]; !ok {
					return fmt.Errorf("%w: used block at %d is not tracked", ErrCorrupted, off)
				}
			}
		}
		prevFree = t.Free()
		off = end
	}
	if a.live != nil && len(a.live) != used {
		return fmt.Errorf("%w: %d live offsets but %d used blocks", ErrCorrupted, len(a.live), used)
	}
	return nil
}

// Available returns the total free payload bytes.
// A single request can get at most Stats().MaxAlloc of them.
func (a *Allocator) Available() int {
	n := 0
	a.Walk(func(b Block) bool {
		if b.Free() {
			n += b.Size
		}
		return true
	})
	return n
}

// Stats is a snapshot of the pool layout and operation counters.
type Stats struct {
	PoolSize   int `json:"pool_size"`
	Blocks     int `json:"blocks"`
	UsedBlocks int `json:"used_blocks"`
	FreeBlocks int `json:"free_blocks"`
	UsedBytes  int `json:"used_bytes"` // payload bytes in used blocks
	FreeBytes  int `json:"free_bytes"` // payload bytes in free blocks

	// LargestFree is the largest free payload. MaxAlloc is the largest
	// request that currently succeeds, or -1.
	LargestFree int `json:"largest_free"`
	MaxAlloc    int `json:"max_alloc"`

	Allocs   uint64 `json:"allocs"`
	Frees    uint64 `json:"frees"`
	Failures uint64 `json:"failures"`
}

// Stats walks the pool and returns a snapshot. It runs in O(blocks).
func (a *Allocator) Stats() Stats {
	s := Stats{
		PoolSize: len(a.buf),
		Allocs:   a.allocs,
		Frees:    a.frees,
		Failures: a.failures,
	}
	a.Walk(func(b Block) bool {
		s.Blocks++
		if b.Free() {
			s.FreeBlocks++
			s.FreeBytes += b.Size
			if b.Size > s.LargestFree {
				s.LargestFree = b.Size
			}
		} else {
			s.UsedBlocks++
			s.UsedBytes += b.Size
		}
		return true
	})
	s.MaxAlloc = s.LargestFree - Overhead
	if s.MaxAlloc < 0 {
		s.MaxAlloc = -1
	}
	return s
}

// LayoutDigest hashes the sequence of tags, ignoring payload contents.
// Two pools with the same block layout have the same digest.
func (a *Allocator) LayoutDigest() uint64 {
	tags := make([]byte, 0, 64)
	a.Walk(func(b Block) bool {
		tags = binary.LittleEndian.AppendUint32(tags, uint32(b.Encode()))
		return true
	})
	return xxhash3.Hash(tags)
}
