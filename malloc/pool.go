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
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cloudwego/tagheap/unsafex"
)

// Allocator is a best-fit allocator over one fixed-size pool.
//
// The pool is a sequence of blocks laid out back to back. Every block is a
// header tag, a payload and a footer tag equal to the header:
//
//	| hdr | payload (|hdr| bytes) | ftr | hdr | payload | ftr | ...
//
// Alloc returns the offset of a payload; Free takes it back and merges the
// block with free neighbours in O(1) by reading their tags.
//
// An Allocator is not safe for concurrent use. See Locked.
type Allocator struct {
	// buf is the pool, exactly Size() bytes.
	buf []byte

	// raw is the buffer as returned by src, kept for Release.
	raw []byte
	src Source

	// live holds the payload offsets of allocated blocks, debug mode only.
	live map[int]struct{}

	log logrus.FieldLogger

	allocs   uint64
	frees    uint64
	failures uint64
}

// New creates an allocator over a fresh pool of poolSize bytes using the
// default options.
func New(poolSize int) (*Allocator, error) {
	return NewWithOption(poolSize, nil)
}

// NewWithOption creates an allocator over a fresh pool of poolSize bytes
// acquired from o.Source.
func NewWithOption(poolSize int, o *Option) (*Allocator, error) {
	if o == nil {
		o = DefaultOption()
	}
	if err := checkPoolSize(poolSize); err != nil {
		return nil, err
	}
	log := o.logger()
	src := o.source()
	raw, err := src.Acquire(poolSize)
	if err == nil && len(raw) < poolSize {
		err = fmt.Errorf("source returned %d bytes", len(raw))
		if rerr := src.Release(raw); rerr != nil {
			err = errors.Join(err, rerr)
		}
	}
	if err != nil {
		log.WithField("pool_size", poolSize).WithError(err).Error("could not get pool memory")
		return nil, fmt.Errorf("%w: could not get %d bytes: %w", ErrInitialization, poolSize, err)
	}
	a := newAllocator(raw[:poolSize:poolSize], o, log)
	a.raw = raw
	a.src = src
	return a, nil
}

// NewArena creates an allocator managing the caller's buffer.
// Close does not release arena; the caller keeps ownership of it.
func NewArena(arena []byte, o *Option) (*Allocator, error) {
	if o == nil {
		o = DefaultOption()
	}
	if err := checkPoolSize(len(arena)); err != nil {
		return nil, err
	}
	return newAllocator(arena[:len(arena):len(arena)], o, o.logger()), nil
}

func checkPoolSize(n int) error {
	if n < Overhead || n-Overhead > maxPayload {
		return fmt.Errorf("%w: %d bytes, want %d..%d", ErrInvalidPoolSize, n, Overhead, maxPayload+Overhead)
	}
	return nil
}

func newAllocator(buf []byte, o *Option, log logrus.FieldLogger) *Allocator {
	a := &Allocator{
		buf: buf,
		log: log,
	}
	if o.Debug {
		a.live = make(map[int]struct{})
	}
	a.Reset()
	return a
}

// Alloc reserves size bytes and returns the offset of the payload in Base().
// A size of 0 is valid and yields an empty block.
//
// It fails with ErrOutOfMemory when no free block can hold size plus the
// tags of the block split off after it; the pool is not modified then.
func (a *Allocator) Alloc(size int) (int, error) {
	if a.buf == nil {
		return 0, ErrUninitialized
	}
	if size < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	hdr := -1
	if size <= len(a.buf)-2*Overhead {
		hdr = a.bestFit(size)
	}
	if hdr < 0 {
		a.failures++
		a.log.WithField("size", size).Warn("cannot service request")
		return 0, fmt.Errorf("%w: cannot service request of size %d", ErrOutOfMemory, size)
	}

	free := DecodeTag(readTag(a.buf, hdr)).Size
	a.setBlock(hdr, Tag{Size: size, Status: StatusUsed})
	// The remainder always becomes a block, even with an empty payload.
	a.setBlock(hdr+size+Overhead, Tag{Size: free - size - Overhead, Status: StatusFree})

	off := hdr + TagSize
	if a.live != nil {
		a.live[off] = struct{}{}
	}
	a.allocs++
	return off, nil
}

// AllocBytes is like Alloc but returns the payload as a slice with len and
// cap equal to size. It returns nil if size <= 0 or the pool is exhausted;
// use Alloc for empty allocations.
func (a *Allocator) AllocBytes(size int) []byte {
	if size <= 0 {
		return nil
	}
	off, err := a.Alloc(size)
	if err != nil {
		return nil
	}
	return a.buf[off : off+size : off+size]
}

// bestFit returns the header offset of the smallest free block with at
// least size+Overhead payload bytes, or -1. Ties go to the lowest offset.
func (a *Allocator) bestFit(size int) int {
	need := size + Overhead
	best, bestSize := -1, 0
	for off := 0; off < len(a.buf); {
		t := DecodeTag(readTag(a.buf, off))
		if t.Free() && t.Size >= need && (best < 0 || t.Size < bestSize) {
			best, bestSize = off, t.Size
		}
		off += t.Size + Overhead
	}
	return best
}

// Free returns the block at payload offset off to the pool and merges it
// with a free block on either side.
//
// off must come from Alloc on this allocator and must not have been freed.
// Free panics when it can tell otherwise: off out of range, a header that is
// not marked used, or a footer that does not match. In debug mode any
// offset that is not currently allocated panics.
func (a *Allocator) Free(off int) {
	if a.buf == nil {
		panic(ErrUninitialized)
	}
	hdr := off - TagSize
	if hdr < 0 || off > len(a.buf)-TagSize {
		panic(fmt.Sprintf("malloc: invalid release of offset %d: out of range", off))
	}
	if a.live != nil {
		if _, ok := a.live[off]; !ok {
			panic(fmt.Sprintf("malloc: invalid release of offset %d: not allocated", off))
		}
	}
	v := readTag(a.buf, hdr)
	t := DecodeTag(v)
	ftr := off + t.Size
	if t.Free() || ftr > len(a.buf)-TagSize || readTag(a.buf, ftr) != v {
		panic(fmt.Sprintf("malloc: invalid release of offset %d: double free or corrupted block", off))
	}
	if a.live != nil {
		delete(a.live, off)
	}
	a.frees++

	size := t.Size
	a.setBlock(hdr, Tag{Size: size})

	// right neighbour
	if next := ftr + TagSize; next < len(a.buf) {
		if r := DecodeTag(readTag(a.buf, next)); r.Free() {
			size += r.Size + Overhead
			a.setBlock(hdr, Tag{Size: size})
		}
	}
	// left neighbour
	if hdr > 0 {
		if l := DecodeTag(readTag(a.buf, hdr-TagSize)); l.Free() {
			hdr -= l.Size + Overhead
			size += l.Size + Overhead
			a.setBlock(hdr, Tag{Size: size})
		}
	}
}

// FreeBytes releases a slice returned by AllocBytes.
// Empty slices are ignored. Panics if b does not point into the pool.
//
// b must be the slice returned by AllocBytes, not a reslice of it.
func (a *Allocator) FreeBytes(b []byte) {
	if cap(b) == 0 {
		return
	}
	if a.buf == nil {
		panic(ErrUninitialized)
	}
	off := unsafex.SliceOffset(a.buf, b)
	if off < 0 {
		panic("malloc: invalid release: block not in pool")
	}
	a.Free(off)
}

// setBlock writes t as the header at hdr and as the matching footer.
func (a *Allocator) setBlock(hdr int, t Tag) {
	v := t.Encode()
	writeTag(a.buf, hdr, v)
	writeTag(a.buf, hdr+TagSize+t.Size, v)
}

// Reset discards all allocations and leaves one free block spanning the pool.
// Offsets returned before Reset must not be used afterwards.
func (a *Allocator) Reset() {
	if a.buf == nil {
		return
	}
	a.setBlock(0, Tag{Size: len(a.buf) - Overhead})
	if a.live != nil {
		a.live = make(map[int]struct{})
	}
	a.allocs, a.frees, a.failures = 0, 0, 0
}

// Close releases the pool to its Source. The allocator is unusable after
// Close; Alloc reports ErrUninitialized.
func (a *Allocator) Close() error {
	if a.buf == nil {
		return nil
	}
	raw, src := a.raw, a.src
	a.buf, a.raw, a.src, a.live = nil, nil, nil, nil
	if src == nil {
		return nil
	}
	return src.Release(raw)
}

// Base returns the pool. Offsets returned by Alloc index into it.
func (a *Allocator) Base() []byte { return a.buf }

// Size returns the pool size in bytes, or 0 once closed.
func (a *Allocator) Size() int { return len(a.buf) }

// Bytes returns the payload at off as a slice of n bytes.
func (a *Allocator) Bytes(off, n int) []byte { return a.buf[off : off+n : off+n] }
