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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlock(t *testing.T) {
	b := Block{Offset: 24, Tag: Tag{Size: 32, Status: StatusUsed}}
	assert.Equal(t, 28, b.Payload())
	assert.Equal(t, 64, b.End())
	assert.Equal(t, "used@24+32", b.String())
	assert.False(t, b.Free())
}

func TestWalkStops(t *testing.T) {
	a := newTestAllocator(t, 256)
	mustAlloc(t, a, 8)
	mustAlloc(t, a, 8)

	n := 0
	a.Walk(func(Block) bool {
		n++
		return n < 2
	})
	assert.Equal(t, 2, n)
	assert.Len(t, a.Blocks(), 3)
}

func TestVerifyCorruption(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		corrupt func(a *Allocator)
		msg     string
	}{
		{
			name:    "footer_mismatch",
			size:    64,
			corrupt: func(a *Allocator) { writeTag(a.Base(), 60, 10) },
			msg:     "header 56 but footer 10",
		},
		{
			name:    "overrun",
			size:    64,
			corrupt: func(a *Allocator) { writeTag(a.Base(), 0, 100) },
			msg:     "overruns pool",
		},
		{
			name:    "truncated",
			size:    18,
			corrupt: func(a *Allocator) { a.setBlock(0, Tag{Size: 4}) },
			msg:     "truncated block at 12",
		},
		{
			name: "adjacent_free",
			size: 64,
			corrupt: func(a *Allocator) {
				off, _ := a.Alloc(8)
				a.setBlock(off-TagSize, Tag{Size: 8})
			},
			msg: "adjacent free blocks at 16",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAllocator(t, tt.size)
			tt.corrupt(a)
			err := a.Verify()
			assert.ErrorIs(t, err, ErrCorrupted)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestVerifyLiveSet(t *testing.T) {
	a, err := NewWithOption(256, &Option{Debug: true, Logger: nullLogger()})
	require.NoError(t, err)
	off := mustAlloc(t, a, 16)
	require.NoError(t, a.Verify())

	delete(a.live, off)
	assert.ErrorIs(t, a.Verify(), ErrCorrupted)

	a.live[off] = struct{}{}
	a.live[off+100] = struct{}{}
	err = a.Verify()
	assert.ErrorIs(t, err, ErrCorrupted)
	assert.Contains(t, err.Error(), "2 live offsets but 1 used blocks")
}

func TestWalkOverrunStopsEarly(t *testing.T) {
	a := newTestAllocator(t, 64)
	writeTag(a.Base(), 0, 100)
	assert.Empty(t, a.Blocks())
	assert.Equal(t, 0, a.Available())
}

func TestStats(t *testing.T) {
	a := newTestAllocator(t, 1024)
	first := mustAlloc(t, a, 16)
	mustAlloc(t, a, 32)
	a.Free(first)
	_, err := a.Alloc(2048)
	require.Error(t, err)

	assert.Equal(t, Stats{
		PoolSize:    1024,
		Blocks:      3,
		UsedBlocks:  1,
		FreeBlocks:  2,
		UsedBytes:   32,
		FreeBytes:   16 + 952,
		LargestFree: 952,
		MaxAlloc:    944,
		Allocs:      2,
		Frees:       1,
		Failures:    1,
	}, a.Stats())
	assert.Equal(t, 968, a.Available())
}

func TestStatsNothingAllocatable(t *testing.T) {
	a := newTestAllocator(t, Overhead)
	s := a.Stats()
	assert.Equal(t, 0, s.LargestFree)
	assert.Equal(t, -1, s.MaxAlloc)
}

func TestLayoutDigest(t *testing.T) {
	a1 := newTestAllocator(t, 512)
	a2 := newTestAllocator(t, 512)
	fresh := a1.LayoutDigest()
	assert.Equal(t, fresh, a2.LayoutDigest())

	b1 := a1.AllocBytes(40)
	b2 := a2.AllocBytes(40)
	copy(b1, "payload one")
	copy(b2, "payload two")
	// payload contents do not matter
	assert.Equal(t, a1.LayoutDigest(), a2.LayoutDigest())
	assert.NotEqual(t, fresh, a1.LayoutDigest())

	a2.AllocBytes(1)
	assert.NotEqual(t, a1.LayoutDigest(), a2.LayoutDigest())

	a1.Reset()
	assert.Equal(t, fresh, a1.LayoutDigest())
}
