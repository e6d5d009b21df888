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
	"math"
)

const (
	// TagSize is the width of a header or footer tag.
	TagSize = 4

	// Overhead is the per-block cost of the header and footer tags.
	Overhead = 2 * TagSize

	// usedZero encodes a used block with an empty payload.
	// The plain value 0 always means a free block of size 0.
	usedZero int32 = math.MinInt32

	// maxPayload is the largest payload a tag can describe.
	maxPayload = math.MaxInt32
)

// Status is the free/used state of a block.
type Status uint8

const (
	// StatusFree marks a block that Alloc may hand out.
	StatusFree Status = iota
	// StatusUsed marks a block returned by Alloc and not yet freed.
	StatusUsed
)

func (s Status) String() string {
	if s == StatusUsed {
		return "used"
	}
	return "free"
}

// Tag is the decoded form of a boundary tag.
//
// On the wire a tag is a little-endian int32: a non-negative value is a free
// block of that payload size, a negative value is a used block of payload
// -value, and math.MinInt32 is a used block with no payload.
type Tag struct {
	Size   int
	Status Status
}

// Encode returns the int32 stored in the pool for t.
func (t Tag) Encode() int32 {
	if t.Status == StatusFree {
		return int32(t.Size)
	}
	if t.Size == 0 {
		return usedZero
	}
	return -int32(t.Size)
}

// Free reports whether t describes a free block.
func (t Tag) Free() bool { return t.Status == StatusFree }

// DecodeTag is the inverse of Tag.Encode.
func DecodeTag(v int32) Tag {
	switch {
	case v >= 0:
		return Tag{Size: int(v), Status: StatusFree}
	case v == usedZero:
		return Tag{Status: StatusUsed}
	default:
		return Tag{Size: int(-v), Status: StatusUsed}
	}
}

func readTag(buf []byte, off int) int32 {
	return int32(binary.LittleEndian.Uint32(buf[off:]))
}

func writeTag(buf []byte, off int, v int32) {
	binary.LittleEndian.PutUint32(buf[off:], uint32(v))
}
