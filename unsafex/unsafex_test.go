/*
 * Copyright 2024 CloudWeGo Authors
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

package unsafex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinaryToString(t *testing.T) {
	b := []byte("hello")
	s := BinaryToString(b)
	assert.Equal(t, string(b), s)
	b[0] = 'x'
	assert.Equal(t, string(b), s)
	assert.Equal(t, "", BinaryToString(nil))
}

func BenchmarkBinaryToString(b *testing.B) {
	x := []byte("hello")
	for i := 0; i < b.N; i++ {
		_ = BinaryToString(x)
	}
}

func TestSliceOffset(t *testing.T) {
	base := make([]byte, 64)

	assert.Equal(t, 0, SliceOffset(base, base))
	assert.Equal(t, 10, SliceOffset(base, base[10:20]))
	assert.Equal(t, 63, SliceOffset(base, base[63:]))
	assert.Equal(t, 5, SliceOffset(base, base[5:5]))

	// outside
	assert.Equal(t, -1, SliceOffset(base, make([]byte, 8)))
	assert.Equal(t, -1, SliceOffset(base, nil))
	assert.Equal(t, -1, SliceOffset(nil, base))

	// past the visible length of base
	wide := make([]byte, 16, 32)
	assert.Equal(t, -1, SliceOffset(wide[:8], wide[8:]))
}
