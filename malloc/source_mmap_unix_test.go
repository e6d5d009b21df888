//go:build linux || darwin || freebsd || netbsd || openbsd

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

func TestMmapSource(t *testing.T) {
	buf, err := MmapSource{}.Acquire(4096)
	require.NoError(t, err)
	assert.Equal(t, 4096, len(buf))
	buf[0], buf[4095] = 1, 2
	assert.NoError(t, MmapSource{}.Release(buf))

	_, err = MmapSource{}.Acquire(0)
	assert.Error(t, err)
}

func TestMmapAllocator(t *testing.T) {
	a, err := NewWithOption(64*1024, &Option{Source: MmapSource{}, Logger: nullLogger()})
	require.NoError(t, err)

	b := a.AllocBytes(1000)
	require.NotNil(t, b)
	for i := range b {
		b[i] = byte(i)
	}
	a.FreeBytes(b)
	requireValid(t, a)
	assert.Equal(t, 64*1024-Overhead, a.Available())
	assert.NoError(t, a.Close())
}
