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
	"fmt"
	"strings"

	"github.com/bytedance/gopkg/lang/dirtmake"
	"github.com/bytedance/gopkg/lang/mcache"
)

// Source acquires the backing memory of a pool and takes it back on Close.
type Source interface {
	// Acquire returns a buffer of at least n bytes.
	Acquire(n int) ([]byte, error)

	// Release returns a buffer obtained from Acquire.
	Release(buf []byte) error
}

// HeapSource allocates the pool on the Go heap without zeroing it,
// the way malloc(3) hands out memory.
type HeapSource struct{}

func (HeapSource) Acquire(n int) (buf []byte, err error) {
	defer recoverAcquire("heap", &buf, &err)
	return dirtmake.Bytes(n, n), nil
}

func (HeapSource) Release([]byte) error { return nil }

// CacheSource borrows the pool from the mcache size-class caches and gives
// it back on Release, so short-lived pools recycle their memory.
type CacheSource struct{}

func (CacheSource) Acquire(n int) (buf []byte, err error) {
	defer recoverAcquire("mcache", &buf, &err)
	buf = mcache.Malloc(n)
	if len(buf) < n {
		return nil, fmt.Errorf("mcache: got %d bytes, want %d", len(buf), n)
	}
	return buf, nil
}

func (CacheSource) Release(buf []byte) error {
	mcache.Free(buf)
	return nil
}

// recoverAcquire turns the panics raised by make and mcache for impossible
// lengths into an acquisition error.
func recoverAcquire(name string, buf *[]byte, err *error) {
	if r := recover(); r != nil {
		*buf, *err = nil, fmt.Errorf("%s: %v", name, r)
	}
}

// ParseSource maps a source name ("heap", "cache" or "mmap") to a Source.
func ParseSource(name string) (Source, error) {
	switch strings.ToLower(name) {
	case "", "heap":
		return HeapSource{}, nil
	case "cache", "mcache":
		return CacheSource{}, nil
	case "mmap":
		return MmapSource{}, nil
	}
	return nil, fmt.Errorf("unknown memory source %q", name)
}
