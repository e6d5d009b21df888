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

import "sync"

// Locked serializes every call to an Allocator behind one mutex, for pools
// shared between goroutines.
type Locked struct {
	mu sync.Mutex
	a  *Allocator
}

// NewLocked wraps a. The caller must not use a directly afterwards.
func NewLocked(a *Allocator) *Locked {
	return &Locked{a: a}
}

func (l *Locked) Alloc(size int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Alloc(size)
}

func (l *Locked) AllocBytes(size int) []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.AllocBytes(size)
}

func (l *Locked) Free(off int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.a.Free(off)
}

func (l *Locked) FreeBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.a.FreeBytes(b)
}

func (l *Locked) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Stats()
}

func (l *Locked) Verify() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Verify()
}

func (l *Locked) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.a.Reset()
}

func (l *Locked) Blocks() []Block {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Blocks()
}

func (l *Locked) Available() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Available()
}

func (l *Locked) LayoutDigest() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.LayoutDigest()
}

func (l *Locked) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Close()
}
