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
	"fmt"

	"golang.org/x/sys/unix"
)

// MmapSource maps the pool as anonymous private memory outside the Go heap,
// so the GC never scans it. Release unmaps it.
type MmapSource struct{}

func (MmapSource) Acquire(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("mmap: invalid length %d", n)
	}
	buf, err := unix.Mmap(-1, 0, n,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE,
	)
	if err != nil {
		return nil, fmt.Errorf("mmap %d bytes: %w", n, err)
	}
	return buf, nil
}

// Release must be given the buffer returned by Acquire, not a reslice of it.
func (MmapSource) Release(buf []byte) error {
	if err := unix.Munmap(buf); err != nil {
		return fmt.Errorf("munmap: %w", err)
	}
	return nil
}
