//go:build !(linux || darwin || freebsd || netbsd || openbsd)

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

import "errors"

var errMmapUnsupported = errors.New("mmap: not supported on this platform")

// MmapSource is unavailable on this platform; Acquire always fails.
type MmapSource struct{}

func (MmapSource) Acquire(int) ([]byte, error) { return nil, errMmapUnsupported }

func (MmapSource) Release([]byte) error { return errMmapUnsupported }
