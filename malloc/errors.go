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

var (
	// ErrInvalidPoolSize is returned when the pool cannot hold a single block
	// or is too large for a tag to describe.
	ErrInvalidPoolSize = errors.New("malloc: invalid pool size")

	// ErrInitialization is returned when the pool memory cannot be acquired.
	// The allocator must not be used after this error.
	ErrInitialization = errors.New("malloc: initialization failed")

	// ErrUninitialized is returned by operations on a zero or closed Allocator.
	ErrUninitialized = errors.New("malloc: allocator not initialized")

	// ErrOutOfMemory is returned when no free block fits the request.
	// The pool is left untouched and the caller may retry after freeing.
	ErrOutOfMemory = errors.New("malloc: out of memory")

	// ErrInvalidSize is returned for negative allocation sizes.
	ErrInvalidSize = errors.New("malloc: invalid size")

	// ErrCorrupted is returned by Verify when the block layout is broken.
	ErrCorrupted = errors.New("malloc: pool corrupted")
)
