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

import "unsafe"

// BinaryToString converts []byte to string without copy.
// The result is only valid while b is not modified.
func BinaryToString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// SliceOffset returns the distance in bytes from the first byte of base to
// the data pointer of b, or -1 if b does not point into base[:len(base)].
//
// The data pointer is read from the slice header directly, so an empty b
// still reports where it points. Note that reslicing to a zero cap
// (base[i:i:i]) may leave the pointer at base[0].
func SliceOffset(base, b []byte) int {
	if len(base) == 0 {
		return -1
	}
	p := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	start := uintptr(unsafe.Pointer(unsafe.SliceData(base)))
	if p < start || p >= start+uintptr(len(base)) {
		return -1
	}
	return int(p - start)
}
