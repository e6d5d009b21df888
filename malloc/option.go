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
	"github.com/sirupsen/logrus"

	"github.com/cloudwego/tagheap/internal/logger"
)

// Option configures an Allocator.
type Option struct {
	// Source provides the pool memory. Nil means HeapSource.
	Source Source

	// Debug tracks every live offset so that Free rejects offsets that were
	// never returned by Alloc or were already freed. It costs one map entry
	// per live allocation.
	Debug bool

	// Logger receives allocation failure diagnostics.
	// Nil means the shared tagheap logger.
	Logger logrus.FieldLogger
}

// DefaultOption returns the default values of Option.
func DefaultOption() *Option {
	return &Option{
		Source: HeapSource{},
	}
}

func (o *Option) source() Source {
	if o.Source == nil {
		return HeapSource{}
	}
	return o.Source
}

func (o *Option) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return logger.Get().WithField("prefix", "malloc")
}
