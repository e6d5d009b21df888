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

package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	c, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, &Config{PoolSize: 65536, Source: "heap", LogLevel: "info"}, c)
}

func TestLoadConfigEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TAGHEAP_POOL_SIZE", "4096")
	t.Setenv("TAGHEAP_SOURCE", "mmap")
	t.Setenv("TAGHEAP_DEBUG", "true")
	t.Setenv("TAGHEAP_LOGLEVEL", "debug")

	c, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, &Config{PoolSize: 4096, Source: "mmap", Debug: true, LogLevel: "debug"}, c)
}

func TestLoadConfigInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("TAGHEAP_POOL_SIZE", "lots")
	_, err := loadConfig()
	assert.Error(t, err)
}

// clearEnv unsets the TAGHEAP_ variables for the duration of the test.
// An empty value is not enough: envconfig only applies defaults to unset keys.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TAGHEAP_POOL_SIZE", "TAGHEAP_SOURCE", "TAGHEAP_DEBUG", "TAGHEAP_LOGLEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}
