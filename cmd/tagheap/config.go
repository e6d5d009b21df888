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
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "TAGHEAP"

// Config is read from TAGHEAP_* environment variables; command line flags
// override it.
type Config struct {
	PoolSize int    `envconfig:"POOL_SIZE" default:"65536"`
	Source   string `envconfig:"SOURCE" default:"heap"`
	Debug    bool   `envconfig:"DEBUG"`
	LogLevel string `envconfig:"LOGLEVEL" default:"info"`
}

func loadConfig() (*Config, error) {
	c := &Config{}
	if err := envconfig.Process(envPrefix, c); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return c, nil
}
