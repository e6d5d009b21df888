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
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cloudwego/tagheap/internal/logger"
	"github.com/cloudwego/tagheap/malloc"
)

// app carries the resolved configuration and global flags to subcommands.
type app struct {
	cfg     Config
	jsonOut bool
	verbose bool
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var (
		poolSize int
		source   string
		debug    bool
		logLevel string
	)
	root := &cobra.Command{
		Use:   "tagheap",
		Short: "Exercise a best-fit boundary-tag pool allocator",
		Long: `tagheap manages a fixed-size memory pool with a best-fit allocator that
brackets every block with header and footer tags. It replays allocation
traces, runs randomized stress checks and prints the resulting block layout.

Defaults come from TAGHEAP_POOL_SIZE, TAGHEAP_SOURCE, TAGHEAP_DEBUG and
TAGHEAP_LOGLEVEL; flags override them.`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			if fs.Changed("pool-size") {
				cfg.PoolSize = poolSize
			}
			if fs.Changed("source") {
				cfg.Source = source
			}
			if fs.Changed("debug") {
				cfg.Debug = debug
			}
			if fs.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			a.cfg = *cfg
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.IntVar(&poolSize, "pool-size", 0, "Pool size in bytes (default 65536)")
	pf.StringVar(&source, "source", "", "Pool memory source: heap, cache or mmap (default heap)")
	pf.BoolVar(&debug, "debug", false, "Track live offsets and reject invalid frees")
	pf.StringVar(&logLevel, "log-level", "", "Log level: error, warn, info or debug")
	pf.BoolVar(&a.jsonOut, "json", false, "Output in JSON format")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Print every operation")

	root.AddCommand(newReplayCmd(a), newStressCmd(a), newLayoutCmd(a))
	return root
}

func execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newAllocator builds an allocator from the resolved configuration.
func (a *app) newAllocator() (*malloc.Allocator, error) {
	src, err := malloc.ParseSource(a.cfg.Source)
	if err != nil {
		return nil, err
	}
	log := logger.Get()
	logger.SetLevel(a.cfg.LogLevel)
	return malloc.NewWithOption(a.cfg.PoolSize, &malloc.Option{
		Source: src,
		Debug:  a.cfg.Debug,
		Logger: log.WithField("prefix", "malloc"),
	})
}

// printVerbose prints a message if verbose mode is enabled
func (a *app) printVerbose(w io.Writer, format string, args ...interface{}) {
	if a.verbose && !a.jsonOut {
		fmt.Fprintf(w, format, args...)
	}
}
