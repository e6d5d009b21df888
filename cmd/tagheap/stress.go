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

	"github.com/spf13/cobra"

	"github.com/cloudwego/tagheap/internal/trace"
)

func newStressCmd(a *app) *cobra.Command {
	var cfg trace.GenerateConfig
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run a random alloc/free workload and check invariants",
		Long: `The stress command generates a seeded random trace, replays it with the
pool invariants verified after every operation, then frees everything and
checks that the pool coalesced back into a single free block.

Example:
  tagheap stress --ops 100000 --seed 42 --max-size 512`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStress(cmd.OutOrStdout(), cfg)
		},
	}
	cmd.Flags().IntVar(&cfg.Ops, "ops", 10000, "Number of operations")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", 1, "Random seed")
	cmd.Flags().IntVar(&cfg.MaxSize, "max-size", 256, "Largest allocation size")
	cmd.Flags().Float64Var(&cfg.FreeRatio, "free-ratio", 0, "Chance of a free per operation (default 1/3)")
	return cmd
}

func (a *app) runStress(w io.Writer, cfg trace.GenerateConfig) error {
	al, err := a.newAllocator()
	if err != nil {
		return err
	}
	defer al.Close()

	events := trace.Generate(cfg)
	failures := 0
	r := trace.NewReplayer(al, true)
	if err := r.Run(events, func(res trace.Result) {
		if res.Err != nil {
			failures++
		}
	}); err != nil {
		return err
	}
	a.printVerbose(w, "%d live allocations before drain\n", len(r.Live()))

	r.FreeAll()
	if err := al.Verify(); err != nil {
		return err
	}
	if s := al.Stats(); s.Blocks != 1 || s.FreeBlocks != 1 {
		return fmt.Errorf("pool did not coalesce: %d blocks after freeing everything", s.Blocks)
	}

	rep := newLayoutReport(al)
	rep.Events = len(events)
	rep.Failures = failures
	return a.printLayout(w, rep)
}
