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

	"github.com/cloudwego/tagheap/internal/trace"
)

func newReplayCmd(a *app) *cobra.Command {
	var verify bool
	cmd := &cobra.Command{
		Use:   "replay <trace>",
		Short: "Replay an alloc/free trace against a fresh pool",
		Long: `The replay command applies a trace of allocations and frees to a new pool
and prints the final block layout. Use "-" to read the trace from stdin.

Trace format, one operation per line ('#' starts a comment):
  alloc <id> <size>
  free <id>

Failed allocations are reported and the replay continues; freeing an id
whose allocation failed is a no-op.

Example:
  tagheap replay ops.trace --pool-size 4096 --verify
  tagheap replay ops.trace --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReplay(cmd.InOrStdin(), cmd.OutOrStdout(), args[0], verify)
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "Verify pool invariants after every operation")
	return cmd
}

func (a *app) runReplay(stdin io.Reader, w io.Writer, path string, verify bool) error {
	in := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open trace: %w", err)
		}
		defer f.Close()
		in = f
	}
	events, err := trace.Parse(in)
	if err != nil {
		return err
	}

	al, err := a.newAllocator()
	if err != nil {
		return err
	}
	defer al.Close()

	failures := 0
	r := trace.NewReplayer(al, verify)
	err = r.Run(events, func(res trace.Result) {
		switch {
		case res.Err != nil:
			failures++
			a.printVerbose(w, "%5d  %-24s  failed: %v\n", res.Event.Line, res.Event, res.Err)
		case res.Skipped:
			a.printVerbose(w, "%5d  %-24s  skipped\n", res.Event.Line, res.Event)
		default:
			a.printVerbose(w, "%5d  %-24s  @%d\n", res.Event.Line, res.Event, res.Offset)
		}
	})
	if err != nil {
		return err
	}

	rep := newLayoutReport(al)
	rep.Events = len(events)
	rep.Failures = failures
	return a.printLayout(w, rep)
}
