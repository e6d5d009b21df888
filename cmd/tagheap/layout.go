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
)

func newLayoutCmd(a *app) *cobra.Command {
	var sizes, frees []int
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Allocate the given sizes and print the block layout",
		Long: `The layout command allocates each --alloc size in order, then frees the
allocations named by their 0-based index in --free, and prints the pool.

Example:
  tagheap layout --pool-size 256 --alloc 16,32,16 --free 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLayout(cmd.OutOrStdout(), sizes, frees)
		},
	}
	cmd.Flags().IntSliceVar(&sizes, "alloc", nil, "Sizes to allocate, in order")
	cmd.Flags().IntSliceVar(&frees, "free", nil, "Indexes of allocations to free afterwards")
	return cmd
}

func (a *app) runLayout(w io.Writer, sizes, frees []int) error {
	al, err := a.newAllocator()
	if err != nil {
		return err
	}
	defer al.Close()

	offs := make([]int, len(sizes))
	for i, size := range sizes {
		off, err := al.Alloc(size)
		if err != nil {
			return fmt.Errorf("alloc #%d: %w", i, err)
		}
		offs[i] = off
		a.printVerbose(w, "alloc #%d size=%d @%d\n", i, size, off)
	}
	freed := make(map[int]bool, len(frees))
	for _, i := range frees {
		if i < 0 || i >= len(offs) || freed[i] {
			return fmt.Errorf("free: invalid allocation index %d", i)
		}
		freed[i] = true
		al.Free(offs[i])
		a.printVerbose(w, "free #%d @%d\n", i, offs[i])
	}
	return a.printLayout(w, newLayoutReport(al))
}
