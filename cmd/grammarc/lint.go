// Copyright 2024-2026 The cpp-textmate-grammar Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/semaphore"

	"github.com/lianghongkey/cpp-textmate-grammar/grammar"
)

var lintStrict bool

var lintCmd = &cobra.Command{
	Use:   "lint <glob>...",
	Short: "Lint grammar files",
	Long: `Loads each grammar file matched by the given globs and reports dangling
#name includes, non-numeric capture keys, and empty rules. With --strict,
every regex source in the file is also compiled.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := expandGlobs(args)
		if err != nil {
			return err
		}
		// Files are independent; lint them in parallel, bounded by CPU count.
		sem := semaphore.NewWeighted(int64(runtime.NumCPU()))
		ctx := context.Background()
		var (
			mu       sync.Mutex
			problems int
		)
		for _, file := range files {
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
			go func(file string) {
				defer sem.Release(1)
				count := lintFile(file)
				mu.Lock()
				problems += count
				mu.Unlock()
			}(file)
		}
		if err := sem.Acquire(ctx, int64(runtime.NumCPU())); err != nil {
			return err
		}
		if problems > 0 {
			return fmt.Errorf("%d problem(s) in %d file(s)", problems, len(files))
		}
		log.Info().Int("files", len(files)).Msg("all grammar files are clean")
		return nil
	},
}

func lintFile(file string) int {
	doc, err := grammar.LoadFile(file)
	if err != nil {
		log.Error().Err(err).Str("file", file).Msg("cannot load grammar")
		return 1
	}
	problems := doc.Lint(grammar.LintOptions{CompileRegexes: lintStrict})
	for _, p := range problems {
		log.Warn().Str("file", file).Msg(p.Error())
	}
	return len(problems)
}

func init() {
	lintCmd.Flags().BoolVar(&lintStrict, "strict", false, "Also compile every regex source in the file")
}
