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
	"fmt"
	"os"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	verbosity int

	rootCmd = &cobra.Command{
		Use:   "grammarc",
		Short: "Assemble, convert, and lint TextMate-style grammar files",
		Long: `grammarc is the packaging layer around the pattern compiler: it merges
grammar fragments into a single tmLanguage file, converts grammars between
JSON and YAML, and lints grammar files for dangling includes and malformed
rules.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(buildCmd)
}

func setupLogger(verbosity int) {
	switch verbosity {
	case 0:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case 1:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case 2:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}).With().Timestamp().Logger()
}

// expandGlobs resolves the command's file arguments, treating each as a
// doublestar glob. Arguments that match nothing are errors, not silently
// empty.
func expandGlobs(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%q matched no files", arg)
		}
		files = append(files, matches...)
	}
	return files, nil
}
