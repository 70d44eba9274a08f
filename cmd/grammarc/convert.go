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

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lianghongkey/cpp-textmate-grammar/grammar"
)

var convertOut string

var convertCmd = &cobra.Command{
	Use:   "convert <grammar-file>",
	Short: "Convert a grammar file between JSON and YAML",
	Long: `Reads a grammar file and rewrites it in the format implied by the output
path's extension (or to stdout as JSON when no output is given).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := grammar.LoadFile(args[0])
		if err != nil {
			return err
		}
		if convertOut == "" {
			return doc.Write(os.Stdout, grammar.FormatJSON)
		}
		if err := doc.WriteFile(convertOut); err != nil {
			return fmt.Errorf("writing %s: %w", convertOut, err)
		}
		log.Info().Str("from", args[0]).Str("to", convertOut).Msg("converted grammar")
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVarP(&convertOut, "output", "o", "", "Output path; format follows the extension")
}
