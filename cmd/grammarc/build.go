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
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lianghongkey/cpp-textmate-grammar/grammar"
)

// manifest is the TOML file driving a grammar build: scope-level metadata
// plus the fragment files to merge, in order.
type manifest struct {
	Name      string   `toml:"name"`
	ScopeName string   `toml:"scopeName"`
	FileTypes []string `toml:"fileTypes"`
	Version   string   `toml:"version"`
	Fragments []string `toml:"fragments"`
	Output    string   `toml:"output"`
}

var buildManifest string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Merge grammar fragments into one grammar file",
	Long: `Reads a TOML manifest naming grammar fragment files (JSON or YAML,
doublestar globs allowed) and merges them, in order, into a single grammar
written to the manifest's output path. Repository name collisions across
fragments are errors.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(buildManifest)
		if err != nil {
			return err
		}
		var m manifest
		if err := toml.Unmarshal(data, &m); err != nil {
			return fmt.Errorf("%s: %w", buildManifest, err)
		}
		if m.ScopeName == "" {
			return fmt.Errorf("%s: manifest has no scopeName", buildManifest)
		}
		if m.Output == "" {
			return fmt.Errorf("%s: manifest has no output path", buildManifest)
		}
		// Globs in the manifest are relative to the manifest's directory.
		base := filepath.Dir(buildManifest)
		var patterns []string
		for _, frag := range m.Fragments {
			patterns = append(patterns, filepath.Join(base, frag))
		}
		files, err := expandGlobs(patterns)
		if err != nil {
			return err
		}

		doc := &grammar.Document{
			Name:      m.Name,
			ScopeName: m.ScopeName,
			FileTypes: m.FileTypes,
			Version:   m.Version,
		}
		for _, file := range files {
			fragment, err := grammar.LoadFile(file)
			if err != nil {
				return err
			}
			if err := doc.Merge(fragment); err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			log.Debug().Str("fragment", file).Msg("merged")
		}
		out := filepath.Join(base, m.Output)
		if err := doc.WriteFile(out); err != nil {
			return err
		}
		log.Info().Str("output", out).Int("fragments", len(files)).Msg("grammar built")
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildManifest, "manifest", "f", "grammar.toml", "Path to the build manifest")
}
