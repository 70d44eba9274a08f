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

package grammar

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lianghongkey/cpp-textmate-grammar/pattern"
)

// Document is the serialized form of a grammar: the shape a tmLanguage
// loader reads. Field order follows the conventional layout of published
// grammar files.
type Document struct {
	Name       string          `json:"name,omitempty" yaml:"name,omitempty"`
	ScopeName  string          `json:"scopeName" yaml:"scopeName"`
	FileTypes  []string        `json:"fileTypes,omitempty" yaml:"fileTypes,omitempty"`
	Version    string          `json:"version,omitempty" yaml:"version,omitempty"`
	Patterns   []*pattern.Rule `json:"patterns,omitempty" yaml:"patterns,omitempty"`
	Repository *Repository     `json:"repository,omitempty" yaml:"repository,omitempty"`
}

// Format identifies a grammar file encoding.
type Format uint8

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatForPath picks the encoding matching a file name's extension.
// JSON is the default for unrecognized extensions.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Write encodes the document to w in the given format. JSON output is
// indented, matching how published grammar files are checked in.
func (d *Document) Write(w io.Writer, f Format) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		enc.SetEscapeHTML(false)
		return enc.Encode(d)
	}
}

// WriteFile encodes the document to path, picking the format from the
// extension.
func (d *Document) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := d.Write(f, FormatForPath(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load decodes a grammar document from r in the given format.
func Load(r io.Reader, f Format) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	doc := &Document{}
	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(data, doc)
	default:
		err = json.Unmarshal(data, doc)
	}
	if err != nil {
		return nil, err
	}
	if doc.ScopeName == "" {
		return nil, fmt.Errorf("grammar document has no scopeName")
	}
	return doc, nil
}

// LoadFile decodes the grammar document at path, picking the format from the
// extension.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := Load(f, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Merge copies src's top-level patterns and repository entries into d.
// Repository name collisions are errors; scope-level fields in d win unless
// unset.
func (d *Document) Merge(src *Document) error {
	if d.ScopeName == "" {
		d.ScopeName = src.ScopeName
	}
	if d.Name == "" {
		d.Name = src.Name
	}
	if len(d.FileTypes) == 0 {
		d.FileTypes = append([]string(nil), src.FileTypes...)
	}
	d.Patterns = append(d.Patterns, src.Patterns...)
	if src.Repository == nil {
		return nil
	}
	if d.Repository == nil {
		d.Repository = &Repository{}
	}
	var conflict error
	src.Repository.Scan(func(name string, rule *pattern.Rule) bool {
		if d.Repository.Has(name) {
			conflict = fmt.Errorf("repository rule %q defined in more than one fragment", name)
			return false
		}
		d.Repository.Set(name, rule)
		return true
	})
	return conflict
}
