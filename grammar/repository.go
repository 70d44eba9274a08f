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

	"github.com/tidwall/btree"
	"gopkg.in/yaml.v3"

	"github.com/lianghongkey/cpp-textmate-grammar/pattern"
)

// Repository is the named-rule section of a grammar document. It keeps its
// entries ordered by name so that exported documents are byte-for-byte
// deterministic in both JSON and YAML.
type Repository struct {
	m btree.Map[string, *pattern.Rule]
}

// Set stores a rule under name, replacing any existing entry.
func (r *Repository) Set(name string, rule *pattern.Rule) {
	r.m.Set(name, rule)
}

// Get returns the rule stored under name.
func (r *Repository) Get(name string) (*pattern.Rule, bool) {
	return r.m.Get(name)
}

// Has reports whether name is present.
func (r *Repository) Has(name string) bool {
	_, ok := r.m.Get(name)
	return ok
}

// Len returns the number of entries.
func (r *Repository) Len() int { return r.m.Len() }

// Scan iterates entries in name order until iter returns false.
func (r *Repository) Scan(iter func(name string, rule *pattern.Rule) bool) {
	r.m.Scan(iter)
}

func (r Repository) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	first := true
	var marshalErr error
	r.m.Scan(func(name string, rule *pattern.Rule) bool {
		key, err := json.Marshal(name)
		if err != nil {
			marshalErr = err
			return false
		}
		val, err := json.Marshal(rule)
		if err != nil {
			marshalErr = err
			return false
		}
		if !first {
			buf = append(buf, ',')
		}
		first = false
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
		return true
	})
	if marshalErr != nil {
		return nil, marshalErr
	}
	return append(buf, '}'), nil
}

func (r *Repository) UnmarshalJSON(data []byte) error {
	var entries map[string]*pattern.Rule
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	r.m.Clear()
	for name, rule := range entries {
		r.m.Set(name, rule)
	}
	return nil
}

func (r Repository) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	var marshalErr error
	r.m.Scan(func(name string, rule *pattern.Rule) bool {
		var val yaml.Node
		if err := val.Encode(rule); err != nil {
			marshalErr = err
			return false
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: name},
			&val,
		)
		return true
	})
	if marshalErr != nil {
		return nil, marshalErr
	}
	return node, nil
}

func (r *Repository) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("repository must be a mapping, got %v", node.Kind)
	}
	r.m.Clear()
	for i := 0; i+1 < len(node.Content); i += 2 {
		var rule pattern.Rule
		if err := node.Content[i+1].Decode(&rule); err != nil {
			return err
		}
		r.m.Set(node.Content[i].Value, &rule)
	}
	return nil
}

// IsZero lets yaml omit an empty repository.
func (r Repository) IsZero() bool { return r.m.Len() == 0 }
