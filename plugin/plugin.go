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

package plugin

// Plugin is one installed pattern plugin.
type Plugin interface {
	// Name uniquely identifies the plugin in the registry.
	Name() string

	// RecognizedOptions lists the extra option names this plugin
	// contributes. The pattern builder carries unrecognized options through
	// untouched; only the contributing plugin interprets them.
	RecognizedOptions() []string

	// DisplayOptions renders this plugin's recognized options for the
	// builder-call display form. indent prefixes every produced line;
	// options is the node's full option map. Return "" to contribute
	// nothing.
	DisplayOptions(indent string, options map[string]any) string
}

// Linter is implemented by plugins that hook into lint runs. PreLint is
// invoked with each value about to be processed and its option map; for
// pattern-typed nodes it is expected to run the node's example checks and
// propagate the boolean result. Returning false fails the lint.
type Linter interface {
	PreLint(node any, options map[string]any) bool
}

var plugins = NewRegistry[Plugin]()

// Register installs a plugin process-wide.
func Register(p Plugin) error {
	return plugins.Register(p.Name(), p)
}

// Installed returns every installed plugin in registration order.
func Installed() []Plugin {
	return plugins.All()
}

// Reset removes every installed plugin. Intended for tests.
func Reset() {
	plugins.Clear()
}
