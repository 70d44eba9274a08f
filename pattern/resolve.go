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

package pattern

import (
	"regexp"
	"strconv"
)

// Synthesized text carries named placeholders for back-references and
// subroutine calls until the whole tree's text exists and every group number
// is known. Resolution runs exactly once, at the top-level evaluate call.
var referencePlaceholder = regexp.MustCompile(`\[:(backreference|subroutine):([^:\]]+):\]`)

func backreferencePlaceholder(name string) string { return "[:backreference:" + name + ":]" }
func subroutinePlaceholder(name string) string    { return "[:subroutine:" + name + ":]" }

// resolveReferences rewrites every placeholder in src to its numeric form: a
// back-reference placeholder to \n and a subroutine placeholder to \g<n>,
// where n is the group number of the node declaring the matching Reference.
func resolveReferences(src string, groups []GroupInfo) (string, error) {
	var rerr error
	out := referencePlaceholder.ReplaceAllStringFunc(src, func(m string) string {
		sub := referencePlaceholder.FindStringSubmatch(m)
		kind, name := sub[1], sub[2]
		for _, g := range groups {
			if g.Reference == name {
				if kind == "subroutine" {
					return `\g<` + strconv.Itoa(g.Number) + `>`
				}
				return `\` + strconv.Itoa(g.Number)
			}
		}
		if rerr == nil {
			rerr = &ReferenceResolutionError{Name: name, Subroutine: kind == "subroutine"}
		}
		return m
	})
	if rerr != nil {
		return "", rerr
	}
	return out, nil
}
