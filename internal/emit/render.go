// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package emit

import (
	"bytes"
	"embed"
	"fmt"
	"slices"
	"strings"
	"text/template"

	"github.com/dacolabs/formrequest/internal/rules"
)

//go:embed formrequest.php.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.New("formrequest.php.tmpl").Funcs(template.FuncMap{
	"php":  quote,
	"rule": ruleLiteral,
}).ParseFS(tmplFS, "formrequest.php.tmpl"))

type entry struct {
	Key   string
	Value string
}

type classData struct {
	Namespace  string
	BaseImport string
	BaseName   string
	Name       string
	Doc        []string
	Authorize  string
	Rules      []rules.FieldRule
	Messages   []entry
	Attributes []entry
}

// Render returns the PHP source of the class. Output is deterministic:
// rules keep table order and messages/attributes are sorted by key.
func (c *Class) Render() ([]byte, error) {
	baseImport, baseName := c.baseClass()

	data := classData{
		Namespace:  c.Namespace,
		BaseImport: baseImport,
		BaseName:   baseName,
		Name:       c.Name,
		Doc:        c.docLines(),
		Authorize:  c.Options.Authorize,
		Rules:      c.Rules.Rows(),
		Messages:   sortedEntries(c.Options.Messages),
		Attributes: sortedEntries(c.Options.Attributes),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", c.Name, err)
	}
	return buf.Bytes(), nil
}

// baseClass returns the use statement target and the name the class
// extends, aliasing the import when it collides with the class name.
func (c *Class) baseClass() (string, string) {
	fqcn := c.Options.BaseClass
	short := fqcn[strings.LastIndex(fqcn, `\`)+1:]
	if short != c.Name {
		return fqcn, short
	}
	alias := "Base" + short
	return fqcn + " as " + alias, alias
}

func (c *Class) docLines() []string {
	var lines []string
	if c.Options.Summary != "" {
		lines = append(lines, strings.Split(c.Options.Summary, "\n")...)
	}
	if c.Source != nil && c.Source.Description != "" {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, strings.Split(c.Source.Description, "\n")...)
	}
	if len(lines) == 0 {
		lines = append(lines, c.Name+" form request.")
	}
	for i, l := range lines {
		lines[i] = strings.ReplaceAll(strings.TrimRight(l, " \t"), "*/", "* /")
	}
	return lines
}

func sortedEntries(m map[string]string) []entry {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	entries := make([]entry, len(keys))
	for i, k := range keys {
		entries[i] = entry{Key: k, Value: m[k]}
	}
	return entries
}

// quote returns s as a PHP single-quoted string literal.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

// ruleLiteral writes a rule as a pipe-joined string, or as a list when a
// token contains the separator itself.
func ruleLiteral(r rules.FieldRule) string {
	if !r.NeedsList() {
		return quote(r.Rule())
	}
	quoted := make([]string, len(r.Tokens))
	for i, t := range r.Tokens {
		quoted[i] = quote(t)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
