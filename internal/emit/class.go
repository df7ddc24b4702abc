// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package emit renders rule tables as Laravel FormRequest classes and
// writes them to disk.
package emit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dacolabs/formrequest/internal/rules"
	"github.com/dacolabs/formrequest/internal/schema"
)

// DefaultBaseClass is the class generated requests extend.
const DefaultBaseClass = `Illuminate\Foundation\Http\FormRequest`

// DefaultNamespace is the namespace Laravel keeps form requests in.
const DefaultNamespace = `App\Http\Requests`

//nolint:staticcheck // messages are shown to users verbatim
var (
	ErrInvalidClassName = errors.New("Invalid class name")
	ErrInvalidNamespace = errors.New("Invalid namespace")
	ErrInvalidBaseClass = errors.New("Invalid base class")
	ErrEmptyRules       = errors.New("Validation rules cannot be empty")
)

var validate = NewValidator()

// Options customize a generated class.
type Options struct {
	// BaseClass is the fully-qualified parent class. Defaults to DefaultBaseClass.
	BaseClass string
	// Authorize is the PHP expression returned by authorize(). Defaults to "true".
	Authorize string
	// Messages and Attributes are emitted verbatim as messages() and attributes().
	Messages   map[string]string
	Attributes map[string]string
	// Summary is written to the class docblock.
	Summary string
}

// Class describes one FormRequest class.
type Class struct {
	Name      string
	Namespace string
	Rules     *rules.Table
	Source    *schema.Node
	Options   Options
}

type descriptor struct {
	Name      string `validate:"php_class"`
	Namespace string `validate:"php_namespace"`
	BaseClass string `validate:"php_fqcn"`
	RuleCount int    `validate:"min=1"`
}

// NewClass validates the descriptor and returns the class.
func NewClass(name, namespace string, table *rules.Table, source *schema.Node, opts Options) (*Class, error) {
	if opts.BaseClass == "" {
		opts.BaseClass = DefaultBaseClass
	}
	opts.BaseClass = strings.TrimPrefix(opts.BaseClass, `\`)
	if strings.TrimSpace(opts.Authorize) == "" {
		opts.Authorize = "true"
	}

	d := descriptor{Name: name, Namespace: namespace, BaseClass: opts.BaseClass}
	if table != nil {
		d.RuleCount = table.Len()
	}
	if err := validate.Struct(d); err != nil {
		return nil, descriptorError(err, d)
	}

	return &Class{
		Name:      name,
		Namespace: namespace,
		Rules:     table,
		Source:    source,
		Options:   opts,
	}, nil
}

// descriptorError reports the first failing field as its sentinel error.
func descriptorError(err error, d descriptor) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	switch verrs[0].Field() {
	case "Name":
		return fmt.Errorf("%w: %s", ErrInvalidClassName, d.Name)
	case "Namespace":
		return fmt.Errorf("%w: %s", ErrInvalidNamespace, d.Namespace)
	case "BaseClass":
		return fmt.Errorf("%w: %s", ErrInvalidBaseClass, d.BaseClass)
	default:
		return ErrEmptyRules
	}
}

// FileName returns the file the class is written to.
func (c *Class) FileName() string {
	return c.Name + ".php"
}

// FQCN returns the namespace-qualified class name.
func (c *Class) FQCN() string {
	return c.Namespace + `\` + c.Name
}
