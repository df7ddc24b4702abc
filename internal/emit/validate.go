// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package emit

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	classNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	namespacePattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9_]*(\\[A-Z][A-Za-z0-9_]*)*$`)
)

// NewValidator returns a validator with the PHP identifier tags registered:
//
//	php_class      a bare class name
//	php_namespace  a backslash-separated PascalCase namespace
//	php_fqcn       a class name, optionally namespace-qualified
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// registration only fails for empty tags or nil funcs
	_ = v.RegisterValidation("php_class", validateClassName)
	_ = v.RegisterValidation("php_namespace", validateNamespace)
	_ = v.RegisterValidation("php_fqcn", validateQualifiedName)
	return v
}

// IsClassName reports whether s is a valid PHP class name.
func IsClassName(s string) bool {
	return classNamePattern.MatchString(s)
}

// IsNamespace reports whether s is a valid namespace such as App\Http\Requests.
func IsNamespace(s string) bool {
	return namespacePattern.MatchString(s)
}

func validateClassName(fl validator.FieldLevel) bool {
	return IsClassName(fl.Field().String())
}

func validateNamespace(fl validator.FieldLevel) bool {
	return IsNamespace(fl.Field().String())
}

func validateQualifiedName(fl validator.FieldLevel) bool {
	name := strings.TrimPrefix(fl.Field().String(), `\`)
	parts := strings.Split(name, `\`)
	for _, p := range parts {
		if !IsClassName(p) {
			return false
		}
	}
	return true
}
