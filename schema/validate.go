// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"errors"
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-multierror"
)

var paramNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// Validate checks every declaration in the effective registry and reports
// all problems at once. It is intended to run at program initialization,
// right after the schemas are declared, so configuration mistakes surface
// before any request is built or response parsed.
//
// A schema may reference itself through a collection target, directly or
// through intermediaries, as recursive documents such as comment threads
// require; each schema reachable from the receiver is checked exactly once.
func (s *Schema) Validate() error {
	return s.validate(make(map[*Schema]bool))
}

func (s *Schema) validate(visited map[*Schema]bool) error {
	if visited[s] {
		return nil
	}
	visited[s] = true

	var result *multierror.Error
	for _, sp := range s.Specs() {
		if err := sp.validate(visited); err != nil {
			result = multierror.Append(result, fmt.Errorf("schema %q: parameter %q: %w", s.name, sp.Name, err))
		}
	}
	return result.ErrorOrNil()
}

func (sp Spec) validate(visited map[*Schema]bool) error {
	err := validation.ValidateStruct(&sp,
		validation.Field(&sp.Name,
			validation.Required,
			validation.Match(paramNameRe).Error("must start with a letter or underscore"),
		),
	)
	if err != nil {
		return err
	}

	if !sp.Type.known() {
		return fmt.Errorf("no coercion rule for %s", sp.Type)
	}
	if sp.CollectionOf != nil {
		if sp.Source == FromAttr {
			return errors.New("collection parameters must be element-sourced")
		}
		// A collection target must itself be a valid schema.
		if err := sp.CollectionOf.validate(visited); err != nil {
			return err
		}
	}
	return nil
}
