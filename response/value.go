// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package response

import (
	"time"

	version "github.com/hashicorp/go-version"

	"github.com/restmap/restmap/schema"
)

// Value is the resolved form of one scalar field. The zero Value is the
// explicit absent marker: Present() is false and every typed accessor
// reports ok=false, so absence is never confused with a coerced zero.
type Value struct {
	typ     schema.Type
	present bool
	raw     string
	v       any
}

// Present reports whether the field's node existed in the document.
func (v Value) Present() bool {
	return v.present
}

// Raw returns the uncoerced document text the value was parsed from, or ""
// when absent.
func (v Value) Raw() string {
	return v.raw
}

// Any returns the coerced Go value, or nil when absent.
func (v Value) Any() any {
	if !v.present {
		return nil
	}
	return v.v
}

// Text returns the value of a string-typed field.
func (v Value) Text() (string, bool) {
	s, ok := v.v.(string)
	return s, ok && v.present
}

// Int returns the value of an int-typed field.
func (v Value) Int() (int64, bool) {
	n, ok := v.v.(int64)
	return n, ok && v.present
}

// Float returns the value of a float-typed field.
func (v Value) Float() (float64, bool) {
	f, ok := v.v.(float64)
	return f, ok && v.present
}

// Bool returns the value of a bool-typed field.
func (v Value) Bool() (bool, bool) {
	b, ok := v.v.(bool)
	return b, ok && v.present
}

// Time returns the value of a date-typed field.
func (v Value) Time() (time.Time, bool) {
	t, ok := v.v.(time.Time)
	return t, ok && v.present
}

// Version returns the value of a version-typed field.
func (v Value) Version() (*version.Version, bool) {
	ver, ok := v.v.(*version.Version)
	return ver, ok && v.present
}
