// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

// Package request implements the per-instance value store and the query
// string builder for declared request parameters.
//
// A Request is one concrete invocation of an API operation described by a
// [schema.Schema]: its store is seeded from the schema's defaults at
// construction time and then overridden by per-call values. Construction
// snapshots the defaults, so changing a schema default later never alters a
// request that already exists.
package request

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/restmap/restmap/schema"
)

// Request owns a value store for one invocation of an operation.
type Request struct {
	schema *schema.Schema
	values map[string]any
}

// Option seeds values at construction time.
type Option func(*Request)

// WithValue sets a single parameter value, overriding any schema default.
func WithValue(name string, value any) Option {
	return func(r *Request) {
		r.values[name] = value
	}
}

// WithValues sets several parameter values at once.
func WithValues(values map[string]any) Option {
	return func(r *Request) {
		for name, value := range values {
			r.values[name] = value
		}
	}
}

// New builds a request whose store is the schema's current defaults
// snapshot merged with the given options, options winning on conflict.
func New(sch *schema.Schema, opts ...Option) *Request {
	r := &Request{
		schema: sch,
		values: sch.DefaultValues(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Schema returns the schema this request was built from.
func (r *Request) Schema() *schema.Schema {
	return r.schema
}

// Set stores a parameter value on this request only.
func (r *Request) Set(name string, value any) {
	r.values[name] = value
}

// Get reads a parameter value. A name with no value, declared or not,
// reports ok=false rather than an error so optional parameters are simply
// omitted from rendering.
func (r *Request) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Validate checks the schema's declarations and then reports every declared
// required parameter that has no value.
func (r *Request) Validate() error {
	var result *multierror.Error
	if err := r.schema.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	for _, sp := range r.schema.Specs() {
		if !sp.Required {
			continue
		}
		if _, ok := r.values[sp.Name]; !ok {
			result = multierror.Append(result, fmt.Errorf("required parameter %q has no value", sp.Name))
		}
	}
	return result.ErrorOrNil()
}
