// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

// Package response maps a parsed XML document onto the typed fields and
// nested collections declared by a [schema.Schema].
//
// A Response wraps one document node and resolves each declared parameter
// lazily on first access, caching the result. The underlying document is
// immutable for the response's lifetime, so the cache is invisible to
// callers: repeated reads of the same field always return an equal value.
package response

import (
	"fmt"
	"strings"

	"github.com/restmap/restmap/schema"
	"github.com/restmap/restmap/xmltree"
)

// FieldError reports a problem resolving one named field of a response.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Response is a read-only typed view over one document node.
//
// A Response is not safe for concurrent use; the core is synchronous by
// design and resolution caching is unguarded.
type Response struct {
	schema *schema.Schema
	root   xmltree.Node

	fields      map[string]Value
	collections map[string][]*Response
}

// Parse validates the schema and wraps the document root in a Response.
// Resolution is lazy: no field is read until it is asked for.
func Parse(sch *schema.Schema, root xmltree.Node) (*Response, error) {
	if err := sch.Validate(); err != nil {
		return nil, err
	}
	return newResponse(sch, root), nil
}

// newResponse skips validation; collection members reuse the already
// validated schema of their parent's declaration.
func newResponse(sch *schema.Schema, root xmltree.Node) *Response {
	return &Response{
		schema:      sch,
		root:        root,
		fields:      make(map[string]Value),
		collections: make(map[string][]*Response),
	}
}

// Schema returns the schema this response was parsed against.
func (r *Response) Schema() *schema.Schema {
	return r.schema
}

// Successful reports whether the response represents success at the API
// level, as decided by the schema's success predicate. Without a predicate
// every parsed response is successful; HTTP and parse failures are raised
// as errors long before this point.
func (r *Response) Successful() bool {
	pred := r.schema.Success()
	if pred == nil {
		return true
	}
	return pred(r)
}

// Field resolves a declared scalar parameter.
//
// Absence of the node for an optional parameter is not an error: the
// returned Value reports Present() == false, distinguishable from any
// coerced zero value. Absence of a required parameter, a coercion failure,
// an undeclared name, and reading a collection parameter as a scalar are
// all reported as a [*FieldError] naming the parameter.
func (r *Response) Field(name string) (Value, error) {
	if v, ok := r.fields[name]; ok {
		return v, nil
	}

	sp, ok := r.schema.Spec(name)
	if !ok {
		return Value{}, &FieldError{Field: name, Err: fmt.Errorf("not declared on schema %q", r.schema.Name())}
	}
	if sp.CollectionOf != nil {
		return Value{}, &FieldError{Field: name, Err: fmt.Errorf("is a collection; use Collection")}
	}

	raw, found := r.resolveRaw(sp)
	if !found {
		if sp.Required {
			return Value{}, &FieldError{Field: name, Err: fmt.Errorf("required but not present in document")}
		}
		v := Value{typ: sp.Type}
		r.fields[name] = v
		return v, nil
	}

	parsed, err := sp.Type.Parse(raw)
	if err != nil {
		return Value{}, &FieldError{Field: name, Err: err}
	}
	v := Value{typ: sp.Type, present: true, raw: raw, v: parsed}
	r.fields[name] = v
	return v, nil
}

// Raw resolves a declared scalar parameter to its uncoerced document text.
// It reports ok=false for absent, undeclared, and collection parameters,
// which makes it safe to call from success predicates. Raw implements
// [schema.FieldSet].
func (r *Response) Raw(name string) (string, bool) {
	sp, ok := r.schema.Spec(name)
	if !ok || sp.CollectionOf != nil {
		return "", false
	}
	return r.resolveRaw(sp)
}

// Collection resolves a collection parameter to one Response per matched
// node, in document order. The result is materialized once and cached, so
// it can be iterated repeatedly. Zero matched nodes resolve to an empty
// non-nil slice, never an error.
func (r *Response) Collection(name string) ([]*Response, error) {
	if members, ok := r.collections[name]; ok {
		return members, nil
	}

	sp, ok := r.schema.Spec(name)
	if !ok {
		return nil, &FieldError{Field: name, Err: fmt.Errorf("not declared on schema %q", r.schema.Name())}
	}
	if sp.CollectionOf == nil {
		return nil, &FieldError{Field: name, Err: fmt.Errorf("is not a collection; use Field")}
	}

	nodes := r.root.Children(sp.EffectivePath())
	members := make([]*Response, 0, len(nodes))
	for _, node := range nodes {
		members = append(members, newResponse(sp.CollectionOf, node))
	}
	r.collections[name] = members
	return members, nil
}

// resolveRaw locates the raw text for a scalar parameter. For an
// attribute-sourced parameter with a multi-segment path, the leading
// segments navigate elements and the final segment names the attribute;
// a single segment names an attribute on the root node itself.
func (r *Response) resolveRaw(sp schema.Spec) (string, bool) {
	path := sp.EffectivePath()

	if sp.Source == schema.FromAttr {
		node := r.root
		attr := path
		if idx := strings.LastIndex(path, "/"); idx != -1 {
			nodes := r.root.Children(path[:idx])
			if len(nodes) == 0 {
				return "", false
			}
			node = nodes[0]
			attr = path[idx+1:]
		}
		return node.Attr(attr)
	}

	nodes := r.root.Children(path)
	if len(nodes) == 0 {
		return "", false
	}
	return nodes[0].Text(), true
}
