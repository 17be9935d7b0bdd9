// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

// Package schema implements the declarative parameter registry shared by
// requests and responses.
//
// A Schema plays the role that a class plays in a dynamic-language API
// binding: it names a set of parameters, each with a type, a source, and an
// optional document path, and it may extend a parent schema whose
// declarations it inherits and can override by name. The effective registry
// of a schema is its parent chain right-folded with its own declarations,
// preserving insertion order, so rendered query strings and parsed field
// sets are deterministic.
package schema

import (
	"sync"
)

// SourceKind says where a response parameter's value is read from in the
// document: the text of a matched element, or an attribute on it.
type SourceKind int

const (
	FromElement SourceKind = iota
	FromAttr
)

// Spec is a single parameter declaration.
type Spec struct {
	// Name identifies the parameter within its schema's effective registry
	// and is the query-string key when the parameter is rendered.
	Name string

	// Type governs coercion when reading the parameter from a document and
	// stringification when rendering it into a URL.
	Type Type

	// Source selects attribute vs element lookup for response parsing.
	Source SourceKind

	// Path is the slash-separated location of the parameter relative to the
	// document root. Empty means the parameter's own name.
	Path string

	// CollectionOf, when non-nil, makes every node matched at Path produce
	// one parsed instance of the referenced schema instead of a scalar.
	CollectionOf *Schema

	// Required escalates absence to an error when the parameter is read
	// from a document.
	Required bool
}

// EffectivePath returns Path, or the parameter name when no explicit path
// was declared.
func (s Spec) EffectivePath() string {
	if s.Path != "" {
		return s.Path
	}
	return s.Name
}

// FieldSet is the minimal view of a parsed response that a success
// predicate can inspect: the raw (uncoerced) text of a scalar field.
type FieldSet interface {
	Raw(name string) (string, bool)
}

// Schema is a named set of parameter declarations with an optional parent.
//
// Declarations are expected to happen once, at program initialization,
// before the schema is used to build requests or parse responses; Declare
// is not safe to call concurrently with other methods.
type Schema struct {
	name    string
	parent  *Schema
	specs   map[string]Spec
	order   []string
	success func(FieldSet) bool

	defaults *Defaults

	// effective-registry cache, invalidated when any schema in the
	// parent chain declares
	gen         int
	cachedSpecs []Spec
	cachedAt    int
}

// SchemaOption configures a schema at construction time.
type SchemaOption func(*Schema)

// Extends sets the parent schema whose declarations the new schema inherits.
func Extends(parent *Schema) SchemaOption {
	return func(s *Schema) {
		s.parent = parent
	}
}

// WithSuccess installs a predicate deciding whether a parsed response
// represents success at the API level, e.g. checking a "stat" field for
// "ok". Without one, every parsed response reports success.
func WithSuccess(pred func(FieldSet) bool) SchemaOption {
	return func(s *Schema) {
		s.success = pred
	}
}

// New constructs an empty schema with the given name.
func New(name string, opts ...SchemaOption) *Schema {
	s := &Schema{
		name:     name,
		specs:    make(map[string]Spec),
		defaults: &Defaults{},
		cachedAt: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the schema's name, used in error messages.
func (s *Schema) Name() string {
	return s.name
}

// SpecOption configures a single parameter declaration.
type SpecOption func(*Spec)

// OfType sets the parameter's coercion type. The default is TypeString.
func OfType(t Type) SpecOption {
	return func(sp *Spec) { sp.Type = t }
}

// FromAttribute reads the parameter from an attribute on the matched node
// rather than from element text.
func FromAttribute() SpecOption {
	return func(sp *Spec) { sp.Source = FromAttr }
}

// AtPath sets an explicit slash-separated path for the parameter, relative
// to the document root.
func AtPath(path string) SpecOption {
	return func(sp *Spec) { sp.Path = path }
}

// CollectionOf makes the parameter a collection: every node matched at the
// parameter's path produces one parsed instance of the given schema.
func CollectionOf(sub *Schema) SpecOption {
	return func(sp *Spec) { sp.CollectionOf = sub }
}

// Required makes absence of the parameter an error when it is read from a
// document.
func Required() SpecOption {
	return func(sp *Spec) { sp.Required = true }
}

// Declare registers a parameter on the schema and returns the schema for
// chaining. Declaring a name that already exists on this schema, or on an
// ancestor, fully replaces the earlier option set for that name; the
// ancestor's own registry is unaffected.
func (s *Schema) Declare(name string, opts ...SpecOption) *Schema {
	sp := Spec{Name: name}
	for _, opt := range opts {
		opt(&sp)
	}
	if _, exists := s.specs[name]; !exists {
		s.order = append(s.order, name)
	}
	s.specs[name] = sp
	s.gen++
	return s
}

// version changes whenever this schema or any ancestor declares, so a
// cached effective registry can tell when it is stale.
func (s *Schema) version() int {
	if s.parent == nil {
		return s.gen
	}
	return s.gen + s.parent.version()
}

// Specs returns the effective registry: the parent chain's declarations in
// their original order with same-named local declarations substituted in
// place, followed by local declarations the chain didn't know about.
//
// The result is computed once per schema and cached; a later Declare on
// this schema or an ancestor invalidates the cache. Like Declare itself,
// this caching assumes declaration happens at initialization, before
// concurrent use. Callers must not modify the returned slice.
func (s *Schema) Specs() []Spec {
	if v := s.version(); s.cachedAt != v {
		s.cachedSpecs = s.computeSpecs()
		s.cachedAt = v
	}
	return s.cachedSpecs
}

func (s *Schema) computeSpecs() []Spec {
	if s.parent == nil {
		ret := make([]Spec, 0, len(s.order))
		for _, name := range s.order {
			ret = append(ret, s.specs[name])
		}
		return ret
	}

	inherited := s.parent.Specs()
	seen := make(map[string]bool, len(inherited))
	ret := make([]Spec, 0, len(inherited)+len(s.order))
	for _, sp := range inherited {
		seen[sp.Name] = true
		if local, overridden := s.specs[sp.Name]; overridden {
			sp = local
		}
		ret = append(ret, sp)
	}
	for _, name := range s.order {
		if !seen[name] {
			ret = append(ret, s.specs[name])
		}
	}
	return ret
}

// Spec returns the effective declaration for the given name.
func (s *Schema) Spec(name string) (Spec, bool) {
	if sp, ok := s.specs[name]; ok {
		return sp, true
	}
	if s.parent != nil {
		return s.parent.Spec(name)
	}
	return Spec{}, false
}

// Success returns the installed success predicate, or nil.
func (s *Schema) Success() func(FieldSet) bool {
	if s.success == nil && s.parent != nil {
		return s.parent.Success()
	}
	return s.success
}

// Defaults is a process-wide store of default parameter values shared by
// every request instance subsequently built from the owning schema. It is
// the mechanism for injecting cross-cutting values such as an API key or a
// locale exactly once instead of threading them through every call site.
//
// Mutation is internally locked so a concurrent Set cannot corrupt the
// store, but callers should still configure defaults at startup before any
// concurrent use: the ordering between a concurrent Set and an in-flight
// request construction is unspecified.
type Defaults struct {
	mu     sync.Mutex
	values map[string]any
}

// Set stores a default value for the named parameter.
func (d *Defaults) Set(name string, value any) {
	d.mu.Lock()
	if d.values == nil {
		d.values = make(map[string]any)
	}
	d.values[name] = value
	d.mu.Unlock()
}

func (d *Defaults) snapshotInto(dst map[string]any) {
	d.mu.Lock()
	for name, value := range d.values {
		dst[name] = value
	}
	d.mu.Unlock()
}

// SetDefault stores a default value on the schema's Defaults. Instances
// built afterwards see the value; instances built earlier are unaffected.
func (s *Schema) SetDefault(name string, value any) {
	s.defaults.Set(name, value)
}

// DefaultValues snapshots the effective defaults: the parent chain's
// defaults with this schema's own layered on top.
func (s *Schema) DefaultValues() map[string]any {
	dst := make(map[string]any)
	s.defaultsInto(dst)
	return dst
}

func (s *Schema) defaultsInto(dst map[string]any) {
	if s.parent != nil {
		s.parent.defaultsInto(dst)
	}
	s.defaults.snapshotInto(dst)
}
