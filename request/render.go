// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package request

import (
	"fmt"
	"net/url"
	"strings"
)

// RenderError reports a parameter whose stored value could not be
// stringified under its declared type. This is a configuration error: the
// caller put a value of an unsupported dynamic type into the store.
type RenderError struct {
	Param string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("cannot render parameter %q: %s", e.Param, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// DuplicateKeyError reports a key collision while flattening a nested
// request into its parent's pair list.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate query parameter %q when flattening nested request", e.Key)
}

type pair struct {
	key, value string
}

// Render serializes the request into a URL query string: parameters in
// declaration order, absent values skipped, keys and values
// percent-encoded, pairs joined with "&".
//
// A parameter whose value is itself a *Request is rendered recursively and
// its pairs merged in place under their own names, with no prefix; a name
// collision with an already-emitted pair is a [DuplicateKeyError] rather
// than a silent overwrite. Rendering has no side effects, so two renders of
// an unmutated request produce identical strings.
func (r *Request) Render() (string, error) {
	pairs, err := r.pairs(make(map[string]bool))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String(), nil
}

func (r *Request) pairs(seen map[string]bool) ([]pair, error) {
	var out []pair
	for _, sp := range r.schema.Specs() {
		v, ok := r.values[sp.Name]
		if !ok || v == nil {
			continue
		}

		if nested, isReq := v.(*Request); isReq {
			inner, err := nested.pairs(seen)
			if err != nil {
				return nil, err
			}
			out = append(out, inner...)
			continue
		}

		text, err := sp.Type.Render(v)
		if err != nil {
			return nil, &RenderError{Param: sp.Name, Err: err}
		}
		if seen[sp.Name] {
			return nil, &DuplicateKeyError{Key: sp.Name}
		}
		seen[sp.Name] = true
		out = append(out, pair{key: sp.Name, value: text})
	}
	return out, nil
}
