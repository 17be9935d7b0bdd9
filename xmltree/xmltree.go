// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

// Package xmltree turns an XML document into a small navigable tree.
//
// The tree exposes only the capabilities the response parser needs: look up
// an attribute by name, collect child elements by a slash-separated path,
// and read element text. Any other document representation implementing
// [Node] is substitutable for this one; the parser never depends on the
// concrete type.
package xmltree

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// Node is the capability interface over one element of a parsed document.
// Implementations must be read-only: parsing a response never mutates the
// document it was built from.
type Node interface {
	// Name returns the element's local name.
	Name() string

	// Attr looks up an attribute by local name.
	Attr(name string) (string, bool)

	// Children returns the elements matched by a slash-separated path
	// relative to this node, in document order. A single-segment path
	// returns direct children with that name.
	Children(path string) []Node

	// Text returns the concatenated character data directly inside this
	// element, with surrounding whitespace trimmed.
	Text() string
}

type element struct {
	name     string
	attrs    []xml.Attr
	children []*element
	text     strings.Builder
}

// Parse reads an XML document and returns its root element. Documents in
// non-UTF-8 encodings are converted via their declared charset.
func Parse(r io.Reader) (Node, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var root *element
	var stack []*element
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed XML document: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{
				name:  t.Name.Local,
				attrs: append([]xml.Attr(nil), t.Attr...),
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("malformed XML document: multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("malformed XML document: no root element")
	}
	return root, nil
}

func (e *element) Name() string {
	return e.name
}

func (e *element) Attr(name string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (e *element) Children(path string) []Node {
	current := []*element{e}
	for _, segment := range strings.Split(path, "/") {
		var next []*element
		for _, el := range current {
			for _, child := range el.children {
				if child.name == segment {
					next = append(next, child)
				}
			}
		}
		current = next
		if len(current) == 0 {
			return nil
		}
	}

	ret := make([]Node, len(current))
	for i, el := range current {
		ret[i] = el
	}
	return ret
}

func (e *element) Text() string {
	return strings.TrimSpace(e.text.String())
}
