// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

// Package restmap is a foundation library for building REST API client
// libraries declaratively.
//
// A [schema.Schema] describes the parameters a request accepts and how an
// XML response document maps onto typed fields and nested collections. The
// request package renders deterministic query URLs from declared parameters,
// the response package instantiates typed object graphs from a parsed
// document, and the client package ties a request, an HTTP call, and a
// response schema together against a fixed service endpoint.
package restmap

import (
	"fmt"
	"strings"

	"golang.org/x/net/idna"
)

// Hostname is the normalized form of the hostname portion of a service
// endpoint, usable directly as a map key for credentials lookups.
//
// Normalization maps the name through the IDNA lookup profile, so
// internationalized hostnames compare equal regardless of how the caller
// originally spelled them. An optional port is preserved verbatim.
type Hostname string

// ForHostname normalizes the given hostname, which may optionally include
// a port, into a form suitable for comparison and map keying.
func ForHostname(given string) (Hostname, error) {
	name := given
	port := ""
	if idx := strings.LastIndex(given, ":"); idx != -1 && !strings.Contains(given[idx:], "]") {
		name, port = given[:idx], given[idx:]
	}

	normed, err := idna.Lookup.ToASCII(strings.ToLower(name))
	if err != nil {
		return Hostname(""), fmt.Errorf("invalid hostname %q: %w", given, err)
	}
	return Hostname(normed + port), nil
}

// ForDisplay returns a form of the hostname suitable for showing to an end
// user, converting any punycode labels back to their unicode form.
func (h Hostname) ForDisplay() string {
	name := string(h)
	port := ""
	if idx := strings.LastIndex(name, ":"); idx != -1 && !strings.Contains(name[idx:], "]") {
		name, port = name[:idx], name[idx:]
	}
	disp, err := idna.Lookup.ToUnicode(name)
	if err != nil {
		// Not displayable as unicode, so the normalized form will have to do.
		return string(h)
	}
	return disp + port
}

func (h Hostname) String() string {
	return string(h)
}
