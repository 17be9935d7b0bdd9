// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package restauth

import (
	"net/http"
	"net/url"

	"github.com/zclconf/go-cty/cty"
)

// HostCredentialsAPIKey is a HostCredentials implementation for the common
// REST scheme where the caller identifies itself with a fixed key passed as
// a query-string parameter on every request.
type HostCredentialsAPIKey struct {
	// Param is the query-string parameter name the key is sent under,
	// e.g. "api_key".
	Param string

	// Key is the key value itself.
	Key string
}

var _ HostCredentials = HostCredentialsAPIKey{}
var _ StorableCredentials = HostCredentialsAPIKey{}

// PrepareRequest alters the given HTTP request by appending the key to its
// URL's query string. The existing query string is left byte-for-byte
// intact so the rendered parameter order survives; if the parameter is
// already present, presumably because the request rendered its own key,
// the request is left untouched.
func (ak HostCredentialsAPIKey) PrepareRequest(req *http.Request) {
	if req.URL.Query().Has(ak.Param) {
		return
	}
	pair := url.QueryEscape(ak.Param) + "=" + url.QueryEscape(ak.Key)
	if req.URL.RawQuery == "" {
		req.URL.RawQuery = pair
	} else {
		req.URL.RawQuery += "&" + pair
	}
}

// ToStore returns a credentials object with "param" and "key" attributes.
// This implements [StorableCredentials].
func (ak HostCredentialsAPIKey) ToStore() cty.Value {
	return cty.ObjectVal(map[string]cty.Value{
		"param": cty.StringVal(ak.Param),
		"key":   cty.StringVal(ak.Key),
	})
}
