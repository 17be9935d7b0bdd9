// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

// Package restauth provides supporting types for representing credentials
// used to authenticate requests to REST API hosts.
//
// Credentials are keyed by the normalized hostname of the service endpoint,
// so one source can serve a client library that talks to several hosts.
package restauth

import (
	"context"
	"net/http"

	"github.com/zclconf/go-cty/cty"

	"github.com/restmap/restmap"
)

// Credentials is a list of [CredentialsSource] objects that can be tried in
// turn until one returns credentials for a host, or one returns an error.
//
// A Credentials is itself a CredentialsSource, wrapping its members.
type Credentials []CredentialsSource

// NoCredentials is an empty CredentialsSource that always returns nil when
// asked for credentials.
var NoCredentials CredentialsSource = Credentials{}

// A CredentialsSource is an object that may be able to provide credentials
// for a given host.
//
// Credentials lookups are not guaranteed to be concurrency-safe. Callers
// using these facilities in concurrent code must use external concurrency
// primitives to prevent race conditions.
type CredentialsSource interface {
	// ForHost returns a non-nil HostCredentials if the source has
	// credentials available for the host, and a nil HostCredentials if it
	// does not.
	//
	// If an error is returned, progress through a list of
	// CredentialsSources is halted and the error is returned to the user.
	ForHost(ctx context.Context, host restmap.Hostname) (HostCredentials, error)
}

// HostCredentials represents a single set of credentials for a particular
// host.
type HostCredentials interface {
	// PrepareRequest modifies the given request in-place to apply the
	// receiving credentials. The usual behavior of this method is to add
	// an Authorization header or a query-string key to the request.
	//
	// Implementers must not abuse this by modifying the request in ways
	// that are unrelated to authentication.
	PrepareRequest(req *http.Request)
}

// StorableCredentials represents credentials that can be serialized for
// persistent storage managed by the caller.
type StorableCredentials interface {
	// ToStore returns a cty.Value, always of an object type, representing
	// data that can be serialized to represent this object in persistent
	// storage.
	//
	// The resulting value uses only cty values that can be accepted by the
	// cty JSON encoder, though the caller may elect to instead store it in
	// some other format that has a JSON-compatible type system.
	ToStore() cty.Value
}

// ForHost iterates over the contained CredentialsSource objects and tries
// to obtain credentials for the given host from each one in turn.
//
// If any source returns either a non-nil HostCredentials or a non-nil error
// then this result is returned. Otherwise, the result is nil, nil.
func (c Credentials) ForHost(ctx context.Context, host restmap.Hostname) (HostCredentials, error) {
	for _, source := range c {
		creds, err := source.ForHost(ctx, host)
		if creds != nil || err != nil {
			return creds, err
		}
	}
	return nil, nil
}
