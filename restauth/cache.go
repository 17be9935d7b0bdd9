// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package restauth

import (
	"context"
	"sync"

	"github.com/restmap/restmap"
)

// CachingCredentialsSource creates a new credentials source that wraps
// another and caches its results in memory, on a per-hostname basis.
//
// No means is provided for expiration of cached credentials, so a caching
// credentials source should have a limited lifetime (one batch of API
// calls, for example) to ensure that time-limited credentials don't expire
// before their cache entries do.
func CachingCredentialsSource(source CredentialsSource) CredentialsSource {
	return &cachingCredentialsSource{
		source: source,
		cache:  map[restmap.Hostname]HostCredentials{},
	}
}

type cachingCredentialsSource struct {
	source CredentialsSource
	cache  map[restmap.Hostname]HostCredentials
	mu     sync.Mutex
}

// ForHost passes the given hostname on to the wrapped credentials source
// and caches the result to return for future requests with the same
// hostname.
//
// Both credentials and non-credentials (nil) responses are cached.
//
// No cache entry is created if the wrapped source returns an error, to
// allow the caller to retry the failing operation.
func (s *cachingCredentialsSource) ForHost(ctx context.Context, host restmap.Hostname) (HostCredentials, error) {
	s.mu.Lock()
	if cached, ok := s.cache[host]; ok {
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	result, err := s.source.ForHost(ctx, host)
	if err != nil {
		return result, err
	}

	s.mu.Lock()
	s.cache[host] = result
	s.mu.Unlock()
	return result, nil
}
