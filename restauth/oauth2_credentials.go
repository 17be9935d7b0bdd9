// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package restauth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/restmap/restmap"
)

// OAuth2CredentialsSource returns a [CredentialsSource] that obtains a
// token from the given [oauth2.TokenSource] whenever credentials are
// requested for the given host, and presents it as a bearer token.
//
// Token refresh behavior belongs to the token source; wrap it with
// [oauth2.ReuseTokenSource] if repeated requests should not each hit the
// token endpoint.
func OAuth2CredentialsSource(host restmap.Hostname, src oauth2.TokenSource) CredentialsSource {
	return &oauth2CredentialsSource{host: host, src: src}
}

type oauth2CredentialsSource struct {
	host restmap.Hostname
	src  oauth2.TokenSource
}

// ForHost implements [CredentialsSource].
func (s *oauth2CredentialsSource) ForHost(_ context.Context, host restmap.Hostname) (HostCredentials, error) {
	if host != s.host {
		return nil, nil
	}
	tok, err := s.src.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain OAuth2 token for %s: %w", host.ForDisplay(), err)
	}
	return HostCredentialsToken(tok.AccessToken), nil
}
