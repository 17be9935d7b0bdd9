// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package restauth

import (
	"context"

	"github.com/restmap/restmap"
)

// StaticCredentialsSource returns a [CredentialsSource] that looks up any
// requested credentials directly in the provided map.
//
// The caller should not modify the given map after passing it to this
// function.
func StaticCredentialsSource(creds map[restmap.Hostname]HostCredentials) CredentialsSource {
	return staticCredentialsSource(creds)
}

type staticCredentialsSource map[restmap.Hostname]HostCredentials

// ForHost implements [CredentialsSource].
func (s staticCredentialsSource) ForHost(_ context.Context, host restmap.Hostname) (HostCredentials, error) {
	return s[host], nil
}
