// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package client

import (
	"net/http"

	"github.com/restmap/restmap/restauth"
)

type Option interface {
	applyOption(c *Client)
}

type clientOption func(c *Client)

func (o clientOption) applyOption(c *Client) {
	o(c)
}

func WithHTTPClient(httpClient *http.Client) Option {
	return clientOption(func(c *Client) {
		c.httpClient = httpClient
	})
}

func WithCredentials(creds restauth.CredentialsSource) Option {
	return clientOption(func(c *Client) {
		c.credsSrc = creds
	})
}
