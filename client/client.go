// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

// Package client ties together a declared request, an HTTP call, and a
// response schema against a fixed service endpoint.
//
// The client is a thin pass-through: it renders the request into the
// endpoint's query string, performs the GET, hands the body to the XML
// parser, and parses the document against the response schema. It declares
// no error kinds of its own beyond wrapping network failures; transport and
// parse errors propagate to the caller unchanged.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/restmap/restmap"
	"github.com/restmap/restmap/request"
	"github.com/restmap/restmap/response"
	"github.com/restmap/restmap/restauth"
	"github.com/restmap/restmap/schema"
	"github.com/restmap/restmap/xmltree"
)

const (
	// Arbitrary-but-small number to prevent runaway redirect loops. This
	// is used only when the caller doesn't provide their own HTTP client.
	maxRedirects = 3

	// Arbitrary-but-small time limit to prevent UI "hangs" during a call.
	// This is used only when the caller doesn't provide their own HTTP client.
	callTimeout = 11 * time.Second

	// 4MB - to prevent abusive services from using loads of our memory.
	maxResponseBytes = 4 * 1024 * 1024
)

// Client issues calls against one service endpoint.
type Client struct {
	endpoint *url.URL
	hostname restmap.Hostname

	credsSrc restauth.CredentialsSource

	httpClient *http.Client
}

// ErrServiceRequest represents the error that occurs when a call fails for
// an unknown network problem.
type ErrServiceRequest struct {
	err error
}

func (e ErrServiceRequest) Error() string {
	wrappedError := fmt.Errorf("failed to request service endpoint: %w", e.err)
	return wrappedError.Error()
}

// Unwrap returns another [error] value representing the underlying problem.
//
// This is intended for use with the standard library errors package, and
// its "Is", "As", and "Unwrap" functions.
func (e ErrServiceRequest) Unwrap() error {
	return e.err
}

// New returns a client for the service rooted at the given endpoint URL.
//
// Use [WithHTTPClient] to specify an HTTP client to use when making calls.
// If no client is provided then one will be created automatically, but the
// details of its behavior are subject to change in future versions.
//
// Use [WithCredentials] to specify a [restauth.CredentialsSource] that can
// provide credentials to attach to outgoing calls. If none is provided then
// all requests are made anonymously.
func New(endpoint string, options ...Option) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint URL: %w", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return nil, fmt.Errorf("unsupported endpoint scheme %q", u.Scheme)
	}
	if u.User != nil {
		return nil, errors.New("embedded username/password information is not permitted in endpoint URLs")
	}
	if u.RawQuery != "" {
		// The whole query string belongs to the rendered request; a preset
		// query here would be silently replaced on every call.
		return nil, errors.New("endpoint URLs must not carry a query string; declare those parameters on the request schema instead")
	}
	hostname, err := restmap.ForHostname(u.Host)
	if err != nil {
		return nil, err
	}

	ret := &Client{
		endpoint: u,
		hostname: hostname,
	}
	for _, opt := range options {
		opt.applyOption(ret)
	}

	if ret.httpClient == nil {
		ret.httpClient = cleanhttp.DefaultPooledClient()
		ret.httpClient.Timeout = callTimeout
		ret.httpClient.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			if len(via) > maxRedirects {
				return errors.New("too many redirects") // this error will never actually be seen
			}
			return nil
		}
	}

	return ret, nil
}

// Endpoint returns a copy of the endpoint URL the client was built with.
func (c *Client) Endpoint() *url.URL {
	u := *c.endpoint
	return &u
}

// Hostname returns the normalized hostname credentials lookups are keyed by.
func (c *Client) Hostname() restmap.Hostname {
	return c.hostname
}

// CredentialsSource returns the credentials source associated with the
// receiver, or an empty credentials source if none is associated.
func (c *Client) CredentialsSource() restauth.CredentialsSource {
	if c.credsSrc == nil {
		// We'll return an empty one just to save the caller from having to
		// protect against the nil case, since this interface already allows
		// for the possibility of there being no credentials at all.
		return restauth.NoCredentials
	}
	return c.credsSrc
}

// Call performs one API operation: render the request into a query string,
// GET endpoint?query, parse the XML body, and map it against the given
// response schema.
//
// Callers should then consult the response's own Successful predicate to
// distinguish "HTTP succeeded but the API reported an error" from the
// HTTP and parse failures Call returns as errors.
func (c *Client) Call(ctx context.Context, req *request.Request, sch *schema.Schema) (*response.Response, error) {
	trace := callTraceFromContext(ctx)

	query, err := req.Render()
	if err != nil {
		return nil, err
	}
	callURL := *c.endpoint
	callURL.RawQuery = query

	ctx = trace.requestStart(ctx, &callURL)
	resp, err := c.call(ctx, &callURL, sch)
	if err != nil {
		trace.requestFailure(ctx, &callURL, err)
		return nil, err
	}
	trace.requestSuccess(ctx, &callURL)
	return resp, nil
}

func (c *Client) call(ctx context.Context, callURL *url.URL, sch *schema.Schema) (*response.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", callURL.String(), nil)
	if err != nil {
		// Should not get in here because everything about the request args is under our control.
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	req.Header.Set("Accept", "text/xml, application/xml")

	creds, err := c.CredentialsSource().ForHost(ctx, c.hostname)
	if err != nil {
		// If we fail to obtain credentials then we just treat it as anonymous
		creds = nil
	}
	if creds != nil {
		// Update the request to include credentials.
		creds.PrepareRequest(req)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ErrServiceRequest{err}
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != 200 {
		return nil, fmt.Errorf("failed to request service endpoint: %s", httpResp.Status)
	}

	contentType := httpResp.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("service returned a malformed Content-Type %q", contentType)
	}
	if !isXMLMediaType(mediaType) {
		return nil, fmt.Errorf("service returned an unsupported Content-Type %q", mediaType)
	}

	// This doesn't catch chunked encoding, because ContentLength is -1 in that case.
	if httpResp.ContentLength > maxResponseBytes {
		// Size limit here is not a contractual requirement and so we may
		// adjust it over time if we find a different limit is warranted.
		return nil, fmt.Errorf(
			"response is too large (got %d bytes; limit %d)",
			httpResp.ContentLength, maxResponseBytes,
		)
	}

	// If the response is using chunked encoding then we can't predict its
	// size, but we'll at least prevent reading the entire thing into memory.
	lr := io.LimitReader(httpResp.Body, maxResponseBytes)

	root, err := xmltree.Parse(lr)
	if err != nil {
		return nil, err
	}
	return response.Parse(sch, root)
}

func isXMLMediaType(mediaType string) bool {
	return mediaType == "text/xml" ||
		mediaType == "application/xml" ||
		strings.HasSuffix(mediaType, "+xml")
}
