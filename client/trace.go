// Copyright (c) The OpenTofu Authors
// SPDX-License-Identifier: MPL-2.0

package client

import (
	"context"
	"net/url"
)

// CallTrace allows a caller of [Client.Call] to be notified about
// potentially-interesting events during a call, in case they want to
// generate log messages, telemetry traces, or similar.
//
// Use [ContextWithCallTrace] to derive a [context.Context] containing an
// instance of this type, and use that context when calling [Client.Call].
//
// All of the function-typed fields may either be left as nil or set to a
// function with the specified signature, unless otherwise stated. If nil
// then the call for the corresponding event will be skipped.
//
// "Start" functions return their own [context.Context] that should be
// either exactly the context given or a child of that context. This can be
// used to track per-request values such as distributed tracing spans.
type CallTrace struct {
	// RequestStart is called when a call is about to be made against a
	// specific URL.
	//
	// This should return a [context.Context] to be used for the HTTP
	// request, and it will then be passed as the context to either
	// RequestSuccess or RequestFailure once the call is complete to allow
	// terminating distributed tracing spans, etc.
	RequestStart func(ctx context.Context, callURL *url.URL) context.Context

	// RequestSuccess is called after a call is complete if the result was
	// successfully parsed.
	//
	// The given context has the same values as the one returned by the
	// earlier call to RequestStart.
	RequestSuccess func(ctx context.Context, callURL *url.URL)

	// RequestFailure is called after a call is complete if the request
	// encountered an error, whether in transport or while parsing the
	// response document.
	//
	// The given context has the same values as the one returned by the
	// earlier call to RequestStart.
	RequestFailure func(ctx context.Context, callURL *url.URL, err error)
}

func ContextWithCallTrace(parent context.Context, trace *CallTrace) context.Context {
	return context.WithValue(parent, callTraceKey, trace)
}

func (t *CallTrace) requestStart(ctx context.Context, callURL *url.URL) context.Context {
	if t.RequestStart == nil {
		return ctx
	}
	return t.RequestStart(ctx, callURL)
}

func (t *CallTrace) requestSuccess(ctx context.Context, callURL *url.URL) {
	if t.RequestSuccess == nil {
		return
	}
	t.RequestSuccess(ctx, callURL)
}

func (t *CallTrace) requestFailure(ctx context.Context, callURL *url.URL, err error) {
	if t.RequestFailure == nil {
		return
	}
	t.RequestFailure(ctx, callURL, err)
}

func callTraceFromContext(ctx context.Context) *CallTrace {
	trace, ok := ctx.Value(callTraceKey).(*CallTrace)
	if !ok {
		trace = noTrace
	}
	return trace
}

type callTraceKeyType string

const callTraceKey = callTraceKeyType("")

var noTrace = &CallTrace{}
