// Package client is the resource gateway: the HTTP access layer between the
// storefront client and the remote REST API.
//
// # Overview
//
// HTTPClient talks to one fixed base address. Two RoundTripper interceptors
// wrap every request:
//  1. the outbound one attaches "Authorization: Bearer <token>" if and only
//     if the session holds a credential, plus an X-Request-ID;
//  2. the inbound one reacts to HTTP 401 by clearing the session and asking
//     the Navigator to move to the public entry point. The 401 is still
//     returned to the caller as ErrUnauthorized.
//
// Resource[T] exposes the uniform per-resource routes (list, create, update,
// delete, find by name) for products, categories, users and orders.
//
// # Error Handling
//
// Sentinel errors are matched with errors.Is: ErrUnavailable,
// ErrUnauthorized, ErrForbidden, ErrNotFound, ErrMalformedResponse,
// ErrNotSupported. A 400 response becomes a *common.ValidationError carrying
// the server's messages. Other statuses become *StatusError.
//
// There are no retries and no client-side timeouts; cancellation is up to
// the caller's context.
package client
