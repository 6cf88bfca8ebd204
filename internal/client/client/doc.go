// Package client talks to the clinic REST backend.
//
// # Overview
//
// The package provides:
//  1. A transport contract (Transport) and its HTTP implementation
//     (HTTPClient), which attaches the bearer token for the call's realm,
//     tags each request with an X-Request-ID, optionally wraps the body in the
//     encrypted {"data": ...} envelope and unwraps an encrypted response.
//  2. DecodePage, which normalises the list envelopes the backend returns
//     (bare arrays, {data, totalCount} and {elements, totalCount, totalPages,
//     page}) into one listing.Page.
//  3. Resource, a generic CRUD client over one endpoint, and the Endpoints
//     catalog describing every resource the console manages.
//
// # Error Handling
//
// HTTP and transport failures map to sentinel errors matched with errors.Is:
// ErrUnauthorized (401/403), ErrNotFound (404), ErrUnavailable (5xx,
// timeouts, connection failures). Other non-2xx replies are *APIError. A
// missing token yields ErrNoToken before anything is sent. An encrypted
// response that fails to decrypt is an error even on HTTP 200.
//
// Nothing is retried.
package client
