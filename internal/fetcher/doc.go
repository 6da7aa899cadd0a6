// Package fetcher performs the single HTTP GET that retrieves the remote events document.
//
// The body is read completely into memory before Fetch returns, so a failed or
// interrupted transfer never reaches the caller's write step. The payload is treated
// as opaque bytes: no parsing, no content-type check, and no status-code check.
// Status and content type are reported on the Response for callers that want them.
package fetcher
