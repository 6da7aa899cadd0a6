// Package refresh fetches the remote events document and caches it on disk for the site build.
//
// FetchAndCacheEvents is the whole operation: one GET, read the full body, overwrite
// the destination file with it. Nothing is written until the body has been received
// completely, so a network failure leaves the previous file untouched.
//
// By default the body is passed through as-is regardless of status code or content.
// Options can enable three independent hardening stages: rejecting non-2xx
// responses, checking that the body is well-formed JSON, and replacing the file
// atomically via rename.
//
// Hook adapts the operation to a host build's initialization phase:
//
//	hook := refresh.NewHook(refresh.Options{})
//	if err := hook.Run(); err != nil {
//	    // fail the build
//	}
package refresh
