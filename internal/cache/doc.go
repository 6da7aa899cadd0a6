// Package cache manages the local file that holds the most recently fetched events document.
//
// The file is overwritten unconditionally on every write. The parent directory is
// expected to exist already; it is never created here, so a misconfigured path fails
// loudly instead of silently writing somewhere the site generator does not read.
package cache
