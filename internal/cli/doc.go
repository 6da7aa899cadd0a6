// Package cli implements the command-line interface for events-refresh.
//
// The root command performs one refresh: it loads configuration, fetches the
// remote events document and overwrites the local data file. The status
// subcommand reports on the local file in text or JSON. Any failure exits with
// ExitError so the surrounding site build stops.
package cli
