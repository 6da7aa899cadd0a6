package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/events-refresh/internal/cache"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// StatusResult contains data for the status command
type StatusResult struct {
	CheckedAt time.Time   `json:"checked_at"`
	SourceURL string      `json:"source_url"`
	File      *cache.Info `json:"file"`
}

// WriteStatus writes the result in the specified format
func WriteStatus(w io.Writer, result *StatusResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case FormatText:
		return writeStatusText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeStatusText(w io.Writer, result *StatusResult) error {
	fmt.Fprintf(w, "Source: %s\n", result.SourceURL)
	fmt.Fprintf(w, "File:   %s\n", result.File.Path)

	if !result.File.Exists {
		_, err := fmt.Fprintln(w, "Status: missing (run events-refresh to create it)")
		return err
	}

	age := result.CheckedAt.Sub(result.File.ModTime).Round(time.Second)
	fmt.Fprintf(w, "Size:   %d bytes\n", result.File.Size)
	_, err := fmt.Fprintf(w, "Updated: %s (%s ago)\n", result.File.ModTime.Format(time.RFC3339), age)
	return err
}
