package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/nfu-tools/nfu-announcements/internal/site"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ParseOutputFormat validates an output format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", s)
	}
}

// SiteEntry is one registry row as printed by the sites command.
type SiteEntry struct {
	site.Config
	VerifyTLS bool `json:"verify_tls"`
}

// WriteSites writes the registry in the specified format
func WriteSites(w io.Writer, registry *site.Registry, format OutputFormat) error {
	sites := registry.Sites()
	entries := make([]SiteEntry, 0, len(sites))
	for _, c := range sites {
		entries = append(entries, SiteEntry{Config: c, VerifyTLS: registry.VerifyTLS(c.URL)})
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, entries)
	case FormatText:
		return writeText(w, entries)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the registry as JSON
func writeJSON(w io.Writer, entries []SiteEntry) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(entries)
}

// writeText outputs the registry as an aligned table
func writeText(w io.Writer, entries []SiteEntry) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No sites configured.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SITE\tMAX\tTLS\tURL")
	for _, e := range entries {
		tls := "verify"
		if !e.VerifyTLS {
			tls = "skip"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", e.DomainName, e.MaxItems, tls, e.URL)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTotal: %d sites\n", len(entries))
	return nil
}
