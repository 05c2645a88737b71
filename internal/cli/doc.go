// Package cli implements the command-line interface for nfu-announcements.
//
// The root command runs the scrape batch over the compiled-in site registry
// and writes one HTML fragment file per site. The sites subcommand prints the
// registry as text or JSON.
package cli
