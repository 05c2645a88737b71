// Package render turns announcement items into the HTML fragments embedded by
// the department portal page. The class names and inline styles are consumed
// by that page and must stay stable.
package render

import (
	"html"
	"strings"

	"github.com/nfu-tools/nfu-announcements/internal/announcement"
)

const (
	// ContainerOpen starts the wrapper around all fragments of one site.
	ContainerOpen = `<div class="scraped-list-container unified-announcements">` + "\n"
	// ContainerClose ends the wrapper.
	ContainerClose = "</div>\n"
)

// Must match what the portal page embeds, "border-buttom" typo included.
const itemTemplate = `
        <div class="scraped-post-item" style="border-buttom: 2px solid black; padding: 6px; margin-bottom: 5px; font-family: 'DFKai-sb','Times New Roman';">
          <div class="scraped-header">
            <span class="scraped-source">🏫 {source}</span>
            <span class="scraped-date">📅 {date}</span>
          </div>
          <div class="scraped-title">
            <a href="{link}" target="_blank">{title}</a>
          </div>
        </div>
        <hr class="announcement-separator">
        `

// Item renders a single announcement block followed by its separator.
// Text values are HTML-escaped.
func Item(item announcement.Item) string {
	r := strings.NewReplacer(
		"{source}", html.EscapeString(item.Source),
		"{date}", html.EscapeString(item.Date),
		"{link}", html.EscapeString(item.Link),
		"{title}", html.EscapeString(item.Title),
	)
	return r.Replace(itemTemplate)
}

// Items renders each item in order.
func Items(items []announcement.Item) []string {
	fragments := make([]string, 0, len(items))
	for _, item := range items {
		fragments = append(fragments, Item(item))
	}
	return fragments
}

// Document wraps fragments, in order, in the shared list container.
func Document(fragments []string) string {
	var b strings.Builder
	b.WriteString(ContainerOpen)
	for _, f := range fragments {
		b.WriteString(f)
	}
	b.WriteString(ContainerClose)
	return b.String()
}
