package announcement

import "strings"

// NoDate is shown in place of a date when an item has none.
const NoDate = "未提供日期"

// NoLink is used when the title element carries no href.
const NoLink = "#"

// Item is one announcement scraped from a listing page. Items only live for
// the duration of a run; they are rendered and then discarded.
type Item struct {
	Title  string `json:"title"`
	Link   string `json:"link"`
	Date   string `json:"date"`
	Source string `json:"source"`
}

// New builds an Item, trimming title and date and filling in the link and
// date placeholders when they are missing.
func New(source, title, link string, hasLink bool, date string, hasDate bool) Item {
	item := Item{
		Title:  strings.TrimSpace(title),
		Link:   link,
		Date:   NoDate,
		Source: source,
	}
	if !hasLink {
		item.Link = NoLink
	}
	if hasDate {
		item.Date = strings.TrimSpace(date)
	}
	return item
}

// HasDate reports whether the item carries a real date rather than the
// placeholder.
func (i Item) HasDate() bool {
	return i.Date != NoDate
}
