// Package pipeline runs the scrape batch: for every site in the registry,
// in order, fetch the listing page, extract announcements, render them and
// write the site's output file.
//
// A failure at any stage only affects the site it happened on. The runner
// pauses for a fixed delay after every site, successful or not, so the
// department servers see at most one request every couple of seconds.
package pipeline
