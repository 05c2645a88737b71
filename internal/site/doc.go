// Package site holds the fixed registry of department websites to scrape.
//
// Each entry pairs a listing URL with the CSS selectors needed to find the
// announcement container, the individual items inside it, and the title and
// date of each item. The default registry is compiled into the binary from
// sites.yaml and is never mutated at runtime.
package site
