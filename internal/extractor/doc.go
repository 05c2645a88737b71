// Package extractor pulls announcement items out of a listing page using the
// CSS selectors from a site config.
//
// Selection goes container, then items within the container, then title and
// date within each item. Empty outcomes are reported as a Reason value rather
// than an error, since they are routine for sites whose markup has drifted.
package extractor
