// Package output writes rendered announcement fragments to disk.
//
// Each site owns the files in the output directory whose names start with its
// domain name. Those files are removed before a new {domain}.html is written,
// so every run fully replaces the previous output. Files are UTF-8 with a
// byte-order mark.
package output
