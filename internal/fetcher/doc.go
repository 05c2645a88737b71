// Package fetcher downloads announcement listing pages.
//
// Every request carries the same browser-like User-Agent and a 15 second
// timeout. Certificate verification can be switched off per request for the
// university hosts whose TLS chains do not validate. Response bodies are
// always decoded as UTF-8, whatever charset the server declares.
package fetcher
