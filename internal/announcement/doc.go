// Package announcement defines the normalized record extracted from a
// department listing page.
package announcement
