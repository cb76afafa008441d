// Package source abstracts where the catalog document is fetched from.
// The repository fingerprints whatever bytes a source returns; sources do
// not parse or validate.
package source

import "context"

// Source fetches the raw catalog document.
type Source interface {
	// Fetch returns the full document bytes.
	Fetch(ctx context.Context) ([]byte, error)
	// Describe identifies the source for logs and errors.
	Describe() string
}
