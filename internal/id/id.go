package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// New creates a prefixed opaque ID, e.g. "lnk-V1StGXR8_Z5jdHi6B-myT".
// NanoIDs are URL-safe and compact, which keeps them readable in API paths.
func New(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return prefix + "-" + id, nil
}
