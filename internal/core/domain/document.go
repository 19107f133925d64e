package domain

import "time"

// DocumentDigest records the content digest of a generated document.
type DocumentDigest struct {
	Path      string    `json:"path,omitzero"`
	Digest    string    `json:"digest,omitzero"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}

// Document is a rendered file to write below an output root.
type Document struct {
	// Path is relative to the output root.
	Path    string
	Content []byte
}
