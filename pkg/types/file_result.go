package types

import (
	"fmt"

	"rayline/internal/errors"
)

// Kind classifies an indexed entry.
type Kind string

const (
	KindApp      Kind = "App"
	KindFolder   Kind = "Folder"
	KindFile     Kind = "File"
	KindShortcut Kind = "Shortcut"
)

// FileResult is a single indexed entry as exchanged between the index engine,
// the palette and any renderer. The JSON shape is the wire contract.
type FileResult struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Path           string `json:"path"`
	Kind           Kind   `json:"kind,omitempty"`
	MetaLeft       string `json:"metaLeft,omitempty"`
	MetaRight      string `json:"metaRight,omitempty"`
	LastAccessTime int64  `json:"lastAccessTime,omitempty"`
}

// KindOrDefault returns the entry kind, falling back to File when unset.
// Kinds outside the known set are passed through unchanged.
func (r FileResult) KindOrDefault() Kind {
	if r.Kind == "" {
		return KindFile
	}
	return r.Kind
}

// Validate rejects entries the palette cannot deduplicate or display: those
// missing an id or a name.
func (r FileResult) Validate() error {
	if r.ID == "" {
		return errors.NewDataError("result has no id", "id", "")
	}
	if r.Name == "" {
		return errors.NewDataError("result has no name", "name", r.ID)
	}
	return nil
}

// String returns a human-readable representation
func (r FileResult) String() string {
	return fmt.Sprintf("%s [%s] %s", r.Name, r.KindOrDefault(), r.Path)
}
