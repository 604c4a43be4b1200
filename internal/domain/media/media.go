// Package media provides the media item domain entity and type classification.
package media

import (
	"path/filepath"

	"github.com/google/uuid"
)

// Type represents the kind of content a source points to.
type Type int

const (
	TypeVideo Type = iota // Video content (default when undetectable)
	TypeImage             // Still image content
	TypeAudio             // Audio-only content
)

// String returns the string representation of the media type.
func (t Type) String() string {
	switch t {
	case TypeVideo:
		return "video"
	case TypeImage:
		return "image"
	case TypeAudio:
		return "audio"
	default:
		return "unknown"
	}
}

// ParseType parses a media type string.
func ParseType(s string) (Type, bool) {
	switch s {
	case "video":
		return TypeVideo, true
	case "image":
		return TypeImage, true
	case "audio":
		return TypeAudio, true
	default:
		return TypeVideo, false
	}
}

// Item represents a single entry in the playback queue.
// Items are owned by the queue store; panes and tabs hold value copies.
type Item struct {
	ID     string // Generated UUID
	Source string // File path or URL
	Type   Type   // Media type
	Title  string // Display title
	Played bool   // Set once, when the item finishes and is not re-queued
}

// Spec describes media to be added to the queue, before an ID is assigned.
type Spec struct {
	Source string
	Title  string
	Type   *Type // nil means infer from Source
}

// NewItem creates an Item from a Spec, assigning a fresh ID and
// inferring the media type and title when not supplied.
func NewItem(spec Spec) Item {
	t := Detect(spec.Source)
	if spec.Type != nil {
		t = *spec.Type
	}
	title := spec.Title
	if title == "" {
		title = filepath.Base(spec.Source)
	}
	return Item{
		ID:     uuid.New().String(),
		Source: spec.Source,
		Type:   t,
		Title:  title,
	}
}
