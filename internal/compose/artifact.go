// Package compose holds the shared artifact plumbing used by the document
// and greeting-card assemblers: rendered PDF buffers, the minimum viable
// artifact size, and page orientation.
package compose

import (
	"errors"
	"fmt"
)

// MinArtifactBytes is the size floor for a rendered PDF. Anything at or
// below this is near-certain evidence of a blank or broken page.
const MinArtifactBytes = 1024

var ErrArtifactTooSmall = errors.New("rendered artifact below minimum size")

// Artifact is a named PDF byte buffer. It is produced by the page renderer
// or the image compositor, size-checked, packaged, and discarded — never
// persisted.
type Artifact struct {
	Name string
	Data []byte
}

func (a Artifact) Size() int { return len(a.Data) }

// CheckSize rejects artifacts at or below MinArtifactBytes.
func CheckSize(a Artifact) error {
	if a.Size() <= MinArtifactBytes {
		return fmt.Errorf("%w: %q is %d bytes", ErrArtifactTooSmall, a.Name, a.Size())
	}
	return nil
}

// Orientation of a rendered page surface.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// ParseOrientation falls back to portrait for empty or unknown input.
func ParseOrientation(s string) Orientation {
	if s == string(Landscape) {
		return Landscape
	}
	return Portrait
}
