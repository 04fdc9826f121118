package analyzer

import (
	"image"

	"github.com/pkg/errors"
)

// Section is a detected horizontal region of a page screenshot.
type Section struct {
	Bounds     image.Rectangle
	Type       string  // "hero", "features", "content", "footer", ...
	Label      string
	Confidence float64 // 0.0-1.0
}

// Detector is the interface for section detection strategies.
type Detector interface {
	DetectSections(img image.Image) ([]Section, error)
}

// NewDetector creates a detector based on the specified variant.
func NewDetector(variant string) (Detector, error) {
	switch variant {
	case "contrast", "":
		return NewContrastDetector(), nil
	case "dom":
		return nil, errors.New("DOM-based detector requires the capture service")
	default:
		return nil, errors.Errorf("unknown detector variant: %s", variant)
	}
}
