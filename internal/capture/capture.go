// Package capture defines the input contract with the screenshot/section
// detection service and assembles projects from captured pages.
package capture

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Bounds is a section's rectangle in page CSS pixels.
type Bounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DetectedSection is one classified region of a captured page.
type DetectedSection struct {
	ID                string  `json:"id"`
	Type              string  `json:"type"` // hero, features, pricing, testimonials, cta, footer, content
	Label             string  `json:"label"`
	Confidence        float64 `json:"confidence"`
	Bounds            Bounds  `json:"bounds"`
	Thumbnail         string  `json:"thumbnail,omitempty"`
	SectionImage      string  `json:"sectionImage,omitempty"`
	PixelBounds       *Bounds `json:"pixelBounds,omitempty"`
	SuggestedDuration int     `json:"suggestedDuration"` // ms
}

// CapturedPage is the capture service's output for one URL.
type CapturedPage struct {
	URL               string            `json:"url"`
	FullPageImage     string            `json:"fullPageImage"` // data URI
	Thumbnail         string            `json:"thumbnail"`     // data URI
	Width             int               `json:"width"`
	Height            int               `json:"height"`
	PageHeight        int               `json:"pageHeight"`
	DeviceScaleFactor float64           `json:"deviceScaleFactor"`
	Sections          []DetectedSection `json:"sections"`
}

// ParseCapturedPage decodes a capture service payload.
func ParseCapturedPage(data []byte) (*CapturedPage, error) {
	var page CapturedPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, errors.Wrap(err, "parse captured page")
	}
	if page.FullPageImage == "" {
		return nil, errors.New("captured page has no full-page image")
	}
	if page.Width <= 0 || page.Height <= 0 {
		return nil, errors.Errorf("captured page has invalid dimensions %dx%d", page.Width, page.Height)
	}
	return &page, nil
}
