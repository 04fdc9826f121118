package analyzer

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// ContrastDetector segments a full-page screenshot into horizontal
// sections using edge density. Web sections stack vertically, so the
// detector looks for quiet rows (whitespace between sections) in the
// Sobel edge profile rather than for free-form blocks.
type ContrastDetector struct {
	EdgeThreshold float64 // gradient magnitude threshold
	MinSectionPx  int     // minimum section height in pixels
	GapQuantile   float64 // rows below this share of peak density split sections
}

// NewContrastDetector creates a detector with default settings.
func NewContrastDetector() *ContrastDetector {
	return &ContrastDetector{
		EdgeThreshold: 30.0,
		MinSectionPx:  120,
		GapQuantile:   0.04,
	}
}

// DetectSections splits the screenshot into classified horizontal bands.
func (d *ContrastDetector) DetectSections(img image.Image) ([]Section, error) {
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, nil
	}

	gray := toGrayscale(img)
	profile := edgeRowProfile(gray, d.EdgeThreshold)
	smoothProfile(profile, 9)

	peak := 0.0
	for _, v := range profile {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		// Featureless page: one section covering everything.
		return []Section{{
			Bounds:     bounds,
			Type:       "content",
			Label:      "Content",
			Confidence: 0.3,
		}}, nil
	}

	bands := splitBands(profile, peak*d.GapQuantile, d.MinSectionPx)

	sections := make([]Section, 0, len(bands))
	for i, band := range bands {
		rect := image.Rect(bounds.Min.X, bounds.Min.Y+band[0], bounds.Max.X, bounds.Min.Y+band[1])
		kind, confidence := classifyBand(i, len(bands), band, bounds.Dy())
		sections = append(sections, Section{
			Bounds:     rect,
			Type:       kind,
			Label:      fmt.Sprintf("%s %d", titleFor(kind), i+1),
			Confidence: confidence,
		})
	}
	return sections, nil
}

// edgeRowProfile counts Sobel edge pixels per row.
func edgeRowProfile(gray *image.Gray, threshold float64) []float64 {
	bounds := gray.Bounds()
	profile := make([]float64, bounds.Dy())

	// Sobel kernels
	gx := [3][3]int{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	gy := [3][3]int{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}

	for y := bounds.Min.Y + 1; y < bounds.Max.Y-1; y++ {
		count := 0.0
		for x := bounds.Min.X + 1; x < bounds.Max.X-1; x++ {
			var sumX, sumY float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					pixel := float64(gray.GrayAt(x+kx, y+ky).Y)
					sumX += pixel * float64(gx[ky+1][kx+1])
					sumY += pixel * float64(gy[ky+1][kx+1])
				}
			}
			if math.Sqrt(sumX*sumX+sumY*sumY) > threshold {
				count++
			}
		}
		profile[y-bounds.Min.Y] = count
	}
	return profile
}

// smoothProfile applies a centered moving average in place.
func smoothProfile(profile []float64, window int) {
	if window < 2 || len(profile) == 0 {
		return
	}
	half := window / 2
	src := make([]float64, len(profile))
	copy(src, profile)
	for i := range profile {
		sum, n := 0.0, 0.0
		for j := i - half; j <= i+half; j++ {
			if j >= 0 && j < len(src) {
				sum += src[j]
				n++
			}
		}
		profile[i] = sum / n
	}
}

// splitBands cuts the profile at quiet rows and drops slivers shorter
// than minHeight by merging them into the previous band.
func splitBands(profile []float64, gapLevel float64, minHeight int) [][2]int {
	var bands [][2]int
	start := -1
	for y, v := range profile {
		if v > gapLevel {
			if start == -1 {
				start = y
			}
			continue
		}
		if start != -1 {
			bands = appendBand(bands, start, y, minHeight)
			start = -1
		}
	}
	if start != -1 {
		bands = appendBand(bands, start, len(profile), minHeight)
	}
	if len(bands) == 0 {
		bands = [][2]int{{0, len(profile)}}
	}
	return bands
}

func appendBand(bands [][2]int, start, end, minHeight int) [][2]int {
	if end-start < minHeight && len(bands) > 0 {
		bands[len(bands)-1][1] = end
		return bands
	}
	if end-start < minHeight && len(bands) == 0 {
		// Keep even a short first band; something is better than nothing.
		return [][2]int{{start, end}}
	}
	return append(bands, [2]int{start, end})
}

// classifyBand assigns a section type from vertical position. Position is
// a weak signal, so confidence stays moderate.
func classifyBand(index, total int, band [2]int, pageHeight int) (string, float64) {
	switch {
	case index == 0:
		return "hero", 0.8
	case index == total-1 && band[1] > pageHeight*9/10:
		return "footer", 0.7
	case index == total-2 && total >= 3:
		return "cta", 0.4
	default:
		return "content", 0.5
	}
}

func titleFor(kind string) string {
	switch kind {
	case "hero":
		return "Hero"
	case "footer":
		return "Footer"
	case "cta":
		return "Call to action"
	default:
		return "Section"
	}
}

// toGrayscale converts an image to grayscale.
func toGrayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return gray
}
