package analyzer

import (
	"image"
	"image/color"
	"testing"
)

// pageFixture paints a tall page with three busy bands separated by
// whitespace, roughly a hero, a content block and a footer.
func pageFixture() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 400, 1200))
	for y := 0; y < 1200; y++ {
		for x := 0; x < 400; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	noisy := func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < 400; x++ {
				if (x/8+y/8)%2 == 0 {
					img.SetGray(x, y, color.Gray{Y: 0})
				}
			}
		}
	}
	noisy(0, 350)
	noisy(480, 850)
	noisy(1050, 1200)
	return img
}

func TestDetectSectionsFindsBands(t *testing.T) {
	detector := NewContrastDetector()
	sections, err := detector.DetectSections(pageFixture())
	if err != nil {
		t.Fatalf("DetectSections failed: %v", err)
	}
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}

	if sections[0].Type != "hero" {
		t.Errorf("first section should be hero, got %s", sections[0].Type)
	}
	if sections[len(sections)-1].Type != "footer" {
		t.Errorf("last section should be footer, got %s", sections[len(sections)-1].Type)
	}

	for i, s := range sections {
		if s.Confidence <= 0 || s.Confidence > 1 {
			t.Errorf("section %d confidence %.2f out of range", i, s.Confidence)
		}
		if s.Bounds.Dy() < 100 {
			t.Errorf("section %d too short: %v", i, s.Bounds)
		}
		t.Logf("Section %d: %v (type: %s, confidence: %.2f)", i, s.Bounds, s.Type, s.Confidence)
	}
}

func TestDetectSectionsFeaturelessPage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 200, 600))
	for y := 0; y < 600; y++ {
		for x := 0; x < 200; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	sections, err := NewContrastDetector().DetectSections(img)
	if err != nil {
		t.Fatalf("DetectSections failed: %v", err)
	}
	if len(sections) != 1 || sections[0].Type != "content" {
		t.Errorf("featureless page should yield one content section, got %+v", sections)
	}
}

func TestDetectorRegistry(t *testing.T) {
	tests := []struct {
		variant string
		wantErr bool
	}{
		{"contrast", false},
		{"", false},
		{"dom", true},
		{"invalid", true},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			detector, err := NewDetector(tt.variant)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if detector == nil {
				t.Error("expected detector, got nil")
			}
		})
	}
}
