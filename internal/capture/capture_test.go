package capture

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/ivlev/sitereel/internal/preset"
	"github.com/ivlev/sitereel/internal/project"
)

func pngDataURI(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func fixturePage(t *testing.T, sections int) *CapturedPage {
	page := &CapturedPage{
		URL:           "https://example.com",
		FullPageImage: pngDataURI(t, 120, 600),
		Width:         120,
		Height:        600,
		PageHeight:    600,
	}
	for i := 0; i < sections; i++ {
		page.Sections = append(page.Sections, DetectedSection{
			ID:                fmt.Sprintf("s%d", i),
			Type:              "content",
			Label:             fmt.Sprintf("Section %d", i+1),
			Confidence:        0.9,
			Bounds:            Bounds{X: 0, Y: i * 200, Width: 120, Height: 200},
			SuggestedDuration: 2500,
		})
	}
	return page
}

func TestParseCapturedPage(t *testing.T) {
	src := fixturePage(t, 2)
	data, _ := json.Marshal(src)

	page, err := ParseCapturedPage(data)
	if err != nil {
		t.Fatalf("ParseCapturedPage failed: %v", err)
	}
	if page.URL != src.URL || len(page.Sections) != 2 {
		t.Errorf("round trip mismatch: %+v", page)
	}

	if _, err := ParseCapturedPage([]byte(`{"width":0}`)); err == nil {
		t.Error("expected error for page without image")
	}
	if _, err := ParseCapturedPage([]byte(`not json`)); err == nil {
		t.Error("expected error for malformed payload")
	}
}

func TestDecodeDataURI(t *testing.T) {
	img, err := DecodeImageRef(pngDataURI(t, 32, 16))
	if err != nil {
		t.Fatalf("DecodeImageRef failed: %v", err)
	}
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 16 {
		t.Errorf("unexpected decoded size: %v", img.Bounds())
	}

	if _, err := DecodeImageRef("data:image/png;base64"); err == nil {
		t.Error("expected error for malformed data URI")
	}
	if _, err := DecodeImageRef(""); err == nil {
		t.Error("expected error for empty reference")
	}
}

func TestCropImageClamps(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	cropped := CropImage(img, 40, 40, 500, 500)
	if cropped.Bounds().Dx() != 60 || cropped.Bounds().Dy() != 60 {
		t.Errorf("expected clamped 60x60 crop, got %v", cropped.Bounds())
	}
}

func TestBuildProjectFromSections(t *testing.T) {
	page := fixturePage(t, 3)
	style, _ := preset.Lookup("showcase")

	p, err := BuildProject(page, style, project.DefaultSettings())
	if err != nil {
		t.Fatalf("BuildProject failed: %v", err)
	}

	if len(p.Screens) != 3 || len(p.Scenes) != 3 {
		t.Fatalf("expected 3 screens and scenes, got %d/%d", len(p.Screens), len(p.Scenes))
	}
	for i, sc := range p.SortedScenes() {
		if sc.Order != i {
			t.Errorf("scene %d has order %d", i, sc.Order)
		}
		if _, ok := p.ScreenByID(sc.ScreenID); !ok {
			t.Errorf("scene %d has dangling screen reference", i)
		}
		if sc.Duration <= 0 {
			t.Errorf("scene %d has nonpositive duration", i)
		}
	}
	// Style overrides must be applied project-wide.
	if p.Settings.Camera.ZSpacing != 900 {
		t.Errorf("style global camera not applied: %+v", p.Settings.Camera)
	}
}

func TestBuildProjectFallsBackToDetector(t *testing.T) {
	page := fixturePage(t, 0)
	style, _ := preset.Lookup("showcase")

	p, err := BuildProject(page, style, project.DefaultSettings())
	if err != nil {
		t.Fatalf("BuildProject with local detection failed: %v", err)
	}
	if len(p.Scenes) == 0 {
		t.Error("local detection produced no scenes")
	}
}
