package capture

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/ivlev/sitereel/internal/analyzer"
	"github.com/ivlev/sitereel/internal/preset"
	"github.com/ivlev/sitereel/internal/project"
)

const defaultSceneDurationMs = 3000

// BuildProject turns a captured page into a renderable project using the
// given style. Pages without pre-detected sections fall back to the local
// contrast detector over the full-page screenshot.
func BuildProject(page *CapturedPage, style preset.Style, settings project.Settings) (project.Project, error) {
	if page == nil {
		return project.Project{}, errors.New("nil captured page")
	}

	sections := page.Sections
	if len(sections) == 0 {
		detected, err := detectLocally(page)
		if err != nil {
			return project.Project{}, err
		}
		sections = detected
	}
	if len(sections) == 0 {
		return project.Project{}, errors.New("captured page yielded no sections")
	}

	p := project.Project{Settings: settings}
	for i, section := range sections {
		screen := project.Screen{
			ID:           project.NewID(),
			SourceURL:    page.URL,
			ScrollOffset: section.Bounds.Y,
			Image:        page.FullPageImage,
			Thumbnail:    section.Thumbnail,
			Width:        section.Bounds.Width,
			Height:       section.Bounds.Height,
			SectionType:  section.Type,
			Crop: &project.CropRect{
				X:      section.Bounds.X,
				Y:      section.Bounds.Y,
				Width:  section.Bounds.Width,
				Height: section.Bounds.Height,
			},
		}
		// A dedicated section render beats cropping the full page.
		if section.SectionImage != "" {
			screen.Image = section.SectionImage
			screen.Crop = nil
		}
		p.Screens = append(p.Screens, screen)

		duration := section.SuggestedDuration
		if duration <= 0 {
			duration = defaultSceneDurationMs
		}
		p.Scenes = append(p.Scenes, project.Scene{
			ID:         project.NewID(),
			ScreenID:   screen.ID,
			Duration:   duration,
			Transform:  project.DefaultTransform(),
			Motion:     project.DefaultMotion(),
			Transition: project.TransitionSettings{Type: project.TransitionFade, Duration: 300},
			Order:      i,
		})
	}

	return preset.Apply(p, style), nil
}

// detectLocally runs the contrast detector over the full-page image and
// shapes the result as capture sections.
func detectLocally(page *CapturedPage) ([]DetectedSection, error) {
	img, err := DecodeImageRef(page.FullPageImage)
	if err != nil {
		return nil, errors.Wrap(err, "decode full-page image for detection")
	}

	found, err := analyzer.NewContrastDetector().DetectSections(img)
	if err != nil {
		return nil, errors.Wrap(err, "detect sections")
	}

	sections := make([]DetectedSection, 0, len(found))
	for i, s := range found {
		sections = append(sections, DetectedSection{
			ID:         fmt.Sprintf("local-%d", i+1),
			Type:       s.Type,
			Label:      s.Label,
			Confidence: s.Confidence,
			Bounds: Bounds{
				X:      s.Bounds.Min.X,
				Y:      s.Bounds.Min.Y,
				Width:  s.Bounds.Dx(),
				Height: s.Bounds.Dy(),
			},
			SuggestedDuration: defaultSceneDurationMs,
		})
	}
	return sections, nil
}
