// Package preset exposes named composition styles. A style is a bundle of
// pure functions mapping a scene's position in the timeline (and its
// section type) to transform, motion, duration and camera settings, plus
// optional project-wide camera/DOF overrides applied when the style is
// selected.
package preset

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/ivlev/sitereel/internal/project"
)

// Style is the preset collaborator surface.
type Style struct {
	Name        string
	Description string

	GetTransform      func(index, total int, sectionType string) project.IsometricTransform
	GetMotion         func(index, total int, sectionType string) project.MotionSettings
	GetDuration       func(sectionType string, baseDuration int) int
	GetCameraSettings func(index, total int, sectionType string) *project.SectionCameraSettings

	// Optional project-wide overrides.
	GlobalCamera *project.GlobalCameraSettings
	DOF          *project.DOFSettings
}

var styles = map[string]Style{}

func register(s Style) {
	styles[s.Name] = s
}

// Lookup returns a style by name.
func Lookup(name string) (Style, error) {
	s, ok := styles[name]
	if !ok {
		return Style{}, errors.Errorf("unknown style %q", name)
	}
	return s, nil
}

// Names lists the registered styles in stable order.
func Names() []string {
	out := make([]string, 0, len(styles))
	for name := range styles {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Apply rewrites a project's scenes and settings with the style's
// functions. Screen references, identities and order are preserved; only
// transform, motion, camera and duration change.
func Apply(p project.Project, style Style) project.Project {
	scenes := p.SortedScenes()
	total := len(scenes)
	for i := range scenes {
		sectionType := ""
		if screen, ok := p.ScreenByID(scenes[i].ScreenID); ok {
			sectionType = screen.SectionType
		}
		scenes[i].Transform = style.GetTransform(i, total, sectionType).Clamp()
		scenes[i].Motion = style.GetMotion(i, total, sectionType)
		scenes[i].Duration = style.GetDuration(sectionType, scenes[i].Duration)
		if style.GetCameraSettings != nil {
			scenes[i].Camera = style.GetCameraSettings(i, total, sectionType)
		}
	}
	p.Scenes = scenes

	if style.GlobalCamera != nil {
		p.Settings.Camera = *style.GlobalCamera
	}
	if style.DOF != nil {
		p.Settings.DOF = style.DOF.Clamp()
	}
	return p
}
