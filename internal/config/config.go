package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/sitereel/internal/project"
)

// Config carries one CLI invocation's worth of knobs.
type Config struct {
	InputPath    string // capture JSON, project YAML, or image file
	OutputPath   string
	ProjectPath  string // optional: save the assembled project here
	Style        string
	Format       string // webm, mp4, gif
	Width        int
	Height       int
	FPS          int
	Quality      string // low, medium, high, ultra
	SourceURL    string // embedded as a QR watermark when set
	ShowStats    bool
	BuildVersion string
}

// ProjectFile is the on-disk YAML document for a saved project.
type ProjectFile struct {
	Version int             `yaml:"version"`
	Project project.Project `yaml:"project"`
}

const projectFileVersion = 1

// WriteProject saves a project to a YAML file.
func WriteProject(p project.Project, path string) error {
	doc := ProjectFile{Version: projectFileVersion, Project: p}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return errors.Wrap(err, "marshal project")
	}

	return os.WriteFile(path, data, 0644)
}

// ReadProject loads a project from a YAML file.
func ReadProject(path string) (project.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return project.Project{}, err
	}

	var doc ProjectFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return project.Project{}, errors.Wrap(err, "parse project file")
	}
	if doc.Version > projectFileVersion {
		return project.Project{}, errors.Errorf("project file version %d is newer than supported %d", doc.Version, projectFileVersion)
	}
	if doc.Project.Settings.Width <= 0 || doc.Project.Settings.Height <= 0 {
		doc.Project.Settings = project.DefaultSettings()
	}

	return doc.Project, nil
}
