package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ivlev/sitereel/internal/project"
)

func sampleProject() project.Project {
	p := project.Project{Settings: project.DefaultSettings()}
	screen := project.Screen{ID: project.NewID(), Image: "hero.png", Width: 1440, Height: 900}
	p.Screens = append(p.Screens, screen)
	p.Scenes = append(p.Scenes, project.Scene{
		ID:       project.NewID(),
		ScreenID: screen.ID,
		Duration: 3000,
		Motion:   project.DefaultMotion(),
	})
	return p
}

func TestProjectRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.yaml")
	src := sampleProject()

	if err := WriteProject(src, path); err != nil {
		t.Fatalf("WriteProject failed: %v", err)
	}

	got, err := ReadProject(path)
	if err != nil {
		t.Fatalf("ReadProject failed: %v", err)
	}

	if len(got.Screens) != 1 || len(got.Scenes) != 1 {
		t.Fatalf("round trip lost data: %d screens, %d scenes", len(got.Screens), len(got.Scenes))
	}
	if got.Scenes[0].ScreenID != src.Scenes[0].ScreenID {
		t.Errorf("scene screen reference changed: %s != %s", got.Scenes[0].ScreenID, src.Scenes[0].ScreenID)
	}
	if got.Settings.Width != src.Settings.Width || got.Settings.FPS != src.Settings.FPS {
		t.Errorf("settings changed: %+v", got.Settings)
	}
}

func TestReadProjectRejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.yaml")
	if err := os.WriteFile(path, []byte("version: 99\nproject: {}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadProject(path); err == nil {
		t.Error("expected error for newer project file version")
	}
}

func TestReadProjectFillsDefaultSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.yaml")
	if err := os.WriteFile(path, []byte("version: 1\nproject: {}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadProject(path)
	if err != nil {
		t.Fatalf("ReadProject failed: %v", err)
	}
	def := project.DefaultSettings()
	if got.Settings.Width != def.Width || got.Settings.FPS != def.FPS {
		t.Errorf("expected default settings, got %+v", got.Settings)
	}
}
