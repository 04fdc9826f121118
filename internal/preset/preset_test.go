package preset

import (
	"testing"

	"github.com/ivlev/sitereel/internal/project"
)

func TestStylesRegistered(t *testing.T) {
	names := Names()
	if len(names) < 3 {
		t.Fatalf("expected at least 3 styles, got %v", names)
	}
	for _, name := range []string{"showcase", "cascade", "orbit"} {
		if _, err := Lookup(name); err != nil {
			t.Errorf("style %q missing: %v", name, err)
		}
	}
	if _, err := Lookup("nope"); err == nil {
		t.Error("expected error for unknown style")
	}
}

func TestTransformsWithinLegalRanges(t *testing.T) {
	for _, name := range Names() {
		style, _ := Lookup(name)
		for index := 0; index < 6; index++ {
			for _, section := range []string{"hero", "features", "pricing", "footer", ""} {
				tr := style.GetTransform(index, 6, section).Clamp()
				if tr.RotateX < -60 || tr.RotateX > 60 || tr.RotateY < -60 || tr.RotateY > 60 {
					t.Errorf("%s: rotation out of range: %+v", name, tr)
				}
				if tr.RotateZ < -45 || tr.RotateZ > 45 {
					t.Errorf("%s: rotateZ out of range: %+v", name, tr)
				}
				if tr.Perspective < 500 || tr.Perspective > 2000 {
					t.Errorf("%s: perspective out of range: %+v", name, tr)
				}
				if tr.Scale < 0.3 || tr.Scale > 2 {
					t.Errorf("%s: scale out of range: %+v", name, tr)
				}

				m := style.GetMotion(index, 6, section)
				if m.EntryDuration <= 0 || m.ExitDuration <= 0 {
					t.Errorf("%s: nonpositive motion duration: %+v", name, m)
				}

				if d := style.GetDuration(section, 3000); d <= 0 {
					t.Errorf("%s: nonpositive duration for %q", name, section)
				}
			}
		}
	}
}

func TestStyleFunctionsArePure(t *testing.T) {
	style, _ := Lookup("cascade")
	a := style.GetTransform(3, 8, "pricing")
	b := style.GetTransform(3, 8, "pricing")
	if a != b {
		t.Errorf("GetTransform not deterministic: %+v vs %+v", a, b)
	}
}

func TestApplyPreservesIdentityAndOrder(t *testing.T) {
	p := project.Project{Settings: project.DefaultSettings()}
	for i := 0; i < 3; i++ {
		screen := project.Screen{ID: project.NewID(), Image: "x.png", SectionType: "features", Width: 100, Height: 100}
		p.Screens = append(p.Screens, screen)
		p.Scenes = append(p.Scenes, project.Scene{
			ID: project.NewID(), ScreenID: screen.ID, Duration: 3000, Order: i,
		})
	}

	style, _ := Lookup("orbit")
	out := Apply(p, style)

	for i, sc := range out.SortedScenes() {
		if sc.ID != p.Scenes[i].ID || sc.Order != i {
			t.Errorf("scene %d identity/order changed: %s/%d", i, sc.ID, sc.Order)
		}
		if sc.Camera == nil {
			t.Errorf("scene %d missing camera settings from style", i)
		}
	}
	if out.Settings.Camera.ZSpacing != 600 {
		t.Errorf("global camera override not applied: %+v", out.Settings.Camera)
	}
}
