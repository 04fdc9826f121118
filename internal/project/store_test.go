package project

import "testing"

func testProject(sceneCount int) Project {
	p := Project{Settings: DefaultSettings()}
	for i := 0; i < sceneCount; i++ {
		screen := Screen{ID: NewID(), Image: "s.png", Width: 1280, Height: 720}
		p.Screens = append(p.Screens, screen)
		p.Scenes = append(p.Scenes, Scene{
			ID:        NewID(),
			ScreenID:  screen.ID,
			Duration:  2000,
			Transform: DefaultTransform(),
			Motion:    DefaultMotion(),
			Order:     i,
		})
	}
	return p
}

func assertDenseOrder(t *testing.T, scenes []Scene) {
	t.Helper()
	seen := make(map[int]bool)
	for i, sc := range scenes {
		if sc.Order != i {
			t.Errorf("scene %d has order %d, want %d", i, sc.Order, i)
		}
		if seen[sc.Order] {
			t.Errorf("duplicate order %d", sc.Order)
		}
		seen[sc.Order] = true
	}
	for i := 0; i < len(scenes); i++ {
		if !seen[i] {
			t.Errorf("order %d missing", i)
		}
	}
}

func TestMoveSceneRenormalizesOrder(t *testing.T) {
	store := NewStore(testProject(4))
	scenes := store.Current().SortedScenes()

	moved := store.MoveScene(scenes[3].ID, 0)
	got := moved.SortedScenes()

	if got[0].ID != scenes[3].ID {
		t.Errorf("expected scene %s first, got %s", scenes[3].ID, got[0].ID)
	}
	assertDenseOrder(t, got)
}

func TestRemoveSceneRenormalizesOrder(t *testing.T) {
	store := NewStore(testProject(5))
	scenes := store.Current().SortedScenes()

	next := store.RemoveScene(scenes[2].ID)
	got := next.SortedScenes()

	if len(got) != 4 {
		t.Fatalf("expected 4 scenes, got %d", len(got))
	}
	assertDenseOrder(t, got)
}

func TestRemoveScreenDropsDanglingScenes(t *testing.T) {
	store := NewStore(testProject(3))
	p := store.Current()

	next := store.RemoveScreen(p.Screens[1].ID)

	if len(next.Screens) != 2 {
		t.Fatalf("expected 2 screens, got %d", len(next.Screens))
	}
	if len(next.Scenes) != 2 {
		t.Fatalf("expected 2 scenes, got %d", len(next.Scenes))
	}
	assertDenseOrder(t, next.SortedScenes())

	for _, sc := range next.Scenes {
		if _, ok := next.ScreenByID(sc.ScreenID); !ok {
			t.Errorf("scene %s still references removed screen", sc.ID)
		}
	}
}

func TestRenderableScenesExcludesDangling(t *testing.T) {
	p := testProject(2)
	p.Scenes = append(p.Scenes, Scene{ID: NewID(), ScreenID: "missing", Duration: 1000, Order: 2})

	renderable := p.RenderableScenes()
	if len(renderable) != 2 {
		t.Errorf("expected dangling scene excluded, got %d renderable", len(renderable))
	}
}

func TestTotalDurationRecomputed(t *testing.T) {
	store := NewStore(testProject(3))
	if total := store.Current().TotalDuration(); total != 6000 {
		t.Errorf("expected total 6000, got %d", total)
	}

	scenes := store.Current().SortedScenes()
	next, ok := store.UpdateScene(scenes[0].ID, func(s *Scene) { s.Duration = 500 })
	if !ok {
		t.Fatal("UpdateScene did not find scene")
	}
	if total := next.TotalDuration(); total != 4500 {
		t.Errorf("expected total 4500 after mutation, got %d", total)
	}
}

func TestUpdateScenePreservesIdentity(t *testing.T) {
	store := NewStore(testProject(2))
	scenes := store.Current().SortedScenes()

	next, _ := store.UpdateScene(scenes[1].ID, func(s *Scene) {
		s.ID = "hijacked"
		s.Order = 99
		s.Duration = 3000
	})
	got := next.SortedScenes()
	if got[1].ID != scenes[1].ID || got[1].Order != 1 {
		t.Errorf("identity not preserved: id=%s order=%d", got[1].ID, got[1].Order)
	}
	if got[1].Duration != 3000 {
		t.Errorf("duration mutation lost: %d", got[1].Duration)
	}
}

func TestAddSceneRejectsUnknownScreen(t *testing.T) {
	store := NewStore(testProject(1))
	_, err := store.AddScene(Scene{ID: NewID(), ScreenID: "nope", Duration: 1000})
	if err == nil {
		t.Error("expected error for unknown screen reference")
	}
}

func TestSnapshotIsolation(t *testing.T) {
	store := NewStore(testProject(2))
	snap := store.Current()
	snap.Scenes[0].Duration = 1

	if store.Current().Scenes[0].Duration != 2000 {
		t.Error("mutating a snapshot leaked into the store")
	}
}
