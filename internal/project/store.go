package project

import (
	"sync"

	"github.com/pkg/errors"
)

// Store holds the current project snapshot. Every mutation builds a new
// Project value; consumers always receive the snapshot as a parameter and
// never read shared mutable state, so resolvers stay deterministic.
type Store struct {
	mu       sync.RWMutex
	current  Project
	selected string // selected scene id, cleared when the scene goes away
}

// NewStore wraps an initial project snapshot.
func NewStore(p Project) *Store {
	p.Scenes = renormalize(p.SortedScenes())
	return &Store{current: p}
}

// Current returns the latest snapshot by value.
func (s *Store) Current() Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProject(s.current)
}

// Selected returns the selected scene id, or "" when nothing is selected.
func (s *Store) Selected() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// Select marks a scene as selected. Selecting an unknown id is a no-op.
func (s *Store) Select(sceneID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sc := range s.current.Scenes {
		if sc.ID == sceneID {
			s.selected = sceneID
			return
		}
	}
}

// AddScreen appends a screen to the project.
func (s *Store) AddScreen(screen Screen) Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := cloneProject(s.current)
	next.Screens = append(next.Screens, screen)
	s.current = next
	return cloneProject(next)
}

// RemoveScreen deletes a screen and all scenes referencing it, then
// renormalizes scene order.
func (s *Store) RemoveScreen(screenID string) Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := cloneProject(s.current)

	screens := next.Screens[:0]
	for _, sc := range next.Screens {
		if sc.ID != screenID {
			screens = append(screens, sc)
		}
	}
	next.Screens = screens

	scenes := make([]Scene, 0, len(next.Scenes))
	for _, sc := range next.SortedScenes() {
		if sc.ScreenID != screenID {
			scenes = append(scenes, sc)
		} else if s.selected == sc.ID {
			s.selected = ""
		}
	}
	next.Scenes = renormalize(scenes)
	s.current = next
	return cloneProject(next)
}

// AddScene appends a scene at the end of the timeline.
func (s *Store) AddScene(scene Scene) (Project, error) {
	if scene.Duration <= 0 {
		return Project{}, errors.New("scene duration must be positive")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.current.ScreenByID(scene.ScreenID); !ok {
		return Project{}, errors.Errorf("scene references unknown screen %q", scene.ScreenID)
	}
	next := cloneProject(s.current)
	scene.Order = len(next.Scenes)
	next.Scenes = append(next.SortedScenes(), scene)
	next.Scenes = renormalize(next.Scenes)
	s.current = next
	return cloneProject(next), nil
}

// RemoveScene deletes a scene and renormalizes the remaining orders to a
// dense zero-based permutation. A dangling selection is cleared.
func (s *Store) RemoveScene(sceneID string) Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := cloneProject(s.current)
	scenes := make([]Scene, 0, len(next.Scenes))
	for _, sc := range next.SortedScenes() {
		if sc.ID != sceneID {
			scenes = append(scenes, sc)
		}
	}
	next.Scenes = renormalize(scenes)
	if s.selected == sceneID {
		s.selected = ""
	}
	s.current = next
	return cloneProject(next)
}

// MoveScene moves a scene to a new timeline position and renormalizes
// every order value.
func (s *Store) MoveScene(sceneID string, toIndex int) Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := cloneProject(s.current)
	scenes := next.SortedScenes()

	from := -1
	for i, sc := range scenes {
		if sc.ID == sceneID {
			from = i
			break
		}
	}
	if from == -1 {
		return cloneProject(next)
	}
	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex >= len(scenes) {
		toIndex = len(scenes) - 1
	}

	moved := scenes[from]
	scenes = append(scenes[:from], scenes[from+1:]...)
	scenes = append(scenes[:toIndex], append([]Scene{moved}, scenes[toIndex:]...)...)

	next.Scenes = renormalize(scenes)
	s.current = next
	return cloneProject(next)
}

// UpdateScene applies a field-level mutation to one scene. The mutator
// receives a copy; identity and order are preserved regardless of what it
// does to them.
func (s *Store) UpdateScene(sceneID string, mutate func(*Scene)) (Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := cloneProject(s.current)
	found := false
	for i := range next.Scenes {
		if next.Scenes[i].ID == sceneID {
			id, order := next.Scenes[i].ID, next.Scenes[i].Order
			mutate(&next.Scenes[i])
			next.Scenes[i].ID = id
			next.Scenes[i].Order = order
			if next.Scenes[i].Duration <= 0 {
				next.Scenes[i].Duration = 1
			}
			found = true
			break
		}
	}
	if found {
		s.current = next
	}
	return cloneProject(next), found
}

// UpdateSettings replaces the settings bundle.
func (s *Store) UpdateSettings(settings Settings) Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := cloneProject(s.current)
	settings.Camera.Perspective = clampF(settings.Camera.Perspective, 500, 2000)
	settings.DOF = settings.DOF.Clamp()
	next.Settings = settings
	s.current = next
	return cloneProject(next)
}

// renormalize rewrites Order to the dense permutation [0, len) matching
// slice positions. Invariant: holds after every mutation.
func renormalize(scenes []Scene) []Scene {
	for i := range scenes {
		scenes[i].Order = i
	}
	return scenes
}

func cloneProject(p Project) Project {
	out := p
	out.Screens = make([]Screen, len(p.Screens))
	copy(out.Screens, p.Screens)
	for i := range out.Screens {
		if c := p.Screens[i].Crop; c != nil {
			cc := *c
			out.Screens[i].Crop = &cc
		}
	}
	out.Scenes = make([]Scene, len(p.Scenes))
	copy(out.Scenes, p.Scenes)
	for i := range out.Scenes {
		if c := p.Scenes[i].Camera; c != nil {
			cc := *c
			out.Scenes[i].Camera = &cc
		}
		if z := p.Scenes[i].ZDepth; z != nil {
			zz := *z
			out.Scenes[i].ZDepth = &zz
		}
	}
	return out
}
