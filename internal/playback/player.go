// Package playback runs the interactive preview: a repeating scheduled
// callback advances a timeline cursor by wall-clock deltas and reports the
// resolved position to the host. It shares nothing mutable with an export
// in progress, only the read-only scene list.
package playback

import (
	"sync"
	"time"

	"github.com/ivlev/sitereel/internal/project"
	"github.com/ivlev/sitereel/internal/timeline"
)

// Scheduler queues the next preview tick. The host decides the cadence;
// the player only asks to be called again.
type Scheduler interface {
	ScheduleNextTick(fn func())
}

// FrameFunc receives the resolved position and the raw cursor time for
// every advanced frame.
type FrameFunc func(pos timeline.Position, timeMs float64)

// Player is the preview cursor. All methods are safe for concurrent use.
type Player struct {
	sched   Scheduler
	onFrame FrameFunc
	now     func() time.Time

	mu       sync.Mutex
	scenes   []project.Scene
	cursor   float64 // ms
	playing  bool
	loop     bool
	lastTick time.Time
}

// NewPlayer builds a paused player at time zero.
func NewPlayer(scenes []project.Scene, sched Scheduler, onFrame FrameFunc) *Player {
	return &Player{
		sched:   sched,
		onFrame: onFrame,
		now:     time.Now,
		scenes:  scenes,
	}
}

// SetScenes swaps the scene list, clamping the cursor into the new range.
func (p *Player) SetScenes(scenes []project.Scene) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scenes = scenes
	if total := totalMs(scenes); p.cursor > total {
		p.cursor = total
	}
}

// SetLoop controls wrap-around at the end of the timeline.
func (p *Player) SetLoop(loop bool) {
	p.mu.Lock()
	p.loop = loop
	p.mu.Unlock()
}

// Playing reports whether the cursor is advancing.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// CurrentTime returns the cursor position in milliseconds.
func (p *Player) CurrentTime() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor
}

// Play starts advancing the cursor. Starting at the very end rewinds to
// zero first, so a replay needs no explicit seek.
func (p *Player) Play() {
	p.mu.Lock()
	if p.playing || len(p.scenes) == 0 {
		p.mu.Unlock()
		return
	}
	if p.cursor >= totalMs(p.scenes) {
		p.cursor = 0
	}
	p.playing = true
	p.lastTick = p.now()
	p.mu.Unlock()

	p.sched.ScheduleNextTick(p.tick)
}

// Pause freezes the cursor in place.
func (p *Player) Pause() {
	p.mu.Lock()
	p.playing = false
	p.mu.Unlock()
}

// Seek jumps the cursor to t milliseconds, clamped into the timeline, and
// reports the frame at the new position even while paused.
func (p *Player) Seek(t float64) {
	p.mu.Lock()
	if t < 0 {
		t = 0
	}
	if total := totalMs(p.scenes); t > total {
		t = total
	}
	p.cursor = t
	p.lastTick = p.now()
	scenes := p.scenes
	cursor := p.cursor
	p.mu.Unlock()

	p.emit(scenes, cursor)
}

// tick advances the cursor by the elapsed wall-clock delta since the
// previous tick and schedules the next one while still playing.
func (p *Player) tick() {
	p.mu.Lock()
	if !p.playing {
		p.mu.Unlock()
		return
	}

	now := p.now()
	delta := now.Sub(p.lastTick).Seconds() * 1000
	p.lastTick = now
	p.cursor += delta

	total := totalMs(p.scenes)
	if p.cursor >= total {
		if p.loop && total > 0 {
			for p.cursor >= total {
				p.cursor -= total
			}
		} else {
			p.cursor = total
			p.playing = false
		}
	}

	scenes := p.scenes
	cursor := p.cursor
	playing := p.playing
	p.mu.Unlock()

	p.emit(scenes, cursor)
	if playing {
		p.sched.ScheduleNextTick(p.tick)
	}
}

func (p *Player) emit(scenes []project.Scene, cursor float64) {
	if p.onFrame == nil {
		return
	}
	if pos, ok := timeline.Resolve(scenes, cursor); ok {
		p.onFrame(pos, cursor)
	}
}

func totalMs(scenes []project.Scene) float64 {
	total := 0.0
	for _, sc := range scenes {
		total += float64(sc.Duration)
	}
	return total
}
