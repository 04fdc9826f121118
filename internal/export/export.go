package export

import (
	"context"
	"image"
	"math"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/sitereel/internal/capture"
	"github.com/ivlev/sitereel/internal/compositor"
	"github.com/ivlev/sitereel/internal/project"
	"github.com/ivlev/sitereel/internal/system"
)

// State is the export lifecycle stage.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateEncoding
	StateFinalizing
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateEncoding:
		return "encoding"
	case StateFinalizing:
		return "finalizing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// GIF format hard limits.
const (
	gifMaxFPS   = 15
	gifMaxWidth = 800
)

// Options selects the output parameters for one export run. Zero values
// fall back to the project settings.
type Options struct {
	Width   int
	Height  int
	FPS     int
	Quality Quality
	Format  Format

	// SourceURL, when set, is stamped into the corner as a QR code.
	SourceURL string

	// OnProgress receives a monotone percentage in [0, 100] and the
	// current stage. It is called from the exporting goroutine.
	OnProgress func(percent int, state State)
}

// Exporter runs the full pipeline: load images, synthesize frames in
// timeline order, encode, and finalize. The encoder and capability hooks
// are swappable so tests can run without ffmpeg.
type Exporter struct {
	newEncoder func(Format, Quality) Encoder
	transcode  func([]byte) ([]byte, error)
	probe      func() system.Capabilities

	mu    sync.Mutex
	state State
}

// New returns an exporter wired to the real encoders.
func New() *Exporter {
	return &Exporter{
		newEncoder: NewEncoder,
		transcode:  TranscodeToMP4,
		probe:      system.Probe,
	}
}

// State reports the current lifecycle stage.
func (e *Exporter) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Exporter) setState(s State) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

// Export renders the project into a finished blob and its MIME type.
//
// Frames are produced strictly in timeline order, one at a time. The loop
// yields after every frame and honors ctx cancellation at each yield
// point; a cancelled export releases the encoder and returns
// CancelledError with no partial output.
func (e *Exporter) Export(ctx context.Context, p project.Project, opts Options) ([]byte, string, error) {
	scenes := p.RenderableScenes()
	if len(scenes) == 0 {
		e.setState(StateFailed)
		return nil, "", EmptyInputError{}
	}

	opts = normalizeOptions(opts, p.Settings)
	if err := e.checkCapabilities(opts.Format); err != nil {
		e.setState(StateFailed)
		return nil, "", err
	}

	prog := &progressReporter{fn: opts.OnProgress}

	e.setState(StateLoading)
	prog.report(0, StateLoading)
	images, err := e.loadImages(ctx, p, scenes)
	if err != nil {
		e.setState(StateFailed)
		return nil, "", err
	}
	prog.report(10, StateLoading)

	// MP4 spends its tail on the transcode pass; the direct formats keep
	// almost the whole bar for frame synthesis.
	encodeEnd := 95
	if opts.Format == FormatMP4 {
		encodeEnd = 80
	}

	e.setState(StateEncoding)
	data, err := e.encode(ctx, scenes, images, p.Settings, opts, prog, encodeEnd)
	if err != nil {
		e.setState(StateFailed)
		return nil, "", err
	}

	e.setState(StateFinalizing)
	prog.report(encodeEnd, StateFinalizing)
	mime := opts.Format.MIME()
	if opts.Format == FormatMP4 {
		data, err = e.transcode(data)
		if err != nil {
			e.setState(StateFailed)
			return nil, "", err
		}
	}

	prog.report(100, StateDone)
	e.setState(StateDone)
	return data, mime, nil
}

// checkCapabilities fails fast before any frame work begins.
func (e *Exporter) checkCapabilities(format Format) error {
	if format == FormatGIF {
		return nil // encoded in-process
	}
	caps := e.probe()
	if !caps.FFmpeg {
		return UnsupportedFormatError{Format: format, Reason: "ffmpeg not found on this host"}
	}
	if !caps.VP9 {
		return UnsupportedFormatError{Format: format, Reason: "ffmpeg build lacks the libvpx-vp9 encoder"}
	}
	if format == FormatMP4 && !caps.H264 {
		return UnsupportedFormatError{Format: format, Reason: "ffmpeg build lacks the libx264 encoder"}
	}
	return nil
}

// loadImages decodes every referenced screen in parallel, failing fast on
// the first broken reference.
func (e *Exporter) loadImages(ctx context.Context, p project.Project, scenes []project.Scene) (map[string]image.Image, error) {
	images := make(map[string]image.Image, len(scenes))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	seen := make(map[string]bool, len(scenes))
	for _, sc := range scenes {
		if seen[sc.ScreenID] {
			continue
		}
		seen[sc.ScreenID] = true

		sc := sc
		screen, ok := p.ScreenByID(sc.ScreenID)
		if !ok {
			continue // RenderableScenes already filtered these
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return CancelledError{Err: err}
			}
			img, err := capture.DecodeImageRef(screen.Image)
			if err != nil {
				return ImageLoadError{SceneID: sc.ID, Ref: screen.Image, Err: err}
			}
			if c := screen.Crop; c != nil {
				img = capture.CropImage(img, c.X, c.Y, c.Width, c.Height)
			}
			mu.Lock()
			images[screen.ID] = img
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

// encode runs the frame loop and returns the encoder's raw blob.
func (e *Exporter) encode(ctx context.Context, scenes []project.Scene, images map[string]image.Image, settings project.Settings, opts Options, prog *progressReporter, encodeEnd int) ([]byte, error) {
	enc := e.newEncoder(opts.Format, opts.Quality)
	if err := enc.Begin(opts.Width, opts.Height, opts.FPS); err != nil {
		return nil, err
	}
	closed := false
	defer func() {
		// Release the encoder on error paths; success closes it below.
		if !closed {
			enc.Close()
		}
	}()

	renderer := &frameRenderer{scenes: scenes, images: images, settings: settings}
	rect := image.Rect(0, 0, opts.Width, opts.Height)
	frame := system.GetImage(rect)
	defer system.PutImage(frame)

	total := 0.0
	for _, sc := range scenes {
		total += float64(sc.Duration)
	}
	step := 1000 / float64(opts.FPS)
	frames := int(math.Ceil(total / step))
	if frames < 1 {
		frames = 1
	}

	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return nil, CancelledError{Err: err}
		}

		renderer.render(frame, float64(i)*step)
		if opts.SourceURL != "" {
			compositor.DrawQRWatermark(frame, opts.SourceURL)
		}
		if err := enc.WriteFrame(frame); err != nil {
			return nil, err
		}

		prog.report(10+(i+1)*(encodeEnd-10)/frames, StateEncoding)
		runtime.Gosched()
	}

	data, _, err := enc.Close()
	closed = true
	return data, err
}

// normalizeOptions fills zero values from the project settings and applies
// the GIF format caps: at most 15 fps and 800 px wide, the height scaled
// to keep the aspect ratio. Video dimensions are forced even for yuv420p.
func normalizeOptions(opts Options, settings project.Settings) Options {
	if opts.Width <= 0 {
		opts.Width = settings.Width
	}
	if opts.Height <= 0 {
		opts.Height = settings.Height
	}
	if opts.FPS <= 0 {
		opts.FPS = settings.FPS
	}
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Format == "" {
		opts.Format = FormatWebM
	}
	if opts.Quality == "" {
		opts.Quality = QualityMedium
	}

	if opts.Format == FormatGIF {
		if opts.FPS > gifMaxFPS {
			opts.FPS = gifMaxFPS
		}
		if opts.Width > gifMaxWidth {
			scale := float64(gifMaxWidth) / float64(opts.Width)
			opts.Height = int(float64(opts.Height)*scale + 0.5)
			opts.Width = gifMaxWidth
		}
	} else {
		opts.Width -= opts.Width % 2
		opts.Height -= opts.Height % 2
	}
	return opts
}

// progressReporter clamps progress into a monotone [0, 100] ramp.
type progressReporter struct {
	fn   func(int, State)
	last int
}

func (p *progressReporter) report(pct int, s State) {
	if pct < p.last {
		pct = p.last
	}
	if pct > 100 {
		pct = 100
	}
	p.last = pct
	if p.fn != nil {
		p.fn(pct, s)
	}
}
