package export

import (
	"bytes"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"sort"

	"github.com/pkg/errors"

	"github.com/ivlev/sitereel/internal/system"
)

// gifMemoryHeadroom is the fraction of available memory the accumulated
// frame buffer may occupy before the encode aborts.
const gifMemoryHeadroom = 0.5

// gifEncoder accumulates quantized frames and flushes them as one animated
// GIF. Unlike the WebM path everything stays in memory until Close, so the
// encoder watches the frame budget against available system memory.
type gifEncoder struct {
	level int // palette sampling stride, lower is better

	anim     *gif.GIF
	delay    int // hundredths of a second per frame
	pal      color.Palette
	budget   uint64
	accum    uint64
	perFrame uint64
	started  bool
}

func newGIFEncoder(level int) *gifEncoder {
	if level < 1 {
		level = 1
	}
	return &gifEncoder{level: level}
}

func (e *gifEncoder) Begin(width, height, fps int) error {
	if fps <= 0 {
		fps = 15
	}
	e.delay = 100 / fps
	if e.delay < 2 {
		e.delay = 2
	}
	e.anim = &gif.GIF{}
	e.perFrame = uint64(width * height) // one palette index byte per pixel
	if avail := system.AvailableMemory(); avail > 0 {
		e.budget = uint64(float64(avail) * gifMemoryHeadroom)
	}
	e.started = true
	return nil
}

func (e *gifEncoder) WriteFrame(frame *image.RGBA) error {
	if !e.started {
		return errors.New("gif encoder not started")
	}
	if e.budget > 0 && e.accum+e.perFrame > e.budget {
		return errors.Errorf("gif frame buffer exceeds memory budget after %d frames; lower fps, duration or dimensions", len(e.anim.Image))
	}

	// The palette from the first frame is reused for the rest. Page
	// sections share one color scheme, so a single adaptive palette holds
	// up and re-quantizing per frame would triple the encode cost.
	if e.pal == nil {
		e.pal = adaptivePalette(frame, e.level)
	}

	paletted := image.NewPaletted(frame.Bounds(), e.pal)
	draw.FloydSteinberg.Draw(paletted, frame.Bounds(), frame, frame.Bounds().Min)

	e.anim.Image = append(e.anim.Image, paletted)
	e.anim.Delay = append(e.anim.Delay, e.delay)
	e.accum += e.perFrame
	return nil
}

func (e *gifEncoder) Close() ([]byte, string, error) {
	if !e.started {
		return nil, "", errors.New("gif encoder not started")
	}
	anim := e.anim
	e.anim = nil
	e.started = false

	if anim == nil || len(anim.Image) == 0 {
		return nil, "", errors.New("gif encode produced no frames")
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, "", errors.Wrap(err, "gif encode")
	}
	return buf.Bytes(), FormatGIF.MIME(), nil
}

// adaptivePalette builds up to 256 colors from a popularity histogram over
// a 4-bit-per-channel color cube, sampling every level-th pixel. Falls back
// to the fixed Plan9 palette when the histogram comes out degenerate.
func adaptivePalette(img *image.RGBA, level int) color.Palette {
	type bin struct {
		count   uint32
		r, g, b uint64
	}
	bins := make(map[uint16]*bin)

	step := level
	if step < 1 {
		step = 1
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c := img.RGBAAt(x, y)
			key := uint16(c.R>>4)<<8 | uint16(c.G>>4)<<4 | uint16(c.B>>4)
			cell := bins[key]
			if cell == nil {
				cell = &bin{}
				bins[key] = cell
			}
			cell.count++
			cell.r += uint64(c.R)
			cell.g += uint64(c.G)
			cell.b += uint64(c.B)
		}
	}

	if len(bins) < 2 {
		return palette.Plan9
	}

	ordered := make([]*bin, 0, len(bins))
	for _, cell := range bins {
		ordered = append(ordered, cell)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].count > ordered[j].count })
	if len(ordered) > 256 {
		ordered = ordered[:256]
	}

	pal := make(color.Palette, 0, len(ordered))
	for _, cell := range ordered {
		n := uint64(cell.count)
		pal = append(pal, color.RGBA{
			R: uint8(cell.r / n),
			G: uint8(cell.g / n),
			B: uint8(cell.b / n),
			A: 255,
		})
	}
	return pal
}
