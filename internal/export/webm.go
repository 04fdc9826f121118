package export

import (
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// webmEncoder pipes raw RGBA frames into a live libvpx-vp9 encode. Frames
// are consumed as they arrive, so memory stays flat regardless of the
// timeline length.
type webmEncoder struct {
	bitrateMbps int

	width  int
	height int
	pw     *io.PipeWriter
	done   chan error
	tmpDir string
	out    string

	// scratch buffer for sources that are not tightly packed
	repack *image.RGBA
}

func newWebMEncoder(bitrateMbps int) *webmEncoder {
	return &webmEncoder{bitrateMbps: bitrateMbps}
}

func (e *webmEncoder) Begin(width, height, fps int) error {
	tmpDir, err := os.MkdirTemp("", "sitereel-webm-")
	if err != nil {
		return errors.Wrap(err, "create webm workdir")
	}
	e.tmpDir = tmpDir
	e.out = filepath.Join(tmpDir, "capture.webm")
	e.width, e.height = width, height

	pr, pw := io.Pipe()
	e.pw = pw
	e.done = make(chan error, 1)

	go func() {
		err := ffmpeg.Input("pipe:", ffmpeg.KwArgs{
			"format":    "rawvideo",
			"pix_fmt":   "rgba",
			"s":         fmt.Sprintf("%dx%d", width, height),
			"framerate": fps,
		}).Output(e.out, ffmpeg.KwArgs{
			"c:v":      "libvpx-vp9",
			"b:v":      fmt.Sprintf("%dM", e.bitrateMbps),
			"pix_fmt":  "yuv420p",
			"deadline": "realtime",
			"cpu-used": 4,
			"row-mt":   1,
			"an":       "",
		}).OverWriteOutput().Silent(true).WithInput(pr).Run()

		// Unblock a writer stuck mid-frame when ffmpeg dies early.
		pr.CloseWithError(err)
		e.done <- err
	}()

	return nil
}

func (e *webmEncoder) WriteFrame(frame *image.RGBA) error {
	if e.pw == nil {
		return errors.New("webm encoder not started")
	}
	_, err := e.pw.Write(e.packedPix(frame))
	return errors.Wrap(err, "write frame to encoder")
}

// packedPix returns the frame's pixels as a contiguous width×height×4
// buffer, copying only when stride or origin make Pix unusable directly.
func (e *webmEncoder) packedPix(frame *image.RGBA) []byte {
	b := frame.Bounds()
	if frame.Stride == b.Dx()*4 && b.Min.X == 0 && b.Min.Y == 0 {
		return frame.Pix
	}
	if e.repack == nil || e.repack.Bounds().Dx() != b.Dx() || e.repack.Bounds().Dy() != b.Dy() {
		e.repack = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	}
	draw.Draw(e.repack, e.repack.Bounds(), frame, b.Min, draw.Src)
	return e.repack.Pix
}

func (e *webmEncoder) Close() ([]byte, string, error) {
	if e.pw == nil {
		return nil, "", errors.New("webm encoder not started")
	}
	e.pw.Close()
	err := <-e.done
	defer os.RemoveAll(e.tmpDir)

	if err != nil {
		return nil, "", errors.Wrap(err, "vp9 encode")
	}

	data, err := os.ReadFile(e.out)
	if err != nil {
		return nil, "", errors.Wrap(err, "read encoded webm")
	}
	return data, FormatWebM.MIME(), nil
}
