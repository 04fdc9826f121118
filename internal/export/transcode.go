package export

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// transcoder is the process-wide MP4 stage. It holds no reusable native
// state of its own, but the mutex keeps one transcode in flight at a time:
// concurrent exports would otherwise compete for the same encoder
// resources and starve each other.
type transcoder struct {
	mu sync.Mutex
}

var (
	transcoderOnce sync.Once
	sharedTrans    *transcoder
)

// sharedTranscoder lazily initializes the singleton on first MP4 export.
func sharedTranscoder() *transcoder {
	transcoderOnce.Do(func() {
		sharedTrans = &transcoder{}
	})
	return sharedTrans
}

// TranscodeToMP4 converts a finished WebM blob into a streaming-friendly
// MP4. Failures come back as TranscodeError so callers can suggest the
// WebM fallback.
func TranscodeToMP4(webm []byte) ([]byte, error) {
	t := sharedTranscoder()
	t.mu.Lock()
	defer t.mu.Unlock()

	tmpDir, err := os.MkdirTemp("", "sitereel-mp4-")
	if err != nil {
		return nil, TranscodeError{Err: errors.Wrap(err, "create transcode workdir")}
	}
	defer os.RemoveAll(tmpDir)

	in := filepath.Join(tmpDir, "in.webm")
	out := filepath.Join(tmpDir, "out.mp4")
	if err := os.WriteFile(in, webm, 0644); err != nil {
		return nil, TranscodeError{Err: errors.Wrap(err, "stage webm input")}
	}

	err = ffmpeg.Input(in).Output(out, ffmpeg.KwArgs{
		"c:v":      "libx264",
		"pix_fmt":  "yuv420p",
		"preset":   "fast",
		"crf":      23,
		"movflags": "+faststart",
		"an":       "",
	}).OverWriteOutput().Silent(true).Run()
	if err != nil {
		return nil, TranscodeError{Err: errors.Wrap(err, "h264 encode")}
	}

	data, err := os.ReadFile(out)
	if err != nil {
		return nil, TranscodeError{Err: errors.Wrap(err, "read transcoded mp4")}
	}
	return data, nil
}
