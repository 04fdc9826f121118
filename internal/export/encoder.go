package export

import "image"

// Format is the output container.
type Format string

const (
	FormatWebM Format = "webm"
	FormatMP4  Format = "mp4"
	FormatGIF  Format = "gif"
)

// MIME returns the format's output content type.
func (f Format) MIME() string {
	switch f {
	case FormatMP4:
		return "video/mp4"
	case FormatGIF:
		return "image/gif"
	default:
		return "video/webm"
	}
}

// Quality is a named encoding tier.
type Quality string

const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
	QualityUltra  Quality = "ultra"
)

// BitrateMbps maps the tier to its fixed video bitrate target.
func (q Quality) BitrateMbps() int {
	switch q {
	case QualityLow:
		return 4
	case QualityHigh:
		return 16
	case QualityUltra:
		return 32
	default:
		return 8
	}
}

// GIFLevel maps the tier to the palette sampling level, lower is better.
func (q Quality) GIFLevel() int {
	switch q {
	case QualityLow:
		return 20
	case QualityHigh:
		return 5
	case QualityUltra:
		return 1
	default:
		return 10
	}
}

// Encoder consumes synthesized RGBA frames and yields one finished blob.
// Begin acquires the underlying resource; Close must release it on every
// path, including after a mid-encode failure.
type Encoder interface {
	Begin(width, height, fps int) error
	WriteFrame(frame *image.RGBA) error
	Close() ([]byte, string, error)
}

// NewEncoder picks the raw-capture encoder for a format. The MP4 path
// captures WebM first; the transcode happens in the finalize stage.
func NewEncoder(format Format, quality Quality) Encoder {
	if format == FormatGIF {
		return newGIFEncoder(quality.GIFLevel())
	}
	return newWebMEncoder(quality.BitrateMbps())
}
