// Package export drives the frame synthesis loop across the timeline and
// feeds a format-specific encoder, producing a finished video blob.
package export

import "fmt"

// EmptyInputError rejects an export before any resource is allocated.
type EmptyInputError struct{}

func (EmptyInputError) Error() string {
	return "nothing to export: the project has no renderable scenes"
}

// ImageLoadError aborts an export whose source image cannot be decoded.
type ImageLoadError struct {
	SceneID string
	Ref     string
	Err     error
}

func (e ImageLoadError) Error() string {
	return fmt.Sprintf("failed to load image %q for scene %s: %v", e.Ref, e.SceneID, e.Err)
}

func (e ImageLoadError) Unwrap() error { return e.Err }

// UnsupportedFormatError means the host lacks the encoder an export needs.
// It is raised eagerly, before any frame work begins.
type UnsupportedFormatError struct {
	Format Format
	Reason string
}

func (e UnsupportedFormatError) Error() string {
	return fmt.Sprintf("cannot export %s: %s", e.Format, e.Reason)
}

// TranscodeError marks a failure in the WebM to MP4 stage. The raw WebM
// encode already succeeded, so the caller can retry with format webm.
type TranscodeError struct {
	Err error
}

func (e TranscodeError) Error() string {
	return fmt.Sprintf("mp4 transcode failed (try exporting as webm): %v", e.Err)
}

func (e TranscodeError) Unwrap() error { return e.Err }

// CancelledError reports cooperative cancellation observed at a per-frame
// yield point.
type CancelledError struct {
	Err error
}

func (e CancelledError) Error() string {
	return fmt.Sprintf("export cancelled: %v", e.Err)
}

func (e CancelledError) Unwrap() error { return e.Err }
