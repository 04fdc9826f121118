package capture

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/pkg/errors"
)

const dataURIPrefix = "data:"

// DecodeImageRef loads an image from either a data URI or a file path.
func DecodeImageRef(ref string) (image.Image, error) {
	if ref == "" {
		return nil, errors.New("empty image reference")
	}
	if strings.HasPrefix(ref, dataURIPrefix) {
		return decodeDataURI(ref)
	}

	f, err := os.Open(ref)
	if err != nil {
		return nil, errors.Wrapf(err, "open image %s", ref)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode image %s", ref)
	}
	return img, nil
}

// decodeDataURI decodes "data:image/png;base64,...." references.
func decodeDataURI(uri string) (image.Image, error) {
	idx := strings.Index(uri, ",")
	if idx == -1 {
		return nil, errors.New("malformed data URI: no payload separator")
	}
	meta, payload := uri[len(dataURIPrefix):idx], uri[idx+1:]
	if !strings.Contains(meta, "base64") {
		return nil, errors.Errorf("unsupported data URI encoding: %s", meta)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.Wrap(err, "decode data URI payload")
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrap(err, "decode data URI image")
	}
	return img, nil
}

// CropImage extracts a sub-rectangle, clamped to the source bounds.
func CropImage(src image.Image, x, y, w, h int) image.Image {
	b := src.Bounds()
	rect := image.Rect(b.Min.X+x, b.Min.Y+y, b.Min.X+x+w, b.Min.Y+y+h).Intersect(b)
	if rect.Empty() {
		return src
	}
	type subImager interface {
		SubImage(image.Rectangle) image.Image
	}
	if si, ok := src.(subImager); ok {
		return si.SubImage(rect)
	}
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	for yy := 0; yy < rect.Dy(); yy++ {
		for xx := 0; xx < rect.Dx(); xx++ {
			out.Set(xx, yy, src.At(rect.Min.X+xx, rect.Min.Y+yy))
		}
	}
	return out
}
