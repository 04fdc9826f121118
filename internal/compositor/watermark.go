package compositor

import (
	"image"

	qrcode "github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"
)

// watermark geometry relative to the frame.
const (
	qrSizeRatio = 0.09 // QR edge as a share of frame height
	qrMarginPx  = 24
	qrMinSizePx = 48
)

// DrawQRWatermark composites a QR code of the page URL into the
// bottom-right corner of the frame. A failed QR build leaves the frame
// untouched; the watermark is decoration, not content.
func DrawQRWatermark(dst *image.RGBA, url string) {
	if url == "" {
		return
	}
	b := dst.Bounds()
	size := int(float64(b.Dy()) * qrSizeRatio)
	if size < qrMinSizePx {
		size = qrMinSizePx
	}

	qr, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return
	}
	qr.DisableBorder = true
	qrImg := qr.Image(size)

	target := image.Rect(
		b.Max.X-size-qrMarginPx,
		b.Max.Y-size-qrMarginPx,
		b.Max.X-qrMarginPx,
		b.Max.Y-qrMarginPx,
	)
	xdraw.NearestNeighbor.Scale(dst, target, qrImg, qrImg.Bounds(), xdraw.Over, nil)
}
