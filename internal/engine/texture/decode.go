package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Decode decodes PNG, JPEG or WebP data.
func Decode(data []byte) (image.Image, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decoding %s image: empty bounds", format)
	}
	return img, nil
}

// RGBA converts img to tightly packed RGBA with its origin at (0,0), flipping rows when
// flipY is set.
func RGBA(img image.Image, flipY bool) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	if !flipY {
		return dst
	}

	row := make([]byte, dst.Stride)
	for top, bottom := 0, b.Dy()-1; top < bottom; top, bottom = top+1, bottom-1 {
		t := dst.Pix[top*dst.Stride : (top+1)*dst.Stride]
		bm := dst.Pix[bottom*dst.Stride : (bottom+1)*dst.Stride]
		copy(row, t)
		copy(t, bm)
		copy(bm, row)
	}
	return dst
}
