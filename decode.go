package fontdata

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrUnsupportedFormat is returned for image formats other than ImageFormats.
var ErrUnsupportedFormat = fmt.Errorf("unsupported image format")

// ImageFormats are the supported formats of rasterized images.
var ImageFormats = []string{"gif", "jpg", "jpeg", "png"}

// ValidImageFormat returns true if format is one of ImageFormats.
func ValidImageFormat(format string) bool {
	for _, f := range ImageFormats {
		if f == format {
			return true
		}
	}
	return false
}

// Bitmap is a single channel image with its pixels stored row by row.
type Bitmap struct {
	Width, Height int
	Pix           []uint8
}

// At returns the pixel value at (x,y).
func (bm *Bitmap) At(x, y int) uint8 {
	return bm.Pix[y*bm.Width+x]
}

// SameSize returns true if both bitmaps have the same dimensions.
func (bm *Bitmap) SameSize(other *Bitmap) bool {
	return bm.Width == other.Width && bm.Height == other.Height
}

// DecodeImage reads a rasterized image and returns a single channel. GIF and PNG images yield their green channel (the first frame for GIF) and JPEG images their luminance.
func DecodeImage(path string) (*Bitmap, error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if !ValidImageFormat(format) {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, path)
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	if format == "jpg" || format == "jpeg" {
		img = imaging.Grayscale(img)
	}
	return greenChannel(img), nil
}

func greenChannel(img image.Image) *Bitmap {
	nrgba := imaging.Clone(img)
	size := nrgba.Bounds().Size()
	bm := &Bitmap{
		Width:  size.X,
		Height: size.Y,
		Pix:    make([]uint8, size.X*size.Y),
	}
	for j := 0; j < size.Y; j++ {
		row := nrgba.Pix[j*nrgba.Stride:]
		for i := 0; i < size.X; i++ {
			bm.Pix[j*size.X+i] = row[i*4+1]
		}
	}
	return bm
}
