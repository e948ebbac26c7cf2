package fontdata

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/tdewolff/test"
)

// blackSquare is a white 16x8 image with a black 4x4 square at (4,2).
func blackSquare() *image.NRGBA {
	img := imaging.New(16, 8, color.White)
	for y := 2; y < 6; y++ {
		for x := 4; x < 8; x++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}

func TestDecodeImage(t *testing.T) {
	dir := t.TempDir()
	for _, format := range ImageFormats {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(dir, "square."+format)
			test.Error(t, imaging.Save(blackSquare(), path))

			bm, err := DecodeImage(path)
			test.Error(t, err)
			test.T(t, bm.Width, 16)
			test.T(t, bm.Height, 8)
			test.T(t, len(bm.Pix), 16*8)

			// JPEG is lossy
			test.That(t, 0xC0 < bm.At(0, 0), "expected white at (0,0):", bm.At(0, 0))
			test.That(t, 0xC0 < bm.At(15, 7), "expected white at (15,7):", bm.At(15, 7))
			test.That(t, bm.At(5, 3) < 0x40, "expected black at (5,3):", bm.At(5, 3))
		})
	}
}

func TestDecodeImageGreenChannel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "color.png")
	img := imaging.New(2, 1, color.NRGBA{10, 200, 30, 255})
	img.Set(1, 0, color.NRGBA{255, 7, 255, 255})
	test.Error(t, imaging.Save(img, path))

	bm, err := DecodeImage(path)
	test.Error(t, err)
	test.T(t, bm.Pix, []uint8{200, 7})
}

func TestDecodeImageErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := DecodeImage(filepath.Join(dir, "square.bmp"))
	test.That(t, errors.Is(err, ErrUnsupportedFormat), "expected ErrUnsupportedFormat")

	_, err = DecodeImage(filepath.Join(dir, "missing.png"))
	test.That(t, err != nil, "expected open error")

	writeFiles(t, dir, map[string][]byte{"corrupt.gif": []byte("GIF89a")})
	_, err = DecodeImage(filepath.Join(dir, "corrupt.gif"))
	test.That(t, err != nil, "expected decode error")
}

func TestValidImageFormat(t *testing.T) {
	test.That(t, ValidImageFormat("gif"))
	test.That(t, ValidImageFormat("jpeg"))
	test.That(t, !ValidImageFormat("GIF"))
	test.That(t, !ValidImageFormat("tiff"))
}
