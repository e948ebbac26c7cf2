package fontdata

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tdewolff/test"
	"golang.org/x/image/font/gofont/goregular"
)

func TestParseRasterSize(t *testing.T) {
	size, err := ParseRasterSize("64x32")
	test.Error(t, err)
	test.T(t, size, RasterSize{64, 32})
	test.T(t, size.String(), "64x32")

	size, err = ParseRasterSize(" 28 X 28 ")
	test.Error(t, err)
	test.T(t, size, RasterSize{28, 28})

	for _, s := range []string{"", "64", "x64", "64x", "0x64", "-1x5", "ax b"} {
		_, err := ParseRasterSize(s)
		test.That(t, err != nil, "expected error for", s)
	}
}

func TestConvertArgs(t *testing.T) {
	r := NewConvertRasterizer("", RasterSize{64, 64})
	test.T(t, r.Command, "convert")
	test.T(t, r.Args("fonts/Sans.ttf", "a", "/tmp/Sans.gif"), []string{
		"-size", "64x64",
		"-background", "white",
		"-font", "fonts/Sans.ttf",
		"-fill", "black",
		"-gravity", "Center",
		"label:a",
		"-flatten", "/tmp/Sans.gif",
	})
}

func TestEscapeLabel(t *testing.T) {
	var tests = []struct {
		label    string
		expected string
	}{
		{"a", "a"},
		{"%", "%%"},
		{"@", `\@`},
		{"@file", `\@file`},
		{`\n`, `\\n`},
		{"a@b", "a@b"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			test.T(t, escapeLabel(tt.label), tt.expected)
		})
	}
}

func TestConvertRasterizerMissing(t *testing.T) {
	r := NewConvertRasterizer("fontdata-no-such-rasterizer", RasterSize{8, 8})
	test.That(t, r.Check() != nil, "expected missing command")

	fnt := Font{Path: "Sans.ttf", Rel: "Sans.ttf", Name: "Sans"}
	err := r.Rasterize(context.Background(), fnt, "a", filepath.Join(t.TempDir(), "Sans.png"))
	test.That(t, err != nil, "expected exec error")
}

func TestBuiltinRasterizer(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string][]byte{"Go-Regular.ttf": goregular.TTF})
	fnt := Font{Path: filepath.Join(dir, "Go-Regular.ttf"), Rel: "Go-Regular.ttf", Name: "Go-Regular"}

	r := NewBuiltinRasterizer(RasterSize{32, 32})
	dst := fnt.ImagePath(dir, "png")
	test.Error(t, r.Rasterize(context.Background(), fnt, "A", dst))

	bm, err := DecodeImage(dst)
	test.Error(t, err)
	test.T(t, bm.Width, 32)
	test.T(t, bm.Height, 32)
	test.T(t, bm.At(0, 0), uint8(0xFF))
	test.T(t, bm.At(31, 0), uint8(0xFF))

	// ink bounds are centered
	minX, minY, maxX, maxY := bm.Width, bm.Height, -1, -1
	for y := 0; y < bm.Height; y++ {
		for x := 0; x < bm.Width; x++ {
			if bm.At(x, y) < 0x80 {
				minX, maxX = min(minX, x), max(maxX, x)
				minY, maxY = min(minY, y), max(maxY, y)
			}
		}
	}
	test.That(t, 0 <= maxX && 0 <= maxY, "expected ink")
	test.That(t, abs(minX-(bm.Width-1-maxX)) <= 2, "horizontal margins differ:", minX, bm.Width-1-maxX)
	test.That(t, abs(minY-(bm.Height-1-maxY)) <= 2, "vertical margins differ:", minY, bm.Height-1-maxY)
	test.That(t, 20 <= maxX-minX || 20 <= maxY-minY, "expected glyph to fill the image")
}

func TestBuiltinRasterizerBlank(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string][]byte{"Go-Regular.ttf": goregular.TTF})
	fnt := Font{Path: filepath.Join(dir, "Go-Regular.ttf"), Rel: "Go-Regular.ttf", Name: "Go-Regular"}

	r := NewBuiltinRasterizer(RasterSize{8, 8})
	dst := filepath.Join(dir, "space.gif")
	test.Error(t, r.Rasterize(context.Background(), fnt, " ", dst))

	bm, err := DecodeImage(dst)
	test.Error(t, err)
	for _, v := range bm.Pix {
		test.T(t, v, uint8(0xFF))
	}
}

func TestBuiltinRasterizerErrors(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string][]byte{"Broken.ttf": []byte("broken")})
	r := NewBuiltinRasterizer(RasterSize{8, 8})

	fnt := Font{Path: filepath.Join(dir, "Broken.ttf"), Rel: "Broken.ttf", Name: "Broken"}
	test.That(t, r.Rasterize(context.Background(), fnt, "a", filepath.Join(dir, "Broken.png")) != nil, "expected parse error")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	test.That(t, r.Rasterize(ctx, fnt, "a", filepath.Join(dir, "Broken.png")) != nil, "expected context error")
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
