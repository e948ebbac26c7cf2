package fontdata

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// RasterSize is the size in pixels of the rasterized images.
type RasterSize struct {
	W, H int
}

// ParseRasterSize parses sizes of the form WxH, eg. 64x64.
func ParseRasterSize(s string) (RasterSize, error) {
	x := strings.IndexAny(s, "xX")
	if x == -1 {
		return RasterSize{}, fmt.Errorf("invalid raster size %q, expected WxH", s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(s[:x]))
	if err != nil {
		return RasterSize{}, fmt.Errorf("invalid raster width: %v", err)
	}
	h, err := strconv.Atoi(strings.TrimSpace(s[x+1:]))
	if err != nil {
		return RasterSize{}, fmt.Errorf("invalid raster height: %v", err)
	}
	if w <= 0 || h <= 0 {
		return RasterSize{}, fmt.Errorf("invalid raster size %q, must be positive", s)
	}
	return RasterSize{w, h}, nil
}

func (size RasterSize) String() string {
	return fmt.Sprintf("%dx%d", size.W, size.H)
}

// Rasterizer renders a symbol in a font to an image file at dst. The image format follows from the extension of dst.
type Rasterizer interface {
	Rasterize(ctx context.Context, fnt Font, symbol, dst string) error
}

////////////////////////////////////////////////////////////////

// ConvertRasterizer renders symbols by running ImageMagick's convert command.
type ConvertRasterizer struct {
	Command string // defaults to convert
	Size    RasterSize
}

// NewConvertRasterizer returns a rasterizer that runs command, or convert when empty.
func NewConvertRasterizer(command string, size RasterSize) *ConvertRasterizer {
	if command == "" {
		command = "convert"
	}
	return &ConvertRasterizer{
		Command: command,
		Size:    size,
	}
}

// Check returns an error when the command cannot be found.
func (r *ConvertRasterizer) Check() error {
	if _, err := exec.LookPath(r.Command); err != nil {
		return fmt.Errorf("rasterizer not available: %w", err)
	}
	return nil
}

// Args returns the command line arguments passed to convert.
func (r *ConvertRasterizer) Args(fontPath, symbol, dst string) []string {
	return []string{
		"-size", r.Size.String(),
		"-background", "white",
		"-font", fontPath,
		"-fill", "black",
		"-gravity", "Center",
		"label:" + escapeLabel(symbol),
		"-flatten", dst,
	}
}

// Rasterize runs convert and returns its standard error output on failure.
func (r *ConvertRasterizer) Rasterize(ctx context.Context, fnt Font, symbol, dst string) error {
	stderr := &bytes.Buffer{}
	cmd := exec.CommandContext(ctx, r.Command, r.Args(fnt.Path, symbol, dst)...)
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %v: %s", r.Command, err, msg)
		}
		return fmt.Errorf("%s: %v", r.Command, err)
	} else if _, err := os.Stat(dst); err != nil {
		return fmt.Errorf("%s: no image produced: %v", r.Command, err)
	}
	return nil
}

// escapeLabel escapes the characters that ImageMagick interprets in label text.
func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", "%%")
	if strings.HasPrefix(s, "@") {
		s = `\` + s // @file reads the label from a file
	}
	return s
}

////////////////////////////////////////////////////////////////

// BuiltinRasterizer renders symbols in-process, scaling the glyphs to fill the image and centering them.
type BuiltinRasterizer struct {
	Size RasterSize

	fonts map[string]*opentype.Font
}

// NewBuiltinRasterizer returns a rasterizer that needs no external programs.
func NewBuiltinRasterizer(size RasterSize) *BuiltinRasterizer {
	return &BuiltinRasterizer{
		Size:  size,
		fonts: map[string]*opentype.Font{},
	}
}

func (r *BuiltinRasterizer) load(path string) (*opentype.Font, error) {
	if otf, ok := r.fonts[path]; ok {
		return otf, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	otf, err := opentype.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	r.fonts[path] = otf
	return otf, nil
}

// Rasterize draws the symbol black on white and saves the image to dst.
func (r *BuiltinRasterizer) Rasterize(ctx context.Context, fnt Font, symbol, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	otf, err := r.load(fnt.Path)
	if err != nil {
		return err
	}
	img, err := r.draw(otf, symbol)
	if err != nil {
		return fmt.Errorf("%v: %w", fnt.Path, err)
	}
	return imaging.Save(img, dst)
}

func (r *BuiltinRasterizer) draw(otf *opentype.Font, symbol string) (image.Image, error) {
	w, h := float64(r.Size.W), float64(r.Size.H)
	img := imaging.New(r.Size.W, r.Size.H, color.White)

	// measure at the image height and scale so that the ink fills the box
	bounds, err := boundString(otf, h, symbol)
	if err != nil {
		return nil, err
	}
	bw := float64(bounds.Max.X-bounds.Min.X) / 64.0
	bh := float64(bounds.Max.Y-bounds.Min.Y) / 64.0
	if bw <= 0.0 || bh <= 0.0 {
		return img, nil // blank glyph
	}
	size := h * math.Min(w/bw, h/bh)

	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	defer face.Close()

	bounds, _ = font.BoundString(face, symbol)
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(r.Size.W)/2 - (bounds.Min.X+bounds.Max.X)/2,
			Y: fixed.I(r.Size.H)/2 - (bounds.Min.Y+bounds.Max.Y)/2,
		},
	}
	drawer.DrawString(symbol)
	return img, nil
}

func boundString(otf *opentype.Font, size float64, s string) (fixed.Rectangle26_6, error) {
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return fixed.Rectangle26_6{}, err
	}
	defer face.Close()

	bounds, _ := font.BoundString(face, s)
	return bounds, nil
}
