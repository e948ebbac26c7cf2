package fontdata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// SymbolWriter stores the labels and bitmaps of a symbol, see Store.
type SymbolWriter interface {
	WriteSymbol(symbol string, labels []string, images []*Bitmap) error
}

// Options configure a Generator.
type Options struct {
	FontsRoot   string   // root folder that is searched recursively for fonts
	Format      string   // format of the rasterized images, see ImageFormats
	ImagesOut   string   // keep the rasterized images in ImagesOut/<symbol> when set
	TestRun     bool     // stop after the first rasterized image
	SkipMissing bool     // skip fonts without a glyph for the symbol
	Symbols     []string // symbols to rasterize
}

// Validate checks the options before any work is done.
func (o *Options) Validate() error {
	if !ValidImageFormat(o.Format) {
		return fmt.Errorf("%w %q, select one of %v", ErrUnsupportedFormat, o.Format, strings.Join(ImageFormats, ", "))
	} else if len(o.Symbols) == 0 {
		return fmt.Errorf("no symbols to generate")
	}

	if o.ImagesOut != "" {
		if info, err := os.Stat(o.ImagesOut); err != nil || !info.IsDir() {
			return fmt.Errorf("directory does not exist %v, please create it first", o.ImagesOut)
		}
		for _, symbol := range o.Symbols {
			dir := filepath.Join(o.ImagesOut, symbol)
			if _, err := os.Stat(dir); err == nil {
				return fmt.Errorf("%v already exists", dir)
			}
		}
	}
	return nil
}

// Generator rasterizes every symbol with every font and writes the bitmaps per symbol.
type Generator struct {
	Options
	Rasterizer Rasterizer
	Writer     SymbolWriter
	Warning    *log.Logger

	// Progress is called before every symbol and once more with i == n when done.
	Progress func(i, n int, symbol string)

	fonts []Font
}

// NewGenerator returns a generator that logs warnings to stderr.
func NewGenerator(options Options, rasterizer Rasterizer, writer SymbolWriter) *Generator {
	return &Generator{
		Options:    options,
		Rasterizer: rasterizer,
		Writer:     writer,
		Warning:    log.New(os.Stderr, "WARNING: ", 0),
	}
}

type rasterImage struct {
	Label string
	Path  string
}

// Prepare validates the options and finds the fonts, so that callers can fail before creating any output. It returns an error when no fonts are found.
func (g *Generator) Prepare() error {
	if err := g.Validate(); err != nil {
		return err
	}
	fonts, err := FindFonts(g.FontsRoot)
	if err != nil {
		return err
	}
	g.fonts = fonts
	return nil
}

// Run generates the datasets of all symbols, calling Prepare first if it wasn't already.
func (g *Generator) Run(ctx context.Context) error {
	if g.fonts == nil {
		if err := g.Prepare(); err != nil {
			return err
		}
	}
	if g.Warning == nil {
		g.Warning = log.New(io.Discard, "", 0)
	}

	fonts := g.fonts

	var infos map[string]*FontInfo
	if g.SkipMissing {
		infos = map[string]*FontInfo{}
		for _, fnt := range fonts {
			info, err := ReadFontInfo(fnt.Path)
			if err != nil {
				g.Warning.Printf("%v: %v", fnt.Rel, err)
				continue
			}
			infos[fnt.Path] = info
		}
	}

	for i, symbol := range g.Symbols {
		if g.Progress != nil {
			g.Progress(i, len(g.Symbols), symbol)
		}
		if packed, err := g.runSymbol(ctx, fonts, infos, symbol); err != nil {
			return err
		} else if packed && g.TestRun {
			return nil
		}
	}
	if g.Progress != nil {
		g.Progress(len(g.Symbols), len(g.Symbols), "")
	}
	return nil
}

func (g *Generator) runSymbol(ctx context.Context, fonts []Font, infos map[string]*FontInfo, symbol string) (bool, error) {
	tmpDir, err := os.MkdirTemp("", "fontdata-")
	if err != nil {
		return false, err
	}
	defer os.RemoveAll(tmpDir)

	skipped := 0
	images := []rasterImage{}
	for _, fnt := range fonts {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if info, ok := infos[fnt.Path]; ok && !info.HasGlyph(symbol) {
			skipped++
			continue
		}

		dst := fnt.ImagePath(tmpDir, g.Format)
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return false, err
		}
		if err := g.Rasterizer.Rasterize(ctx, fnt, symbol, dst); err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			g.Warning.Printf("%v: %v", fnt.Rel, err)
			continue
		}
		images = append(images, rasterImage{fnt.Name, dst})
		if g.TestRun {
			break
		}
	}

	if len(images) == 0 && skipped == len(fonts) {
		g.Warning.Printf("%v: no font has a glyph for the symbol", symbol)
		return false, nil
	} else if err := g.pack(symbol, images); err != nil {
		return false, err
	}

	if g.ImagesOut != "" {
		if err := moveDir(tmpDir, filepath.Join(g.ImagesOut, symbol)); err != nil {
			return false, err
		}
	}
	return true, nil
}

func (g *Generator) pack(symbol string, images []rasterImage) error {
	labels := []string{}
	bitmaps := []*Bitmap{}
	for _, image := range images {
		bm, err := DecodeImage(image.Path)
		if err != nil {
			g.Warning.Printf("failed to process %v: %v", image.Path, err)
			continue
		} else if 0 < len(bitmaps) && !bm.SameSize(bitmaps[0]) {
			g.Warning.Printf("failed to process %v: image is %dx%d, expected %dx%d", image.Path, bm.Width, bm.Height, bitmaps[0].Width, bitmaps[0].Height)
			continue
		}
		labels = append(labels, image.Label)
		bitmaps = append(bitmaps, bm)
	}
	if len(bitmaps) == 0 {
		return fmt.Errorf("%v: no images to pack", symbol)
	}
	return g.Writer.WriteSymbol(symbol, labels, bitmaps)
}

// moveDir renames src to dst, copying when they are on different devices.
func moveDir(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil || !errors.Is(err, syscall.EXDEV) {
		return err
	}

	if err := copyDir(src, dst); err != nil {
		return err
	}
	return os.RemoveAll(src)
}

func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}

		r, err := os.Open(path)
		if err != nil {
			return err
		}
		defer r.Close()
		w, err := os.Create(target)
		if err != nil {
			return err
		}
		if _, err := io.Copy(w, r); err != nil {
			w.Close()
			return err
		}
		return w.Close()
	})
}
