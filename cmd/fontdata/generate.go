package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/tdewolff/fontdata"
	"github.com/tdewolff/prompt"
)

type Generate struct {
	Quiet       bool   `short:"q" desc:"Suppress output except for errors."`
	Force       bool   `short:"f" desc:"Force overwriting an existing output file."`
	Append      bool   `short:"a" desc:"Add datasets to an existing output file instead of overwriting it."`
	FontsRoot   string `name:"fonts-root" desc:"Root folder that is searched recursively for TTF and OTF files." default:"."`
	RasterSize  string `name:"raster-size" desc:"Size of the rasterized images, eg. 64x64." default:"64x64"`
	TestRun     bool   `name:"test-run" desc:"Stop after the first rasterized image. Useful to check paths and other parameters."`
	ImagesOut   string `name:"images-out" desc:"Existing directory where the rasterized images are kept, one folder per symbol. Images are discarded when not set."`
	Mode        string `short:"m" desc:"Symbols to generate: letters, numbers, or alphanumeric." default:"letters"`
	Symbols     string `short:"s" desc:"Comma-separated subset of symbols to generate, used with letters and numbers, eg. a,b,c."`
	Format      string `name:"image-output-format" desc:"Format of the rasterized images: gif, jpg, jpeg, or png." default:"gif"`
	Rasterizer  string `short:"r" desc:"Rasterizer to use: convert (ImageMagick) or builtin." default:"convert"`
	Convert     string `desc:"ImageMagick command used by the convert rasterizer, eg. magick." default:"convert"`
	SkipMissing bool   `name:"skip-missing" desc:"Skip fonts that have no glyph for a symbol instead of rasterizing the missing glyph."`
	Output      string `short:"o" name:"output-file" desc:"Output HDF5 file." default:"fonts-data.h5"`
}

func (cmd *Generate) Run() error {
	if cmd.Quiet {
		Warning = log.New(io.Discard, "", 0)
	}

	size, err := fontdata.ParseRasterSize(cmd.RasterSize)
	if err != nil {
		return err
	}
	mode, err := fontdata.ParseMode(cmd.Mode)
	if err != nil {
		return err
	}
	symbols, err := fontdata.Symbols(mode, cmd.Symbols)
	if err != nil {
		return err
	}

	options := fontdata.Options{
		FontsRoot:   cmd.FontsRoot,
		Format:      cmd.Format,
		ImagesOut:   cmd.ImagesOut,
		TestRun:     cmd.TestRun,
		SkipMissing: cmd.SkipMissing,
		Symbols:     symbols,
	}

	var rasterizer fontdata.Rasterizer
	switch cmd.Rasterizer {
	case "convert":
		r := fontdata.NewConvertRasterizer(cmd.Convert, size)
		if err := r.Check(); err != nil {
			return err
		}
		rasterizer = r
	case "builtin":
		rasterizer = fontdata.NewBuiltinRasterizer(size)
	default:
		return fmt.Errorf("unsupported rasterizer: %v", cmd.Rasterizer)
	}

	// the output file is left untouched when the options are invalid or there are no fonts
	g := fontdata.NewGenerator(options, rasterizer, nil)
	g.Warning = Warning
	if err := g.Prepare(); err != nil {
		return err
	}

	// open output file, datasets are appended unless overwriting
	truncate := cmd.Force
	if _, err := os.Stat(cmd.Output); err == nil && !cmd.Force && !cmd.Append {
		if !prompt.YesNo(fmt.Sprintf("%s already exists, overwrite?", cmd.Output), false) {
			return fmt.Errorf("file already exists, use --append to add datasets")
		}
		truncate = true
	}
	store, err := fontdata.OpenStore(cmd.Output, truncate)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			Error.Println(err)
		}
	}()
	for _, symbol := range symbols {
		if store.HasSymbol(symbol) {
			return fmt.Errorf("%v: %w: %v", cmd.Output, fontdata.ErrDatasetExists, symbol)
		}
	}
	g.Writer = store

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var bar *progressBar
	if !cmd.Quiet {
		if bar = newProgressBar(os.Stderr); bar != nil {
			g.Progress = bar.Update
		}
	}
	err = g.Run(ctx)
	if bar != nil {
		bar.Done()
	}
	if err != nil {
		return err
	}

	if !cmd.Quiet {
		n := len(symbols)
		if cmd.TestRun {
			n = 1
		}
		fmt.Printf("%v:  %d symbols,  %v\n", filepath.Base(cmd.Output), n, size)
	}
	return nil
}
