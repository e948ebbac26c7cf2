package fontdata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// ErrNoFonts is returned when the font root contains no font files.
var ErrNoFonts = fmt.Errorf("no font files found")

var extFontType = map[string]string{
	".ttf": "font/truetype",
	".otf": "font/opentype",
}

// Font is a font file found under the font root.
type Font struct {
	Path string // path as found on disk
	Rel  string // path relative to the font root
	Name string // file name without extension, used as label

	// Stem is the file name of the rasterized image without extension. It equals Name unless another font in the same directory shares the name, in which case the font's extension is kept.
	Stem string
}

// Type returns the mimetype of the font file, eg. font/truetype.
func (font Font) Type() string {
	return extFontType[strings.ToLower(filepath.Ext(font.Rel))]
}

// ImagePath returns the path of the rasterized image inside dir, mirroring the font's directory structure below the font root.
func (font Font) ImagePath(dir, format string) string {
	stem := font.Stem
	if stem == "" {
		stem = font.Name
	}
	return filepath.Join(dir, filepath.Dir(font.Rel), stem+"."+format)
}

// IsFontFile returns true if the filename has a supported font extension.
func IsFontFile(filename string) bool {
	_, ok := extFontType[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// FindFonts walks root recursively and returns all font files in lexical order.
func FindFonts(root string) ([]Font, error) {
	fonts := []Font{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		} else if d.IsDir() || !IsFontFile(path) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		name := d.Name()
		fonts = append(fonts, Font{
			Path: path,
			Rel:  rel,
			Name: name[:len(name)-len(filepath.Ext(name))],
		})
		return nil
	})
	if err != nil {
		return nil, err
	} else if len(fonts) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFonts, root)
	}

	// fonts such as Sans.ttf and Sans.otf would render to the same image
	stems := map[string]int{}
	for _, fnt := range fonts {
		stems[imageKey(fnt)]++
	}
	for i, fnt := range fonts {
		fonts[i].Stem = fnt.Name
		if 1 < stems[imageKey(fnt)] {
			fonts[i].Stem = filepath.Base(fnt.Rel)
		}
	}
	return fonts, nil
}

func imageKey(fnt Font) string {
	return strings.ToLower(filepath.Join(filepath.Dir(fnt.Rel), fnt.Name))
}
