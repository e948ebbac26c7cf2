package fontdata

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/tdewolff/font"
	"github.com/tdewolff/parse/v2"
)

// FontInfo holds the properties of a font file that matter for rasterization.
type FontInfo struct {
	Version   string // TrueType, CFF, or Collection
	NumTables int
	NumGlyphs uint16

	sfnt *font.SFNT
}

// ReadFontInfo parses the font file at path.
func ReadFontInfo(path string) (*FontInfo, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFontInfo(b)
}

// ParseFontInfo parses a TTF or OTF font program.
func ParseFontInfo(b []byte) (*FontInfo, error) {
	if len(b) < 12 {
		return nil, font.ErrInvalidFontData
	}

	r := parse.NewBinaryReaderBytes(b)
	sfntVersion := r.ReadString(4)
	if sfntVersion == "ttcf" {
		_ = r.ReadUint32() // majorVersion and minorVersion
	}
	numTables := int(r.ReadUint16())

	version := "TrueType"
	if sfntVersion == "OTTO" {
		version = "CFF"
	} else if sfntVersion == "ttcf" {
		version = "Collection"
	}

	sfnt, err := font.ParseSFNT(b, 0)
	if err != nil {
		return nil, err
	}
	return &FontInfo{
		Version:   version,
		NumTables: numTables,
		NumGlyphs: sfnt.NumGlyphs(),
		sfnt:      sfnt,
	}, nil
}

// HasGlyph returns true if every rune of the symbol maps to a glyph other than .notdef.
func (info *FontInfo) HasGlyph(symbol string) bool {
	return len(info.Missing([]string{symbol})) == 0
}

// Missing returns the symbols that have at least one rune without a glyph.
func (info *FontInfo) Missing(symbols []string) []string {
	missing := []string{}
	for _, symbol := range symbols {
		for _, r := range symbol {
			if r == utf8.RuneError || info.sfnt.GlyphIndex(r) == 0 {
				missing = append(missing, symbol)
				break
			}
		}
	}
	return missing
}

func (info *FontInfo) String() string {
	return fmt.Sprintf("%s, %d tables, %d glyphs", info.Version, info.NumTables, info.NumGlyphs)
}
