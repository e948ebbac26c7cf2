package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/tdewolff/fontdata"
	"golang.org/x/term"
)

func printableSymbol(symbol string) string {
	sb := &strings.Builder{}
	for _, r := range symbol {
		if unicode.IsGraphic(r) {
			sb.WriteRune(r)
		} else if r < 128 {
			fmt.Fprintf(sb, "0x%02X", r)
		} else {
			fmt.Fprintf(sb, "%U", r)
		}
	}
	return sb.String()
}

// shades from black to white
const shades = "@#*+=-:. "

// printASCII draws the bitmap with one character per pixel.
func printASCII(w io.Writer, bm *fontdata.Bitmap) {
	line := make([]byte, bm.Width+1)
	line[bm.Width] = '\n'
	for j := 0; j < bm.Height; j++ {
		for i := 0; i < bm.Width; i++ {
			line[i] = shades[int(bm.At(i, j))*(len(shades)-1)/255]
		}
		w.Write(line)
	}
}

// formatBytes prints a file size in decimal units, eg. 2.0 kB.
func formatBytes(size int64) string {
	if size < 1000 {
		return fmt.Sprintf("%d B", size)
	}
	value := float64(size)
	unit := 0
	for 1000.0 <= value && unit < len(sizeUnits)-1 {
		value /= 1000.0
		unit++
	}
	if value < 10.0 {
		return fmt.Sprintf("%.1f %s", value, sizeUnits[unit])
	}
	return fmt.Sprintf("%.0f %s", value, sizeUnits[unit])
}

var sizeUnits = []string{"B", "kB", "MB", "GB", "TB", "PB", "EB"}

// progressBar redraws a single line on a terminal.
type progressBar struct {
	f     *os.File
	width int
	open  bool
}

// newProgressBar returns nil when f is not a terminal.
func newProgressBar(f *os.File) *progressBar {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width < 40 {
		width = 80
	}
	return &progressBar{
		f:     f,
		width: width,
	}
}

func (p *progressBar) Update(i, n int, symbol string) {
	if n == 0 {
		return
	}
	info := fmt.Sprintf(" %d/%d %s", i, n, printableSymbol(symbol))
	barWidth := p.width - len(info) - 8
	if barWidth < 10 {
		barWidth = 10
	}
	filled := barWidth * i / n
	fmt.Fprintf(p.f, "\r%3d%% |%s%s|%s\x1b[K", 100*i/n, strings.Repeat("#", filled), strings.Repeat(" ", barWidth-filled), info)
	p.open = i < n
	if !p.open {
		fmt.Fprint(p.f, "\n")
	}
}

func (p *progressBar) Done() {
	if p.open {
		fmt.Fprint(p.f, "\n")
		p.open = false
	}
}
