package main

import (
	"fmt"
	"strings"

	"github.com/tdewolff/fontdata"
)

type Info struct {
	Mode    string `short:"m" desc:"Symbols to check: letters, numbers, or alphanumeric." default:"letters"`
	Symbols string `short:"s" desc:"Comma-separated subset of symbols to check, used with letters and numbers."`
	Input   string `index:"0" desc:"Root folder with font files." default:"."`
}

func (cmd *Info) Run() error {
	mode, err := fontdata.ParseMode(cmd.Mode)
	if err != nil {
		return err
	}
	symbols, err := fontdata.Symbols(mode, cmd.Symbols)
	if err != nil {
		return err
	}
	fonts, err := fontdata.FindFonts(cmd.Input)
	if err != nil {
		return err
	}

	fmt.Printf("Root: %s\n\n", cmd.Input)
	complete := 0
	for _, fnt := range fonts {
		info, err := fontdata.ReadFontInfo(fnt.Path)
		if err != nil {
			Warning.Printf("%v: %v\n", fnt.Rel, err)
			continue
		}

		missing := info.Missing(symbols)
		if len(missing) == 0 {
			complete++
			fmt.Printf("  %s  (%s, %v)\n", fnt.Rel, fnt.Type(), info)
			continue
		}
		for i, symbol := range missing {
			missing[i] = printableSymbol(symbol)
		}
		fmt.Printf("  %s  (%s, %v)  missing: %s\n", fnt.Rel, fnt.Type(), info, strings.Join(missing, " "))
	}
	fmt.Printf("\n%d of %d fonts have all %d symbols\n", complete, len(fonts), len(symbols))
	return nil
}
