package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/tdewolff/fontdata"
)

type Inspect struct {
	Labels  bool   `short:"l" desc:"Print the font names of every symbol."`
	Preview bool   `short:"p" desc:"Draw the first image of every symbol in the terminal."`
	Input   string `index:"0" desc:"HDF5 file." default:"fonts-data.h5"`
}

func (cmd *Inspect) Run() error {
	stat, err := os.Stat(cmd.Input)
	if err != nil {
		return err
	}
	s, err := fontdata.OpenStoreReadOnly(cmd.Input)
	if err != nil {
		return err
	}
	defer s.Close()

	names, err := s.Datasets()
	if err != nil {
		return err
	}
	fmt.Printf("File: %s (%s)\n\n", cmd.Input, formatBytes(stat.Size()))

	for _, name := range names {
		dims, err := s.Dims(name)
		if err != nil {
			return err
		}
		shape := make([]string, len(dims))
		for i, dim := range dims {
			shape[i] = fmt.Sprintf("%d", dim)
		}
		fmt.Printf("  %-24s  %s\n", name, strings.Join(shape, "x"))

		symbol, ok := strings.CutSuffix(name, "-vectors")
		if !ok || !cmd.Labels && !cmd.Preview {
			continue
		}
		labels, images, err := s.ReadSymbol(symbol)
		if err != nil {
			return err
		}
		fmt.Printf("    symbol: %s\n", fontdata.DescribeSymbol(symbol))
		if cmd.Labels {
			fmt.Printf("    labels: %s\n", strings.Join(labels, ", "))
		}
		if cmd.Preview && 0 < len(images) {
			printASCII(os.Stdout, images[0])
		}
	}
	return nil
}
