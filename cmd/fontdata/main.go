package main

import (
	"log"
	"os"

	"github.com/tdewolff/argp"
)

var (
	Error   *log.Logger
	Warning *log.Logger
)

func main() {
	Error = log.New(os.Stderr, "ERROR: ", 0)
	Warning = log.New(os.Stderr, "WARNING: ", 0)

	cmd := argp.New("Convert a tree of TTF and OTF files into a labeled image dataset in HDF5")
	cmd.AddCmd(&Generate{}, "generate", "Rasterize symbols with every font and write them to an HDF5 file")
	cmd.AddCmd(&Info{}, "info", "List fonts and the symbols they are missing")
	cmd.AddCmd(&Inspect{}, "inspect", "List the datasets of an HDF5 file")
	cmd.Parse()
}
