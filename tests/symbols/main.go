//go:build gofuzz
// +build gofuzz

package fuzz

import "github.com/tdewolff/fontdata"

// Fuzz is a fuzz test.
func Fuzz(data []byte) int {
	_, _ = fontdata.ParseRasterSize(string(data))
	if _, err := fontdata.Symbols(fontdata.Letters, string(data)); err != nil {
		return 0
	}
	return 1
}
