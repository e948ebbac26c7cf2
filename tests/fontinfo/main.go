//go:build gofuzz
// +build gofuzz

package fuzz

import "github.com/tdewolff/fontdata"

// Fuzz is a fuzz test.
func Fuzz(data []byte) int {
	info, err := fontdata.ParseFontInfo(data)
	if err != nil {
		return 0
	}
	_ = info.Missing([]string{"a", "Z", "0"})
	return 1
}
