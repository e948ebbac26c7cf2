package fontdata

import (
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func TestSymbols(t *testing.T) {
	var tests = []struct {
		mode    Mode
		subset  string
		symbols string
	}{
		{Letters, "", "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"},
		{Numbers, "", "0123456789"},
		{Alphanumeric, "", "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"},
		{Alphanumeric, "a,b", "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"},
		{Letters, "a, b ,C", "abC"},
		{Numbers, "7,,3", "73"},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode)+"/"+tt.subset, func(t *testing.T) {
			symbols, err := Symbols(tt.mode, tt.subset)
			test.Error(t, err)
			test.T(t, strings.Join(symbols, ""), tt.symbols)
		})
	}
}

func TestSymbolsMultiChar(t *testing.T) {
	symbols, err := Symbols(Letters, "ab, cd")
	test.Error(t, err)
	test.T(t, symbols, []string{"ab", "cd"})
}

func TestSymbolsErrors(t *testing.T) {
	_, err := Symbols(Mode("greek"), "")
	test.That(t, err != nil, "unknown mode must fail")

	_, err = Symbols(Letters, " , ,")
	test.That(t, err != nil, "empty subset must fail")

	_, err = Symbols(Letters, "a,b/c")
	test.That(t, err != nil, "slash must fail")
}

func TestParseMode(t *testing.T) {
	mode, err := ParseMode("Numbers")
	test.Error(t, err)
	test.T(t, mode, Numbers)

	_, err = ParseMode("digits")
	test.That(t, err != nil)
}

func TestDescribeSymbol(t *testing.T) {
	test.T(t, DescribeSymbol("a"), "a (LATIN SMALL LETTER A)")
	test.T(t, DescribeSymbol("7"), "7 (DIGIT SEVEN)")
	test.T(t, DescribeSymbol("ab"), "ab (LATIN SMALL LETTER A, ...)")
	test.T(t, DescribeSymbol(""), "")
}
