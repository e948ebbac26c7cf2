package fontdata

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/runenames"
)

// Mode selects the set of symbols to rasterize.
type Mode string

// see Mode
const (
	Letters      Mode = "letters"
	Numbers      Mode = "numbers"
	Alphanumeric Mode = "alphanumeric"
)

const (
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits    = "0123456789"
)

// ParseMode returns the mode for the given name.
func ParseMode(s string) (Mode, error) {
	switch mode := Mode(strings.ToLower(strings.TrimSpace(s))); mode {
	case Letters, Numbers, Alphanumeric:
		return mode, nil
	}
	return "", fmt.Errorf("unsupported mode %q, select one of %v, %v, %v", s, Letters, Numbers, Alphanumeric)
}

// Symbols returns the symbols to rasterize for a mode. The comma-separated subset replaces the default set for letters and numbers and is ignored for alphanumeric.
func Symbols(mode Mode, subset string) ([]string, error) {
	var symbols []string
	switch mode {
	case Letters, Numbers:
		if subset != "" {
			for _, symbol := range strings.Split(subset, ",") {
				if symbol = strings.TrimSpace(symbol); symbol != "" {
					symbols = append(symbols, symbol)
				}
			}
		} else if mode == Letters {
			symbols = splitChars(lowercase + uppercase)
		} else {
			symbols = splitChars(digits)
		}
	case Alphanumeric:
		symbols = splitChars(lowercase + uppercase + digits)
	default:
		return nil, fmt.Errorf("unsupported mode %q", mode)
	}

	if len(symbols) == 0 {
		return nil, fmt.Errorf("empty symbol set")
	}
	for _, symbol := range symbols {
		// dataset names are paths inside the container
		if strings.ContainsRune(symbol, '/') {
			return nil, fmt.Errorf("invalid symbol %q: must not contain '/'", symbol)
		}
	}
	return symbols, nil
}

// DescribeSymbol returns the symbol followed by the Unicode name of its first rune, eg. "a (LATIN SMALL LETTER A)".
func DescribeSymbol(symbol string) string {
	r, _ := utf8.DecodeRuneInString(symbol)
	if r == utf8.RuneError {
		return symbol
	}
	name := runenames.Name(r)
	if name == "" {
		return symbol
	} else if utf8.RuneCountInString(symbol) == 1 {
		return fmt.Sprintf("%s (%s)", symbol, name)
	}
	return fmt.Sprintf("%s (%s, ...)", symbol, name)
}

func splitChars(s string) []string {
	chars := make([]string, 0, len(s))
	for _, r := range s {
		chars = append(chars, string(r))
	}
	return chars
}
