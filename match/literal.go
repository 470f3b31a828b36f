package match

import (
	"bytes"
	"slices"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Literal returns all non-overlapping occurrences of lit in document order.
func Literal(raw []byte, lit string) []Range {
	if len(lit) == 0 {
		return nil
	}
	var (
		res []Range
		pat = []byte(lit)
	)
	for pos := 0; pos < len(raw); {
		i := bytes.Index(raw[pos:], pat)
		if i < 0 {
			break
		}
		res = append(res, Range{Start: pos + i, End: pos + i + len(pat)})
		pos += i + len(pat)
	}
	return res
}

// StableLiteral reports whether replacing every occurrence of from with to is
// done in a single pass: result never has a new occurrence of from. Any such
// occurrence would have to overlap inserted text, so from and to must not
// contain each other and no proper prefix or suffix of from may border to.
func StableLiteral(from, to string) bool {
	if len(from) == 0 || len(to) == 0 || strings.Contains(to, from) || strings.Contains(from, to) {
		return false
	}
	for i := 1; i < len(from); i++ {
		if strings.HasSuffix(to, from[:i]) || strings.HasPrefix(to, from[i:]) {
			return false
		}
	}
	return true
}

// Color returns all occurrences of hex color literal (for example "#F05837")
// regardless of letter case. Alpha form of the same color ("#F05837CC" or
// "#fffa" for "#fff") is an occurrence too, range covers only the color part
// so alpha is kept. Any other run of trailing hex digits makes a different
// color and is not reported.
func Color(raw []byte, hex string) []Range {
	if !ValidHexColor(hex) {
		return nil
	}
	var (
		res []Range
		pat = []byte(hex)
		n   = len(pat)
	)
	for i := 0; i+n <= len(raw); i++ {
		if raw[i] != '#' || !bytes.EqualFold(raw[i:i+n], pat) {
			continue
		}
		if tail := hexRun(raw[i+n:]); tail != 0 && tail != alphaDigits(n-1) {
			continue
		}
		res = append(res, Range{Start: i, End: i + n})
		i += n - 1
	}
	return res
}

// ValidHexColor reports whether s is exactly one CSS hash token with 3, 4, 6
// or 8 hex digits.
func ValidHexColor(s string) bool {
	l := css.NewLexer(parse.NewInputString(s))
	tt, data := l.Next()
	if tt != css.HashToken || len(data) != len(s) {
		return false
	}
	if next, _ := l.Next(); next != css.ErrorToken {
		return false
	}
	digits := data[1:]
	if !slices.Contains([]int{3, 4, 6, 8}, len(digits)) {
		return false
	}
	for _, c := range digits {
		if !isHexDigit(c) {
			return false
		}
	}
	return true
}

// alphaDigits returns length of alpha suffix for color with given number of
// digits, 0 when color already carries alpha.
func alphaDigits(digits int) int {
	switch digits {
	case 3:
		return 1
	case 6:
		return 2
	}
	return 0
}

func hexRun(b []byte) int {
	n := 0
	for n < len(b) && isHexDigit(b[n]) {
		n++
	}
	return n
}

func isHexDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// Replace substitutes every range in raw with repl. Ranges must be sorted and
// must not overlap. Result is always a new slice.
func Replace(raw []byte, ranges []Range, repl string) []byte {
	out := make([]byte, 0, len(raw)+len(ranges)*len(repl))
	pos := 0
	for _, r := range ranges {
		out = append(out, raw[pos:r.Start]...)
		out = append(out, repl...)
		pos = r.End
	}
	return append(out, raw[pos:]...)
}
