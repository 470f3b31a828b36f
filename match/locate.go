// Package match finds fragments in loosely structured HTML without building a
// document tree. Documents are tokenized, fragments are located by their
// opening tag ("anchor") and the balanced closing tag, results are byte ranges
// into the original text so everything outside of them is preserved exactly.
package match

import (
	"bytes"
	"slices"
	"strings"

	"golang.org/x/net/html"
)

// Anchor describes opening tag of a fragment. Attribute order in the document
// does not matter, class attribute is compared as a set of classes, other
// attributes are compared with surrounding whitespace removed. Attributes not
// listed in the anchor are ignored.
type Anchor struct {
	Tag   string
	Attrs map[string]string
}

func (a Anchor) String() string {
	var b strings.Builder
	b.WriteString("<" + a.Tag)
	keys := make([]string, 0, len(a.Attrs))
	for k := range a.Attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		b.WriteString(" " + k + `="` + a.Attrs[k] + `"`)
	}
	b.WriteString(">")
	return b.String()
}

// Range is a half open byte range [Start, End).
type Range struct {
	Start, End int
}

func (r Range) Len() int {
	return r.End - r.Start
}

// Region is a located element: Start..End covers the element including its
// opening and closing tags, InnerStart..InnerEnd covers its content only.
type Region struct {
	Start, InnerStart, InnerEnd, End int
}

func (r Region) Outer() Range {
	return Range{Start: r.Start, End: r.End}
}

func (r Region) Inner() Range {
	return Range{Start: r.InnerStart, End: r.InnerEnd}
}

// Closed reports whether element has closing tag. Void and self-closing
// elements have no content which could be replaced.
func (r Region) Closed() bool {
	return r.InnerEnd < r.End
}

// elements which never have closing tag
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true, "img": true,
	"input": true, "link": true, "meta": true, "source": true, "track": true, "wbr": true,
}

// Locate finds the first element in document order satisfying anchor and its
// matching closing tag. Elements with the same tag name nested inside are
// balanced, so the result is the smallest complete element started by the
// first anchor occurrence. Markup inside comments, scripts and styles is never
// matched. Element which is never closed is reported as not found.
func Locate(raw []byte, a Anchor) (Region, bool) {
	tag := []byte(strings.ToLower(a.Tag))
	if len(tag) == 0 {
		return Region{}, false
	}

	var (
		z      = html.NewTokenizer(bytes.NewReader(raw))
		offset int
		depth  int
		region Region
	)

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF or broken input, either way nothing (more) to find
			return Region{}, false
		}
		// raw tokens partition input, so offset of the next token is sum of
		// all previous token sizes. Size must be taken before TagName which
		// modifies buffer in place.
		size := len(z.Raw())

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if !bytes.Equal(name, tag) {
				break
			}
			if depth > 0 {
				if tt == html.StartTagToken {
					depth++
				}
				break
			}
			if !a.matches(z, hasAttr) {
				break
			}
			if tt == html.SelfClosingTagToken || voidElements[string(tag)] {
				end := offset + size
				return Region{Start: offset, InnerStart: end, InnerEnd: end, End: end}, true
			}
			region.Start, region.InnerStart = offset, offset+size
			depth = 1
		case html.EndTagToken:
			if depth == 0 {
				break
			}
			if name, _ := z.TagName(); bytes.Equal(name, tag) {
				depth--
				if depth == 0 {
					region.InnerEnd, region.End = offset, offset+size
					return region, true
				}
			}
		}
		offset += size
	}
}

func (a Anchor) matches(z *html.Tokenizer, hasAttr bool) bool {
	if len(a.Attrs) == 0 {
		return true
	}
	got := make(map[string]string)
	for hasAttr {
		var k, v []byte
		k, v, hasAttr = z.TagAttr()
		if _, dup := got[string(k)]; !dup {
			// first occurrence wins, same as in browsers
			got[string(k)] = string(v)
		}
	}
	for k, want := range a.Attrs {
		k = strings.ToLower(k)
		v, ok := got[k]
		if !ok || !attrEqual(k, v, want) {
			return false
		}
	}
	return true
}

func attrEqual(name, got, want string) bool {
	if name != "class" {
		return strings.TrimSpace(got) == strings.TrimSpace(want)
	}
	g, w := classSet(got), classSet(want)
	if len(g) != len(w) {
		return false
	}
	for c := range w {
		if !g[c] {
			return false
		}
	}
	return true
}

func classSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, c := range strings.Fields(s) {
		set[c] = true
	}
	return set
}

// LineIndent returns leading whitespace of the line containing position pos.
func LineIndent(raw []byte, pos int) string {
	if pos > len(raw) {
		pos = len(raw)
	}
	start := bytes.LastIndexByte(raw[:pos], '\n') + 1
	end := start
	for end < pos && (raw[end] == ' ' || raw[end] == '\t') {
		end++
	}
	return string(raw[start:end])
}
