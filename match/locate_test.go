package match

import (
	"testing"
)

var topNav = Anchor{Tag: "nav", Attrs: map[string]string{"class": "hidden md:flex items-center h-full gap-1"}}

func TestLocate(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		anchor Anchor
		outer  string
		inner  string
		found  bool
	}{
		{
			name:   "simple",
			doc:    `<body><nav class="hidden md:flex items-center h-full gap-1"><a href="x">x</a></nav><p>tail</p></body>`,
			anchor: topNav,
			outer:  `<nav class="hidden md:flex items-center h-full gap-1"><a href="x">x</a></nav>`,
			inner:  `<a href="x">x</a>`,
			found:  true,
		},
		{
			name:   "whitespace and class order",
			doc:    "<nav\n   class=\"gap-1  h-full hidden\titems-center md:flex\"  >\n<a>1</a>\n</nav >",
			anchor: topNav,
			outer:  "<nav\n   class=\"gap-1  h-full hidden\titems-center md:flex\"  >\n<a>1</a>\n</nav >",
			inner:  "\n<a>1</a>\n",
			found:  true,
		},
		{
			name:   "attribute order and extra attributes",
			doc:    `<a id="logo" class="flex items-center gap-2.5" href=" home-full.html ">L</a>`,
			anchor: Anchor{Tag: "a", Attrs: map[string]string{"href": "home-full.html", "class": "flex items-center gap-2.5"}},
			outer:  `<a id="logo" class="flex items-center gap-2.5" href=" home-full.html ">L</a>`,
			inner:  `L`,
			found:  true,
		},
		{
			name:   "nested same tag",
			doc:    `<div class="s"><div class="a"><div>x</div></div><div>y</div></div><div>z</div>`,
			anchor: Anchor{Tag: "div", Attrs: map[string]string{"class": "s"}},
			outer:  `<div class="s"><div class="a"><div>x</div></div><div>y</div></div>`,
			inner:  `<div class="a"><div>x</div></div><div>y</div>`,
			found:  true,
		},
		{
			name:   "first of two similar blocks",
			doc:    `<nav class="hidden md:flex items-center h-full gap-1">A</nav> middle <nav class="hidden md:flex items-center h-full gap-1">B</nav>`,
			anchor: topNav,
			outer:  `<nav class="hidden md:flex items-center h-full gap-1">A</nav>`,
			inner:  `A`,
			found:  true,
		},
		{
			name:   "different class set is not a match",
			doc:    `<nav class="hidden md:flex items-center h-full gap-2">A</nav><nav class="hidden md:flex items-center h-full gap-1">B</nav>`,
			anchor: topNav,
			outer:  `<nav class="hidden md:flex items-center h-full gap-1">B</nav>`,
			inner:  `B`,
			found:  true,
		},
		{
			name:   "inside comment and script ignored",
			doc:    `<!-- <nav class="hidden md:flex items-center h-full gap-1">C</nav> --><script>var s = '<nav class="hidden md:flex items-center h-full gap-1">';</script>`,
			anchor: topNav,
			found:  false,
		},
		{
			name:   "unclosed",
			doc:    `<nav class="hidden md:flex items-center h-full gap-1"><a>1</a>`,
			anchor: topNav,
			found:  false,
		},
		{
			name:   "absent",
			doc:    `<html><body>nothing</body></html>`,
			anchor: topNav,
			found:  false,
		},
		{
			name:   "title text",
			doc:    "<head>\n  <title>Forums — Online Communities</title>\n</head>",
			anchor: Anchor{Tag: "title"},
			outer:  "<title>Forums — Online Communities</title>",
			inner:  "Forums — Online Communities",
			found:  true,
		},
		{
			name:   "void element",
			doc:    `<head><meta name="x"><meta name="theme" content="#F05837"></head>`,
			anchor: Anchor{Tag: "meta", Attrs: map[string]string{"name": "theme"}},
			outer:  `<meta name="theme" content="#F05837">`,
			inner:  ``,
			found:  true,
		},
		{
			name:   "multibyte text before anchor",
			doc:    `<p>Społeczność Zdrowia — ąęł</p><nav class="hidden md:flex items-center h-full gap-1">ż</nav>`,
			anchor: topNav,
			outer:  `<nav class="hidden md:flex items-center h-full gap-1">ż</nav>`,
			inner:  `ż`,
			found:  true,
		},
		{
			name:   "empty tag in anchor",
			doc:    `<nav></nav>`,
			anchor: Anchor{},
			found:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := []byte(tt.doc)
			region, found := Locate(raw, tt.anchor)
			if found != tt.found {
				t.Fatalf("Locate() found = %v, want %v (region %+v)", found, tt.found, region)
			}
			if !found {
				return
			}
			if got := string(raw[region.Start:region.End]); got != tt.outer {
				t.Errorf("outer = %q, want %q", got, tt.outer)
			}
			if got := string(raw[region.InnerStart:region.InnerEnd]); got != tt.inner {
				t.Errorf("inner = %q, want %q", got, tt.inner)
			}
			if region.Outer().Len() != len(tt.outer) || region.Inner().Len() != len(tt.inner) {
				t.Errorf("range lengths do not match region %+v", region)
			}
		})
	}
}

func TestRegion_Closed(t *testing.T) {
	sideNav := Anchor{Tag: "nav", Attrs: map[string]string{"class": "flex-1 px-4 space-y-8"}}
	tests := []struct {
		name   string
		doc    string
		anchor Anchor
		closed bool
	}{
		{"element with content", `<nav class="flex-1 px-4 space-y-8"><a>x</a></nav>`, sideNav, true},
		{"empty element", `<nav class="flex-1 px-4 space-y-8"></nav>`, sideNav, true},
		{"self-closing", `<nav class="flex-1 px-4 space-y-8"/>`, sideNav, false},
		{"void", `<nav class="flex-1 px-4 space-y-8"><img src="a.png"></nav>`, Anchor{Tag: "img"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region, found := Locate([]byte(tt.doc), tt.anchor)
			if !found {
				t.Fatal("Locate() found nothing")
			}
			if region.Closed() != tt.closed {
				t.Errorf("Closed() = %v, want %v (region %+v)", region.Closed(), tt.closed, region)
			}
		})
	}
}

func TestLocate_DoesNotModifyInput(t *testing.T) {
	doc := `<NAV CLASS="hidden md:flex items-center h-full gap-1">X</NAV>`
	raw := []byte(doc)
	region, found := Locate(raw, topNav)
	if !found {
		t.Fatal("upper case tag not found")
	}
	if string(raw) != doc {
		t.Errorf("input was modified: %q", raw)
	}
	if got := string(raw[region.Start:region.End]); got != doc {
		t.Errorf("outer = %q", got)
	}
}

func TestLineIndent(t *testing.T) {
	raw := []byte("<body>\n        <nav class=\"x\">\n\t\t<div>")
	if got := LineIndent(raw, 15); got != "        " {
		t.Errorf("LineIndent() = %q, want 8 spaces", got)
	}
	if got := LineIndent(raw, len(raw)); got != "\t\t" {
		t.Errorf("LineIndent() = %q, want two tabs", got)
	}
	if got := LineIndent(raw, 0); got != "" {
		t.Errorf("LineIndent() = %q, want empty", got)
	}
	if got := LineIndent([]byte("  x"), 100); got != "  " {
		t.Errorf("LineIndent() past end = %q", got)
	}
}

func TestAnchorString(t *testing.T) {
	a := Anchor{Tag: "a", Attrs: map[string]string{"href": "h.html", "class": "c"}}
	if got := a.String(); got != `<a class="c" href="h.html">` {
		t.Errorf("String() = %q", got)
	}
}
