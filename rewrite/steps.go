package rewrite

import (
	"strings"
	"unicode"

	"navsync/common"
	"navsync/match"
)

// Document is a single corpus document being transformed. Raw is replaced by
// every step which changes it, original content is never modified.
type Document struct {
	// ID is document identity used for active item lookups.
	ID string
	// Path is storage key.
	Path string
	Raw  []byte
}

// step applies single fragment substitution. Matched is false when document
// has nothing to substitute, this is not an error.
type step struct {
	kind  common.FragmentKind
	apply func(doc *Document) (matched bool, err error)
}

var titleAnchor = match.Anchor{Tag: "title"}

// steps returns substitutions in the order they are applied.
func (e *Engine) steps() []step {
	return []step{
		{common.FragmentKindColor, e.substitute},
		{common.FragmentKindTitle, e.title},
		{common.FragmentKindLogo, e.logo},
		{common.FragmentKindTopnav, e.topNav},
		{common.FragmentKindSidenav, e.sideNav},
	}
}

// substitute replaces brand colors, then literal snippets.
func (e *Engine) substitute(doc *Document) (bool, error) {
	matched := false
	for _, r := range e.colors {
		if found := match.Color(doc.Raw, r.From); len(found) > 0 {
			doc.Raw = match.Replace(doc.Raw, found, r.To)
			matched = true
		}
	}
	for _, r := range e.literals {
		if found := match.Literal(doc.Raw, r.From); len(found) > 0 {
			doc.Raw = match.Replace(doc.Raw, found, r.To)
			matched = true
		}
	}
	return matched, nil
}

// title rewrites title text which still carries old suffix. Surrounding
// whitespace is kept as is.
func (e *Engine) title(doc *Document) (bool, error) {
	region, ok := match.Locate(doc.Raw, titleAnchor)
	if !ok {
		return false, nil
	}
	inner := string(doc.Raw[region.InnerStart:region.InnerEnd])
	text := strings.TrimSpace(inner)
	page, found := strings.CutSuffix(text, e.oldSuffix)
	if !found {
		return false, nil
	}

	title, err := e.render.Title(strings.TrimSpace(page), doc.ID)
	if err != nil {
		return false, err
	}

	lead := inner[:len(inner)-len(strings.TrimLeftFunc(inner, unicode.IsSpace))]
	trail := inner[len(strings.TrimRightFunc(inner, unicode.IsSpace)):]
	doc.Raw = match.Replace(doc.Raw, []match.Range{region.Inner()}, lead+title+trail)
	return true, nil
}

// logo replaces complete logo element.
func (e *Engine) logo(doc *Document) (bool, error) {
	region, ok := match.Locate(doc.Raw, e.anchors.logo)
	if !ok {
		return false, nil
	}
	doc.Raw = match.Replace(doc.Raw, []match.Range{region.Outer()}, e.render.Logo())
	return true, nil
}

func (e *Engine) topNav(doc *Document) (bool, error) {
	active, _ := e.nav.Resolve(doc.ID)
	return replaceNav(doc, e.anchors.topNav, func(indent string) string {
		return e.render.TopNav(active, indent)
	}), nil
}

func (e *Engine) sideNav(doc *Document) (bool, error) {
	_, active := e.nav.Resolve(doc.ID)
	return replaceNav(doc, e.anchors.sideNav, func(indent string) string {
		return e.render.Sidebar(active, indent)
	}), nil
}

// replaceNav replaces content of navigation container keeping the container
// element itself. Rendered lines are indented relative to the line holding
// opening tag, closing tag goes on its own line at the same indentation.
func replaceNav(doc *Document, anchor match.Anchor, render func(indent string) string) bool {
	region, ok := match.Locate(doc.Raw, anchor)
	if !ok || !region.Closed() {
		return false
	}
	indent := match.LineIndent(doc.Raw, region.Start)

	var inner string
	if body := render(indent); len(body) > 0 {
		inner = "\n" + body + "\n" + indent
	} else {
		inner = "\n" + indent
	}
	doc.Raw = match.Replace(doc.Raw, []match.Range{region.Inner()}, inner)
	return true
}
