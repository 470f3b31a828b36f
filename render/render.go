// Package render produces markup of navigation fragments. Output depends only
// on the active item, navigation tables, configured styles and indentation, so
// rendering the same input twice always gives identical bytes.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"golang.org/x/net/html"

	"navsync/config"
	"navsync/match"
	"navsync/nav"
)

// ErrTemplate is returned when logo or title template cannot be used.
var ErrTemplate = errors.New("bad template")

// LogoValues are available to logo template.
type LogoValues struct {
	Name    string
	Tagline string
	Color   string
	Home    string
	Icon    string
}

// TitleValues are available to title template.
type TitleValues struct {
	Page     string
	Document string
	Name     string
	Tagline  string
}

// Renderer renders fragments for a single navigation configuration. It is
// immutable and safe for concurrent use.
type Renderer struct {
	nav    *nav.Navigation
	styles config.StylesConfig
	brand  config.BrandConfig
	unit   string
	logo   string
	title  *template.Template
}

// New prepares renderer: logo is expanded once, title template is parsed. Logo
// markup must be recognized by the logo anchor as a whole, otherwise rewritten
// documents would not be recognized on the next run.
func New(n *nav.Navigation, cfg *config.Config) (*Renderer, error) {
	r := &Renderer{
		nav:    n,
		styles: cfg.Styles,
		brand:  cfg.Brand,
		unit:   cfg.Processing.Indent,
	}

	logo, err := expand(string(config.LogoTemplateFieldName), cfg.Brand.Logo, LogoValues{
		Name:    cfg.Brand.Name,
		Tagline: cfg.Brand.Tagline,
		Color:   cfg.Brand.Color,
		Home:    cfg.Brand.Home,
		Icon:    cfg.Brand.Icon,
	})
	if err != nil {
		return nil, err
	}
	r.logo = strings.TrimSpace(logo)

	region, ok := match.Locate([]byte(r.logo), cfg.Anchors.Logo.Anchor())
	if !ok || region.Start != 0 || region.End != len(r.logo) {
		return nil, fmt.Errorf("%w: logo markup is not a single element matching %s", ErrTemplate, cfg.Anchors.Logo.Anchor())
	}

	r.title, err = template.New(string(config.TitleTemplateFieldName)).Funcs(sprig.FuncMap()).Parse(cfg.Brand.Title.Template)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to parse title template: %w", ErrTemplate, err)
	}
	return r, nil
}

func expand(name, field string, values any) (string, error) {
	tmpl, err := template.New(name).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("%w: unable to parse %s template: %w", ErrTemplate, name, err)
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", fmt.Errorf("%w: unable to expand %s template: %w", ErrTemplate, name, err)
	}
	return buf.String(), nil
}

// Logo returns complete logo element.
func (r *Renderer) Logo() string {
	return r.logo
}

// Title returns new title text for the page part of the old title.
func (r *Renderer) Title(page, doc string) (string, error) {
	buf := new(bytes.Buffer)
	err := r.title.Execute(buf, TitleValues{
		Page:     page,
		Document: doc,
		Name:     r.brand.Name,
		Tagline:  r.brand.Tagline,
	})
	if err != nil {
		return "", fmt.Errorf("%w: unable to expand title template: %w", ErrTemplate, err)
	}
	return buf.String(), nil
}

// TopNav renders top bar links in table order, one per line, each indented by
// indent plus one indentation unit. Exactly one link - active - gets accent
// style.
func (r *Renderer) TopNav(active, indent string) string {
	var (
		b    strings.Builder
		pad  = indent + r.unit
		size = strconv.Itoa(r.styles.TopIconSize)
	)
	for i, it := range r.nav.Top.Items() {
		if i > 0 {
			b.WriteByte('\n')
		}
		class := r.styles.TopInactive
		if it.ID == active {
			class = r.styles.TopActive
		}
		b.WriteString(pad)
		b.WriteString(`<a href="` + attr(it.ID) + `" class="` + attr(class) + `">`)
		b.WriteString(icon(it.Icon, size))
		b.WriteString(html.EscapeString(it.Label))
		b.WriteString(`</a>`)
	}
	return b.String()
}

// Sidebar renders sidebar sections in declaration order. Each section is a
// wrapper block holding header and section items. Active item gets accent
// style, badge item additionally carries counter.
func (r *Renderer) Sidebar(active, indent string) string {
	var (
		b       strings.Builder
		pad     = indent + r.unit
		itemPad = pad + r.unit
		size    = strconv.Itoa(r.styles.SideIconSize)
		badge   = r.nav.HasBadge()
	)
	for i, sec := range r.nav.Sidebar.Sections() {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(pad + `<div class="` + attr(r.styles.SectionWrapper) + `">` + "\n")
		b.WriteString(itemPad + `<div class="` + attr(r.styles.SectionHeader) + `">` + html.EscapeString(sec.Title) + `</div>`)
		for _, it := range sec.Items {
			b.WriteByte('\n')
			b.WriteString(itemPad)
			if badge && it.ID == r.nav.BadgeID {
				b.WriteString(r.badgeItem(it, it.ID == active, size))
			} else {
				b.WriteString(r.plainItem(it, it.ID == active, size))
			}
		}
		b.WriteString("\n" + pad + `</div>`)
	}
	return b.String()
}

func (r *Renderer) plainItem(it nav.Item, active bool, size string) string {
	class := r.styles.SideInactive
	if active {
		class = r.styles.SideActive
	}
	return `<a href="` + attr(it.ID) + `" class="` + attr(class) + `">` +
		icon(it.Icon, size) + html.EscapeString(it.Label) + `</a>`
}

func (r *Renderer) badgeItem(it nav.Item, active bool, size string) string {
	link, counter := r.styles.BadgeLinkInactive, r.styles.BadgeInactive
	if active {
		link, counter = r.styles.BadgeLinkActive, r.styles.BadgeActive
	}
	return `<a href="` + attr(it.ID) + `" class="` + attr(link) + `">` +
		`<div class="` + attr(r.styles.BadgeLabel) + `">` + icon(it.Icon, size) + html.EscapeString(it.Label) + `</div>` +
		`<span class="` + attr(counter) + `">` + strconv.Itoa(r.nav.BadgeCount) + `</span></a>`
}

func icon(name, size string) string {
	return `<iconify-icon icon="` + attr(name) + `" width="` + size + `" height="` + size + `"></iconify-icon>`
}

// attribute values are always double quoted
func attr(s string) string {
	return html.EscapeString(s)
}
