// Package nav keeps navigation topology: ordered top bar and sidebar tables
// and per-document active item maps. Everything here is built once at startup
// and is read only afterwards, so it could be shared by any number of
// concurrently processed documents.
package nav

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"go.uber.org/multierr"

	"navsync/config"
)

// ErrInconsistent is returned when configuration references navigation items
// which do not exist or declares the same item twice.
var ErrInconsistent = errors.New("inconsistent navigation configuration")

// Item is a single navigation link. ID is the link target and is unique in its
// table.
type Item struct {
	ID    string
	Icon  string
	Label string
}

// Table is an ordered list of items with constant time lookup by ID.
type Table struct {
	items []Item
	index map[string]int
}

// Items returns items in declaration order. Slice must not be modified.
func (t *Table) Items() []Item {
	return t.items
}

func (t *Table) Has(id string) bool {
	_, ok := t.index[id]
	return ok
}

func (t *Table) Len() int {
	return len(t.items)
}

// Section is a titled group of sidebar items.
type Section struct {
	Title string
	Items []Item
}

// Sidebar is an ordered list of sections. Item IDs are unique across the whole
// sidebar, so a single active ID selects exactly one item.
type Sidebar struct {
	sections []Section
	index    map[string]int // item ID to section
}

// Sections returns sections in declaration order. Slice must not be modified.
func (s *Sidebar) Sections() []Section {
	return s.sections
}

func (s *Sidebar) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// ActiveMap maps document identity to active item ID. Documents without entry
// get Default.
type ActiveMap struct {
	Entries map[string]string
	Default string
}

func (m ActiveMap) Lookup(doc string) string {
	if id, ok := m.Entries[doc]; ok {
		return id
	}
	return m.Default
}

// Navigation is complete navigation configuration.
type Navigation struct {
	Top        *Table
	Sidebar    *Sidebar
	ActiveTop  ActiveMap
	ActiveSide ActiveMap
	// sidebar item decorated with counter, empty when there is none
	BadgeID    string
	BadgeCount int
}

// New builds navigation from configuration and checks it for consistency. All
// detected problems are reported at once, error wraps ErrInconsistent.
func New(cfg *config.NavigationConfig) (*Navigation, error) {
	var errs error

	top, err := newTable(cfg.Top)
	errs = multierr.Append(errs, err)

	side, err := newSidebar(cfg.Sidebar)
	errs = multierr.Append(errs, err)

	n := &Navigation{
		Top:        top,
		Sidebar:    side,
		ActiveTop:  ActiveMap{Entries: maps.Clone(cfg.ActiveTop.Entries), Default: cfg.ActiveTop.Default},
		ActiveSide: ActiveMap{Entries: maps.Clone(cfg.ActiveSide.Entries), Default: cfg.ActiveSide.Default},
		BadgeID:    cfg.Badge.ID,
		BadgeCount: cfg.Badge.Count,
	}

	errs = multierr.Append(errs, checkActive("top", n.ActiveTop, top.Has))
	if len(side.sections) > 0 {
		errs = multierr.Append(errs, checkActive("sidebar", n.ActiveSide, side.Has))
	} else if len(n.ActiveSide.Default) > 0 || len(n.ActiveSide.Entries) > 0 {
		// sidebar is optional, without it there is nothing to activate
		errs = multierr.Append(errs, errors.New("sidebar is empty, active sidebar items must not be configured"))
	}

	if errs != nil {
		return nil, fmt.Errorf("%w: %w", ErrInconsistent, errs)
	}
	return n, nil
}

// Resolve returns IDs of active top bar and sidebar items for document. It
// never fails: documents which are not mapped get configured defaults.
func (n *Navigation) Resolve(doc string) (top, side string) {
	return n.ActiveTop.Lookup(doc), n.ActiveSide.Lookup(doc)
}

// HasBadge reports whether badge item is present in the sidebar. Badge which
// is configured but absent is silently ignored when rendering.
func (n *Navigation) HasBadge() bool {
	return len(n.BadgeID) > 0 && n.Sidebar.Has(n.BadgeID)
}

func newTable(items []config.NavItemConfig) (*Table, error) {
	var errs error

	t := &Table{index: make(map[string]int, len(items))}
	if len(items) == 0 {
		errs = multierr.Append(errs, errors.New("top navigation is empty"))
	}
	for i, it := range items {
		if len(it.ID) == 0 {
			errs = multierr.Append(errs, fmt.Errorf("top item %d has no id", i))
			continue
		}
		if j, dup := t.index[it.ID]; dup {
			errs = multierr.Append(errs, fmt.Errorf("top item %q is declared twice (positions %d and %d)", it.ID, j, i))
			continue
		}
		t.index[it.ID] = len(t.items)
		t.items = append(t.items, Item{ID: it.ID, Icon: it.Icon, Label: it.Label})
	}
	return t, errs
}

func newSidebar(sections []config.SectionConfig) (*Sidebar, error) {
	var errs error

	s := &Sidebar{index: make(map[string]int)}
	for i, sc := range sections {
		if len(sc.Title) == 0 {
			errs = multierr.Append(errs, fmt.Errorf("sidebar section %d has no title", i))
		}
		sec := Section{Title: sc.Title}
		for _, it := range sc.Items {
			if len(it.ID) == 0 {
				errs = multierr.Append(errs, fmt.Errorf("sidebar section %q has item without id", sc.Title))
				continue
			}
			if j, dup := s.index[it.ID]; dup {
				errs = multierr.Append(errs, fmt.Errorf("sidebar item %q is declared twice (sections %q and %q)", it.ID, sections[j].Title, sc.Title))
				continue
			}
			s.index[it.ID] = i
			sec.Items = append(sec.Items, Item{ID: it.ID, Icon: it.Icon, Label: it.Label})
		}
		s.sections = append(s.sections, sec)
	}
	return s, errs
}

func checkActive(name string, m ActiveMap, has func(string) bool) error {
	var errs error
	if !has(m.Default) {
		errs = multierr.Append(errs, fmt.Errorf("%s default item %q does not exist", name, m.Default))
	}
	for _, doc := range slices.Sorted(maps.Keys(m.Entries)) {
		if id := m.Entries[doc]; !has(id) {
			errs = multierr.Append(errs, fmt.Errorf("%s active item %q for document %q does not exist", name, id, doc))
		}
	}
	return errs
}
