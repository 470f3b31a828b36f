package nav

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"navsync/config"
)

func testConfig() *config.NavigationConfig {
	return &config.NavigationConfig{
		Top: []config.NavItemConfig{
			{ID: "home-full.html", Icon: "solar:feed-linear"},
			{ID: "forums.html", Icon: "solar:chat-line-linear"},
			{ID: "messages.html", Icon: "solar:chat-round-dots-linear"},
		},
		Sidebar: []config.SectionConfig{
			{Title: "Osobisty", Items: []config.NavItemConfig{
				{ID: "home.html", Icon: "solar:graph-up-linear", Label: "Moja oś czasu"},
				{ID: "messages.html", Icon: "solar:inbox-linear", Label: "Moja skrzynka"},
			}},
			{Title: "Wspólnota", Items: []config.NavItemConfig{
				{ID: "forums.html", Icon: "solar:chat-line-linear", Label: "Moje dyskusje"},
			}},
		},
		ActiveTop: config.ActiveConfig{
			Default: "home-full.html",
			Entries: map[string]string{"forums.html": "forums.html", "home.html": "home-full.html"},
		},
		ActiveSide: config.ActiveConfig{
			Default: "home.html",
			Entries: map[string]string{"forums.html": "forums.html", "notifications.html": "messages.html"},
		},
		Badge: config.BadgeConfig{ID: "messages.html", Count: 3},
	}
}

func TestNew(t *testing.T) {
	n, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if n.Top.Len() != 3 {
		t.Errorf("Top.Len() = %d, want 3", n.Top.Len())
	}
	wantTop := []string{"home-full.html", "forums.html", "messages.html"}
	for i, it := range n.Top.Items() {
		if it.ID != wantTop[i] {
			t.Errorf("Top[%d] = %q, want %q", i, it.ID, wantTop[i])
		}
	}

	sections := n.Sidebar.Sections()
	if len(sections) != 2 || sections[0].Title != "Osobisty" || sections[1].Title != "Wspólnota" {
		t.Fatalf("unexpected sections %+v", sections)
	}
	if sections[0].Items[1].Label != "Moja skrzynka" {
		t.Errorf("label = %q", sections[0].Items[1].Label)
	}
	if !n.Sidebar.Has("forums.html") || n.Sidebar.Has("home-full.html") {
		t.Error("Sidebar.Has() returned unexpected result")
	}
	if !n.HasBadge() {
		t.Error("HasBadge() = false, want true")
	}
}

func TestResolve(t *testing.T) {
	n, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		doc, top, side string
	}{
		{"forums.html", "forums.html", "forums.html"},
		{"home.html", "home-full.html", "home.html"},
		{"notifications.html", "home-full.html", "messages.html"},
		{"group-detail-42.html", "home-full.html", "home.html"},
		{"", "home-full.html", "home.html"},
	}
	for _, tt := range tests {
		top, side := n.Resolve(tt.doc)
		if top != tt.top || side != tt.side {
			t.Errorf("Resolve(%q) = (%q, %q), want (%q, %q)", tt.doc, top, side, tt.top, tt.side)
		}
	}
}

func TestNew_ConfigIsCopied(t *testing.T) {
	cfg := testConfig()
	n, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	cfg.ActiveTop.Entries["forums.html"] = "messages.html"
	cfg.Top[0].ID = "changed.html"
	if top, _ := n.Resolve("forums.html"); top != "forums.html" {
		t.Errorf("navigation changed with configuration: %q", top)
	}
	if n.Top.Items()[0].ID != "home-full.html" {
		t.Errorf("table changed with configuration: %q", n.Top.Items()[0].ID)
	}
}

func TestNew_Inconsistent(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.NavigationConfig)
		count  int
		substr string
	}{
		{"unknown top entry", func(c *config.NavigationConfig) { c.ActiveTop.Entries["x.html"] = "missing.html" }, 1, `"missing.html"`},
		{"unknown side entry", func(c *config.NavigationConfig) { c.ActiveSide.Entries["x.html"] = "forums2.html" }, 1, `"forums2.html"`},
		{"unknown top default", func(c *config.NavigationConfig) { c.ActiveTop.Default = "nope.html" }, 1, "default"},
		{"unknown side default", func(c *config.NavigationConfig) { c.ActiveSide.Default = "home-full.html" }, 1, "default"},
		{"duplicate top", func(c *config.NavigationConfig) {
			c.Top = append(c.Top, config.NavItemConfig{ID: "forums.html", Icon: "x"})
		}, 1, "declared twice"},
		{"duplicate across sections", func(c *config.NavigationConfig) {
			c.Sidebar[1].Items = append(c.Sidebar[1].Items, config.NavItemConfig{ID: "home.html", Icon: "x"})
		}, 1, "declared twice"},
		{"empty top", func(c *config.NavigationConfig) {
			c.Top = nil
		}, 4, "empty"},
		{"empty top default", func(c *config.NavigationConfig) { c.ActiveTop.Default = "" }, 1, "default"},
		{"side default without sidebar", func(c *config.NavigationConfig) {
			c.Sidebar = nil
			c.ActiveSide = config.ActiveConfig{Default: "home.html"}
		}, 1, "sidebar is empty"},
		{"side entries without sidebar", func(c *config.NavigationConfig) {
			c.Sidebar = nil
			c.ActiveSide = config.ActiveConfig{Entries: map[string]string{"x.html": "ghost.html"}}
		}, 1, "sidebar is empty"},
		{"several problems at once", func(c *config.NavigationConfig) {
			c.ActiveTop.Default = "a.html"
			c.ActiveSide.Default = "b.html"
			c.Sidebar[0].Title = ""
		}, 3, "no title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.modify(cfg)
			n, err := New(cfg)
			if err == nil {
				t.Fatal("New() expected error")
			}
			if n != nil {
				t.Error("New() returned navigation together with error")
			}
			if !errors.Is(err, ErrInconsistent) {
				t.Errorf("error does not wrap ErrInconsistent: %v", err)
			}
			if !strings.Contains(err.Error(), tt.substr) {
				t.Errorf("error %q does not mention %q", err, tt.substr)
			}
			var inner error
			if u, ok := err.(interface{ Unwrap() []error }); ok {
				inner = u.Unwrap()[1]
			}
			if got := len(multierr.Errors(inner)); got != tt.count {
				t.Errorf("got %d problems, want %d: %v", got, tt.count, err)
			}
		})
	}
}

func TestNew_OptionalSidebar(t *testing.T) {
	cfg := testConfig()
	cfg.Sidebar = nil
	cfg.ActiveSide = config.ActiveConfig{}
	n, err := New(cfg)
	if err != nil {
		t.Fatalf("New() without sidebar error = %v", err)
	}
	if n.HasBadge() {
		t.Error("HasBadge() = true without sidebar")
	}
}

func TestHasBadge(t *testing.T) {
	cfg := testConfig()
	cfg.Badge.ID = "absent.html"
	n, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if n.HasBadge() {
		t.Error("HasBadge() = true for item absent from sidebar")
	}

	cfg.Badge.ID = ""
	if n, _ = New(cfg); n.HasBadge() {
		t.Error("HasBadge() = true with badge disabled")
	}
}

func TestActiveMapLookup(t *testing.T) {
	m := ActiveMap{Default: "d"}
	if got := m.Lookup("anything"); got != "d" {
		t.Errorf("Lookup() on nil entries = %q, want d", got)
	}
}

func TestNavigationString(t *testing.T) {
	n, err := New(testConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	out := n.String()

	for _, s := range []string{
		"Top (3 items)\n",
		"Sidebar (2 sections)\n",
		`  [0] title="Osobisty"`,
		`    [1] id="messages.html" icon="solar:inbox-linear" label="Moja skrzynka" badge=3`,
		`Active sidebar (2 entries, default "home.html")`,
	} {
		if !strings.Contains(out, s) {
			t.Errorf("dump does not contain %q:\n%s", s, out)
		}
	}
	// entries are sorted
	if strings.Index(out, `"forums.html" -> "forums.html"`) > strings.Index(out, `"home.html" -> "home-full.html"`) {
		t.Errorf("active entries are not sorted:\n%s", out)
	}

	var nilNav *Navigation
	if nilNav.String() != "<nil Navigation>" {
		t.Error("String() on nil navigation")
	}
}
