package nav

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/maruel/natural"
)

type treeWriter struct {
	strings.Builder
}

func (tw *treeWriter) Line(depth int, format string, args ...any) {
	tw.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(tw, format, args...)
	tw.WriteByte('\n')
}

// String returns a readable tree of the whole navigation. It exists solely for
// manual inspection and goes into debug report.
func (n *Navigation) String() string {
	if n == nil {
		return "<nil Navigation>"
	}
	tw := &treeWriter{}

	tw.Line(0, "Top (%d items)", n.Top.Len())
	for i, it := range n.Top.Items() {
		tw.Line(1, "[%d] id=%q icon=%q label=%q", i, it.ID, it.Icon, it.Label)
	}

	tw.Line(0, "Sidebar (%d sections)", len(n.Sidebar.Sections()))
	for i, sec := range n.Sidebar.Sections() {
		tw.Line(1, "[%d] title=%q", i, sec.Title)
		for j, it := range sec.Items {
			badge := ""
			if n.HasBadge() && it.ID == n.BadgeID {
				badge = fmt.Sprintf(" badge=%d", n.BadgeCount)
			}
			tw.Line(2, "[%d] id=%q icon=%q label=%q%s", j, it.ID, it.Icon, it.Label, badge)
		}
	}

	dumpActive(tw, "Active top", n.ActiveTop)
	dumpActive(tw, "Active sidebar", n.ActiveSide)
	return tw.String()
}

func dumpActive(tw *treeWriter, name string, m ActiveMap) {
	tw.Line(0, "%s (%d entries, default %q)", name, len(m.Entries), m.Default)
	keys := slices.Collect(maps.Keys(m.Entries))
	sort.Sort(natural.StringSlice(keys))
	for _, k := range keys {
		tw.Line(1, "%q -> %q", k, m.Entries[k])
	}
}
