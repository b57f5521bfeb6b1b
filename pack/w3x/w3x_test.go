package w3x

import (
	"fmt"
	"strings"
)

type testPivot struct {
	name   string
	parent string // empty means no Parent attribute
	t      string // "x y z", empty omits Translation
	r      string // "x y z w", empty omits Rotation
}

func buildBlock(id string, pivots ...testPivot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<W3DHierarchy id=%q>\n", id)
	for _, p := range pivots {
		if p.parent != "" {
			fmt.Fprintf(&sb, "\t<Pivot Name=%q Parent=%q>\n", p.name, p.parent)
		} else {
			fmt.Fprintf(&sb, "\t<Pivot Name=%q>\n", p.name)
		}
		if p.t != "" {
			var x, y, z string
			fmt.Sscan(p.t, &x, &y, &z)
			fmt.Fprintf(&sb, "\t\t<Translation X=%q Y=%q Z=%q/>\n", x, y, z)
		}
		if p.r != "" {
			var x, y, z, w string
			fmt.Sscan(p.r, &x, &y, &z, &w)
			fmt.Fprintf(&sb, "\t\t<Rotation X=%q Y=%q Z=%q W=%q/>\n", x, y, z, w)
		}
		sb.WriteString("\t</Pivot>\n")
	}
	sb.WriteString("</W3DHierarchy>")
	return sb.String()
}

func rootPivot() testPivot {
	return testPivot{name: DefaultRootName, parent: "-1", t: "0 0 0", r: "0 0 0 1"}
}

func pivotNames(h *Hierarchy) []string {
	names := make([]string, len(h.Pivots))
	for i := range h.Pivots {
		names[i] = h.Pivots[i].Name
	}
	return names
}

func pivotParents(h *Hierarchy) []int {
	parents := make([]int, len(h.Pivots))
	for i := range h.Pivots {
		parents[i] = h.Pivots[i].ParentIndex
	}
	return parents
}
