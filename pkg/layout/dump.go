package layout

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes the fragment tree rooted at f to w, one fragment per line,
// with offsets relative to the parent.
func Dump(w io.Writer, f *Fragment) error {
	return dumpFragment(w, f, Position{}, 0)
}

func dumpFragment(w io.Writer, f *Fragment, offset Position, depth int) error {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(&sb, "%s %s at (%g,%g) size %gx%g", f.Type, f.Node, offset.X, offset.Y, f.Size.Width, f.Size.Height)
	if f.Type == FragmentLine {
		fmt.Fprintf(&sb, " %q", f.Text)
	}
	if f.BreakToken != nil {
		fmt.Fprintf(&sb, " break=%s", f.BreakToken)
	}
	sb.WriteString("\n")
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}
	for _, c := range f.Children {
		if err := dumpFragment(w, c.Fragment, c.Offset, depth+1); err != nil {
			return err
		}
	}
	return nil
}
