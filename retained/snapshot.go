package retained

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// Snapshot is a serializable view of an element subtree after layout.
type Snapshot struct {
	Name       string            `json:"name,omitempty"`
	Kind       Kind              `json:"kind"`
	Classes    string            `json:"classes,omitempty"`
	Text       string            `json:"text,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
	Attrs      map[string]string `json:"attrs,omitempty"`
	Visible    bool              `json:"visible"`
	Hovered    bool              `json:"hovered,omitempty"`
	Bounds     Bounds            `json:"bounds"`
	Overflow   bool              `json:"overflow,omitempty"`
	Children   []Snapshot        `json:"children,omitempty"`
}

// TakeSnapshot captures e and its descendants. Hidden subtrees are included
// with Visible=false and no children.
func TakeSnapshot(e *Element) Snapshot {
	s := Snapshot{
		Name:       e.Name(),
		Kind:       e.Kind(),
		Classes:    e.Classes(),
		Text:       e.Text(),
		Properties: e.Properties(),
		Visible:    e.Visible(),
		Hovered:    e.IsHovered(),
		Bounds:     e.BoundingClientRect(),
		Overflow:   e.ScrollWidth() > e.ClientWidth(),
	}
	if len(s.Properties) == 0 {
		s.Properties = nil
	}
	e.mu.RLock()
	if len(e.attrs) > 0 {
		s.Attrs = maps.Clone(e.attrs)
	}
	e.mu.RUnlock()

	if !s.Visible {
		return s
	}
	for _, c := range e.Children() {
		s.Children = append(s.Children, TakeSnapshot(c))
	}
	return s
}

// WriteTree prints an indented outline of the subtree to w.
func WriteTree(w io.Writer, e *Element) error {
	return writeSnapshot(w, TakeSnapshot(e), 0)
}

func writeSnapshot(w io.Writer, s Snapshot, depth int) error {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(string(s.Kind))
	if s.Name != "" {
		fmt.Fprintf(&b, " %s", s.Name)
	}
	if s.Text != "" {
		fmt.Fprintf(&b, " %q", s.Text)
	}
	if !s.Visible {
		b.WriteString(" (hidden)")
	} else {
		fmt.Fprintf(&b, " [%g,%g %gx%g]", s.Bounds.X, s.Bounds.Y, s.Bounds.Width, s.Bounds.Height)
	}
	if s.Overflow {
		b.WriteString(" overflow")
	}
	keys := make([]string, 0, len(s.Properties))
	for k := range s.Properties {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, s.Properties[k])
	}
	b.WriteByte('\n')
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	for _, c := range s.Children {
		if err := writeSnapshot(w, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}
