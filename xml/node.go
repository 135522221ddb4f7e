package xml

import (
	"encoding/xml"
	"strings"
)

// node is a lightweight parsed form of one XML element's subtree: its own
// attributes and character data, plus its direct children. Property values
// are shallow (a handful of scalar children, e.g. Vector3's X/Y/Z), so
// materializing this much of the tree per property is simpler than
// threading a *xml.Decoder through three dozen per-type decode functions.
type node struct {
	Tag      string
	Attrs    map[string]string
	Text     string
	Children []*node
}

// attr returns the named attribute's value, or "" if absent.
func (n *node) attr(name string) string {
	return n.Attrs[name]
}

// child returns the first direct child with the given tag, or nil.
func (n *node) child(tag string) *node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// childText returns the text of the first direct child with the given tag,
// or "" if absent.
func (n *node) childText(tag string) string {
	if c := n.child(tag); c != nil {
		return c.Text
	}
	return ""
}

// readNode recursively consumes dec until start's matching EndElement,
// returning the parsed subtree.
func readNode(dec *xml.Decoder, start xml.StartElement) (*node, error) {
	n := &node{Tag: start.Name.Local, Attrs: make(map[string]string, len(start.Attr))}
	for _, a := range start.Attr {
		n.Attrs[a.Name.Local] = a.Value
	}

	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := readNode(dec, t)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			n.Text = strings.TrimSpace(text.String())
			return n, nil
		}
	}
}
