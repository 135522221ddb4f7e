package xml

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"

	"github.com/robloxapi/rbxdom"
	"github.com/robloxapi/rbxdom/binary"
	"github.com/robloxapi/rbxdom/reflection"
)

// Decode reads an XML document (spec.md §4.D.2) and returns the DOM it
// describes. db resolves serialized property names to their canonical
// form, the same as binary.Decode; a nil db keeps on-disk names as-is.
func Decode(r io.Reader, db *reflection.Database) (*rbxdom.DOM, error) {
	dec := xml.NewDecoder(r)

	var root *node
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading document: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok && start.Name.Local == "roblox" {
			root, err = readNode(dec, start)
			if err != nil {
				return nil, fmt.Errorf("reading document: %w", err)
			}
			break
		}
	}
	if root == nil {
		return nil, fmt.Errorf("no <roblox> root element found")
	}

	sharedStrings := make(map[string]rbxdom.ValueSharedString)
	if sstr := root.child("SharedStrings"); sstr != nil {
		for _, e := range sstr.Children {
			if e.Tag != "SharedString" {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(e.Text)
			if err != nil {
				return nil, fmt.Errorf("SharedStrings entry %q: %w", e.attr("md5"), err)
			}
			sharedStrings[e.attr("md5")] = rbxdom.NewSharedString(data)
		}
	}

	dom := rbxdom.NewDOM(rbxdom.InstanceBuilder{ClassName: rootClassName})
	for _, meta := range root.Children {
		if meta.Tag != "Meta" {
			continue
		}
		dom.SetMetadata(meta.attr("name"), meta.Text)
	}

	referentToRef := make(map[string]rbxdom.Ref)

	type pendingProp struct {
		Inst  rbxdom.Ref
		Class string
		Name  string
		Val   decodedValue
	}
	var pending []pendingProp

	var walkItem func(n *node, parent rbxdom.Ref) error
	walkItem = func(n *node, parent rbxdom.Ref) error {
		className := n.attr("class")
		if className == "" {
			return fmt.Errorf("<Item> missing class attribute")
		}
		ref, err := dom.Insert(parent, rbxdom.InstanceBuilder{ClassName: className})
		if err != nil {
			return err
		}
		if r := n.attr("referent"); r != "" {
			referentToRef[r] = ref
		}

		if props := n.child("Properties"); props != nil {
			for _, p := range props.Children {
				propName := p.attr("name")
				if propName == "" {
					continue
				}
				val, err := decodeXMLValue(p.Tag, p)
				if err != nil {
					return fmt.Errorf("%s.%s: %w", className, propName, err)
				}
				if db != nil {
					if canon, ok := db.CanonicalName(className, propName); ok {
						propName = canon
					}
				}
				pending = append(pending, pendingProp{Inst: ref, Class: className, Name: propName, Val: val})
			}
		}

		for _, child := range n.Children {
			if child.Tag == "Item" {
				if err := walkItem(child, ref); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for _, item := range root.Children {
		if item.Tag != "Item" {
			continue
		}
		if err := walkItem(item, dom.Root()); err != nil {
			return nil, err
		}
	}

	for _, p := range pending {
		inst := dom.Get(p.Inst)
		if inst == nil {
			continue
		}
		switch p.Val.Kind {
		case kindRef:
			target, ok := referentToRef[p.Val.Key]
			if !ok && p.Val.Key != "" {
				slog.Default().Warn("xml: dangling reference resolved to null",
					"class", p.Class, "property", p.Name)
			}
			inst.Set(p.Name, rbxdom.ValueRef{Ref: target})
		case kindSharedString:
			ss, ok := sharedStrings[p.Val.Key]
			if !ok {
				continue
			}
			inst.Set(p.Name, ss)
		default:
			v := p.Val.Value
			if db != nil {
				if declared, ok := binary.DeclaredTypeFor(db, p.Class, p.Name); ok && v != nil && v.Type() != declared {
					if conv, ok := binary.ConvertToDeclaredType(v, declared); ok {
						v = conv
					} else {
						slog.Default().Warn("xml: type tag mismatch, keeping on-disk type",
							"class", p.Class, "property", p.Name,
							"disk_type", v.Type().String(), "declared_type", declared.String())
					}
				}
			}
			inst.Set(p.Name, v)
		}
	}

	return dom, nil
}
