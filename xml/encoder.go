package xml

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/robloxapi/rbxdom"
	"github.com/robloxapi/rbxdom/binary"
	"github.com/robloxapi/rbxdom/reflection"
)

// EncodeOptions controls Encode's output shape, mirroring binary.EncodeOptions.
type EncodeOptions struct {
	// Roots restricts serialization to the given refs and their
	// descendants. A nil slice serializes every direct child of the DOM's
	// root.
	Roots []rbxdom.Ref
	// Database resolves each class's serialized property set and default
	// values. A nil Database falls back to whatever properties are
	// actually present on each instance.
	Database *reflection.Database
	// IncludeUnknownProperties, when Database is non-nil, additionally
	// emits any property actually set on an instance but not declared
	// serialized by its class descriptor, instead of silently dropping
	// it.
	IncludeUnknownProperties bool
}

type xmlWriter struct {
	enc           *xml.Encoder
	ctx           *codecContext
	referentCount int
}

type codecContext struct {
	refToReferent map[rbxdom.Ref]string
	sharedStrings map[rbxdom.SharedStringHash]rbxdom.ValueSharedString
}

// Encode writes dom (or the subtrees named by opts.Roots) as an XML
// document (spec.md §4.D.2). Items are written depth-first from the roots
// and each item's properties are sorted by serialized name, for
// readability and diff stability rather than any format requirement (XML
// referents are opaque strings, so order has no decode-time meaning here).
func Encode(w io.Writer, dom *rbxdom.DOM, opts EncodeOptions) error {
	roots := opts.Roots
	if roots == nil {
		roots = dom.Get(dom.Root()).Children()
	}

	xw := &xmlWriter{
		enc: xml.NewEncoder(w),
		ctx: &codecContext{
			refToReferent: make(map[rbxdom.Ref]string),
			sharedStrings: make(map[rbxdom.SharedStringHash]rbxdom.ValueSharedString),
		},
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	start := xml.StartElement{Name: xml.Name{Local: "roblox"}, Attr: []xml.Attr{
		{Name: xml.Name{Local: "version"}, Value: fileVersion},
	}}
	if err := xw.enc.EncodeToken(start); err != nil {
		return err
	}

	meta := dom.Metadata()
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := xw.writeSimpleElement("Meta", map[string]string{"name": k}, meta[k]); err != nil {
			return err
		}
	}

	for _, root := range roots {
		if err := xw.writeItem(dom, root, opts.Database, opts.IncludeUnknownProperties); err != nil {
			return err
		}
	}

	if len(xw.ctx.sharedStrings) > 0 {
		if err := xw.writeSharedStrings(); err != nil {
			return err
		}
	}

	if err := xw.enc.EncodeToken(start.End()); err != nil {
		return err
	}
	return xw.enc.Flush()
}

func (xw *xmlWriter) writeSimpleElement(tag string, attrs map[string]string, text string) error {
	start := xml.StartElement{Name: xml.Name{Local: tag}}
	for k, v := range attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: k}, Value: v})
	}
	if err := xw.enc.EncodeToken(start); err != nil {
		return err
	}
	if text != "" {
		if err := xw.enc.EncodeToken(xml.CharData(text)); err != nil {
			return err
		}
	}
	return xw.enc.EncodeToken(start.End())
}

func (xw *xmlWriter) referentFor(ref rbxdom.Ref) string {
	if r, ok := xw.ctx.refToReferent[ref]; ok {
		return r
	}
	r := "RBX" + strconv.Itoa(xw.referentCount)
	xw.referentCount++
	xw.ctx.refToReferent[ref] = r
	return r
}

func (xw *xmlWriter) writeItem(dom *rbxdom.DOM, ref rbxdom.Ref, db *reflection.Database, includeUnknown bool) error {
	inst := dom.Get(ref)
	start := xml.StartElement{Name: xml.Name{Local: "Item"}, Attr: []xml.Attr{
		{Name: xml.Name{Local: "class"}, Value: inst.ClassName()},
		{Name: xml.Name{Local: "referent"}, Value: xw.referentFor(ref)},
	}}
	if err := xw.enc.EncodeToken(start); err != nil {
		return err
	}

	if err := xw.writeProperties(dom, inst, db, includeUnknown); err != nil {
		return err
	}

	for _, child := range inst.Children() {
		if err := xw.writeItem(dom, child, db, includeUnknown); err != nil {
			return err
		}
	}

	return xw.enc.EncodeToken(start.End())
}

func (xw *xmlWriter) writeProperties(dom *rbxdom.DOM, inst *rbxdom.Instance, db *reflection.Database, includeUnknown bool) error {
	propsStart := xml.StartElement{Name: xml.Name{Local: "Properties"}}
	if err := xw.enc.EncodeToken(propsStart); err != nil {
		return err
	}

	columns := propertyColumnsFor(inst, db, includeUnknown)
	for _, col := range columns {
		v := inst.Get(col.canonical)
		if v == nil && db != nil {
			v = db.Default(inst.ClassName(), col.canonical)
		}
		if v == nil {
			continue
		}
		if err := xw.writeValue(col.serialized, v); err != nil {
			return fmt.Errorf("%s.%s: %w", inst.ClassName(), col.canonical, err)
		}
	}

	return xw.enc.EncodeToken(propsStart.End())
}

// propertyColumn pairs the canonical (in-memory) name used to read a value
// off an Instance with the serialized (on-disk) name it's written under.
// The two differ whenever the class descriptor resolves the property
// through a non-identity SerializesAs or an AliasFor indirection.
type propertyColumn struct {
	canonical  string
	serialized string
}

// propertyColumnsFor decides which properties get written for inst. With a
// Database, that's every property its class declares serialized, resolved
// through db.Resolve so aliases collapse onto their target and a
// SerializesAs indirection is written under its actual on-disk name rather
// than its in-memory map key; without a Database, it's every property
// actually set on inst, so round-tripping a document built without
// reflection data is lossless. When includeUnknown is set, a Database's
// declared set is unioned with whatever else is actually set on inst,
// instead of dropping it.
func propertyColumnsFor(inst *rbxdom.Instance, db *reflection.Database, includeUnknown bool) []propertyColumn {
	seenCanonical := make(map[string]bool)
	var declared []propertyColumn
	if db != nil {
		if class := db.Class(inst.ClassName()); class != nil {
			names := make([]string, 0, len(class.Properties))
			for name := range class.Properties {
				names = append(names, name)
			}
			sort.Strings(names)

			seenSerialized := make(map[string]bool)
			for _, name := range names {
				desc := class.Properties[name]
				if !desc.Serializes || desc.AliasFor != "" {
					// Aliases are alternate accessors for a canonical
					// property declared elsewhere in this map; they don't
					// own a disk slot of their own.
					continue
				}
				res, err := db.Resolve(inst.ClassName(), name)
				if err != nil || res.Serialized == nil || seenSerialized[res.SerializedName] {
					continue
				}
				seenSerialized[res.SerializedName] = true
				seenCanonical[name] = true
				declared = append(declared, propertyColumn{canonical: name, serialized: res.SerializedName})
			}
			if !includeUnknown {
				sort.Slice(declared, func(i, j int) bool { return declared[i].serialized < declared[j].serialized })
				return declared
			}
		}
	}

	seenUnknown := make(map[string]bool)
	for name := range inst.Properties() {
		if seenCanonical[name] || seenUnknown[name] {
			continue
		}
		seenUnknown[name] = true
	}
	names := make([]string, 0, len(seenUnknown))
	for name := range seenUnknown {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		declared = append(declared, propertyColumn{canonical: name, serialized: name})
	}
	sort.Slice(declared, func(i, j int) bool { return declared[i].serialized < declared[j].serialized })
	return declared
}

func (xw *xmlWriter) writeSharedStrings() error {
	start := xml.StartElement{Name: xml.Name{Local: "SharedStrings"}}
	if err := xw.enc.EncodeToken(start); err != nil {
		return err
	}
	hashes := make([]rbxdom.SharedStringHash, 0, len(xw.ctx.sharedStrings))
	for h := range xw.ctx.sharedStrings {
		hashes = append(hashes, h)
	}
	sort.Slice(hashes, func(i, j int) bool { return hashes[i].String() < hashes[j].String() })
	for _, h := range hashes {
		ss := xw.ctx.sharedStrings[h]
		entryStart := xml.StartElement{Name: xml.Name{Local: "SharedString"}, Attr: []xml.Attr{
			{Name: xml.Name{Local: "md5"}, Value: h.String()},
		}}
		if err := xw.enc.EncodeToken(entryStart); err != nil {
			return err
		}
		if err := xw.enc.EncodeToken(xml.CharData(base64.StdEncoding.EncodeToString(ss.Data()))); err != nil {
			return err
		}
		if err := xw.enc.EncodeToken(entryStart.End()); err != nil {
			return err
		}
	}
	return xw.enc.EncodeToken(start.End())
}

func (xw *xmlWriter) registerSharedString(v rbxdom.ValueSharedString) string {
	xw.ctx.sharedStrings[v.Hash()] = v
	return v.Hash().String()
}

func (xw *xmlWriter) writeValue(name string, v rbxdom.Value) error {
	tag, ok := xmlTagForVariant[v.Type()]
	if !ok {
		return fmt.Errorf("value type %s has no XML element mapping", v.Type())
	}

	switch tag {
	case tagRef:
		ref := v.(rbxdom.ValueRef).Ref
		key := ""
		if !ref.IsNull() {
			key = xw.referentFor(ref)
		}
		return xw.writeSimpleElement(tag, map[string]string{"name": name}, key)

	case tagSharedString:
		key := xw.registerSharedString(v.(rbxdom.ValueSharedString))
		return xw.writeSimpleElement(tag, map[string]string{"name": name}, key)

	case tagAttributes:
		blob, err := binary.EncodeAttributesBlob(v.(rbxdom.ValueAttributes))
		if err != nil {
			return err
		}
		return xw.writeSimpleElement(tag, map[string]string{"name": name}, base64.StdEncoding.EncodeToString(blob))

	default:
		return xw.writeStructuredValue(name, tag, v)
	}
}
