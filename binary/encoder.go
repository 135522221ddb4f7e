package binary

import (
	"fmt"
	"io"
	"sort"

	"github.com/robloxapi/rbxdom"
	"github.com/robloxapi/rbxdom/reflection"
)

// EncodeOptions controls Encode's output shape.
type EncodeOptions struct {
	// Roots restricts serialization to the given refs and their
	// descendants. A nil slice serializes every direct child of the DOM's
	// root (the usual case for a full file).
	Roots []rbxdom.Ref
	// Compress enables LZ4-block compression of each chunk's payload.
	Compress bool
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

// Encode writes dom (or the subtrees named by opts.Roots) as a binary
// container (spec.md §4), following the deterministic ordering rules in
// spec.md's "Encoder ordering" note: class ids in sorted class-name order,
// referents in depth-first order from the roots, one PROP chunk per
// (class, serialized property) pair.
func Encode(w io.Writer, dom *rbxdom.DOM, mode Mode, opts EncodeOptions) error {
	roots := opts.Roots
	if roots == nil {
		roots = dom.Get(dom.Root()).Children()
	}
	if mode == Model && len(roots) > 1 {
		return fmt.Errorf("binary: model files carry a single top-level instance, got %d", len(roots))
	}

	ctx := newCodecContext()
	order := make([]rbxdom.Ref, 0, 64)
	topLevel := make(map[rbxdom.Ref]bool, len(roots))
	for _, root := range roots {
		topLevel[root] = true
		order = append(order, dom.DescendantsSlice(root)...)
	}

	nextReferent := int32(0)
	for _, ref := range order {
		ctx.referentToRef[nextReferent] = ref
		ctx.refToReferent[ref] = nextReferent
		nextReferent++
	}

	classReferents := make(map[string][]int32)
	for _, ref := range order {
		inst := dom.Get(ref)
		className := inst.ClassName()
		classReferents[className] = append(classReferents[className], ctx.refToReferent[ref])
	}
	classNames := make([]string, 0, len(classReferents))
	for name := range classReferents {
		classNames = append(classNames, name)
	}
	sort.Strings(classNames)

	var chunks []rawChunk

	if meta := dom.Metadata(); len(meta) > 0 {
		keys := make([]string, 0, len(meta))
		for k := range meta {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]metaPair, len(keys))
		for i, k := range keys {
			pairs[i] = metaPair{Key: k, Value: meta[k]}
		}
		chunks = append(chunks, rawChunk{sig: sigMETA, payload: buildMeta(pairs)})
	}

	typeID := make(map[string]uint32, len(classNames))
	for i, name := range classNames {
		typeID[name] = uint32(i)
		chunks = append(chunks, rawChunk{sig: sigINST, payload: buildINST(instChunk{
			TypeID:    uint32(i),
			ClassName: name,
			Referents: classReferents[name],
		})})
	}

	propChunks, err := buildPropChunks(dom, classNames, classReferents, typeID, ctx, opts.Database, opts.IncludeUnknownProperties)
	if err != nil {
		return err
	}
	chunks = append(chunks, propChunks...)

	// SSTR must be written once every property has had a chance to touch
	// ctx.sharedStrings, so it's assembled after the PROP chunks.
	if len(ctx.sharedStrings) > 0 {
		entries := make([]sstrEntry, len(ctx.sharedStrings))
		for i, ss := range ctx.sharedStrings {
			entries[i] = sstrEntry{Hash: ss.Hash().Bytes16(), Data: ss.Data()}
		}
		sstrChunk := rawChunk{sig: sigSSTR, payload: buildSSTR(entries)}
		chunks = insertAfterMeta(chunks, sstrChunk)
	}

	children := make([]int32, len(order))
	parents := make([]int32, len(order))
	for i, ref := range order {
		children[i] = ctx.refToReferent[ref]
		inst := dom.Get(ref)
		if topLevel[ref] {
			parents[i] = nullReferent
		} else {
			parents[i] = ctx.refToReferent[inst.Parent()]
		}
	}
	chunks = append(chunks, rawChunk{sig: sigPRNT, payload: buildPRNT(children, parents)})
	chunks = append(chunks, rawChunk{sig: sigEND, payload: []byte("</roblox>")})

	header := fileHeader{
		Version:       0,
		ClassCount:    uint32(len(classNames)),
		InstanceCount: uint32(len(order)),
	}
	if err := writeFileHeader(w, header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, c := range chunks {
		if err := writeChunk(w, c, opts.Compress); err != nil {
			return chunkError{Sig: c.sig.String(), Cause: err}
		}
	}
	return nil
}

// insertAfterMeta places c right after any leading META chunk (or at the
// front, if there is none), matching the teacher's chunk ordering of
// META, SSTR, INST..., PROP..., PRNT, END.
func insertAfterMeta(chunks []rawChunk, c rawChunk) []rawChunk {
	if len(chunks) > 0 && chunks[0].sig == sigMETA {
		out := make([]rawChunk, 0, len(chunks)+1)
		out = append(out, chunks[0], c)
		out = append(out, chunks[1:]...)
		return out
	}
	out := make([]rawChunk, 0, len(chunks)+1)
	out = append(out, c)
	out = append(out, chunks...)
	return out
}

func buildPropChunks(dom *rbxdom.DOM, classNames []string, classReferents map[string][]int32, typeID map[string]uint32, ctx *codecContext, db *reflection.Database, includeUnknown bool) ([]rawChunk, error) {
	var out []rawChunk
	for _, className := range classNames {
		referents := classReferents[className]
		columns := propertySetFor(dom, className, referents, ctx, db, includeUnknown)
		for _, col := range columns {
			values := make([]rbxdom.Value, len(referents))
			var tag valueTypeTag
			haveTag := false
			for i, referent := range referents {
				ref := ctx.referentToRef[referent]
				inst := dom.Get(ref)
				v := inst.Get(col.Canonical)
				if v == nil && db != nil {
					v = db.Default(className, col.Canonical)
				}
				values[i] = v
				if v != nil && !haveTag {
					if t, ok := tagForVariant(v.Type()); ok {
						tag = t
						haveTag = true
					}
				}
			}
			if !haveTag {
				continue
			}
			for i, v := range values {
				if v == nil {
					return nil, fmt.Errorf("%s.%s: instance %d has no value and no default is available", className, col.Canonical, i)
				}
			}
			body, err := encodePropertyColumn(tag, values, ctx)
			if err != nil {
				return nil, chunkError{Sig: "PROP", Cause: fmt.Errorf("%s.%s: %w", className, col.Canonical, err)}
			}
			payload := append(buildPropHeader(propChunkHeader{
				TypeID:       typeID[className],
				PropertyName: col.Serialized,
				Tag:          tag,
			}), body...)
			out = append(out, rawChunk{sig: sigPROP, payload: payload})
		}
	}
	return out, nil
}

// propertyColumn pairs the canonical (in-memory) name used to read a value
// off an Instance with the serialized (on-disk) name it's written under.
// The two differ whenever the class descriptor resolves the property
// through a non-identity SerializesAs or an AliasFor indirection.
type propertyColumn struct {
	Canonical  string
	Serialized string
}

// propertySetFor decides which properties get a PROP chunk for className.
// With a Database, that's every property it declares serialized, resolved
// through db.Resolve so aliases collapse onto their target and a
// SerializesAs indirection writes under its actual on-disk name rather than
// its in-memory map key; without a Database, it's the union of properties
// actually set on any instance of the class, so round-tripping a file built
// without reflection data is lossless. When includeUnknown is set, a
// Database's declared set is unioned with whatever else is actually set on
// an instance, instead of dropping it.
func propertySetFor(dom *rbxdom.DOM, className string, referents []int32, ctx *codecContext, db *reflection.Database, includeUnknown bool) []propertyColumn {
	seenCanonical := make(map[string]bool)
	var declared []propertyColumn
	if db != nil {
		if class := db.Class(className); class != nil {
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
				res, err := db.Resolve(className, name)
				if err != nil || res.Serialized == nil || seenSerialized[res.SerializedName] {
					continue
				}
				seenSerialized[res.SerializedName] = true
				seenCanonical[name] = true
				declared = append(declared, propertyColumn{Canonical: name, Serialized: res.SerializedName})
			}
			if !includeUnknown {
				sort.Slice(declared, func(i, j int) bool { return declared[i].Serialized < declared[j].Serialized })
				return declared
			}
		}
	}

	seenUnknown := make(map[string]bool)
	for _, referent := range referents {
		inst := dom.Get(ctx.referentToRef[referent])
		for name := range inst.Properties() {
			if seenCanonical[name] || seenUnknown[name] {
				continue
			}
			seenUnknown[name] = true
		}
	}
	names := make([]string, 0, len(seenUnknown))
	for name := range seenUnknown {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		declared = append(declared, propertyColumn{Canonical: name, Serialized: name})
	}
	sort.Slice(declared, func(i, j int) bool { return declared[i].Serialized < declared[j].Serialized })
	return declared
}
