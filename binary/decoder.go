package binary

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/robloxapi/rbxdom"
	"github.com/robloxapi/rbxdom/reflection"
)

// rootClassFor names the synthetic container instance that owns every
// top-level (parent == null referent) instance in a decoded file. A binary
// file itself has no single owning object on disk; this module's DOM always
// needs exactly one root (rbxdom.NewDOM), so decode synthesizes one.
func rootClassFor(mode Mode) string {
	if mode == Place {
		return "DataModel"
	}
	return "Folder"
}

// Decode reads a binary container (spec.md §4) and returns the DOM it
// describes. db resolves serialized property names to their canonical form;
// a nil db disables that resolution and properties are kept under their
// on-disk name.
func Decode(r io.Reader, mode Mode, db *reflection.Database) (*rbxdom.DOM, error) {
	header, err := readFileHeader(r)
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	var (
		metaPairs []metaPair
		sstrs     []sstrEntry
		insts     []instChunk
		props     []rawPropChunk
		prntChildren, prntParents []int32
	)

	for {
		raw, err := readChunk(r)
		if err != nil {
			return nil, fmt.Errorf("reading chunk: %w", err)
		}
		if raw.sig == sigEND {
			break
		}
		switch raw.sig {
		case sigMETA:
			pairs, err := parseMeta(raw.payload)
			if err != nil {
				return nil, chunkError{Sig: "META", Cause: err}
			}
			metaPairs = append(metaPairs, pairs...)
		case sigSSTR:
			entries, err := parseSSTR(raw.payload)
			if err != nil {
				return nil, chunkError{Sig: "SSTR", Cause: err}
			}
			sstrs = entries
		case sigINST:
			c, err := parseINST(raw.payload)
			if err != nil {
				return nil, chunkError{Sig: "INST", Cause: err}
			}
			insts = append(insts, c)
		case sigPROP:
			hdr, body, err := parsePropHeader(raw.payload)
			if err != nil {
				return nil, chunkError{Sig: "PROP", Cause: err}
			}
			props = append(props, rawPropChunk{header: hdr, body: body})
		case sigPRNT:
			children, parents, err := parsePRNT(raw.payload)
			if err != nil {
				return nil, chunkError{Sig: "PRNT", Cause: err}
			}
			prntChildren, prntParents = children, parents
		default:
			// Unrecognized chunk kinds are skipped, per spec.md §4.B's
			// forward-compatibility note.
			slog.Default().Warn("binary: skipping unrecognized chunk", "chunk", raw.sig.String())
		}
	}

	ctx := newCodecContext()
	for i, e := range sstrs {
		ss := rbxdom.NewSharedString(e.Data)
		if ss.Hash().Bytes16() != e.Hash {
			return nil, chunkError{Sig: "SSTR", Cause: fmt.Errorf("entry %d: stored hash does not match content", i)}
		}
		ctx.sharedStrings = append(ctx.sharedStrings, ss)
		ctx.hashToIndex[ss.Hash()] = uint32(i)
	}

	dom := rbxdom.NewDOM(rbxdom.InstanceBuilder{ClassName: rootClassFor(mode)})
	for _, pair := range metaPairs {
		dom.SetMetadata(pair.Key, pair.Value)
	}

	// Structural phase: allocate every instance, flat, as a child of the
	// synthetic root, and record the referent<->Ref mapping.
	typeClass := make(map[uint32]string, len(insts))
	typeReferents := make(map[uint32][]int32, len(insts))
	for _, c := range insts {
		typeClass[c.TypeID] = c.ClassName
		typeReferents[c.TypeID] = c.Referents
		for _, referent := range c.Referents {
			ref, err := dom.Insert(dom.Root(), rbxdom.InstanceBuilder{ClassName: c.ClassName})
			if err != nil {
				return nil, fmt.Errorf("inserting instance for referent %d: %w", referent, err)
			}
			ctx.referentToRef[referent] = ref
			ctx.refToReferent[ref] = referent
		}
	}

	// Property phase: every referent is known, so Ref/SharedString-typed
	// values can resolve immediately.
	for _, p := range props {
		className, ok := typeClass[p.header.TypeID]
		if !ok {
			continue
		}
		referents := typeReferents[p.header.TypeID]
		values, err := decodePropertyColumn(p.header.Tag, p.body, len(referents), ctx)
		if err != nil {
			return nil, chunkError{Sig: "PROP", Cause: fmt.Errorf("%s.%s: %w", className, p.header.PropertyName, err)}
		}
		name := p.header.PropertyName
		if db != nil {
			if canon, ok := db.CanonicalName(className, name); ok {
				name = canon
			}
			// The on-disk tag may disagree with what the database declares
			// for this property on older files (spec.md §4.D.1); attempt a
			// conversion and, on failure, keep the on-disk-typed value.
			if declared, ok := DeclaredTypeFor(db, className, name); ok {
				for i, v := range values {
					if v == nil || v.Type() == declared {
						continue
					}
					if conv, ok := ConvertToDeclaredType(v, declared); ok {
						values[i] = conv
					} else {
						slog.Default().Warn("binary: type tag mismatch, keeping on-disk type",
							"class", className, "property", name,
							"disk_type", v.Type().String(), "declared_type", declared.String())
					}
				}
			}
		}
		for i, referent := range referents {
			ref := ctx.referentToRef[referent]
			inst := dom.Get(ref)
			if inst == nil {
				continue
			}
			if i < len(values) {
				inst.Set(name, values[i])
			}
		}
	}

	// Rewrite phase: reparent every instance per the PRNT chunk. Instances
	// left implicitly parented to the synthetic root (parent == -1 on disk)
	// need no action.
	for i, childReferent := range prntChildren {
		parentReferent := prntParents[i]
		if parentReferent == nullReferent {
			continue
		}
		childRef, ok := ctx.referentToRef[childReferent]
		if !ok {
			continue
		}
		parentRef, ok := ctx.referentToRef[parentReferent]
		if !ok {
			continue
		}
		if err := dom.Transfer(childRef, dom, parentRef); err != nil {
			return nil, fmt.Errorf("parenting referent %d under %d: %w", childReferent, parentReferent, err)
		}
	}

	actualInstances := uint32(0)
	for _, refs := range typeReferents {
		actualInstances += uint32(len(refs))
	}
	if actualInstances != header.InstanceCount {
		return nil, fmt.Errorf("header declares %d instances, chunks describe %d", header.InstanceCount, actualInstances)
	}
	if uint32(len(insts)) != header.ClassCount {
		return nil, fmt.Errorf("header declares %d classes, file has %d INST chunks", header.ClassCount, len(insts))
	}

	return dom, nil
}

type rawPropChunk struct {
	header propChunkHeader
	body   []byte
}
