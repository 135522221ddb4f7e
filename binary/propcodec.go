package binary

import (
	"encoding/binary"
	"math"

	"github.com/robloxapi/rbxdom"
)

// encodePropertyColumn encodes vs (all of the same VariantType) into the
// column-major payload for one PROP chunk, per spec.md §4.D.1's
// per-value-type table.
func encodePropertyColumn(tag valueTypeTag, vs []rbxdom.Value, ctx *codecContext) ([]byte, error) {
	switch tag {
	case tagString, tagContent, tagContentId:
		ss := make([]string, len(vs))
		for i, v := range vs {
			ss[i] = v.String()
		}
		return encodeLengthPrefixedStrings(ss), nil

	case tagBinaryString:
		bss := make([][]byte, len(vs))
		for i, v := range vs {
			bss[i] = []byte(v.(rbxdom.ValueBinaryString))
		}
		return encodeBinaryStrings(bss), nil

	case tagBool:
		bs := make([]bool, len(vs))
		for i, v := range vs {
			bs[i] = bool(v.(rbxdom.ValueBool))
		}
		return encodeBoolColumn(bs), nil

	case tagInt32:
		is := make([]int32, len(vs))
		for i, v := range vs {
			is[i] = int32(v.(rbxdom.ValueInt32))
		}
		return encodeI32Column(is), nil

	case tagInt64:
		// Column-major across both halves, like the teacher's zu64 handling
		// of Int64/SharedString: high 32 bits then low 32 bits, each its
		// own interleaved i32 column.
		hi := make([]int32, len(vs))
		lo := make([]int32, len(vs))
		for i, v := range vs {
			u := uint64(v.(rbxdom.ValueInt64))
			hi[i] = int32(u >> 32)
			lo[i] = int32(u)
		}
		return append(encodeI32Column(hi), encodeI32Column(lo)...), nil

	case tagFloat32:
		fs := make([]float32, len(vs))
		for i, v := range vs {
			fs[i] = float32(v.(rbxdom.ValueFloat32))
		}
		return encodeF32Column(fs), nil

	case tagFloat64:
		fs := make([]float64, len(vs))
		for i, v := range vs {
			fs[i] = float64(v.(rbxdom.ValueFloat64))
		}
		return encodeF64Raw(fs), nil

	case tagUDim:
		scales := make([]float32, len(vs))
		offsets := make([]int32, len(vs))
		for i, v := range vs {
			u := v.(rbxdom.ValueUDim)
			scales[i], offsets[i] = u.Scale, u.Offset
		}
		return append(encodeF32Column(scales), encodeI32Column(offsets)...), nil

	case tagUDim2:
		xs := make([]float32, len(vs))
		xo := make([]int32, len(vs))
		ys := make([]float32, len(vs))
		yo := make([]int32, len(vs))
		for i, v := range vs {
			u := v.(rbxdom.ValueUDim2)
			xs[i], xo[i] = u.X.Scale, u.X.Offset
			ys[i], yo[i] = u.Y.Scale, u.Y.Offset
		}
		var b []byte
		b = append(b, encodeF32Column(xs)...)
		b = append(b, encodeF32Column(ys)...)
		b = append(b, encodeI32Column(xo)...)
		b = append(b, encodeI32Column(yo)...)
		return b, nil

	case tagRay:
		origins := make([]rbxdom.ValueVector3, len(vs))
		dirs := make([]rbxdom.ValueVector3, len(vs))
		for i, v := range vs {
			r := v.(rbxdom.ValueRay)
			origins[i], dirs[i] = r.Origin, r.Direction
		}
		return append(rawVector3(origins), rawVector3(dirs)...), nil

	case tagFaces:
		b := make([]byte, len(vs))
		for i, v := range vs {
			b[i] = v.(rbxdom.ValueFaces).Bits()
		}
		return b, nil

	case tagAxes:
		b := make([]byte, len(vs))
		for i, v := range vs {
			b[i] = v.(rbxdom.ValueAxes).Bits()
		}
		return b, nil

	case tagBrickColor:
		codes := make([]int32, len(vs))
		for i, v := range vs {
			codes[i] = int32(v.(rbxdom.ValueBrickColor).BrickColor.Code)
		}
		return encodeI32Column(codes), nil

	case tagColor3:
		cs := make([]rbxdom.ValueColor3, len(vs))
		for i, v := range vs {
			cs[i] = v.(rbxdom.ValueColor3)
		}
		return encodeColor3Column(cs), nil

	case tagColor3uint8:
		b := make([]byte, len(vs)*3)
		for i, v := range vs {
			c := v.(rbxdom.ValueColor3uint8)
			b[i], b[len(vs)+i], b[len(vs)*2+i] = c.R, c.G, c.B
		}
		return b, nil

	case tagVector2:
		cs := make([]rbxdom.ValueVector2, len(vs))
		for i, v := range vs {
			cs[i] = v.(rbxdom.ValueVector2)
		}
		return encodeVector2Column(cs), nil

	case tagVector2int16:
		b := make([]byte, len(vs)*4)
		for i, v := range vs {
			p := v.(rbxdom.ValueVector2int16)
			binary.LittleEndian.PutUint16(b[i*4:], uint16(p.X))
			binary.LittleEndian.PutUint16(b[i*4+2:], uint16(p.Y))
		}
		return b, nil

	case tagVector3:
		cs := make([]rbxdom.ValueVector3, len(vs))
		for i, v := range vs {
			cs[i] = v.(rbxdom.ValueVector3)
		}
		return encodeVector3Column(cs), nil

	case tagVector3int16:
		b := make([]byte, len(vs)*6)
		for i, v := range vs {
			p := v.(rbxdom.ValueVector3int16)
			binary.LittleEndian.PutUint16(b[i*6:], uint16(p.X))
			binary.LittleEndian.PutUint16(b[i*6+2:], uint16(p.Y))
			binary.LittleEndian.PutUint16(b[i*6+4:], uint16(p.Z))
		}
		return b, nil

	case tagCFrame:
		cs := make([]rbxdom.ValueCFrame, len(vs))
		for i, v := range vs {
			cs[i] = v.(rbxdom.ValueCFrame)
		}
		return encodeCFrameColumn(cs), nil

	case tagOptionalCFrame:
		cs := make([]rbxdom.ValueCFrame, len(vs))
		present := make([]bool, len(vs))
		for i, v := range vs {
			o := v.(rbxdom.ValueOptionalCFrame)
			cs[i], present[i] = o.CFrame, o.Valid
		}
		b := encodeCFrameColumn(cs)
		b = append(b, byte(tagBool))
		b = append(b, encodeBoolColumn(present)...)
		return b, nil

	case tagEnum:
		us := make([]uint32, len(vs))
		for i, v := range vs {
			us[i] = uint32(v.(rbxdom.ValueEnum))
		}
		return encodeU32Column(us), nil

	case tagRef:
		refs := make([]int32, len(vs))
		for i, v := range vs {
			refs[i] = ctx.referentFor(v.(rbxdom.ValueRef).Ref)
		}
		return encodeReferentArray(refs), nil

	case tagSharedString:
		idx := make([]uint32, len(vs))
		for i, v := range vs {
			idx[i] = ctx.indexForSharedString(v.(rbxdom.ValueSharedString))
		}
		return encodeU32Column(idx), nil

	case tagNumberSequence:
		var b []byte
		for _, v := range vs {
			seq := v.(rbxdom.ValueNumberSequence)
			var lenBuf [4]byte
			binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(seq)))
			b = append(b, lenBuf[:]...)
			for _, kp := range seq {
				b = append(b, rawF32(kp.Time)...)
				b = append(b, rawF32(kp.Value)...)
				b = append(b, rawF32(kp.Envelope)...)
			}
		}
		return b, nil

	case tagColorSequence:
		var b []byte
		for _, v := range vs {
			seq := v.(rbxdom.ValueColorSequence)
			var lenBuf [4]byte
			binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(seq)))
			b = append(b, lenBuf[:]...)
			for _, kp := range seq {
				b = append(b, rawF32(kp.Time)...)
				b = append(b, rawF32(kp.Value.R)...)
				b = append(b, rawF32(kp.Value.G)...)
				b = append(b, rawF32(kp.Value.B)...)
				b = append(b, rawF32(kp.Envelope)...)
			}
		}
		return b, nil

	case tagNumberRange:
		b := make([]byte, 0, len(vs)*8)
		for _, v := range vs {
			r := v.(rbxdom.ValueNumberRange)
			b = append(b, rawF32(r.Min)...)
			b = append(b, rawF32(r.Max)...)
		}
		return b, nil

	case tagRect:
		mins := make([]rbxdom.ValueVector2, len(vs))
		maxs := make([]rbxdom.ValueVector2, len(vs))
		for i, v := range vs {
			r := v.(rbxdom.ValueRect)
			mins[i], maxs[i] = r.Min, r.Max
		}
		return append(encodeVector2Column(mins), encodeVector2Column(maxs)...), nil

	case tagRegion3:
		mins := make([]rbxdom.ValueVector3, len(vs))
		maxs := make([]rbxdom.ValueVector3, len(vs))
		for i, v := range vs {
			r := v.(rbxdom.ValueRegion3)
			mins[i], maxs[i] = r.Min, r.Max
		}
		return append(encodeVector3Column(mins), encodeVector3Column(maxs)...), nil

	case tagRegion3int16:
		b := make([]byte, len(vs)*12)
		for i, v := range vs {
			r := v.(rbxdom.ValueRegion3int16)
			off := i * 12
			binary.LittleEndian.PutUint16(b[off:], uint16(r.Min.X))
			binary.LittleEndian.PutUint16(b[off+2:], uint16(r.Min.Y))
			binary.LittleEndian.PutUint16(b[off+4:], uint16(r.Min.Z))
			binary.LittleEndian.PutUint16(b[off+6:], uint16(r.Max.X))
			binary.LittleEndian.PutUint16(b[off+8:], uint16(r.Max.Y))
			binary.LittleEndian.PutUint16(b[off+10:], uint16(r.Max.Z))
		}
		return b, nil

	case tagPhysicalProperties:
		var b []byte
		for _, v := range vs {
			pp := v.(rbxdom.ValuePhysicalProperties)
			if !pp.Custom {
				b = append(b, 0)
				continue
			}
			b = append(b, 1)
			b = append(b, rawF32(pp.Density)...)
			b = append(b, rawF32(pp.Friction)...)
			b = append(b, rawF32(pp.Elasticity)...)
			b = append(b, rawF32(pp.FrictionWeight)...)
			b = append(b, rawF32(pp.ElasticityWeight)...)
		}
		return b, nil

	case tagTags:
		var b []byte
		for _, v := range vs {
			tags := v.(rbxdom.ValueTags)
			var lenBuf [4]byte
			joined := joinNullDelimited(tags)
			binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(joined)))
			b = append(b, lenBuf[:]...)
			b = append(b, joined...)
		}
		return b, nil

	case tagAttributes:
		var b []byte
		for _, v := range vs {
			blob, err := encodeAttributesBlob(v.(rbxdom.ValueAttributes))
			if err != nil {
				return nil, err
			}
			var lenBuf [4]byte
			binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(blob)))
			b = append(b, lenBuf[:]...)
			b = append(b, blob...)
		}
		return b, nil

	case tagUniqueId:
		b := make([]byte, len(vs)*16)
		for i, v := range vs {
			u := v.(rbxdom.ValueUniqueId)
			off := i * 16
			binary.LittleEndian.PutUint64(b[off:], u.Random)
			binary.LittleEndian.PutUint32(b[off+8:], u.Time)
			binary.LittleEndian.PutUint32(b[off+12:], u.Index)
		}
		return b, nil

	case tagSecurityCapabilities:
		b := make([]byte, len(vs)*8)
		for i, v := range vs {
			binary.LittleEndian.PutUint64(b[i*8:], uint64(v.(rbxdom.ValueSecurityCapabilities)))
		}
		return b, nil

	case tagFont:
		var b []byte
		for _, v := range vs {
			f := v.(rbxdom.ValueFont)
			b = append(b, lengthPrefixed(f.Family)...)
			var wb [2]byte
			binary.LittleEndian.PutUint16(wb[:], uint16(f.Weight))
			b = append(b, wb[:]...)
			b = append(b, byte(f.Style))
			b = append(b, lengthPrefixed(f.CachedFaceId)...)
		}
		return b, nil

	case tagMaterialColors:
		var b []byte
		for _, v := range vs {
			mc := v.(rbxdom.ValueMaterialColors)
			var lenBuf [4]byte
			binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(mc)))
			b = append(b, lenBuf[:]...)
			for _, e := range mc {
				b = append(b, e.Material, e.Color.R, e.Color.G, e.Color.B)
			}
		}
		return b, nil

	case tagSmoothGrid:
		var b []byte
		for _, v := range vs {
			g := v.(rbxdom.ValueSmoothGrid)
			var dims [12]byte
			binary.LittleEndian.PutUint32(dims[0:], uint32(g.SizeX))
			binary.LittleEndian.PutUint32(dims[4:], uint32(g.SizeY))
			binary.LittleEndian.PutUint32(dims[8:], uint32(g.SizeZ))
			b = append(b, dims[:]...)
			for _, vx := range g.Voxels {
				b = append(b, vx.Material, vx.Occupancy)
			}
		}
		return b, nil

	default:
		return nil, errUnknownValueType(tag)
	}
}

func rawF32(f float32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(f))
	return b[:]
}

func rawVector3(vs []rbxdom.ValueVector3) []byte {
	b := make([]byte, 0, len(vs)*12)
	for _, v := range vs {
		b = append(b, rawF32(v.X)...)
		b = append(b, rawF32(v.Y)...)
		b = append(b, rawF32(v.Z)...)
	}
	return b
}

func lengthPrefixed(s string) []byte {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(s)))
	return append(lenBuf[:], s...)
}

func joinNullDelimited(tags []string) []byte {
	var b []byte
	for i, t := range tags {
		if i > 0 {
			b = append(b, 0)
		}
		b = append(b, t...)
	}
	if len(tags) > 0 {
		b = append(b, 0)
	}
	return b
}

func splitNullDelimited(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	var out []string
	start := 0
	for i, c := range b {
		if c == 0 {
			out = append(out, string(b[start:i]))
			start = i + 1
		}
	}
	return out
}
