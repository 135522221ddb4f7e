package binary

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/robloxapi/rbxdom"
)

// decodePropertyColumn inverts encodePropertyColumn, producing n values of
// the VariantType named by tag from the column-major payload b.
func decodePropertyColumn(tag valueTypeTag, b []byte, n int, ctx *codecContext) ([]rbxdom.Value, error) {
	switch tag {
	case tagString, tagContent, tagContentId:
		ss, err := decodeLengthPrefixedStrings(b, n)
		if err != nil {
			return nil, err
		}
		out := make([]rbxdom.Value, n)
		for i, s := range ss {
			switch tag {
			case tagContent:
				out[i] = rbxdom.ValueContent(s)
			case tagContentId:
				out[i] = rbxdom.ValueContentId(s)
			default:
				out[i] = rbxdom.ValueString(s)
			}
		}
		return out, nil

	case tagBinaryString:
		bss, err := decodeBinaryStrings(b, n)
		if err != nil {
			return nil, err
		}
		out := make([]rbxdom.Value, n)
		for i, s := range bss {
			out[i] = rbxdom.ValueBinaryString(s)
		}
		return out, nil

	case tagBool:
		if len(b) < n {
			return nil, fmt.Errorf("truncated bool column")
		}
		bs := decodeBoolColumn(b[:n])
		out := make([]rbxdom.Value, n)
		for i, v := range bs {
			out[i] = rbxdom.ValueBool(v)
		}
		return out, nil

	case tagInt32:
		is, err := decodeI32Column(b)
		if err != nil {
			return nil, err
		}
		out := make([]rbxdom.Value, len(is))
		for i, v := range is {
			out[i] = rbxdom.ValueInt32(v)
		}
		return out, nil

	case tagInt64:
		if len(b) != n*8 {
			return nil, fmt.Errorf("int64 column length %d does not match n=%d", len(b), n)
		}
		hi, err := decodeI32Column(b[:n*4])
		if err != nil {
			return nil, err
		}
		lo, err := decodeI32Column(b[n*4:])
		if err != nil {
			return nil, err
		}
		out := make([]rbxdom.Value, n)
		for i := range out {
			u := uint64(uint32(hi[i]))<<32 | uint64(uint32(lo[i]))
			out[i] = rbxdom.ValueInt64(int64(u))
		}
		return out, nil

	case tagFloat32:
		fs, err := decodeF32Column(b)
		if err != nil {
			return nil, err
		}
		out := make([]rbxdom.Value, len(fs))
		for i, v := range fs {
			out[i] = rbxdom.ValueFloat32(v)
		}
		return out, nil

	case tagFloat64:
		fs, err := decodeF64Raw(b)
		if err != nil {
			return nil, err
		}
		out := make([]rbxdom.Value, len(fs))
		for i, v := range fs {
			out[i] = rbxdom.ValueFloat64(v)
		}
		return out, nil

	case tagUDim:
		if len(b) != n*8 {
			return nil, fmt.Errorf("udim column length %d does not match n=%d", len(b), n)
		}
		scales, err := decodeF32Column(b[:n*4])
		if err != nil {
			return nil, err
		}
		offsets, err := decodeI32Column(b[n*4:])
		if err != nil {
			return nil, err
		}
		out := make([]rbxdom.Value, n)
		for i := range out {
			out[i] = rbxdom.ValueUDim{Scale: scales[i], Offset: offsets[i]}
		}
		return out, nil

	case tagUDim2:
		if len(b) != n*16 {
			return nil, fmt.Errorf("udim2 column length %d does not match n=%d", len(b), n)
		}
		xs, err := decodeF32Column(b[0 : n*4])
		if err != nil {
			return nil, err
		}
		ys, err := decodeF32Column(b[n*4 : n*8])
		if err != nil {
			return nil, err
		}
		xo, err := decodeI32Column(b[n*8 : n*12])
		if err != nil {
			return nil, err
		}
		yo, err := decodeI32Column(b[n*12 : n*16])
		if err != nil {
			return nil, err
		}
		out := make([]rbxdom.Value, n)
		for i := range out {
			out[i] = rbxdom.ValueUDim2{
				X: rbxdom.ValueUDim{Scale: xs[i], Offset: xo[i]},
				Y: rbxdom.ValueUDim{Scale: ys[i], Offset: yo[i]},
			}
		}
		return out, nil

	case tagRay:
		if len(b) != n*24 {
			return nil, fmt.Errorf("ray column length %d does not match n=%d", len(b), n)
		}
		origins := decodeRawVector3(b[:n*12])
		dirs := decodeRawVector3(b[n*12:])
		out := make([]rbxdom.Value, n)
		for i := range out {
			out[i] = rbxdom.ValueRay{Origin: origins[i], Direction: dirs[i]}
		}
		return out, nil

	case tagFaces:
		if len(b) < n {
			return nil, fmt.Errorf("truncated faces column")
		}
		out := make([]rbxdom.Value, n)
		for i := 0; i < n; i++ {
			out[i] = rbxdom.FacesFromBits(b[i])
		}
		return out, nil

	case tagAxes:
		if len(b) < n {
			return nil, fmt.Errorf("truncated axes column")
		}
		out := make([]rbxdom.Value, n)
		for i := 0; i < n; i++ {
			out[i] = rbxdom.AxesFromBits(b[i])
		}
		return out, nil

	case tagBrickColor:
		codes, err := decodeI32Column(b)
		if err != nil {
			return nil, err
		}
		out := make([]rbxdom.Value, len(codes))
		for i, c := range codes {
			bc, _ := rbxdom.BrickColorByCode(uint32(c))
			out[i] = rbxdom.ValueBrickColor{BrickColor: bc}
		}
		return out, nil

	case tagColor3:
		cs, err := decodeColor3Column(b)
		if err != nil {
			return nil, err
		}
		out := make([]rbxdom.Value, len(cs))
		for i, c := range cs {
			out[i] = c
		}
		return out, nil

	case tagColor3uint8:
		if len(b) != n*3 {
			return nil, fmt.Errorf("color3uint8 column length %d does not match n=%d", len(b), n)
		}
		out := make([]rbxdom.Value, n)
		for i := 0; i < n; i++ {
			out[i] = rbxdom.ValueColor3uint8{R: b[i], G: b[n+i], B: b[n*2+i]}
		}
		return out, nil

	case tagVector2:
		cs, err := decodeVector2Column(b)
		if err != nil {
			return nil, err
		}
		out := make([]rbxdom.Value, len(cs))
		for i, c := range cs {
			out[i] = c
		}
		return out, nil

	case tagVector2int16:
		if len(b) != n*4 {
			return nil, fmt.Errorf("vector2int16 column length %d does not match n=%d", len(b), n)
		}
		out := make([]rbxdom.Value, n)
		for i := 0; i < n; i++ {
			out[i] = rbxdom.ValueVector2int16{
				X: int16(binary.LittleEndian.Uint16(b[i*4:])),
				Y: int16(binary.LittleEndian.Uint16(b[i*4+2:])),
			}
		}
		return out, nil

	case tagVector3:
		cs, err := decodeVector3Column(b)
		if err != nil {
			return nil, err
		}
		out := make([]rbxdom.Value, len(cs))
		for i, c := range cs {
			out[i] = c
		}
		return out, nil

	case tagVector3int16:
		if len(b) != n*6 {
			return nil, fmt.Errorf("vector3int16 column length %d does not match n=%d", len(b), n)
		}
		out := make([]rbxdom.Value, n)
		for i := 0; i < n; i++ {
			out[i] = rbxdom.ValueVector3int16{
				X: int16(binary.LittleEndian.Uint16(b[i*6:])),
				Y: int16(binary.LittleEndian.Uint16(b[i*6+2:])),
				Z: int16(binary.LittleEndian.Uint16(b[i*6+4:])),
			}
		}
		return out, nil

	case tagCFrame:
		cs, err := decodeCFrameColumn(b, n)
		if err != nil {
			return nil, err
		}
		out := make([]rbxdom.Value, len(cs))
		for i, c := range cs {
			out[i] = c
		}
		return out, nil

	case tagOptionalCFrame:
		// Locate the sentinel: cframes occupy a variable-length prefix, so
		// walk it the same way decodeCFrameColumn does, then read the
		// trailing bool column.
		cframeBytes, presenceBytes, err := splitOptionalCFrame(b, n)
		if err != nil {
			return nil, err
		}
		cs, err := decodeCFrameColumn(cframeBytes, n)
		if err != nil {
			return nil, err
		}
		if len(presenceBytes) < 1+n {
			return nil, fmt.Errorf("truncated optional cframe presence column")
		}
		present := decodeBoolColumn(presenceBytes[1 : 1+n])
		out := make([]rbxdom.Value, n)
		for i := range out {
			out[i] = rbxdom.ValueOptionalCFrame{CFrame: cs[i], Valid: present[i]}
		}
		return out, nil

	case tagEnum:
		us, err := decodeU32Column(b)
		if err != nil {
			return nil, err
		}
		out := make([]rbxdom.Value, len(us))
		for i, v := range us {
			out[i] = rbxdom.ValueEnum(v)
		}
		return out, nil

	case tagRef:
		refs, err := decodeReferentArray(b)
		if err != nil {
			return nil, err
		}
		out := make([]rbxdom.Value, len(refs))
		for i, r := range refs {
			out[i] = rbxdom.ValueRef{Ref: ctx.refFor(r)}
		}
		return out, nil

	case tagSharedString:
		idx, err := decodeU32Column(b)
		if err != nil {
			return nil, err
		}
		out := make([]rbxdom.Value, len(idx))
		for i, v := range idx {
			ss, ok := ctx.sharedStringAt(v)
			if !ok {
				return nil, fmt.Errorf("shared string index %d out of range", v)
			}
			out[i] = ss
		}
		return out, nil

	case tagNumberSequence:
		out := make([]rbxdom.Value, n)
		for i := 0; i < n; i++ {
			if len(b) < 4 {
				return nil, fmt.Errorf("truncated number sequence length")
			}
			count := binary.LittleEndian.Uint32(b)
			b = b[4:]
			kps := make([]rbxdom.NumberSequenceKeypoint, count)
			for k := range kps {
				if len(b) < 12 {
					return nil, fmt.Errorf("truncated number sequence keypoint")
				}
				kps[k] = rbxdom.NumberSequenceKeypoint{
					Time:     math.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
					Value:    math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
					Envelope: math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
				}
				b = b[12:]
			}
			out[i] = rbxdom.ValueNumberSequence(kps)
		}
		return out, nil

	case tagColorSequence:
		out := make([]rbxdom.Value, n)
		for i := 0; i < n; i++ {
			if len(b) < 4 {
				return nil, fmt.Errorf("truncated color sequence length")
			}
			count := binary.LittleEndian.Uint32(b)
			b = b[4:]
			kps := make([]rbxdom.ColorSequenceKeypoint, count)
			for k := range kps {
				if len(b) < 20 {
					return nil, fmt.Errorf("truncated color sequence keypoint")
				}
				kps[k] = rbxdom.ColorSequenceKeypoint{
					Time: math.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
					Value: rbxdom.ValueColor3{
						R: math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
						G: math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
						B: math.Float32frombits(binary.LittleEndian.Uint32(b[12:])),
					},
					Envelope: math.Float32frombits(binary.LittleEndian.Uint32(b[16:])),
				}
				b = b[20:]
			}
			out[i] = rbxdom.ValueColorSequence(kps)
		}
		return out, nil

	case tagNumberRange:
		if len(b) != n*8 {
			return nil, fmt.Errorf("number range column length %d does not match n=%d", len(b), n)
		}
		out := make([]rbxdom.Value, n)
		for i := 0; i < n; i++ {
			out[i] = rbxdom.ValueNumberRange{
				Min: math.Float32frombits(binary.LittleEndian.Uint32(b[i*8:])),
				Max: math.Float32frombits(binary.LittleEndian.Uint32(b[i*8+4:])),
			}
		}
		return out, nil

	case tagRect:
		if len(b) != n*16 {
			return nil, fmt.Errorf("rect column length %d does not match n=%d", len(b), n)
		}
		mins, err := decodeVector2Column(b[:n*8])
		if err != nil {
			return nil, err
		}
		maxs, err := decodeVector2Column(b[n*8:])
		if err != nil {
			return nil, err
		}
		out := make([]rbxdom.Value, n)
		for i := range out {
			out[i] = rbxdom.ValueRect{Min: mins[i], Max: maxs[i]}
		}
		return out, nil

	case tagRegion3:
		if len(b) != n*24 {
			return nil, fmt.Errorf("region3 column length %d does not match n=%d", len(b), n)
		}
		mins, err := decodeVector3Column(b[:n*12])
		if err != nil {
			return nil, err
		}
		maxs, err := decodeVector3Column(b[n*12:])
		if err != nil {
			return nil, err
		}
		out := make([]rbxdom.Value, n)
		for i := range out {
			out[i] = rbxdom.ValueRegion3{Min: mins[i], Max: maxs[i]}
		}
		return out, nil

	case tagRegion3int16:
		if len(b) != n*12 {
			return nil, fmt.Errorf("region3int16 column length %d does not match n=%d", len(b), n)
		}
		out := make([]rbxdom.Value, n)
		for i := 0; i < n; i++ {
			off := i * 12
			out[i] = rbxdom.ValueRegion3int16{
				Min: rbxdom.ValueVector3int16{
					X: int16(binary.LittleEndian.Uint16(b[off:])),
					Y: int16(binary.LittleEndian.Uint16(b[off+2:])),
					Z: int16(binary.LittleEndian.Uint16(b[off+4:])),
				},
				Max: rbxdom.ValueVector3int16{
					X: int16(binary.LittleEndian.Uint16(b[off+6:])),
					Y: int16(binary.LittleEndian.Uint16(b[off+8:])),
					Z: int16(binary.LittleEndian.Uint16(b[off+10:])),
				},
			}
		}
		return out, nil

	case tagPhysicalProperties:
		out := make([]rbxdom.Value, n)
		for i := 0; i < n; i++ {
			if len(b) < 1 {
				return nil, fmt.Errorf("truncated physical properties flag")
			}
			custom := b[0]
			b = b[1:]
			if custom == 0 {
				out[i] = rbxdom.ValuePhysicalProperties{}
				continue
			}
			if len(b) < 20 {
				return nil, fmt.Errorf("truncated physical properties payload")
			}
			out[i] = rbxdom.ValuePhysicalProperties{
				Custom:           true,
				Density:          math.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
				Friction:         math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
				Elasticity:       math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
				FrictionWeight:   math.Float32frombits(binary.LittleEndian.Uint32(b[12:])),
				ElasticityWeight: math.Float32frombits(binary.LittleEndian.Uint32(b[16:])),
			}
			b = b[20:]
		}
		return out, nil

	case tagTags:
		out := make([]rbxdom.Value, n)
		for i := 0; i < n; i++ {
			if len(b) < 4 {
				return nil, fmt.Errorf("truncated tags length")
			}
			l := binary.LittleEndian.Uint32(b)
			b = b[4:]
			if uint32(len(b)) < l {
				return nil, fmt.Errorf("truncated tags body")
			}
			out[i] = rbxdom.ValueTags(splitNullDelimited(b[:l]))
			b = b[l:]
		}
		return out, nil

	case tagAttributes:
		out := make([]rbxdom.Value, n)
		for i := 0; i < n; i++ {
			if len(b) < 4 {
				return nil, fmt.Errorf("truncated attributes blob length")
			}
			l := binary.LittleEndian.Uint32(b)
			b = b[4:]
			if uint32(len(b)) < l {
				return nil, fmt.Errorf("truncated attributes blob body")
			}
			attrs, err := decodeAttributesBlob(b[:l])
			if err != nil {
				return nil, err
			}
			out[i] = attrs
			b = b[l:]
		}
		return out, nil

	case tagUniqueId:
		if len(b) != n*16 {
			return nil, fmt.Errorf("uniqueid column length %d does not match n=%d", len(b), n)
		}
		out := make([]rbxdom.Value, n)
		for i := 0; i < n; i++ {
			off := i * 16
			out[i] = rbxdom.ValueUniqueId{
				Random: binary.LittleEndian.Uint64(b[off:]),
				Time:   binary.LittleEndian.Uint32(b[off+8:]),
				Index:  binary.LittleEndian.Uint32(b[off+12:]),
			}
		}
		return out, nil

	case tagSecurityCapabilities:
		if len(b) != n*8 {
			return nil, fmt.Errorf("security capabilities column length %d does not match n=%d", len(b), n)
		}
		out := make([]rbxdom.Value, n)
		for i := 0; i < n; i++ {
			out[i] = rbxdom.ValueSecurityCapabilities(binary.LittleEndian.Uint64(b[i*8:]))
		}
		return out, nil

	case tagFont:
		out := make([]rbxdom.Value, n)
		for i := 0; i < n; i++ {
			family, rest, err := readLengthPrefixed(b)
			if err != nil {
				return nil, err
			}
			if len(rest) < 3 {
				return nil, fmt.Errorf("truncated font weight/style")
			}
			weight := binary.LittleEndian.Uint16(rest)
			style := rest[2]
			rest = rest[3:]
			faceId, rest, err := readLengthPrefixed(rest)
			if err != nil {
				return nil, err
			}
			out[i] = rbxdom.ValueFont{
				Family:       family,
				Weight:       rbxdom.FontWeight(weight),
				Style:        rbxdom.FontStyle(style),
				CachedFaceId: faceId,
			}
			b = rest
		}
		return out, nil

	case tagMaterialColors:
		out := make([]rbxdom.Value, n)
		for i := 0; i < n; i++ {
			if len(b) < 4 {
				return nil, fmt.Errorf("truncated material colors length")
			}
			count := binary.LittleEndian.Uint32(b)
			b = b[4:]
			entries := make([]rbxdom.MaterialColorEntry, count)
			for k := range entries {
				if len(b) < 4 {
					return nil, fmt.Errorf("truncated material colors entry")
				}
				entries[k] = rbxdom.MaterialColorEntry{
					Material: b[0],
					Color:    rbxdom.ValueColor3uint8{R: b[1], G: b[2], B: b[3]},
				}
				b = b[4:]
			}
			out[i] = rbxdom.ValueMaterialColors(entries)
		}
		return out, nil

	case tagSmoothGrid:
		out := make([]rbxdom.Value, n)
		for i := 0; i < n; i++ {
			if len(b) < 12 {
				return nil, fmt.Errorf("truncated smooth grid dimensions")
			}
			sx := int(binary.LittleEndian.Uint32(b[0:]))
			sy := int(binary.LittleEndian.Uint32(b[4:]))
			sz := int(binary.LittleEndian.Uint32(b[8:]))
			b = b[12:]
			count := sx * sy * sz
			if len(b) < count*2 {
				return nil, fmt.Errorf("truncated smooth grid voxels")
			}
			voxels := make([]rbxdom.SmoothGridVoxel, count)
			for k := range voxels {
				voxels[k] = rbxdom.SmoothGridVoxel{Material: b[k*2], Occupancy: b[k*2+1]}
			}
			b = b[count*2:]
			out[i] = rbxdom.ValueSmoothGrid{SizeX: sx, SizeY: sy, SizeZ: sz, Voxels: voxels}
		}
		return out, nil

	default:
		return nil, errUnknownValueType(tag)
	}
}

func decodeRawVector3(b []byte) []rbxdom.ValueVector3 {
	out := make([]rbxdom.ValueVector3, len(b)/12)
	for i := range out {
		off := i * 12
		out[i] = rbxdom.ValueVector3{
			X: math.Float32frombits(binary.LittleEndian.Uint32(b[off:])),
			Y: math.Float32frombits(binary.LittleEndian.Uint32(b[off+4:])),
			Z: math.Float32frombits(binary.LittleEndian.Uint32(b[off+8:])),
		}
	}
	return out
}

func readLengthPrefixed(b []byte) (string, []byte, error) {
	if len(b) < 4 {
		return "", nil, fmt.Errorf("truncated length prefix")
	}
	l := binary.LittleEndian.Uint32(b)
	b = b[4:]
	if uint32(len(b)) < l {
		return "", nil, fmt.Errorf("truncated string body")
	}
	return string(b[:l]), b[l:], nil
}

// splitOptionalCFrame locates the boundary between the CFrame payload
// prefix and the trailing [sentinel byte][n bool bytes] presence column,
// by independently tracking how many bytes decodeCFrameColumn would
// consume.
func splitOptionalCFrame(b []byte, n int) (cframeBytes, presenceBytes []byte, err error) {
	i := 0
	for k := 0; k < n; k++ {
		if i >= len(b) {
			return nil, nil, fmt.Errorf("truncated optional cframe rotation-id byte")
		}
		id := b[i]
		i++
		if id == 0 {
			i += 36
		}
	}
	// What remains after the matrix prefix is n*12 bytes of positions, then
	// the presence column.
	positionsEnd := i + n*12
	if positionsEnd > len(b) {
		return nil, nil, fmt.Errorf("truncated optional cframe positions")
	}
	return b[:positionsEnd], b[positionsEnd:], nil
}
