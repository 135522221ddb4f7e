package binary

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/robloxapi/rbxdom"
)

// encodeAttributesBlob implements spec.md §6.1's Attributes payload: a
// little-endian entry count, then per-entry <string key><u8 type-tag>
// <payload>, using the Attributes-specific tag table (distinct from the
// PROP-chunk valueTypeTag table) defined in rbxdom.AttributeTypeTagFor.
// EncodeAttributesBlob is the exported form of encodeAttributesBlob, for
// the xml codec: an XML Attributes property is the same binary blob,
// base64-encoded as its element text (spec.md §6.2).
func EncodeAttributesBlob(attrs rbxdom.ValueAttributes) ([]byte, error) {
	return encodeAttributesBlob(attrs)
}

// DecodeAttributesBlob is the exported form of decodeAttributesBlob.
func DecodeAttributesBlob(b []byte) (rbxdom.ValueAttributes, error) {
	return decodeAttributesBlob(b)
}

func encodeAttributesBlob(attrs rbxdom.ValueAttributes) ([]byte, error) {
	var b []byte
	var countBuf [4]byte
	binary.LittleEndian.PutUint32(countBuf[:], uint32(attrs.Len()))
	b = append(b, countBuf[:]...)

	var encodeErr error
	attrs.Range(func(key string, value rbxdom.Value) {
		if encodeErr != nil {
			return
		}
		tag, ok := rbxdom.AttributeTypeTagFor(value.Type())
		if !ok {
			encodeErr = fmt.Errorf("attribute %q: type %s has no attribute blob tag", key, value.Type())
			return
		}
		b = append(b, lengthPrefixed(key)...)
		b = append(b, byte(tag))
		payload, err := encodeAttributeValue(tag, value)
		if err != nil {
			encodeErr = fmt.Errorf("attribute %q: %w", key, err)
			return
		}
		b = append(b, payload...)
	})
	if encodeErr != nil {
		return nil, encodeErr
	}
	return b, nil
}

func encodeAttributeValue(tag rbxdom.AttributeTypeTag, v rbxdom.Value) ([]byte, error) {
	switch tag {
	case rbxdom.AttrTagBinaryString:
		return lengthPrefixed(v.String()), nil
	case rbxdom.AttrTagBool:
		if bool(v.(rbxdom.ValueBool)) {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	case rbxdom.AttrTagFloat32:
		return rawF32(float32(v.(rbxdom.ValueFloat32))), nil
	case rbxdom.AttrTagFloat64:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(float64(v.(rbxdom.ValueFloat64))))
		return b[:], nil
	case rbxdom.AttrTagUDim:
		u := v.(rbxdom.ValueUDim)
		var b [8]byte
		binary.LittleEndian.PutUint32(b[0:], math.Float32bits(u.Scale))
		binary.LittleEndian.PutUint32(b[4:], uint32(u.Offset))
		return b[:], nil
	case rbxdom.AttrTagUDim2:
		u := v.(rbxdom.ValueUDim2)
		return append(mustAttr(encodeAttributeValue(rbxdom.AttrTagUDim, u.X)),
			mustAttr(encodeAttributeValue(rbxdom.AttrTagUDim, u.Y))...), nil
	case rbxdom.AttrTagBrickColor:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], v.(rbxdom.ValueBrickColor).BrickColor.Code)
		return b[:], nil
	case rbxdom.AttrTagColor3:
		c := v.(rbxdom.ValueColor3)
		var b [12]byte
		binary.LittleEndian.PutUint32(b[0:], math.Float32bits(c.R))
		binary.LittleEndian.PutUint32(b[4:], math.Float32bits(c.G))
		binary.LittleEndian.PutUint32(b[8:], math.Float32bits(c.B))
		return b[:], nil
	case rbxdom.AttrTagVector2:
		p := v.(rbxdom.ValueVector2)
		var b [8]byte
		binary.LittleEndian.PutUint32(b[0:], math.Float32bits(p.X))
		binary.LittleEndian.PutUint32(b[4:], math.Float32bits(p.Y))
		return b[:], nil
	case rbxdom.AttrTagVector3:
		p := v.(rbxdom.ValueVector3)
		var b [12]byte
		binary.LittleEndian.PutUint32(b[0:], math.Float32bits(p.X))
		binary.LittleEndian.PutUint32(b[4:], math.Float32bits(p.Y))
		binary.LittleEndian.PutUint32(b[8:], math.Float32bits(p.Z))
		return b[:], nil
	case rbxdom.AttrTagNumberSequence:
		seq := v.(rbxdom.ValueNumberSequence)
		var b []byte
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(seq)))
		b = append(b, lenBuf[:]...)
		for _, kp := range seq {
			b = append(b, rawF32(kp.Time)...)
			b = append(b, rawF32(kp.Value)...)
			b = append(b, rawF32(kp.Envelope)...)
		}
		return b, nil
	case rbxdom.AttrTagColorSequence:
		seq := v.(rbxdom.ValueColorSequence)
		var b []byte
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(seq)))
		b = append(b, lenBuf[:]...)
		for _, kp := range seq {
			b = append(b, rawF32(kp.Time)...)
			b = append(b, mustAttr(encodeAttributeValue(rbxdom.AttrTagColor3, kp.Value))...)
			b = append(b, rawF32(kp.Envelope)...)
		}
		return b, nil
	case rbxdom.AttrTagNumberRange:
		r := v.(rbxdom.ValueNumberRange)
		return append(rawF32(r.Min), rawF32(r.Max)...), nil
	case rbxdom.AttrTagRect:
		r := v.(rbxdom.ValueRect)
		b := append(rawF32(r.Min.X), rawF32(r.Min.Y)...)
		b = append(b, rawF32(r.Max.X)...)
		b = append(b, rawF32(r.Max.Y)...)
		return b, nil
	default:
		return nil, fmt.Errorf("unhandled attribute tag 0x%02X", byte(tag))
	}
}

func mustAttr(b []byte, err error) []byte {
	if err != nil {
		panic(err)
	}
	return b
}

// decodeAttributesBlob inverts encodeAttributesBlob.
func decodeAttributesBlob(b []byte) (rbxdom.ValueAttributes, error) {
	if len(b) < 4 {
		return rbxdom.ValueAttributes{}, fmt.Errorf("truncated attributes blob")
	}
	count := binary.LittleEndian.Uint32(b)
	b = b[4:]

	entries := make(map[string]rbxdom.Value, count)
	for i := uint32(0); i < count; i++ {
		if len(b) < 4 {
			return rbxdom.ValueAttributes{}, fmt.Errorf("truncated attribute key length")
		}
		keyLen := binary.LittleEndian.Uint32(b)
		b = b[4:]
		if uint32(len(b)) < keyLen+1 {
			return rbxdom.ValueAttributes{}, fmt.Errorf("truncated attribute key/tag")
		}
		key := string(b[:keyLen])
		b = b[keyLen:]
		tag := rbxdom.AttributeTypeTag(b[0])
		b = b[1:]

		value, rest, err := decodeAttributeValue(tag, b)
		if err != nil {
			return rbxdom.ValueAttributes{}, fmt.Errorf("attribute %q: %w", key, err)
		}
		entries[key] = value
		b = rest
	}
	return rbxdom.NewAttributes(entries)
}

func decodeAttributeValue(tag rbxdom.AttributeTypeTag, b []byte) (rbxdom.Value, []byte, error) {
	need := func(n int) error {
		if len(b) < n {
			return fmt.Errorf("truncated payload for tag 0x%02X", byte(tag))
		}
		return nil
	}
	switch tag {
	case rbxdom.AttrTagBinaryString:
		if err := need(4); err != nil {
			return nil, nil, err
		}
		l := binary.LittleEndian.Uint32(b)
		b = b[4:]
		if err := need2(b, int(l)); err != nil {
			return nil, nil, err
		}
		return rbxdom.ValueString(b[:l]), b[l:], nil
	case rbxdom.AttrTagBool:
		if err := need(1); err != nil {
			return nil, nil, err
		}
		return rbxdom.ValueBool(b[0] != 0), b[1:], nil
	case rbxdom.AttrTagFloat32:
		if err := need(4); err != nil {
			return nil, nil, err
		}
		return rbxdom.ValueFloat32(math.Float32frombits(binary.LittleEndian.Uint32(b))), b[4:], nil
	case rbxdom.AttrTagFloat64:
		if err := need(8); err != nil {
			return nil, nil, err
		}
		return rbxdom.ValueFloat64(math.Float64frombits(binary.LittleEndian.Uint64(b))), b[8:], nil
	case rbxdom.AttrTagUDim:
		if err := need(8); err != nil {
			return nil, nil, err
		}
		scale := math.Float32frombits(binary.LittleEndian.Uint32(b))
		offset := int32(binary.LittleEndian.Uint32(b[4:]))
		return rbxdom.ValueUDim{Scale: scale, Offset: offset}, b[8:], nil
	case rbxdom.AttrTagUDim2:
		xv, rest, err := decodeAttributeValue(rbxdom.AttrTagUDim, b)
		if err != nil {
			return nil, nil, err
		}
		yv, rest, err := decodeAttributeValue(rbxdom.AttrTagUDim, rest)
		if err != nil {
			return nil, nil, err
		}
		return rbxdom.ValueUDim2{X: xv.(rbxdom.ValueUDim), Y: yv.(rbxdom.ValueUDim)}, rest, nil
	case rbxdom.AttrTagBrickColor:
		if err := need(4); err != nil {
			return nil, nil, err
		}
		code := binary.LittleEndian.Uint32(b)
		bc, _ := rbxdom.BrickColorByCode(code)
		return rbxdom.ValueBrickColor{BrickColor: bc}, b[4:], nil
	case rbxdom.AttrTagColor3:
		if err := need(12); err != nil {
			return nil, nil, err
		}
		r := math.Float32frombits(binary.LittleEndian.Uint32(b[0:]))
		g := math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
		bl := math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
		return rbxdom.ValueColor3{R: r, G: g, B: bl}, b[12:], nil
	case rbxdom.AttrTagVector2:
		if err := need(8); err != nil {
			return nil, nil, err
		}
		x := math.Float32frombits(binary.LittleEndian.Uint32(b[0:]))
		y := math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
		return rbxdom.ValueVector2{X: x, Y: y}, b[8:], nil
	case rbxdom.AttrTagVector3:
		if err := need(12); err != nil {
			return nil, nil, err
		}
		x := math.Float32frombits(binary.LittleEndian.Uint32(b[0:]))
		y := math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
		z := math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
		return rbxdom.ValueVector3{X: x, Y: y, Z: z}, b[12:], nil
	case rbxdom.AttrTagNumberSequence:
		if err := need(4); err != nil {
			return nil, nil, err
		}
		n := binary.LittleEndian.Uint32(b)
		b = b[4:]
		kps := make([]rbxdom.NumberSequenceKeypoint, n)
		for i := range kps {
			if err := need2(b, 12); err != nil {
				return nil, nil, err
			}
			kps[i] = rbxdom.NumberSequenceKeypoint{
				Time:     math.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
				Value:    math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
				Envelope: math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
			}
			b = b[12:]
		}
		return rbxdom.ValueNumberSequence(kps), b, nil
	case rbxdom.AttrTagColorSequence:
		if err := need(4); err != nil {
			return nil, nil, err
		}
		n := binary.LittleEndian.Uint32(b)
		b = b[4:]
		kps := make([]rbxdom.ColorSequenceKeypoint, n)
		for i := range kps {
			if err := need2(b, 4); err != nil {
				return nil, nil, err
			}
			time := math.Float32frombits(binary.LittleEndian.Uint32(b))
			b = b[4:]
			cv, rest, err := decodeAttributeValue(rbxdom.AttrTagColor3, b)
			if err != nil {
				return nil, nil, err
			}
			b = rest
			if err := need2(b, 4); err != nil {
				return nil, nil, err
			}
			env := math.Float32frombits(binary.LittleEndian.Uint32(b))
			b = b[4:]
			kps[i] = rbxdom.ColorSequenceKeypoint{Time: time, Value: cv.(rbxdom.ValueColor3), Envelope: env}
		}
		return rbxdom.ValueColorSequence(kps), b, nil
	case rbxdom.AttrTagNumberRange:
		if err := need(8); err != nil {
			return nil, nil, err
		}
		min := math.Float32frombits(binary.LittleEndian.Uint32(b[0:]))
		max := math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
		return rbxdom.ValueNumberRange{Min: min, Max: max}, b[8:], nil
	case rbxdom.AttrTagRect:
		if err := need(16); err != nil {
			return nil, nil, err
		}
		minX := math.Float32frombits(binary.LittleEndian.Uint32(b[0:]))
		minY := math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
		maxX := math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
		maxY := math.Float32frombits(binary.LittleEndian.Uint32(b[12:]))
		return rbxdom.ValueRect{Min: rbxdom.ValueVector2{X: minX, Y: minY}, Max: rbxdom.ValueVector2{X: maxX, Y: maxY}}, b[16:], nil
	default:
		return nil, nil, fmt.Errorf("unknown attribute tag 0x%02X", byte(tag))
	}
}

func need2(b []byte, n int) error {
	if len(b) < n {
		return fmt.Errorf("truncated attribute payload")
	}
	return nil
}
