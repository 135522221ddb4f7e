package binary

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/robloxapi/rbxdom"
)

////////////////////////////////////////////////////////////////
// Primitive column helpers, grounded on rbxl/arrays.go + rbxl/values.go's
// per-type fieldLen/fieldGet/fieldSet bodies, generalized to this module's
// Value set.

func encodeBoolColumn(vs []bool) []byte {
	b := make([]byte, len(vs))
	for i, v := range vs {
		if v {
			b[i] = 1
		}
	}
	return b
}

func decodeBoolColumn(b []byte) []bool {
	out := make([]bool, len(b))
	for i, v := range b {
		out[i] = v != 0
	}
	return out
}

func encodeI32Column(vs []int32) []byte {
	b := make([]byte, len(vs)*4)
	for i, v := range vs {
		z := zigzagEncode(v)
		binary.BigEndian.PutUint32(b[i*4:], z)
	}
	interleave(b, 4)
	return b
}

func decodeI32Column(b []byte) ([]int32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("i32 column length %d not a multiple of 4", len(b))
	}
	bc := append([]byte(nil), b...)
	if err := deinterleave(bc, 4); err != nil {
		return nil, err
	}
	out := make([]int32, len(bc)/4)
	for i := range out {
		out[i] = zigzagDecode(binary.BigEndian.Uint32(bc[i*4:]))
	}
	return out, nil
}

// rotateSignToLSB and its inverse implement the f32 column encoding's
// "sign bit rotated to LSB" rule (spec.md §4.D.1): moving the sign into the
// low bit instead of the high bit means small-magnitude, same-signed
// columns of floats differ in fewer leading bytes, which compresses
// better.
func rotateSignToLSB(bits uint32) uint32 { return bits<<1 | bits>>31 }
func rotateSignFromLSB(rotated uint32) uint32 { return rotated>>1 | rotated<<31 }

func encodeF32Column(vs []float32) []byte {
	b := make([]byte, len(vs)*4)
	for i, v := range vs {
		bits := rotateSignToLSB(math.Float32bits(v))
		binary.BigEndian.PutUint32(b[i*4:], bits)
	}
	interleave(b, 4)
	return b
}

func decodeF32Column(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("f32 column length %d not a multiple of 4", len(b))
	}
	bc := append([]byte(nil), b...)
	if err := deinterleave(bc, 4); err != nil {
		return nil, err
	}
	out := make([]float32, len(bc)/4)
	for i := range out {
		bits := rotateSignFromLSB(binary.BigEndian.Uint32(bc[i*4:]))
		out[i] = math.Float32frombits(bits)
	}
	return out, nil
}

func encodeF64Raw(vs []float64) []byte {
	b := make([]byte, len(vs)*8)
	for i, v := range vs {
		binary.LittleEndian.PutUint64(b[i*8:], math.Float64bits(v))
	}
	return b
}

func decodeF64Raw(b []byte) ([]float64, error) {
	if len(b)%8 != 0 {
		return nil, fmt.Errorf("f64 column length %d not a multiple of 8", len(b))
	}
	out := make([]float64, len(b)/8)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
	}
	return out, nil
}

func encodeU32Column(vs []uint32) []byte {
	return encodeI32Column(i32sFromU32s(vs))
}

func decodeU32Column(b []byte) ([]uint32, error) {
	i32s, err := decodeI32Column(b)
	if err != nil {
		return nil, err
	}
	return u32sFromI32s(i32s), nil
}

func i32sFromU32s(vs []uint32) []int32 {
	out := make([]int32, len(vs))
	for i, v := range vs {
		out[i] = int32(v)
	}
	return out
}

func u32sFromI32s(vs []int32) []uint32 {
	out := make([]uint32, len(vs))
	for i, v := range vs {
		out[i] = uint32(v)
	}
	return out
}

func encodeLengthPrefixedStrings(vs []string) []byte {
	var b []byte
	var lenBuf [4]byte
	for _, s := range vs {
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(s)))
		b = append(b, lenBuf[:]...)
		b = append(b, s...)
	}
	return b
}

func decodeLengthPrefixedStrings(b []byte, n int) ([]string, error) {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if len(b) < 4 {
			return nil, fmt.Errorf("truncated string length prefix")
		}
		l := binary.LittleEndian.Uint32(b)
		b = b[4:]
		if uint32(len(b)) < l {
			return nil, fmt.Errorf("truncated string body")
		}
		out = append(out, string(b[:l]))
		b = b[l:]
	}
	return out, nil
}

func encodeBinaryStrings(vs [][]byte) []byte {
	var b []byte
	var lenBuf [4]byte
	for _, s := range vs {
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(s)))
		b = append(b, lenBuf[:]...)
		b = append(b, s...)
	}
	return b
}

func decodeBinaryStrings(b []byte, n int) ([][]byte, error) {
	out := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		if len(b) < 4 {
			return nil, fmt.Errorf("truncated binary string length prefix")
		}
		l := binary.LittleEndian.Uint32(b)
		b = b[4:]
		if uint32(len(b)) < l {
			return nil, fmt.Errorf("truncated binary string body")
		}
		cp := make([]byte, l)
		copy(cp, b[:l])
		out = append(out, cp)
		b = b[l:]
	}
	return out, nil
}

////////////////////////////////////////////////////////////////
// Geometry helpers composed from the scalar columns above.

func encodeVector3Column(vs []rbxdom.ValueVector3) []byte {
	n := len(vs)
	xs, ys, zs := make([]float32, n), make([]float32, n), make([]float32, n)
	for i, v := range vs {
		xs[i], ys[i], zs[i] = v.X, v.Y, v.Z
	}
	return append(append(encodeF32Column(xs), encodeF32Column(ys)...), encodeF32Column(zs)...)
}

func decodeVector3Column(b []byte) ([]rbxdom.ValueVector3, error) {
	if len(b)%12 != 0 {
		return nil, fmt.Errorf("vector3 column length %d not a multiple of 12", len(b))
	}
	n := len(b) / 12
	xs, err := decodeF32Column(b[0 : n*4])
	if err != nil {
		return nil, err
	}
	ys, err := decodeF32Column(b[n*4 : n*8])
	if err != nil {
		return nil, err
	}
	zs, err := decodeF32Column(b[n*8 : n*12])
	if err != nil {
		return nil, err
	}
	out := make([]rbxdom.ValueVector3, n)
	for i := range out {
		out[i] = rbxdom.ValueVector3{X: xs[i], Y: ys[i], Z: zs[i]}
	}
	return out, nil
}

func encodeVector2Column(vs []rbxdom.ValueVector2) []byte {
	n := len(vs)
	xs, ys := make([]float32, n), make([]float32, n)
	for i, v := range vs {
		xs[i], ys[i] = v.X, v.Y
	}
	return append(encodeF32Column(xs), encodeF32Column(ys)...)
}

func decodeVector2Column(b []byte) ([]rbxdom.ValueVector2, error) {
	if len(b)%8 != 0 {
		return nil, fmt.Errorf("vector2 column length %d not a multiple of 8", len(b))
	}
	n := len(b) / 8
	xs, err := decodeF32Column(b[0 : n*4])
	if err != nil {
		return nil, err
	}
	ys, err := decodeF32Column(b[n*4 : n*8])
	if err != nil {
		return nil, err
	}
	out := make([]rbxdom.ValueVector2, n)
	for i := range out {
		out[i] = rbxdom.ValueVector2{X: xs[i], Y: ys[i]}
	}
	return out, nil
}

func encodeColor3Column(vs []rbxdom.ValueColor3) []byte {
	n := len(vs)
	rs, gs, bs := make([]float32, n), make([]float32, n), make([]float32, n)
	for i, v := range vs {
		rs[i], gs[i], bs[i] = v.R, v.G, v.B
	}
	return append(append(encodeF32Column(rs), encodeF32Column(gs)...), encodeF32Column(bs)...)
}

func decodeColor3Column(b []byte) ([]rbxdom.ValueColor3, error) {
	if len(b)%12 != 0 {
		return nil, fmt.Errorf("color3 column length %d not a multiple of 12", len(b))
	}
	n := len(b) / 12
	rs, err := decodeF32Column(b[0 : n*4])
	if err != nil {
		return nil, err
	}
	gs, err := decodeF32Column(b[n*4 : n*8])
	if err != nil {
		return nil, err
	}
	bls, err := decodeF32Column(b[n*8 : n*12])
	if err != nil {
		return nil, err
	}
	out := make([]rbxdom.ValueColor3, n)
	for i := range out {
		out[i] = rbxdom.ValueColor3{R: rs[i], G: gs[i], B: bls[i]}
	}
	return out, nil
}

// encodeCFrameColumn writes, per instance, a rotation-id byte (falling back
// to 0 plus 9 raw floats when the matrix is not one of the 24 basic
// rotations), followed by three f32 columns of positions.
func encodeCFrameColumn(vs []rbxdom.ValueCFrame) []byte {
	var head []byte
	positions := make([]rbxdom.ValueVector3, len(vs))
	for i, cf := range vs {
		if id, ok := rbxdom.ToBasicRotationID(cf.Rotation); ok {
			head = append(head, id)
		} else {
			head = append(head, 0)
			for _, f := range cf.Rotation {
				var fb [4]byte
				binary.LittleEndian.PutUint32(fb[:], math.Float32bits(f))
				head = append(head, fb[:]...)
			}
		}
		positions[i] = cf.Position
	}
	return append(head, encodeVector3Column(positions)...)
}

func decodeCFrameColumn(b []byte, n int) ([]rbxdom.ValueCFrame, error) {
	out := make([]rbxdom.ValueCFrame, n)
	i := 0
	for k := 0; k < n; k++ {
		if i >= len(b) {
			return nil, fmt.Errorf("truncated cframe rotation-id byte")
		}
		id := b[i]
		i++
		if id == 0 {
			if i+36 > len(b) {
				return nil, fmt.Errorf("truncated cframe raw rotation matrix")
			}
			var m rbxdom.Matrix3
			for f := 0; f < 9; f++ {
				m[f] = math.Float32frombits(binary.LittleEndian.Uint32(b[i+f*4:]))
			}
			out[k].Rotation = m
			i += 36
		} else {
			m, ok := rbxdom.FromBasicRotationID(id)
			if !ok {
				return nil, fmt.Errorf("unknown basic rotation id 0x%02X", id)
			}
			out[k].Rotation = m
		}
	}
	positions, err := decodeVector3Column(b[i:])
	if err != nil {
		return nil, err
	}
	if len(positions) != n {
		return nil, fmt.Errorf("cframe position count %d does not match rotation count %d", len(positions), n)
	}
	for k := range out {
		out[k].Position = positions[k]
	}
	return out, nil
}
