package rbxdom

// basicRotationMatrix is the lookup table of the 24 axis-aligned "basic"
// rotations, indexed by id. Ids without an entry here are not basic
// rotations. Adapted from the teacher's rbxl/cframe.go table, renamed to
// this package's vocabulary; the shape (rows project to signed unit axis
// vectors) and the specific id assignment are preserved.
var basicRotationMatrix = map[byte]Matrix3{
	0x02: {+1, +0, +0, +0, +1, +0, +0, +0, +1},
	0x03: {+1, +0, +0, +0, +0, -1, +0, +1, +0},
	0x05: {+1, +0, +0, +0, -1, +0, +0, +0, -1},
	0x06: {+1, +0, +0, +0, +0, +1, +0, -1, +0},
	0x07: {+0, +1, +0, +1, +0, +0, +0, +0, -1},
	0x09: {+0, +0, +1, +1, +0, +0, +0, +1, +0},
	0x0A: {+0, -1, +0, +1, +0, +0, +0, +0, +1},
	0x0C: {+0, +0, -1, +1, +0, +0, +0, -1, +0},
	0x0D: {+0, +1, +0, +0, +0, +1, +1, +0, +0},
	0x0E: {+0, +0, -1, +0, +1, +0, +1, +0, +0},
	0x10: {+0, -1, +0, +0, +0, -1, +1, +0, +0},
	0x11: {+0, +0, +1, +0, -1, +0, +1, +0, +0},
	0x14: {-1, +0, +0, +0, +1, +0, +0, +0, -1},
	0x15: {-1, +0, +0, +0, +0, +1, +0, +1, +0},
	0x17: {-1, +0, +0, +0, -1, +0, +0, +0, +1},
	0x18: {-1, +0, +0, +0, +0, -1, +0, -1, +0},
	0x19: {+0, +1, +0, -1, +0, +0, +0, +0, +1},
	0x1B: {+0, +0, -1, -1, +0, +0, +0, +1, +0},
	0x1C: {+0, -1, +0, -1, +0, +0, +0, +0, -1},
	0x1E: {+0, +0, +1, -1, +0, +0, +0, -1, +0},
	0x1F: {+0, +1, +0, +0, +0, -1, -1, +0, +0},
	0x20: {+0, +0, +1, +0, +1, +0, -1, +0, +0},
	0x22: {+0, -1, +0, +0, +0, +1, -1, +0, +0},
	0x23: {+0, +0, -1, +0, -1, +0, -1, +0, +0},
}

var basicRotationID map[Matrix3]byte

func init() {
	basicRotationID = make(map[Matrix3]byte, len(basicRotationMatrix))
	for id, m := range basicRotationMatrix {
		basicRotationID[m] = id
	}
}

// ToBasicRotationID returns the id of m if m is one of the 24 axis-aligned
// basic rotations, and false otherwise. Per spec.md §4.A, this requires all
// three rows to project cleanly to a signed unit axis vector *and* the
// derived Z row (X row cross Y row) to match the input's Z row — guarding
// against non-orthonormal matrices that would otherwise produce a false
// match on rows 0 and 1 alone.
func ToBasicRotationID(m Matrix3) (id byte, ok bool) {
	id, ok = basicRotationID[m]
	if !ok {
		return 0, false
	}
	derivedZ := crossRow(m)
	if derivedZ != [3]float32{m[6], m[7], m[8]} {
		return 0, false
	}
	return id, true
}

// crossRow returns the cross product of m's first two rows (its would-be Z
// axis, were m orthonormal).
func crossRow(m Matrix3) [3]float32 {
	ax, ay, az := m[0], m[1], m[2]
	bx, by, bz := m[3], m[4], m[5]
	return [3]float32{
		ay*bz - az*by,
		az*bx - ax*bz,
		ax*by - ay*bx,
	}
}

// FromBasicRotationID is the inverse of ToBasicRotationID: given a valid
// basic-rotation id, it returns the corresponding Matrix3.
func FromBasicRotationID(id byte) (Matrix3, bool) {
	m, ok := basicRotationMatrix[id]
	return m, ok
}
