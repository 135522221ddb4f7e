package rbxdom

import "strconv"

type ValueVector2 struct{ X, Y float32 }

func (ValueVector2) Type() VariantType { return TypeVector2 }
func (v ValueVector2) String() string  { return joinstr(formatF32(v.X), formatF32(v.Y)) }
func (v ValueVector2) Copy() Value     { return v }

type ValueVector2int16 struct{ X, Y int16 }

func (ValueVector2int16) Type() VariantType { return TypeVector2int16 }
func (v ValueVector2int16) String() string {
	return joinstr(strconv.Itoa(int(v.X)), strconv.Itoa(int(v.Y)))
}
func (v ValueVector2int16) Copy() Value { return v }

type ValueVector3 struct{ X, Y, Z float32 }

func (ValueVector3) Type() VariantType { return TypeVector3 }
func (v ValueVector3) String() string {
	return joinstr(formatF32(v.X), formatF32(v.Y), formatF32(v.Z))
}
func (v ValueVector3) Copy() Value { return v }

type ValueVector3int16 struct{ X, Y, Z int16 }

func (ValueVector3int16) Type() VariantType { return TypeVector3int16 }
func (v ValueVector3int16) String() string {
	return joinstr(strconv.Itoa(int(v.X)), strconv.Itoa(int(v.Y)), strconv.Itoa(int(v.Z)))
}
func (v ValueVector3int16) Copy() Value { return v }

// Matrix3 is a 3x3 rotation/orientation matrix stored row-major, as used by
// ValueCFrame.
type Matrix3 [9]float32

// Identity returns the orthonormal identity orientation.
func Identity() Matrix3 {
	return Matrix3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

type ValueCFrame struct {
	Position ValueVector3
	Rotation Matrix3
}

func (ValueCFrame) Type() VariantType { return TypeCFrame }
func (v ValueCFrame) String() string {
	s := make([]string, 0, 12)
	s = append(s, formatF32(v.Position.X), formatF32(v.Position.Y), formatF32(v.Position.Z))
	for _, f := range v.Rotation {
		s = append(s, formatF32(f))
	}
	return joinstr(s...)
}
func (v ValueCFrame) Copy() Value { return v }

// ValueOptionalCFrame is a CFrame that may be entirely absent; the binary
// and XML codecs both track the presence bit separately from the payload.
type ValueOptionalCFrame struct {
	CFrame ValueCFrame
	Valid  bool
}

func (ValueOptionalCFrame) Type() VariantType { return TypeOptionalCFrame }
func (v ValueOptionalCFrame) String() string {
	if !v.Valid {
		return "nil"
	}
	return v.CFrame.String()
}
func (v ValueOptionalCFrame) Copy() Value { return v }

type ValueUDim struct {
	Scale  float32
	Offset int32
}

func (ValueUDim) Type() VariantType { return TypeUDim }
func (v ValueUDim) String() string {
	return joinstr(formatF32(v.Scale), strconv.FormatInt(int64(v.Offset), 10))
}
func (v ValueUDim) Copy() Value { return v }

type ValueUDim2 struct{ X, Y ValueUDim }

func (ValueUDim2) Type() VariantType { return TypeUDim2 }
func (v ValueUDim2) String() string {
	return "{" + v.X.String() + "}, {" + v.Y.String() + "}"
}
func (v ValueUDim2) Copy() Value { return v }

type ValueRay struct{ Origin, Direction ValueVector3 }

func (ValueRay) Type() VariantType { return TypeRay }
func (v ValueRay) String() string {
	return "{" + v.Origin.String() + "}, {" + v.Direction.String() + "}"
}
func (v ValueRay) Copy() Value { return v }

type ValueRect struct{ Min, Max ValueVector2 }

func (ValueRect) Type() VariantType { return TypeRect }
func (v ValueRect) String() string {
	return joinstr(formatF32(v.Min.X), formatF32(v.Min.Y), formatF32(v.Max.X), formatF32(v.Max.Y))
}
func (v ValueRect) Copy() Value { return v }

type ValueRegion3 struct{ Min, Max ValueVector3 }

func (ValueRegion3) Type() VariantType { return TypeRegion3 }
func (v ValueRegion3) String() string {
	return "{" + v.Min.String() + "}, {" + v.Max.String() + "}"
}
func (v ValueRegion3) Copy() Value { return v }

type ValueRegion3int16 struct{ Min, Max ValueVector3int16 }

func (ValueRegion3int16) Type() VariantType { return TypeRegion3int16 }
func (v ValueRegion3int16) String() string {
	return "{" + v.Min.String() + "}, {" + v.Max.String() + "}"
}
func (v ValueRegion3int16) Copy() Value { return v }
