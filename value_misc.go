package rbxdom

import "strings"

// ValueAxes is a bitfield set over the X/Y/Z cardinal axes.
type ValueAxes struct{ X, Y, Z bool }

func (ValueAxes) Type() VariantType { return TypeAxes }
func (v ValueAxes) String() string {
	var parts []string
	if v.X {
		parts = append(parts, "X")
	}
	if v.Y {
		parts = append(parts, "Y")
	}
	if v.Z {
		parts = append(parts, "Z")
	}
	return strings.Join(parts, ", ")
}
func (v ValueAxes) Copy() Value { return v }

// Bits packs the Axes bitfield as Roblox does on disk: bit 0 = X, bit 1 =
// Y, bit 2 = Z.
func (v ValueAxes) Bits() byte {
	var b byte
	if v.X {
		b |= 1 << 0
	}
	if v.Y {
		b |= 1 << 1
	}
	if v.Z {
		b |= 1 << 2
	}
	return b
}

// AxesFromBits is the inverse of ValueAxes.Bits.
func AxesFromBits(b byte) ValueAxes {
	return ValueAxes{X: b&(1<<0) != 0, Y: b&(1<<1) != 0, Z: b&(1<<2) != 0}
}

// ValueFaces is a bitfield set over the six cardinal cube faces.
type ValueFaces struct{ Right, Top, Back, Left, Bottom, Front bool }

func (ValueFaces) Type() VariantType { return TypeFaces }
func (v ValueFaces) String() string {
	var parts []string
	if v.Front {
		parts = append(parts, "Front")
	}
	if v.Bottom {
		parts = append(parts, "Bottom")
	}
	if v.Left {
		parts = append(parts, "Left")
	}
	if v.Back {
		parts = append(parts, "Back")
	}
	if v.Top {
		parts = append(parts, "Top")
	}
	if v.Right {
		parts = append(parts, "Right")
	}
	return strings.Join(parts, ", ")
}
func (v ValueFaces) Copy() Value { return v }

// Bits packs the Faces bitfield: bit 0 Front, 1 Bottom, 2 Left, 3 Back,
// 4 Top, 5 Right.
func (v ValueFaces) Bits() byte {
	var b byte
	if v.Front {
		b |= 1 << 0
	}
	if v.Bottom {
		b |= 1 << 1
	}
	if v.Left {
		b |= 1 << 2
	}
	if v.Back {
		b |= 1 << 3
	}
	if v.Top {
		b |= 1 << 4
	}
	if v.Right {
		b |= 1 << 5
	}
	return b
}

// FacesFromBits is the inverse of ValueFaces.Bits.
func FacesFromBits(b byte) ValueFaces {
	return ValueFaces{
		Front:  b&(1<<0) != 0,
		Bottom: b&(1<<1) != 0,
		Left:   b&(1<<2) != 0,
		Back:   b&(1<<3) != 0,
		Top:    b&(1<<4) != 0,
		Right:  b&(1<<5) != 0,
	}
}

// ValuePhysicalProperties distinguishes the zero-payload "use the class
// default" state from a fully custom 5-float payload; this distinction is
// significant at the byte level and must survive round trips.
type ValuePhysicalProperties struct {
	Custom bool

	Density          float32
	Friction         float32
	Elasticity       float32
	FrictionWeight   float32
	ElasticityWeight float32
}

func (ValuePhysicalProperties) Type() VariantType { return TypePhysicalProperties }
func (v ValuePhysicalProperties) String() string {
	if !v.Custom {
		return "nil"
	}
	return joinstr(
		formatF32(v.Density), formatF32(v.Friction), formatF32(v.Elasticity),
		formatF32(v.FrictionWeight), formatF32(v.ElasticityWeight),
	)
}
func (v ValuePhysicalProperties) Copy() Value { return v }

// ValueTags is an ordered list of tag strings.
type ValueTags []string

func (ValueTags) Type() VariantType { return TypeTags }
func (v ValueTags) String() string  { return strings.Join(v, ", ") }
func (v ValueTags) Copy() Value {
	c := make(ValueTags, len(v))
	copy(c, v)
	return c
}

// ValueUniqueId is a 128-bit identifier combining a random component, a
// process index, and a creation timestamp, as Roblox's UniqueId does.
type ValueUniqueId struct {
	Random    uint64
	Time      uint32
	Index     uint32
}

func (ValueUniqueId) Type() VariantType { return TypeUniqueId }
func (v ValueUniqueId) String() string {
	return joinstr(formatU64(v.Random), formatU32(v.Time), formatU32(v.Index))
}
func (v ValueUniqueId) Copy() Value { return v }

// ValueSecurityCapabilities is a bitmask of Roblox capability flags.
type ValueSecurityCapabilities uint64

func (ValueSecurityCapabilities) Type() VariantType { return TypeSecurityCapabilities }
func (v ValueSecurityCapabilities) String() string  { return formatU64(uint64(v)) }
func (v ValueSecurityCapabilities) Copy() Value     { return v }

// MaterialColorEntry assigns an override color to one terrain material.
type MaterialColorEntry struct {
	Material byte
	Color    ValueColor3uint8
}

// ValueMaterialColors is a sparse palette of per-material terrain color
// overrides.
type ValueMaterialColors []MaterialColorEntry

func (ValueMaterialColors) Type() VariantType { return TypeMaterialColors }
func (v ValueMaterialColors) String() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = joinstr(formatU32(uint32(e.Material)), e.Color.String())
	}
	return strings.Join(parts, "; ")
}
func (v ValueMaterialColors) Copy() Value {
	c := make(ValueMaterialColors, len(v))
	copy(c, v)
	return c
}

// SmoothGridVoxel is one voxel of a ValueSmoothGrid: a material id plus an
// occupancy/smoothing byte.
type SmoothGridVoxel struct {
	Material  byte
	Occupancy byte
}

// ValueSmoothGrid is a dense terrain voxel grid, addressed
// [x][y][z], as produced by Terrain.CopyRegion.
type ValueSmoothGrid struct {
	SizeX, SizeY, SizeZ int
	Voxels               []SmoothGridVoxel
}

func (ValueSmoothGrid) Type() VariantType { return TypeSmoothGrid }
func (v ValueSmoothGrid) String() string {
	return joinstr(formatU32(uint32(v.SizeX)), formatU32(uint32(v.SizeY)), formatU32(uint32(v.SizeZ)))
}
func (v ValueSmoothGrid) Copy() Value {
	c := v
	c.Voxels = make([]SmoothGridVoxel, len(v.Voxels))
	copy(c.Voxels, v.Voxels)
	return c
}

func formatU32(u uint32) string { return formatU64(uint64(u)) }
