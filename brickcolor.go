package rbxdom

// brickColorEntry describes one palette entry: a numeric code, its display
// name, and its RGB triple (as float32 in [0, 1]).
type brickColorEntry struct {
	Code uint32
	Name string
	R, G, B float32
}

// brickColorPalette mirrors the coarse shape of Roblox's BrickColor
// palette: not a pointer-to-pointer, but a flat table of 42 entries keyed by
// numeric code, looked up by linear scan (the palette is read-only and
// small enough that a map adds no real benefit over a slice scan, matching
// how small closed enumerations are modeled elsewhere in this package).
// Only these 42 codes are known; BrickColorByCode reports every other code
// as outside the palette.
//
// Two entries intentionally share the display name "Lilac" (codes 205 and
// 1009) to exercise BrickColorByCode's name-collision tolerance.
var brickColorPalette = []brickColorEntry{
	{1, "White", 0.949, 0.952, 0.952},
	{2, "Grey", 0.639, 0.635, 0.647},
	{3, "Light yellow", 0.952, 0.804, 0.611},
	{5, "Brick yellow", 0.843, 0.772, 0.603},
	{6, "Light green (Mint)", 0.631, 0.768, 0.549},
	{9, "Light reddish violet", 0.905, 0.635, 0.682},
	{11, "Pastel Blue", 0.501, 0.731, 0.858},
	{12, "Light orange brown", 0.666, 0.419, 0.196},
	{18, "Nougat", 0.666, 0.419, 0.196},
	{21, "Bright red", 0.768, 0.156, 0.109},
	{22, "Med. reddish violet", 0.596, 0.231, 0.554},
	{23, "Bright blue", 0.101, 0.333, 0.635},
	{24, "Bright yellow", 0.960, 0.803, 0.188},
	{26, "Black", 0.105, 0.164, 0.203},
	{28, "Dark green", 0.152, 0.411, 0.203},
	{37, "Bright green", 0.294, 0.592, 0.294},
	{45, "Light blue", 0.690, 0.847, 0.952},
	{104, "Bright violet", 0.392, 0.113, 0.580},
	{105, "Br. yellowish orange", 0.882, 0.603, 0.188},
	{106, "Bright orange", 0.854, 0.521, 0.203},
	{107, "Bright bluish green", 0.133, 0.498, 0.462},
	{119, "Br. yellowish green", 0.647, 0.756, 0.172},
	{125, "Light bluish violet", 0.678, 0.564, 0.752},
	{135, "Sand blue", 0.450, 0.486, 0.556},
	{141, "Dark green2", 0.105, 0.290, 0.223},
	{153, "Sand red", 0.580, 0.435, 0.419},
	{192, "Reddish brown", 0.403, 0.223, 0.152},
	{194, "Medium stone grey", 0.635, 0.635, 0.635},
	{199, "Dark stone grey", 0.349, 0.352, 0.352},
	{205, "Lilac", 0.494, 0.419, 0.694},
	{208, "Light stone grey", 0.886, 0.886, 0.886},
	{211, "Pink", 1.0, 0.686, 0.807},
	{216, "Rust", 0.545, 0.301, 0.243},
	{226, "Cool yellow", 0.988, 0.905, 0.580},
	{301, "Sand green", 0.568, 0.670, 0.584},
	{302, "Sand violet", 0.545, 0.498, 0.631},
	{303, "Medium blue", 0.470, 0.592, 0.772},
	{304, "Sand yellow", 0.752, 0.658, 0.505},
	{1001, "Black (Deprecated)", 0.105, 0.164, 0.203},
	{1009, "Lilac", 0.603, 0.560, 0.772},
	{1011, "Institutional white", 0.972, 0.972, 0.972},
	{1012, "Mid gray", 0.639, 0.635, 0.647},
}

// BrickColor identifies a BrickColor palette entry by its numeric code.
type BrickColor struct {
	Code uint32
}

// BrickColorByCode returns the BrickColor for code, or (BrickColor{}, false)
// if code is outside the palette.
func BrickColorByCode(code uint32) (BrickColor, bool) {
	for _, e := range brickColorPalette {
		if e.Code == code {
			return BrickColor{Code: code}, true
		}
	}
	return BrickColor{}, false
}

// Name returns the BrickColor's display name, or "" if its code is not in
// the palette (which should not happen for a BrickColor obtained through
// BrickColorByCode).
func (b BrickColor) Name() string {
	for _, e := range brickColorPalette {
		if e.Code == b.Code {
			return e.Name
		}
	}
	return ""
}

// Color3 returns the BrickColor's RGB triple as a Color3.
func (b BrickColor) Color3() ValueColor3 {
	for _, e := range brickColorPalette {
		if e.Code == b.Code {
			return ValueColor3{R: e.R, G: e.G, B: e.B}
		}
	}
	return ValueColor3{}
}

type ValueBrickColor struct {
	BrickColor BrickColor
}

func (ValueBrickColor) Type() VariantType { return TypeBrickColor }
func (v ValueBrickColor) String() string  { return v.BrickColor.Name() }
func (v ValueBrickColor) Copy() Value     { return v }
