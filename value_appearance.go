package rbxdom

import (
	"errors"
	"strconv"
)

type ValueColor3 struct{ R, G, B float32 }

func (ValueColor3) Type() VariantType { return TypeColor3 }
func (v ValueColor3) String() string  { return joinstr(formatF32(v.R), formatF32(v.G), formatF32(v.B)) }
func (v ValueColor3) Copy() Value     { return v }

// ToColor3uint8 converts a float Color3 to its clamped byte form.
func (v ValueColor3) ToColor3uint8() ValueColor3uint8 {
	return ValueColor3uint8{
		R: clampToByte(v.R),
		G: clampToByte(v.G),
		B: clampToByte(v.B),
	}
}

func clampToByte(f float32) byte {
	v := f * 255
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return byte(v + 0.5)
	}
}

type ValueColor3uint8 struct{ R, G, B byte }

func (ValueColor3uint8) Type() VariantType { return TypeColor3uint8 }
func (v ValueColor3uint8) String() string {
	return joinstr(itoa(int(v.R)), itoa(int(v.G)), itoa(int(v.B)))
}
func (v ValueColor3uint8) Copy() Value { return v }

// ToColor3 converts a byte Color3 to its float form.
func (v ValueColor3uint8) ToColor3() ValueColor3 {
	return ValueColor3{R: float32(v.R) / 255, G: float32(v.G) / 255, B: float32(v.B) / 255}
}

func itoa(i int) string { return strconv.Itoa(i) }

type ValueNumberRange struct{ Min, Max float32 }

func (ValueNumberRange) Type() VariantType { return TypeNumberRange }
func (v ValueNumberRange) String() string  { return joinstr(formatF32(v.Min), formatF32(v.Max)) }
func (v ValueNumberRange) Copy() Value     { return v }

// NumberSequenceKeypoint is one keypoint of a ValueNumberSequence.
type NumberSequenceKeypoint struct {
	Time     float32
	Value    float32
	Envelope float32
}

// ValueNumberSequence is a non-decreasing-time sequence of keypoints. A
// valid sequence has at least two keypoints, the first at time 0 and the
// last at time 1.
type ValueNumberSequence []NumberSequenceKeypoint

var ErrSequenceTooShort = errors.New("rbxdom: sequence requires at least two keypoints")
var ErrSequenceUnordered = errors.New("rbxdom: sequence keypoint times must be non-decreasing and within [0, 1]")

// NewNumberSequence validates keypoints per spec.md's §4.A sequence
// contract and returns the sequence if valid.
func NewNumberSequence(keypoints []NumberSequenceKeypoint) (ValueNumberSequence, error) {
	if err := validateSequenceTimes(len(keypoints), func(i int) float32 { return keypoints[i].Time }); err != nil {
		return nil, err
	}
	return ValueNumberSequence(keypoints), nil
}

func validateSequenceTimes(n int, timeAt func(int) float32) error {
	if n < 2 {
		return ErrSequenceTooShort
	}
	last := float32(-1)
	for i := 0; i < n; i++ {
		t := timeAt(i)
		if t < 0 || t > 1 || t < last {
			return ErrSequenceUnordered
		}
		last = t
	}
	return nil
}

func (ValueNumberSequence) Type() VariantType { return TypeNumberSequence }
func (v ValueNumberSequence) String() string {
	b := make([]string, 0, len(v))
	for _, kp := range v {
		b = append(b, joinstr(formatF32(kp.Time), formatF32(kp.Value), formatF32(kp.Envelope)))
	}
	return joinstr(b...)
}
func (v ValueNumberSequence) Copy() Value {
	c := make(ValueNumberSequence, len(v))
	copy(c, v)
	return c
}

// ColorSequenceKeypoint is one keypoint of a ValueColorSequence.
type ColorSequenceKeypoint struct {
	Time     float32
	Value    ValueColor3
	Envelope float32
}

type ValueColorSequence []ColorSequenceKeypoint

// NewColorSequence validates keypoints the same way NewNumberSequence does.
func NewColorSequence(keypoints []ColorSequenceKeypoint) (ValueColorSequence, error) {
	if err := validateSequenceTimes(len(keypoints), func(i int) float32 { return keypoints[i].Time }); err != nil {
		return nil, err
	}
	return ValueColorSequence(keypoints), nil
}

func (ValueColorSequence) Type() VariantType { return TypeColorSequence }
func (v ValueColorSequence) String() string {
	b := make([]string, 0, len(v))
	for _, kp := range v {
		b = append(b, joinstr(formatF32(kp.Time), kp.Value.String(), formatF32(kp.Envelope)))
	}
	return joinstr(b...)
}
func (v ValueColorSequence) Copy() Value {
	c := make(ValueColorSequence, len(v))
	copy(c, v)
	return c
}

// FontWeight mirrors Roblox's Font weight enum.
type FontWeight uint16

const (
	FontWeightThin       FontWeight = 100
	FontWeightExtraLight FontWeight = 200
	FontWeightLight      FontWeight = 300
	FontWeightRegular    FontWeight = 400
	FontWeightMedium     FontWeight = 500
	FontWeightSemiBold   FontWeight = 600
	FontWeightBold       FontWeight = 700
	FontWeightExtraBold  FontWeight = 800
	FontWeightHeavy      FontWeight = 900
)

// FontStyle mirrors Roblox's Font style enum.
type FontStyle byte

const (
	FontStyleNormal FontStyle = iota
	FontStyleItalic
)

// ValueFont is a font family URI plus weight/style enum and an optional
// cached face URI.
type ValueFont struct {
	Family   string
	Weight   FontWeight
	Style    FontStyle
	CachedFaceId string
}

func (ValueFont) Type() VariantType { return TypeFont }
func (v ValueFont) String() string  { return v.Family }
func (v ValueFont) Copy() Value     { return v }
