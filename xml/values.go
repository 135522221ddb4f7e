package xml

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/robloxapi/rbxdom"
	"github.com/robloxapi/rbxdom/binary"
)

// valueKind distinguishes a fully-resolved decoded value from one that
// still needs a second pass over the whole document: Ref payloads are
// referent strings that may name an <Item> appearing later in the file,
// and SharedString payloads are keys into the trailing <SharedStrings>
// table, also potentially defined after their first use.
type valueKind int

const (
	kindDirect valueKind = iota
	kindRef
	kindSharedString
)

type decodedValue struct {
	Value rbxdom.Value
	Kind  valueKind
	Key   string
}

func parseFloat(s string) (float32, error) {
	s = strings.TrimSpace(s)
	switch strings.ToUpper(s) {
	case "INF":
		return float32(math.Inf(1)), nil
	case "-INF":
		return float32(math.Inf(-1)), nil
	case "NAN":
		return float32(math.NaN()), nil
	}
	f, err := strconv.ParseFloat(s, 32)
	return float32(f), err
}

func parseDouble(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToUpper(s) {
	case "INF":
		return math.Inf(1), nil
	case "-INF":
		return math.Inf(-1), nil
	case "NAN":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

func formatFloat(f float32) string {
	switch {
	case math.IsInf(float64(f), 1):
		return "INF"
	case math.IsInf(float64(f), -1):
		return "-INF"
	case math.IsNaN(float64(f)):
		return "NAN"
	}
	return strconv.FormatFloat(float64(f), 'g', -1, 32)
}

func formatDouble(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	case math.IsNaN(f):
		return "NAN"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func vector2From(n *node) (rbxdom.ValueVector2, error) {
	x, err := parseFloat(n.childText("X"))
	if err != nil {
		return rbxdom.ValueVector2{}, err
	}
	y, err := parseFloat(n.childText("Y"))
	if err != nil {
		return rbxdom.ValueVector2{}, err
	}
	return rbxdom.ValueVector2{X: x, Y: y}, nil
}

func vector3From(n *node) (rbxdom.ValueVector3, error) {
	x, err := parseFloat(n.childText("X"))
	if err != nil {
		return rbxdom.ValueVector3{}, err
	}
	y, err := parseFloat(n.childText("Y"))
	if err != nil {
		return rbxdom.ValueVector3{}, err
	}
	z, err := parseFloat(n.childText("Z"))
	if err != nil {
		return rbxdom.ValueVector3{}, err
	}
	return rbxdom.ValueVector3{X: x, Y: y, Z: z}, nil
}

// decodeXMLValue converts the parsed element n (whose tag names the
// property's type per the tags.go table) into a value, deferring Ref and
// SharedString resolution to the caller's second pass.
func decodeXMLValue(tag string, n *node) (decodedValue, error) {
	switch tag {
	case tagString, tagProtectedString:
		return decodedValue{Value: rbxdom.ValueString(n.Text)}, nil

	case tagBinaryString:
		data, err := base64.StdEncoding.DecodeString(n.Text)
		if err != nil {
			return decodedValue{}, fmt.Errorf("BinaryString: %w", err)
		}
		return decodedValue{Value: rbxdom.ValueBinaryString(data)}, nil

	case tagContent, tagContentId:
		text := n.Text
		if u := n.child("url"); u != nil {
			text = u.Text
		}
		if tag == tagContentId {
			return decodedValue{Value: rbxdom.ValueContentId(text)}, nil
		}
		return decodedValue{Value: rbxdom.ValueContent(text)}, nil

	case tagBool:
		return decodedValue{Value: rbxdom.ValueBool(strings.TrimSpace(n.Text) == "true")}, nil

	case tagInt:
		i, err := strconv.ParseInt(strings.TrimSpace(n.Text), 10, 32)
		if err != nil {
			return decodedValue{}, err
		}
		return decodedValue{Value: rbxdom.ValueInt32(i)}, nil

	case tagInt64:
		i, err := strconv.ParseInt(strings.TrimSpace(n.Text), 10, 64)
		if err != nil {
			return decodedValue{}, err
		}
		return decodedValue{Value: rbxdom.ValueInt64(i)}, nil

	case tagFloat:
		f, err := parseFloat(n.Text)
		if err != nil {
			return decodedValue{}, err
		}
		return decodedValue{Value: rbxdom.ValueFloat32(f)}, nil

	case tagDouble:
		f, err := parseDouble(n.Text)
		if err != nil {
			return decodedValue{}, err
		}
		return decodedValue{Value: rbxdom.ValueFloat64(f)}, nil

	case tagToken:
		i, err := strconv.ParseUint(strings.TrimSpace(n.Text), 10, 32)
		if err != nil {
			return decodedValue{}, err
		}
		return decodedValue{Value: rbxdom.ValueEnum(i)}, nil

	case tagVector2:
		v, err := vector2From(n)
		if err != nil {
			return decodedValue{}, err
		}
		return decodedValue{Value: v}, nil

	case tagVector3:
		v, err := vector3From(n)
		if err != nil {
			return decodedValue{}, err
		}
		return decodedValue{Value: v}, nil

	case tagVector2int16:
		x, _ := strconv.ParseInt(n.childText("X"), 10, 16)
		y, _ := strconv.ParseInt(n.childText("Y"), 10, 16)
		return decodedValue{Value: rbxdom.ValueVector2int16{X: int16(x), Y: int16(y)}}, nil

	case tagVector3int16:
		x, _ := strconv.ParseInt(n.childText("X"), 10, 16)
		y, _ := strconv.ParseInt(n.childText("Y"), 10, 16)
		z, _ := strconv.ParseInt(n.childText("Z"), 10, 16)
		return decodedValue{Value: rbxdom.ValueVector3int16{X: int16(x), Y: int16(y), Z: int16(z)}}, nil

	case tagCFrame:
		cf, err := cframeFrom(n)
		if err != nil {
			return decodedValue{}, err
		}
		return decodedValue{Value: cf}, nil

	case tagOptionalCFrame:
		inner := n.child(tagCFrame)
		if inner == nil {
			return decodedValue{Value: rbxdom.ValueOptionalCFrame{}}, nil
		}
		cf, err := cframeFrom(inner)
		if err != nil {
			return decodedValue{}, err
		}
		return decodedValue{Value: rbxdom.ValueOptionalCFrame{CFrame: cf, Valid: true}}, nil

	case tagColor3:
		r, err := parseFloat(n.childText("R"))
		if err != nil {
			return decodedValue{}, err
		}
		g, err := parseFloat(n.childText("G"))
		if err != nil {
			return decodedValue{}, err
		}
		b, err := parseFloat(n.childText("B"))
		if err != nil {
			return decodedValue{}, err
		}
		return decodedValue{Value: rbxdom.ValueColor3{R: r, G: g, B: b}}, nil

	case tagColor3uint8:
		u, err := strconv.ParseUint(strings.TrimSpace(n.Text), 10, 32)
		if err != nil {
			return decodedValue{}, err
		}
		return decodedValue{Value: rbxdom.ValueColor3uint8{
			R: byte(u >> 16), G: byte(u >> 8), B: byte(u),
		}}, nil

	case tagUDim:
		u, err := udimFrom(n)
		if err != nil {
			return decodedValue{}, err
		}
		return decodedValue{Value: u}, nil

	case tagUDim2:
		xu, err := udimComponentFrom(n, "X")
		if err != nil {
			return decodedValue{}, err
		}
		yu, err := udimComponentFrom(n, "Y")
		if err != nil {
			return decodedValue{}, err
		}
		return decodedValue{Value: rbxdom.ValueUDim2{X: xu, Y: yu}}, nil

	case tagRect:
		minN := n.child("min")
		maxN := n.child("max")
		if minN == nil || maxN == nil {
			return decodedValue{}, fmt.Errorf("Rect2D: missing min/max")
		}
		minV, err := vector2From(minN)
		if err != nil {
			return decodedValue{}, err
		}
		maxV, err := vector2From(maxN)
		if err != nil {
			return decodedValue{}, err
		}
		return decodedValue{Value: rbxdom.ValueRect{Min: minV, Max: maxV}}, nil

	case tagRay:
		originN := n.child("origin")
		dirN := n.child("direction")
		origin, err := vector3From(originN)
		if err != nil {
			return decodedValue{}, err
		}
		dir, err := vector3From(dirN)
		if err != nil {
			return decodedValue{}, err
		}
		return decodedValue{Value: rbxdom.ValueRay{Origin: origin, Direction: dir}}, nil

	case tagRegion3:
		minV, err := vector3From(n.child("min"))
		if err != nil {
			return decodedValue{}, err
		}
		maxV, err := vector3From(n.child("max"))
		if err != nil {
			return decodedValue{}, err
		}
		return decodedValue{Value: rbxdom.ValueRegion3{Min: minV, Max: maxV}}, nil

	case tagRegion3int16:
		minD, err := decodeXMLValue(tagVector3int16, n.child("min"))
		if err != nil {
			return decodedValue{}, err
		}
		maxD, err := decodeXMLValue(tagVector3int16, n.child("max"))
		if err != nil {
			return decodedValue{}, err
		}
		return decodedValue{Value: rbxdom.ValueRegion3int16{
			Min: minD.Value.(rbxdom.ValueVector3int16),
			Max: maxD.Value.(rbxdom.ValueVector3int16),
		}}, nil

	case tagNumberRange:
		parts := strings.Fields(n.Text)
		if len(parts) != 2 {
			return decodedValue{}, fmt.Errorf("NumberRange: expected 2 fields, got %d", len(parts))
		}
		min, err := parseFloat(parts[0])
		if err != nil {
			return decodedValue{}, err
		}
		max, err := parseFloat(parts[1])
		if err != nil {
			return decodedValue{}, err
		}
		return decodedValue{Value: rbxdom.ValueNumberRange{Min: min, Max: max}}, nil

	case tagNumberSequence:
		seq := make(rbxdom.ValueNumberSequence, 0, len(n.Children))
		for _, kpNode := range n.Children {
			if kpNode.Tag != "NumberSequenceKeypoint" {
				continue
			}
			fields := strings.Fields(kpNode.Text)
			if len(fields) != 3 {
				return decodedValue{}, fmt.Errorf("NumberSequenceKeypoint: expected 3 fields, got %d", len(fields))
			}
			t, _ := parseFloat(fields[0])
			v, _ := parseFloat(fields[1])
			e, _ := parseFloat(fields[2])
			seq = append(seq, rbxdom.NumberSequenceKeypoint{Time: t, Value: v, Envelope: e})
		}
		return decodedValue{Value: seq}, nil

	case tagColorSequence:
		seq := make(rbxdom.ValueColorSequence, 0, len(n.Children))
		for _, kpNode := range n.Children {
			if kpNode.Tag != "ColorSequenceKeypoint" {
				continue
			}
			fields := strings.Fields(kpNode.Text)
			if len(fields) != 5 {
				return decodedValue{}, fmt.Errorf("ColorSequenceKeypoint: expected 5 fields, got %d", len(fields))
			}
			t, _ := parseFloat(fields[0])
			r, _ := parseFloat(fields[1])
			g, _ := parseFloat(fields[2])
			b, _ := parseFloat(fields[3])
			e, _ := parseFloat(fields[4])
			seq = append(seq, rbxdom.ColorSequenceKeypoint{
				Time: t, Value: rbxdom.ValueColor3{R: r, G: g, B: b}, Envelope: e,
			})
		}
		return decodedValue{Value: seq}, nil

	case tagPhysicalProperties:
		customN := n.child("CustomPhysics")
		if customN == nil || strings.TrimSpace(customN.Text) != "true" {
			return decodedValue{Value: rbxdom.ValuePhysicalProperties{}}, nil
		}
		density, _ := parseFloat(n.childText("Density"))
		friction, _ := parseFloat(n.childText("Friction"))
		elasticity, _ := parseFloat(n.childText("Elasticity"))
		frictionWeight, _ := parseFloat(n.childText("FrictionWeight"))
		elasticityWeight, _ := parseFloat(n.childText("ElasticityWeight"))
		return decodedValue{Value: rbxdom.ValuePhysicalProperties{
			Custom: true, Density: density, Friction: friction, Elasticity: elasticity,
			FrictionWeight: frictionWeight, ElasticityWeight: elasticityWeight,
		}}, nil

	case tagAxes:
		bits, err := strconv.ParseUint(strings.TrimSpace(n.childText("bits")), 10, 8)
		if err != nil {
			return decodedValue{}, err
		}
		return decodedValue{Value: rbxdom.AxesFromBits(byte(bits))}, nil

	case tagFaces:
		bits, err := strconv.ParseUint(strings.TrimSpace(n.childText("faces")), 10, 8)
		if err != nil {
			return decodedValue{}, err
		}
		return decodedValue{Value: rbxdom.FacesFromBits(byte(bits))}, nil

	case tagBrickColor:
		code, err := strconv.ParseUint(strings.TrimSpace(n.Text), 10, 32)
		if err != nil {
			return decodedValue{}, err
		}
		bc, _ := rbxdom.BrickColorByCode(uint32(code))
		return decodedValue{Value: rbxdom.ValueBrickColor{BrickColor: bc}}, nil

	case tagFont:
		weight, _ := strconv.ParseUint(n.childText("Weight"), 10, 16)
		style, _ := strconv.ParseUint(n.childText("Style"), 10, 8)
		return decodedValue{Value: rbxdom.ValueFont{
			Family:       n.childText("Family"),
			Weight:       rbxdom.FontWeight(weight),
			Style:        rbxdom.FontStyle(style),
			CachedFaceId: n.childText("CachedFaceId"),
		}}, nil

	case tagUniqueId:
		parts := strings.Split(strings.TrimSpace(n.Text), ":")
		if len(parts) != 3 {
			return decodedValue{}, fmt.Errorf("UniqueId: expected 3 colon-separated fields")
		}
		random, err := strconv.ParseUint(parts[0], 16, 64)
		if err != nil {
			return decodedValue{}, err
		}
		t, err := strconv.ParseUint(parts[1], 16, 32)
		if err != nil {
			return decodedValue{}, err
		}
		idx, err := strconv.ParseUint(parts[2], 16, 32)
		if err != nil {
			return decodedValue{}, err
		}
		return decodedValue{Value: rbxdom.ValueUniqueId{Random: random, Time: uint32(t), Index: uint32(idx)}}, nil

	case tagSecurityCapabilities:
		u, err := strconv.ParseUint(strings.TrimSpace(n.Text), 10, 64)
		if err != nil {
			return decodedValue{}, err
		}
		return decodedValue{Value: rbxdom.ValueSecurityCapabilities(u)}, nil

	case tagTags:
		data, err := base64.StdEncoding.DecodeString(n.Text)
		if err != nil {
			return decodedValue{}, fmt.Errorf("Tags: %w", err)
		}
		var tags rbxdom.ValueTags
		for _, s := range strings.Split(string(data), "\x00") {
			if s != "" {
				tags = append(tags, s)
			}
		}
		return decodedValue{Value: tags}, nil

	case tagAttributes:
		data, err := base64.StdEncoding.DecodeString(n.Text)
		if err != nil {
			return decodedValue{}, fmt.Errorf("Attributes: %w", err)
		}
		attrs, err := binary.DecodeAttributesBlob(data)
		if err != nil {
			return decodedValue{}, fmt.Errorf("Attributes: %w", err)
		}
		return decodedValue{Value: attrs}, nil

	case tagMaterialColors:
		data, err := base64.StdEncoding.DecodeString(n.Text)
		if err != nil {
			return decodedValue{}, fmt.Errorf("MaterialColors: %w", err)
		}
		entries := make(rbxdom.ValueMaterialColors, 0, len(data)/4)
		for i := 0; i+4 <= len(data); i += 4 {
			entries = append(entries, rbxdom.MaterialColorEntry{
				Material: data[i],
				Color:    rbxdom.ValueColor3uint8{R: data[i+1], G: data[i+2], B: data[i+3]},
			})
		}
		return decodedValue{Value: entries}, nil

	case tagSmoothGrid:
		data, err := base64.StdEncoding.DecodeString(n.Text)
		if err != nil {
			return decodedValue{}, fmt.Errorf("SmoothGrid: %w", err)
		}
		if len(data) < 12 {
			return decodedValue{}, fmt.Errorf("SmoothGrid: truncated header")
		}
		sizeX := int(data[0]) | int(data[1])<<8 | int(data[2])<<16 | int(data[3])<<24
		sizeY := int(data[4]) | int(data[5])<<8 | int(data[6])<<16 | int(data[7])<<24
		sizeZ := int(data[8]) | int(data[9])<<8 | int(data[10])<<16 | int(data[11])<<24
		voxels := make([]rbxdom.SmoothGridVoxel, 0, (len(data)-12)/2)
		for i := 12; i+2 <= len(data); i += 2 {
			voxels = append(voxels, rbxdom.SmoothGridVoxel{Material: data[i], Occupancy: data[i+1]})
		}
		return decodedValue{Value: rbxdom.ValueSmoothGrid{SizeX: sizeX, SizeY: sizeY, SizeZ: sizeZ, Voxels: voxels}}, nil

	case tagSharedString:
		return decodedValue{Kind: kindSharedString, Key: strings.TrimSpace(n.Text)}, nil

	case tagRef:
		return decodedValue{Kind: kindRef, Key: strings.TrimSpace(n.Text)}, nil

	default:
		return decodedValue{}, fmt.Errorf("unrecognized property element <%s>", tag)
	}
}

func udimFrom(n *node) (rbxdom.ValueUDim, error) {
	scale, err := parseFloat(n.childText("S"))
	if err != nil {
		return rbxdom.ValueUDim{}, err
	}
	offset, err := strconv.ParseInt(n.childText("O"), 10, 32)
	if err != nil {
		return rbxdom.ValueUDim{}, err
	}
	return rbxdom.ValueUDim{Scale: scale, Offset: int32(offset)}, nil
}

func udimComponentFrom(n *node, axis string) (rbxdom.ValueUDim, error) {
	scale, err := parseFloat(n.childText(axis + "S"))
	if err != nil {
		return rbxdom.ValueUDim{}, err
	}
	offset, err := strconv.ParseInt(n.childText(axis+"O"), 10, 32)
	if err != nil {
		return rbxdom.ValueUDim{}, err
	}
	return rbxdom.ValueUDim{Scale: scale, Offset: int32(offset)}, nil
}

func cframeFrom(n *node) (rbxdom.ValueCFrame, error) {
	pos, err := vector3From(n)
	if err != nil {
		return rbxdom.ValueCFrame{}, err
	}
	var m rbxdom.Matrix3
	fields := []string{"R00", "R01", "R02", "R10", "R11", "R12", "R20", "R21", "R22"}
	for i, f := range fields {
		v, err := parseFloat(n.childText(f))
		if err != nil {
			return rbxdom.ValueCFrame{}, fmt.Errorf("CoordinateFrame %s: %w", f, err)
		}
		m[i] = v
	}
	return rbxdom.ValueCFrame{Position: pos, Rotation: m}, nil
}
