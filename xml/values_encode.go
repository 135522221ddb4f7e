package xml

import (
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/robloxapi/rbxdom"
)

// writeStructuredValue emits the property element for every tag other than
// Ref/SharedString/Attributes, which writeValue (encoder.go) handles
// directly since they need access to the shared referent/shared-string
// tables. This is the encode-direction mirror of decodeXMLValue.
func (xw *xmlWriter) writeStructuredValue(name, tag string, v rbxdom.Value) error {
	return xw.writeContainer(tag, map[string]string{"name": name}, func() error {
		switch tag {
		case tagString:
			return xw.writeText(string(v.(rbxdom.ValueString)))

		case tagBinaryString:
			return xw.writeText(base64.StdEncoding.EncodeToString([]byte(v.(rbxdom.ValueBinaryString))))

		case tagContent:
			return xw.writeChildText("url", string(v.(rbxdom.ValueContent)))

		case tagContentId:
			return xw.writeText(string(v.(rbxdom.ValueContentId)))

		case tagBool:
			return xw.writeText(strconv.FormatBool(bool(v.(rbxdom.ValueBool))))

		case tagInt:
			return xw.writeText(strconv.FormatInt(int64(v.(rbxdom.ValueInt32)), 10))

		case tagInt64:
			return xw.writeText(strconv.FormatInt(int64(v.(rbxdom.ValueInt64)), 10))

		case tagFloat:
			return xw.writeText(formatFloat(float32(v.(rbxdom.ValueFloat32))))

		case tagDouble:
			return xw.writeText(formatDouble(float64(v.(rbxdom.ValueFloat64))))

		case tagToken:
			return xw.writeText(strconv.FormatUint(uint64(v.(rbxdom.ValueEnum)), 10))

		case tagVector2:
			vv := v.(rbxdom.ValueVector2)
			return xw.writeVector2Fields(vv.X, vv.Y)

		case tagVector3:
			vv := v.(rbxdom.ValueVector3)
			return xw.writeVector3Fields(vv.X, vv.Y, vv.Z)

		case tagVector2int16:
			vv := v.(rbxdom.ValueVector2int16)
			if err := xw.writeChildText("X", strconv.Itoa(int(vv.X))); err != nil {
				return err
			}
			return xw.writeChildText("Y", strconv.Itoa(int(vv.Y)))

		case tagVector3int16:
			vv := v.(rbxdom.ValueVector3int16)
			if err := xw.writeChildText("X", strconv.Itoa(int(vv.X))); err != nil {
				return err
			}
			if err := xw.writeChildText("Y", strconv.Itoa(int(vv.Y))); err != nil {
				return err
			}
			return xw.writeChildText("Z", strconv.Itoa(int(vv.Z)))

		case tagCFrame:
			return xw.writeCFrameFields(v.(rbxdom.ValueCFrame))

		case tagOptionalCFrame:
			ocf := v.(rbxdom.ValueOptionalCFrame)
			if !ocf.Valid {
				return nil
			}
			return xw.writeContainer(tagCFrame, nil, func() error {
				return xw.writeCFrameFields(ocf.CFrame)
			})

		case tagColor3:
			vv := v.(rbxdom.ValueColor3)
			if err := xw.writeChildText("R", formatFloat(vv.R)); err != nil {
				return err
			}
			if err := xw.writeChildText("G", formatFloat(vv.G)); err != nil {
				return err
			}
			return xw.writeChildText("B", formatFloat(vv.B))

		case tagColor3uint8:
			vv := v.(rbxdom.ValueColor3uint8)
			packed := uint32(vv.R)<<16 | uint32(vv.G)<<8 | uint32(vv.B)
			return xw.writeText(strconv.FormatUint(uint64(packed), 10))

		case tagUDim:
			vv := v.(rbxdom.ValueUDim)
			return xw.writeUDimFields("", vv)

		case tagUDim2:
			vv := v.(rbxdom.ValueUDim2)
			if err := xw.writeUDimFields("X", vv.X); err != nil {
				return err
			}
			return xw.writeUDimFields("Y", vv.Y)

		case tagRect:
			vv := v.(rbxdom.ValueRect)
			if err := xw.writeContainer("min", nil, func() error { return xw.writeVector2Fields(vv.Min.X, vv.Min.Y) }); err != nil {
				return err
			}
			return xw.writeContainer("max", nil, func() error { return xw.writeVector2Fields(vv.Max.X, vv.Max.Y) })

		case tagRay:
			vv := v.(rbxdom.ValueRay)
			if err := xw.writeContainer("origin", nil, func() error {
				return xw.writeVector3Fields(vv.Origin.X, vv.Origin.Y, vv.Origin.Z)
			}); err != nil {
				return err
			}
			return xw.writeContainer("direction", nil, func() error {
				return xw.writeVector3Fields(vv.Direction.X, vv.Direction.Y, vv.Direction.Z)
			})

		case tagRegion3:
			vv := v.(rbxdom.ValueRegion3)
			if err := xw.writeContainer("min", nil, func() error {
				return xw.writeVector3Fields(vv.Min.X, vv.Min.Y, vv.Min.Z)
			}); err != nil {
				return err
			}
			return xw.writeContainer("max", nil, func() error {
				return xw.writeVector3Fields(vv.Max.X, vv.Max.Y, vv.Max.Z)
			})

		case tagRegion3int16:
			vv := v.(rbxdom.ValueRegion3int16)
			if err := xw.writeContainer("min", nil, func() error {
				if err := xw.writeChildText("X", strconv.Itoa(int(vv.Min.X))); err != nil {
					return err
				}
				if err := xw.writeChildText("Y", strconv.Itoa(int(vv.Min.Y))); err != nil {
					return err
				}
				return xw.writeChildText("Z", strconv.Itoa(int(vv.Min.Z)))
			}); err != nil {
				return err
			}
			return xw.writeContainer("max", nil, func() error {
				if err := xw.writeChildText("X", strconv.Itoa(int(vv.Max.X))); err != nil {
					return err
				}
				if err := xw.writeChildText("Y", strconv.Itoa(int(vv.Max.Y))); err != nil {
					return err
				}
				return xw.writeChildText("Z", strconv.Itoa(int(vv.Max.Z)))
			})

		case tagNumberRange:
			vv := v.(rbxdom.ValueNumberRange)
			return xw.writeText(formatFloat(vv.Min) + " " + formatFloat(vv.Max))

		case tagNumberSequence:
			vv := v.(rbxdom.ValueNumberSequence)
			var b strings.Builder
			for _, kp := range vv {
				b.WriteString(formatFloat(kp.Time))
				b.WriteByte(' ')
				b.WriteString(formatFloat(kp.Value))
				b.WriteByte(' ')
				b.WriteString(formatFloat(kp.Envelope))
				b.WriteByte(' ')
			}
			return xw.writeText(strings.TrimSpace(b.String()))

		case tagColorSequence:
			vv := v.(rbxdom.ValueColorSequence)
			var b strings.Builder
			for _, kp := range vv {
				b.WriteString(formatFloat(kp.Time))
				b.WriteByte(' ')
				b.WriteString(formatFloat(kp.Value.R))
				b.WriteByte(' ')
				b.WriteString(formatFloat(kp.Value.G))
				b.WriteByte(' ')
				b.WriteString(formatFloat(kp.Value.B))
				b.WriteByte(' ')
				b.WriteString(formatFloat(kp.Envelope))
				b.WriteByte(' ')
			}
			return xw.writeText(strings.TrimSpace(b.String()))

		case tagPhysicalProperties:
			vv := v.(rbxdom.ValuePhysicalProperties)
			if err := xw.writeChildText("CustomPhysics", strconv.FormatBool(vv.Custom)); err != nil {
				return err
			}
			if !vv.Custom {
				return nil
			}
			if err := xw.writeChildText("Density", formatFloat(vv.Density)); err != nil {
				return err
			}
			if err := xw.writeChildText("Friction", formatFloat(vv.Friction)); err != nil {
				return err
			}
			if err := xw.writeChildText("Elasticity", formatFloat(vv.Elasticity)); err != nil {
				return err
			}
			if err := xw.writeChildText("FrictionWeight", formatFloat(vv.FrictionWeight)); err != nil {
				return err
			}
			return xw.writeChildText("ElasticityWeight", formatFloat(vv.ElasticityWeight))

		case tagAxes:
			return xw.writeChildText("bits", strconv.Itoa(int(v.(rbxdom.ValueAxes).Bits())))

		case tagFaces:
			return xw.writeChildText("faces", strconv.Itoa(int(v.(rbxdom.ValueFaces).Bits())))

		case tagBrickColor:
			return xw.writeText(strconv.FormatUint(uint64(v.(rbxdom.ValueBrickColor).BrickColor.Code), 10))

		case tagFont:
			vv := v.(rbxdom.ValueFont)
			if err := xw.writeChildText("Family", vv.Family); err != nil {
				return err
			}
			if err := xw.writeChildText("Weight", strconv.Itoa(int(vv.Weight))); err != nil {
				return err
			}
			if err := xw.writeChildText("Style", strconv.Itoa(int(vv.Style))); err != nil {
				return err
			}
			return xw.writeChildText("CachedFaceId", vv.CachedFaceId)

		case tagUniqueId:
			vv := v.(rbxdom.ValueUniqueId)
			return xw.writeText(fmt.Sprintf("%016x:%08x:%08x", vv.Random, vv.Time, vv.Index))

		case tagSecurityCapabilities:
			return xw.writeText(strconv.FormatUint(uint64(v.(rbxdom.ValueSecurityCapabilities)), 10))

		case tagTags:
			vv := v.(rbxdom.ValueTags)
			var b strings.Builder
			for _, s := range vv {
				b.WriteString(s)
				b.WriteByte(0)
			}
			return xw.writeText(base64.StdEncoding.EncodeToString([]byte(b.String())))

		case tagMaterialColors:
			vv := v.(rbxdom.ValueMaterialColors)
			data := make([]byte, 0, len(vv)*4)
			for _, e := range vv {
				data = append(data, e.Material, e.Color.R, e.Color.G, e.Color.B)
			}
			return xw.writeText(base64.StdEncoding.EncodeToString(data))

		case tagSmoothGrid:
			vv := v.(rbxdom.ValueSmoothGrid)
			data := make([]byte, 12, 12+len(vv.Voxels)*2)
			putLE32(data[0:4], uint32(vv.SizeX))
			putLE32(data[4:8], uint32(vv.SizeY))
			putLE32(data[8:12], uint32(vv.SizeZ))
			for _, voxel := range vv.Voxels {
				data = append(data, voxel.Material, voxel.Occupancy)
			}
			return xw.writeText(base64.StdEncoding.EncodeToString(data))

		default:
			return fmt.Errorf("no XML encoder for element <%s>", tag)
		}
	})
}

func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

// writeContainer emits tag as a start/end element pair around body, the
// shape every non-scalar property value and several composite sub-elements
// (min/max, origin/direction) share.
func (xw *xmlWriter) writeContainer(tag string, attrs map[string]string, body func() error) error {
	start := xml.StartElement{Name: xml.Name{Local: tag}}
	for k, v := range attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: k}, Value: v})
	}
	if err := xw.enc.EncodeToken(start); err != nil {
		return err
	}
	if err := body(); err != nil {
		return err
	}
	return xw.enc.EncodeToken(start.End())
}

func (xw *xmlWriter) writeText(text string) error {
	if text == "" {
		return nil
	}
	return xw.enc.EncodeToken(xml.CharData(text))
}

func (xw *xmlWriter) writeChildText(tag, text string) error {
	return xw.writeContainer(tag, nil, func() error { return xw.writeText(text) })
}

func (xw *xmlWriter) writeVector2Fields(x, y float32) error {
	if err := xw.writeChildText("X", formatFloat(x)); err != nil {
		return err
	}
	return xw.writeChildText("Y", formatFloat(y))
}

func (xw *xmlWriter) writeVector3Fields(x, y, z float32) error {
	if err := xw.writeChildText("X", formatFloat(x)); err != nil {
		return err
	}
	if err := xw.writeChildText("Y", formatFloat(y)); err != nil {
		return err
	}
	return xw.writeChildText("Z", formatFloat(z))
}

func (xw *xmlWriter) writeUDimFields(axis string, u rbxdom.ValueUDim) error {
	sTag, oTag := "S", "O"
	if axis != "" {
		sTag, oTag = axis+"S", axis+"O"
	}
	if err := xw.writeChildText(sTag, formatFloat(u.Scale)); err != nil {
		return err
	}
	return xw.writeChildText(oTag, strconv.FormatInt(int64(u.Offset), 10))
}

func (xw *xmlWriter) writeCFrameFields(cf rbxdom.ValueCFrame) error {
	if err := xw.writeVector3Fields(cf.Position.X, cf.Position.Y, cf.Position.Z); err != nil {
		return err
	}
	fields := []string{"R00", "R01", "R02", "R10", "R11", "R12", "R20", "R21", "R22"}
	for i, f := range fields {
		if err := xw.writeChildText(f, formatFloat(cf.Rotation[i])); err != nil {
			return err
		}
	}
	return nil
}
