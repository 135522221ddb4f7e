package binary

import "github.com/robloxapi/rbxdom"

// valueTypeTag is the PROP chunk's single-byte value_type_tag (spec.md
// §4.D.1). The low range (0x01-0x1C) is inherited unchanged from the
// teacher's rbxl/values.go typeID table, for binary compatibility with
// existing files; ids above 0x1C are new, assigned in the order this
// module's value matrix adds them beyond what the teacher's rbxfile
// supported.
type valueTypeTag byte

const (
	tagInvalid             valueTypeTag = 0x00
	tagString              valueTypeTag = 0x01
	tagBool                valueTypeTag = 0x02
	tagInt32               valueTypeTag = 0x03
	tagFloat32             valueTypeTag = 0x04
	tagFloat64             valueTypeTag = 0x05
	tagUDim                valueTypeTag = 0x06
	tagUDim2               valueTypeTag = 0x07
	tagRay                 valueTypeTag = 0x08
	tagFaces               valueTypeTag = 0x09
	tagAxes                valueTypeTag = 0x0A
	tagBrickColor          valueTypeTag = 0x0B
	tagColor3              valueTypeTag = 0x0C
	tagVector2             valueTypeTag = 0x0D
	tagVector3             valueTypeTag = 0x0E
	tagVector2int16        valueTypeTag = 0x0F
	tagCFrame              valueTypeTag = 0x10
	tagOptionalCFrame      valueTypeTag = 0x11
	tagEnum                valueTypeTag = 0x12
	tagRef                 valueTypeTag = 0x13
	tagVector3int16        valueTypeTag = 0x14
	tagNumberSequence      valueTypeTag = 0x15
	tagColorSequence       valueTypeTag = 0x16
	tagNumberRange         valueTypeTag = 0x17
	tagRect                valueTypeTag = 0x18
	tagPhysicalProperties  valueTypeTag = 0x19
	tagColor3uint8         valueTypeTag = 0x1A
	tagInt64               valueTypeTag = 0x1B
	tagSharedString        valueTypeTag = 0x1C
	tagBinaryString        valueTypeTag = 0x1D
	tagContent             valueTypeTag = 0x1E
	tagContentId           valueTypeTag = 0x1F
	tagRegion3             valueTypeTag = 0x20
	tagRegion3int16        valueTypeTag = 0x21
	tagFont                valueTypeTag = 0x22
	tagTags                valueTypeTag = 0x23
	tagAttributes          valueTypeTag = 0x24
	tagUniqueId            valueTypeTag = 0x25
	tagSecurityCapabilities valueTypeTag = 0x26
	tagMaterialColors      valueTypeTag = 0x27
	tagSmoothGrid          valueTypeTag = 0x28
)

var tagToVariant = map[valueTypeTag]rbxdom.VariantType{
	tagString:               rbxdom.TypeString,
	tagBool:                 rbxdom.TypeBool,
	tagInt32:                rbxdom.TypeInt32,
	tagFloat32:               rbxdom.TypeFloat32,
	tagFloat64:              rbxdom.TypeFloat64,
	tagUDim:                 rbxdom.TypeUDim,
	tagUDim2:                rbxdom.TypeUDim2,
	tagRay:                  rbxdom.TypeRay,
	tagFaces:                rbxdom.TypeFaces,
	tagAxes:                 rbxdom.TypeAxes,
	tagBrickColor:           rbxdom.TypeBrickColor,
	tagColor3:               rbxdom.TypeColor3,
	tagVector2:              rbxdom.TypeVector2,
	tagVector3:              rbxdom.TypeVector3,
	tagVector2int16:         rbxdom.TypeVector2int16,
	tagCFrame:               rbxdom.TypeCFrame,
	tagOptionalCFrame:       rbxdom.TypeOptionalCFrame,
	tagEnum:                 rbxdom.TypeEnum,
	tagRef:                  rbxdom.TypeRef,
	tagVector3int16:         rbxdom.TypeVector3int16,
	tagNumberSequence:       rbxdom.TypeNumberSequence,
	tagColorSequence:        rbxdom.TypeColorSequence,
	tagNumberRange:          rbxdom.TypeNumberRange,
	tagRect:                 rbxdom.TypeRect,
	tagPhysicalProperties:   rbxdom.TypePhysicalProperties,
	tagColor3uint8:          rbxdom.TypeColor3uint8,
	tagInt64:                rbxdom.TypeInt64,
	tagSharedString:         rbxdom.TypeSharedString,
	tagBinaryString:         rbxdom.TypeBinaryString,
	tagContent:              rbxdom.TypeContent,
	tagContentId:            rbxdom.TypeContentId,
	tagRegion3:              rbxdom.TypeRegion3,
	tagRegion3int16:         rbxdom.TypeRegion3int16,
	tagFont:                 rbxdom.TypeFont,
	tagTags:                 rbxdom.TypeTags,
	tagAttributes:           rbxdom.TypeAttributes,
	tagUniqueId:             rbxdom.TypeUniqueId,
	tagSecurityCapabilities: rbxdom.TypeSecurityCapabilities,
	tagMaterialColors:       rbxdom.TypeMaterialColors,
	tagSmoothGrid:           rbxdom.TypeSmoothGrid,
}

var variantToTag map[rbxdom.VariantType]valueTypeTag

func init() {
	variantToTag = make(map[rbxdom.VariantType]valueTypeTag, len(tagToVariant))
	for tag, v := range tagToVariant {
		variantToTag[v] = tag
	}
}

func tagForVariant(t rbxdom.VariantType) (valueTypeTag, bool) {
	tag, ok := variantToTag[t]
	return tag, ok
}

func variantForTag(tag valueTypeTag) (rbxdom.VariantType, bool) {
	v, ok := tagToVariant[tag]
	return v, ok
}
