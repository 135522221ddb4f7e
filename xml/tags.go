package xml

import "github.com/robloxapi/rbxdom"

// These constants are the XML element names that carry one property's value
// (spec.md §4.D.2's element list): <bool name="…">, <Vector3 name="…">,
// and so on.
const (
	tagString                  = "string"
	tagProtectedString         = "ProtectedString"
	tagBinaryString            = "BinaryString"
	tagBool                    = "bool"
	tagInt                     = "int"
	tagInt64                   = "int64"
	tagFloat                   = "float"
	tagDouble                  = "double"
	tagToken                   = "token"
	tagContent                 = "Content"
	tagContentId               = "ContentId"
	tagVector2                 = "Vector2"
	tagVector3                 = "Vector3"
	tagVector2int16            = "Vector2int16"
	tagVector3int16            = "Vector3int16"
	tagCFrame                  = "CoordinateFrame"
	tagOptionalCFrame          = "OptionalCoordinateFrame"
	tagColor3                  = "Color3"
	tagColor3uint8             = "Color3uint8"
	tagUDim                    = "UDim"
	tagUDim2                   = "UDim2"
	tagRect                    = "Rect2D"
	tagRay                     = "Ray"
	tagRegion3                 = "Region3"
	tagRegion3int16            = "Region3int16"
	tagNumberRange             = "NumberRange"
	tagNumberSequence          = "NumberSequence"
	tagColorSequence           = "ColorSequence"
	tagPhysicalProperties      = "PhysicalProperties"
	tagAxes                    = "Axes"
	tagFaces                   = "Faces"
	tagBrickColor              = "BrickColor"
	tagFont                    = "Font"
	tagSharedString            = "SharedString"
	tagUniqueId                = "UniqueId"
	tagRef                     = "Ref"
	tagSecurityCapabilities    = "SecurityCapabilities"
	tagTags                    = "Tags"
	tagAttributes              = "Attributes"
	tagEnum                    = tagToken
	tagMaterialColors          = "MaterialColors"
	tagSmoothGrid              = "SmoothGrid"
)

var xmlTagForVariant = map[rbxdom.VariantType]string{
	rbxdom.TypeString:                tagString,
	rbxdom.TypeBinaryString:          tagBinaryString,
	rbxdom.TypeBool:                  tagBool,
	rbxdom.TypeInt32:                 tagInt,
	rbxdom.TypeInt64:                 tagInt64,
	rbxdom.TypeFloat32:               tagFloat,
	rbxdom.TypeFloat64:               tagDouble,
	rbxdom.TypeEnum:                  tagToken,
	rbxdom.TypeContent:               tagContent,
	rbxdom.TypeContentId:             tagContentId,
	rbxdom.TypeVector2:               tagVector2,
	rbxdom.TypeVector3:               tagVector3,
	rbxdom.TypeVector2int16:          tagVector2int16,
	rbxdom.TypeVector3int16:          tagVector3int16,
	rbxdom.TypeCFrame:                tagCFrame,
	rbxdom.TypeOptionalCFrame:        tagOptionalCFrame,
	rbxdom.TypeColor3:                tagColor3,
	rbxdom.TypeColor3uint8:           tagColor3uint8,
	rbxdom.TypeUDim:                  tagUDim,
	rbxdom.TypeUDim2:                 tagUDim2,
	rbxdom.TypeRect:                  tagRect,
	rbxdom.TypeRay:                   tagRay,
	rbxdom.TypeRegion3:               tagRegion3,
	rbxdom.TypeRegion3int16:          tagRegion3int16,
	rbxdom.TypeNumberRange:           tagNumberRange,
	rbxdom.TypeNumberSequence:        tagNumberSequence,
	rbxdom.TypeColorSequence:         tagColorSequence,
	rbxdom.TypePhysicalProperties:    tagPhysicalProperties,
	rbxdom.TypeAxes:                  tagAxes,
	rbxdom.TypeFaces:                 tagFaces,
	rbxdom.TypeBrickColor:            tagBrickColor,
	rbxdom.TypeFont:                  tagFont,
	rbxdom.TypeSharedString:          tagSharedString,
	rbxdom.TypeUniqueId:              tagUniqueId,
	rbxdom.TypeRef:                   tagRef,
	rbxdom.TypeSecurityCapabilities:  tagSecurityCapabilities,
	rbxdom.TypeTags:                  tagTags,
	rbxdom.TypeAttributes:            tagAttributes,
	rbxdom.TypeMaterialColors:        tagMaterialColors,
	rbxdom.TypeSmoothGrid:            tagSmoothGrid,
}

var variantForXMLTag map[string]rbxdom.VariantType

func init() {
	variantForXMLTag = make(map[string]rbxdom.VariantType, len(xmlTagForVariant)+1)
	for t, tag := range xmlTagForVariant {
		variantForXMLTag[tag] = t
	}
	// ProtectedString is a legacy alias written by older Studio versions
	// for the same TypeString payload; accepted on read, never written.
	variantForXMLTag[tagProtectedString] = rbxdom.TypeString
}
