// Package declare builds rbxdom DOMs in a declarative style, for use in
// tests and fixtures without hand-writing Insert/Set calls.
//
// Most items have a Declare method that returns the DOM, instance, or
// value the declaration describes.
//
// The easiest way to use this package is to import it directly into the
// current package:
//
//	import . "github.com/robloxapi/rbxdom/declare"
//
// This allows the package's identifiers to be used directly without a
// qualifier.
package declare

import (
	"github.com/robloxapi/rbxdom"
)

// Root declares the top-level instances of a rbxdom.DOM. It is a list of
// Instance declarations, each becoming a direct child of the DOM's
// synthetic root (rbxdom.DOM.Root).
type Root []instance

func build(dom *rbxdom.DOM, parent rbxdom.Ref, dinst instance, refs map[string]rbxdom.Ref, props map[rbxdom.Ref][]property) rbxdom.Ref {
	ref, err := dom.Insert(parent, rbxdom.InstanceBuilder{ClassName: dinst.className})
	if err != nil {
		panic(err)
	}

	if dinst.reference != "" {
		refs[dinst.reference] = ref
	}
	props[ref] = dinst.properties

	for _, dchild := range dinst.children {
		build(dom, ref, dchild, refs, props)
	}

	return ref
}

// applyProperties sets every declared property now that refs names every
// Ref declaration in the tree, resolving Reference values that point
// forward to an instance declared later in the same Root/Instance.
func applyProperties(dom *rbxdom.DOM, refs map[string]rbxdom.Ref, props map[rbxdom.Ref][]property) {
	for ref, properties := range props {
		inst := dom.Get(ref)
		for _, prop := range properties {
			inst.Set(prop.name, prop.typ.declareValue(refs, prop.value))
		}
	}
}

// Declare evaluates the Root declaration: it builds a DOM (every member
// becoming a direct child of the synthetic root), generates instances and
// property values, and resolves references.
func (droot Root) Declare() *rbxdom.DOM {
	dom := rbxdom.NewDOM(rbxdom.InstanceBuilder{ClassName: "Folder"})

	refs := map[string]rbxdom.Ref{}
	props := map[rbxdom.Ref][]property{}

	for _, dinst := range droot {
		build(dom, dom.Root(), dinst, refs, props)
	}

	applyProperties(dom, refs, props)

	return dom
}

type element interface {
	element()
}

type instance struct {
	className  string
	reference  string
	properties []property
	children   []instance
}

func (instance) element() {}

// Declare evaluates the Instance declaration on its own, returning a fresh
// DOM whose single root child is the declared instance (equivalent to
// wrapping it in a one-element Root).
func (dinst instance) Declare() *rbxdom.DOM {
	return Root{dinst}.Declare()
}

// Instance declares a rbxdom instance: a class name, and a series of
// "elements". An element can be a Property declaration, which defines a
// property for the instance. An element can also be another Instance
// declaration, which becomes a child of the instance.
//
// An element can also be a Ref declaration, which defines a string that can
// be used to refer to the instance from a Reference-typed Property declared
// anywhere in the same tree.
func Instance(className string, elements ...element) instance {
	inst := instance{className: className}

	for _, e := range elements {
		switch e := e.(type) {
		case Ref:
			inst.reference = string(e)
		case property:
			inst.properties = append(inst.properties, e)
		case instance:
			inst.children = append(inst.children, e)
		}
	}

	return inst
}

type property struct {
	name  string
	typ   Type
	value []interface{}
}

func (property) element() {}

// Property declares a property of an Instance: a name, a Type
// corresponding to a rbxdom.Value kind, and the value of the property.
//
// value may be one or more values of any type, which are converted to a
// rbxdom.Value of the given Type. If value does not match any accepted
// shape for the type, the zero value for that type is used instead.
//
// value may instead be a single rbxdom.Value already of the kind typ
// names (e.g. a rbxdom.ValueCFrame for CFrame), in which case it is used
// directly.
//
// For a given Type, value must otherwise be:
//
//	String, BinaryString, Content, ContentId:
//	    A single string or []byte.
//
//	Bool:
//	    A single bool.
//
//	Int, Int64, Float, Double, BrickColor, Token, SecurityCapabilities:
//	    A single number.
//
//	UDim:
//	    2 numbers: Scale, Offset.
//
//	UDim2:
//	    1) 2 rbxdom.ValueUDims: X, Y.
//	    2) 4 numbers: X.Scale, X.Offset, Y.Scale, Y.Offset.
//
//	Ray:
//	    1) 2 rbxdom.ValueVector3s: Origin, Direction.
//	    2) 6 numbers: Origin's X/Y/Z, then Direction's X/Y/Z.
//
//	Faces:
//	    6 bools: Right, Top, Back, Left, Bottom, Front.
//
//	Axes:
//	    3 bools: X, Y, Z.
//
//	Color3:
//	    3 numbers: R, G, B.
//
//	Color3uint8:
//	    3 numbers: R, G, B.
//
//	Vector2, Vector2int16:
//	    2 numbers: X, Y.
//
//	Vector3, Vector3int16:
//	    3 numbers: X, Y, Z.
//
//	CFrame:
//	    1) 10 values: a rbxdom.ValueVector3 (Position), then 9 numbers
//	       (Rotation).
//	    2) 12 numbers: Position's X/Y/Z, then Rotation's 9 components.
//
//	OptionalCFrame:
//	    A single rbxdom.ValueCFrame.
//
//	Reference:
//	    A single string, []byte, or rbxdom.Ref. A string or []byte is
//	    resolved by looking for an Instance declared with a matching Ref
//	    element.
//
//	NumberRange:
//	    2 numbers: Min, Max.
//
//	NumberSequence:
//	    1) Any number of rbxdom.NumberSequenceKeypoint.
//	    2) A multiple of 3 numbers, 3 per keypoint: Time, Value, Envelope.
//
//	ColorSequence:
//	    1) Any number of rbxdom.ColorSequenceKeypoint.
//	    2) A multiple of 5 numbers, 5 per keypoint: Time, R, G, B,
//	       Envelope.
//
//	Rect2D:
//	    1) 2 rbxdom.ValueVector2s: Min, Max.
//	    2) 4 numbers: Min's X/Y, then Max's X/Y.
//
//	Region3, Region3int16:
//	    2 rbxdom.Values of the matching Vector kind: Min, Max.
//
//	PhysicalProperties:
//	    0) No values: non-custom.
//	    3) 3 numbers: Density, Friction, Elasticity.
//	    5) 5 numbers: Density, Friction, Elasticity, FrictionWeight,
//	       ElasticityWeight.
//
//	Font:
//	    4 values: Family (string), Weight (number), Style (number),
//	    CachedFaceId (string).
//
//	Tags:
//	    Any number of strings.
//
//	UniqueId:
//	    3 numbers: Random, Time, Index.
//
//	MaterialColors, SmoothGrid:
//	    A single rbxdom.Value already of the matching kind (these carry
//	    on-disk blob encodings this package does not reconstruct from
//	    scalar arguments).
func Property(name string, typ Type, value ...interface{}) property {
	return property{name: name, typ: typ, value: value}
}

// Declare evaluates the Property declaration on its own: since the
// property does not belong to any instance, the name is ignored and only
// the value is generated. No Ref declarations are in scope here, so a
// Reference given as a string or []byte always resolves to the null Ref; a
// rbxdom.Ref value is used as is.
func (prop property) Declare() rbxdom.Value {
	return prop.typ.declareValue(nil, prop.value)
}

// Ref declares a string that can be used to refer to the Instance under
// which it was declared, from a Reference-typed Property anywhere in the
// same tree.
type Ref string

func (Ref) element() {}
