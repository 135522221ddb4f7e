package format_test

import (
	"bytes"
	"testing"

	"github.com/robloxapi/rbxdom"
	"github.com/robloxapi/rbxdom/binary"
	"github.com/robloxapi/rbxdom/format"
	"github.com/robloxapi/rbxdom/reflection"
)

func buildSample() *rbxdom.DOM {
	dom := rbxdom.NewDOM(rbxdom.InstanceBuilder{ClassName: "Folder"})
	part, err := dom.Insert(dom.Root(), rbxdom.InstanceBuilder{ClassName: "Part"})
	if err != nil {
		panic(err)
	}
	dom.Get(part).SetName("BasePlate")
	dom.Get(part).Set("Name", rbxdom.ValueString("BasePlate"))
	dom.Get(part).Set("Size", rbxdom.ValueVector3{X: 2, Y: 1.2, Z: 4})
	return dom
}

func TestRoundTripBinaryNoReflection(t *testing.T) {
	dom := buildSample()

	var buf bytes.Buffer
	if err := format.EncodeBinary(&buf, dom, binary.Model, format.EncodeOptions{Properties: format.NoReflection}); err != nil {
		t.Fatalf("EncodeBinary: %v", err)
	}

	got, err := format.DecodeBinary(&buf, binary.Model, format.DecodeOptions{Properties: format.NoReflection})
	if err != nil {
		t.Fatalf("DecodeBinary: %v", err)
	}

	children := got.Get(got.Root()).Children()
	if len(children) != 1 {
		t.Fatalf("expected 1 top-level instance, got %d", len(children))
	}
	part := got.Get(children[0])
	if part.ClassName() != "Part" {
		t.Errorf("ClassName = %q, want Part", part.ClassName())
	}
	if name, ok := part.Get("Name").(rbxdom.ValueString); !ok || string(name) != "BasePlate" {
		t.Errorf("Name = %#v, want ValueString(BasePlate)", part.Get("Name"))
	}
}

func TestRoundTripXMLNoReflection(t *testing.T) {
	dom := buildSample()

	var buf bytes.Buffer
	if err := format.EncodeXML(&buf, dom, format.EncodeOptions{Properties: format.NoReflection}); err != nil {
		t.Fatalf("EncodeXML: %v", err)
	}

	got, err := format.DecodeXML(&buf, format.DecodeOptions{Properties: format.NoReflection})
	if err != nil {
		t.Fatalf("DecodeXML: %v", err)
	}

	children := got.Get(got.Root()).Children()
	if len(children) != 1 {
		t.Fatalf("expected 1 top-level instance, got %d", len(children))
	}
	part := got.Get(children[0])
	if size, ok := part.Get("Size").(rbxdom.ValueVector3); !ok || size.X != 2 || size.Y != 1.2 || size.Z != 4 {
		t.Errorf("Size = %#v, want Vector3(2, 1.2, 4)", part.Get("Size"))
	}
}

func nonIdentityDatabase() *reflection.Database {
	db := reflection.NewDatabase()
	db.Classes["Part"] = &reflection.ClassDescriptor{
		Name: "Part",
		Properties: map[string]*reflection.PropertyDescriptor{
			"Name": {
				Name:       "Name",
				DataType:   reflection.DataType{Variant: rbxdom.TypeString},
				Serializes: true,
			},
			// Foo's canonical (in-memory) name differs from its on-disk
			// name, which lives under a separate descriptor in this map.
			"Foo": {
				Name:         "Foo",
				DataType:     reflection.DataType{Variant: rbxdom.TypeFloat32},
				Serializes:   true,
				SerializesAs: "foo_disk",
			},
			"foo_disk": {
				Name:     "foo_disk",
				DataType: reflection.DataType{Variant: rbxdom.TypeFloat32},
			},
		},
	}
	return db
}

func buildNonIdentitySample() *rbxdom.DOM {
	dom := rbxdom.NewDOM(rbxdom.InstanceBuilder{ClassName: "Folder"})
	part, err := dom.Insert(dom.Root(), rbxdom.InstanceBuilder{ClassName: "Part"})
	if err != nil {
		panic(err)
	}
	dom.Get(part).Set("Name", rbxdom.ValueString("BasePlate"))
	dom.Get(part).Set("Foo", rbxdom.ValueFloat32(2.25))
	return dom
}

// TestRoundTripBinaryNonIdentitySerializesAs exercises a populated
// reflection.Database with a canonical property whose on-disk name
// genuinely differs from its in-memory name — the case a NoReflection or
// empty-descriptor test can't catch.
func TestRoundTripBinaryNonIdentitySerializesAs(t *testing.T) {
	dom := buildNonIdentitySample()
	db := nonIdentityDatabase()

	var buf bytes.Buffer
	if err := format.EncodeBinary(&buf, dom, binary.Model, format.EncodeOptions{Database: db}); err != nil {
		t.Fatalf("EncodeBinary: %v", err)
	}

	got, err := format.DecodeBinary(&buf, binary.Model, format.DecodeOptions{Database: db})
	if err != nil {
		t.Fatalf("DecodeBinary: %v", err)
	}
	part := got.Get(got.Get(got.Root()).Children()[0])
	if name, ok := part.Get("Name").(rbxdom.ValueString); !ok || string(name) != "BasePlate" {
		t.Errorf("Name = %#v, want ValueString(BasePlate)", part.Get("Name"))
	}
	if foo, ok := part.Get("Foo").(rbxdom.ValueFloat32); !ok || foo != 2.25 {
		t.Errorf("Foo = %#v, want ValueFloat32(2.25)", part.Get("Foo"))
	}
}

func TestRoundTripXMLNonIdentitySerializesAs(t *testing.T) {
	dom := buildNonIdentitySample()
	db := nonIdentityDatabase()

	var buf bytes.Buffer
	if err := format.EncodeXML(&buf, dom, format.EncodeOptions{Database: db}); err != nil {
		t.Fatalf("EncodeXML: %v", err)
	}

	got, err := format.DecodeXML(&buf, format.DecodeOptions{Database: db})
	if err != nil {
		t.Fatalf("DecodeXML: %v", err)
	}
	part := got.Get(got.Get(got.Root()).Children()[0])
	if name, ok := part.Get("Name").(rbxdom.ValueString); !ok || string(name) != "BasePlate" {
		t.Errorf("Name = %#v, want ValueString(BasePlate)", part.Get("Name"))
	}
	if foo, ok := part.Get("Foo").(rbxdom.ValueFloat32); !ok || foo != 2.25 {
		t.Errorf("Foo = %#v, want ValueFloat32(2.25)", part.Get("Foo"))
	}
}

func TestErrorUnknownProperty(t *testing.T) {
	dom := buildSample()
	db := reflection.NewDatabase()
	db.Classes["Part"] = &reflection.ClassDescriptor{
		Name:       "Part",
		Properties: map[string]*reflection.PropertyDescriptor{},
	}

	var buf bytes.Buffer
	err := format.EncodeBinary(&buf, dom, binary.Model, format.EncodeOptions{
		Database:   db,
		Properties: format.ErrorUnknown,
	})
	if err == nil {
		t.Fatal("expected an error for an unrecognized property, got nil")
	}
}

func TestIgnoreUnknownPropertyDropsIt(t *testing.T) {
	dom := buildSample()
	db := reflection.NewDatabase()
	db.Classes["Part"] = &reflection.ClassDescriptor{
		Name:       "Part",
		Properties: map[string]*reflection.PropertyDescriptor{},
	}

	var buf bytes.Buffer
	if err := format.EncodeBinary(&buf, dom, binary.Model, format.EncodeOptions{
		Database:   db,
		Properties: format.IgnoreUnknown,
	}); err != nil {
		t.Fatalf("EncodeBinary: %v", err)
	}

	// Name isn't declared serialized on the Part descriptor above, so
	// IgnoreUnknown must leave it out of the written file without touching
	// the source dom.
	if dom.Get(dom.Get(dom.Root()).Children()[0]).Get("Name") == nil {
		t.Fatal("EncodeBinary must not mutate the caller's DOM")
	}

	got, err := format.DecodeBinary(&buf, binary.Model, format.DecodeOptions{Properties: format.NoReflection})
	if err != nil {
		t.Fatalf("DecodeBinary: %v", err)
	}
	part := got.Get(got.Get(got.Root()).Children()[0])
	if part.Get("Name") != nil {
		t.Errorf("expected Name to be dropped from the encoded file, got %#v", part.Get("Name"))
	}
}
