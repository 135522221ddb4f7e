package binary_test

import (
	"bytes"
	"testing"

	"github.com/robloxapi/rbxdom"
	"github.com/robloxapi/rbxdom/binary"
	"github.com/robloxapi/rbxdom/reflection"
)

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
			// Foo is the canonical, in-memory name; it's stored on disk
			// under foo_disk, a distinct property descriptor in this same
			// class rather than under its own map key.
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
			// Legacy is a pure alias: reading or writing it really means
			// Name.
			"Legacy": {
				Name:       "Legacy",
				DataType:   reflection.DataType{Variant: rbxdom.TypeString},
				AliasFor:   "Name",
				Serializes: true,
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
	dom.Get(part).Set("Foo", rbxdom.ValueFloat32(3.5))
	return dom
}

// TestEncodeWritesSerializedNameNotCanonicalName guards the bug a prior
// review caught: encoding must write a property under its resolved
// serialized name, not the raw class.Properties map key, and must collapse
// an AliasFor alias onto its target instead of emitting a second column.
func TestEncodeWritesSerializedNameNotCanonicalName(t *testing.T) {
	dom := buildNonIdentitySample()
	db := nonIdentityDatabase()

	var buf bytes.Buffer
	if err := binary.Encode(&buf, dom, binary.Model, binary.EncodeOptions{Database: db}); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	raw := buf.Bytes()
	if bytes.Contains(raw, []byte("Foo")) && !bytes.Contains(raw, []byte("foo_disk")) {
		t.Error("encoded file names the property Foo; want it written under its serialized name foo_disk")
	}
	if !bytes.Contains(raw, []byte("foo_disk")) {
		t.Error("encoded file doesn't contain the serialized property name foo_disk at all")
	}
	if bytes.Contains(raw, []byte("Legacy")) {
		t.Error("encoded file emits a column for the Legacy alias; it should collapse onto Name")
	}

	got, err := binary.Decode(&buf, binary.Model, db)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	part := got.Get(got.Get(got.Root()).Children()[0])
	if name, ok := part.Get("Name").(rbxdom.ValueString); !ok || string(name) != "BasePlate" {
		t.Errorf("Name = %#v, want ValueString(BasePlate)", part.Get("Name"))
	}
	if foo, ok := part.Get("Foo").(rbxdom.ValueFloat32); !ok || foo != 3.5 {
		t.Errorf("Foo = %#v, want ValueFloat32(3.5)", part.Get("Foo"))
	}
}

func TestEncodeDecodeRoundTripNonIdentitySerialization(t *testing.T) {
	dom := buildNonIdentitySample()
	db := nonIdentityDatabase()

	var buf bytes.Buffer
	if err := binary.Encode(&buf, dom, binary.Model, binary.EncodeOptions{Database: db}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := binary.Decode(bytes.NewReader(buf.Bytes()), binary.Model, db)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	part := got.Get(got.Get(got.Root()).Children()[0])
	if part.ClassName() != "Part" {
		t.Fatalf("ClassName = %q, want Part", part.ClassName())
	}
	if name, ok := part.Get("Name").(rbxdom.ValueString); !ok || string(name) != "BasePlate" {
		t.Errorf("Name = %#v, want ValueString(BasePlate)", part.Get("Name"))
	}
	if foo, ok := part.Get("Foo").(rbxdom.ValueFloat32); !ok || foo != 3.5 {
		t.Errorf("Foo = %#v, want ValueFloat32(3.5)", part.Get("Foo"))
	}
}

func TestModelRejectsMultipleRoots(t *testing.T) {
	dom := rbxdom.NewDOM(rbxdom.InstanceBuilder{ClassName: "Folder"})
	if _, err := dom.Insert(dom.Root(), rbxdom.InstanceBuilder{ClassName: "Part"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := dom.Insert(dom.Root(), rbxdom.InstanceBuilder{ClassName: "Part"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	var buf bytes.Buffer
	if err := binary.Encode(&buf, dom, binary.Model, binary.EncodeOptions{}); err == nil {
		t.Fatal("Encode with Model mode and two top-level instances should fail")
	}
}

func TestAttributesBlobRoundTrip(t *testing.T) {
	attrs, err := rbxdom.NewAttributes(map[string]rbxdom.Value{
		"Health":  rbxdom.ValueFloat32(100),
		"Display": rbxdom.ValueString("BasePlate"),
		"Visible": rbxdom.ValueBool(true),
	})
	if err != nil {
		t.Fatalf("NewAttributes: %v", err)
	}

	blob, err := binary.EncodeAttributesBlob(attrs)
	if err != nil {
		t.Fatalf("EncodeAttributesBlob: %v", err)
	}
	got, err := binary.DecodeAttributesBlob(blob)
	if err != nil {
		t.Fatalf("DecodeAttributesBlob: %v", err)
	}
	if got.Len() != attrs.Len() {
		t.Fatalf("Len() = %d, want %d", got.Len(), attrs.Len())
	}
	if v, ok := got.Get("Health").(rbxdom.ValueFloat32); !ok || v != 100 {
		t.Errorf("Health = %#v, want ValueFloat32(100)", got.Get("Health"))
	}
	if v, ok := got.Get("Display").(rbxdom.ValueString); !ok || string(v) != "BasePlate" {
		t.Errorf("Display = %#v, want ValueString(BasePlate)", got.Get("Display"))
	}
	if v, ok := got.Get("Visible").(rbxdom.ValueBool); !ok || !bool(v) {
		t.Errorf("Visible = %#v, want ValueBool(true)", got.Get("Visible"))
	}
}

func TestDecodeConvertsMismatchedTypeTag(t *testing.T) {
	db := reflection.NewDatabase()
	db.Classes["Part"] = &reflection.ClassDescriptor{
		Name: "Part",
		Properties: map[string]*reflection.PropertyDescriptor{
			// Declared Bool, but encoded (below) without reflection as an
			// Int32 column, simulating an older file.
			"Locked": {
				Name:       "Locked",
				DataType:   reflection.DataType{Variant: rbxdom.TypeBool},
				Serializes: true,
			},
		},
	}

	dom := rbxdom.NewDOM(rbxdom.InstanceBuilder{ClassName: "Folder"})
	part, err := dom.Insert(dom.Root(), rbxdom.InstanceBuilder{ClassName: "Part"})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	dom.Get(part).Set("Locked", rbxdom.ValueInt32(1))

	var buf bytes.Buffer
	if err := binary.Encode(&buf, dom, binary.Model, binary.EncodeOptions{}); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := binary.Decode(bytes.NewReader(buf.Bytes()), binary.Model, db)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	gotPart := got.Get(got.Get(got.Root()).Children()[0])
	v, ok := gotPart.Get("Locked").(rbxdom.ValueBool)
	if !ok {
		t.Fatalf("Locked = %#v, want ValueBool after conversion", gotPart.Get("Locked"))
	}
	if !bool(v) {
		t.Errorf("Locked = %v, want true", v)
	}
}
