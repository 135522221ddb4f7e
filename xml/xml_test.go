package xml_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/robloxapi/rbxdom"
	"github.com/robloxapi/rbxdom/reflection"
	"github.com/robloxapi/rbxdom/xml"
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

func TestEncodeWritesSerializedNameNotCanonicalName(t *testing.T) {
	dom := buildNonIdentitySample()
	db := nonIdentityDatabase()

	var buf bytes.Buffer
	if err := xml.Encode(&buf, dom, xml.EncodeOptions{Database: db}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	doc := buf.String()

	if strings.Contains(doc, `name="Foo"`) {
		t.Error(`encoded document names the property name="Foo"; want it written under its serialized name "foo_disk"`)
	}
	if !strings.Contains(doc, `name="foo_disk"`) {
		t.Errorf("encoded document doesn't contain name=%q:\n%s", "foo_disk", doc)
	}
	if strings.Contains(doc, `name="Legacy"`) {
		t.Error(`encoded document emits an element for the Legacy alias; it should collapse onto Name`)
	}

	got, err := xml.Decode(strings.NewReader(doc), db)
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
	if err := xml.Encode(&buf, dom, xml.EncodeOptions{Database: db}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := xml.Decode(bytes.NewReader(buf.Bytes()), db)
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

func TestDecodeDanglingRefResolvesToNull(t *testing.T) {
	doc := `<roblox version="4">
<Item class="Part" referent="RBX0">
<Properties>
<Ref name="Target">RBXDOESNOTEXIST</Ref>
</Properties>
</Item>
</roblox>`

	got, err := xml.Decode(strings.NewReader(doc), nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	part := got.Get(got.Get(got.Root()).Children()[0])
	ref, ok := part.Get("Target").(rbxdom.ValueRef)
	if !ok {
		t.Fatalf("Target = %#v, want ValueRef", part.Get("Target"))
	}
	if !ref.Ref.IsNull() {
		t.Errorf("Target.Ref = %v, want null", ref.Ref)
	}
}

func TestDecodeConvertsMismatchedTypeTag(t *testing.T) {
	db := reflection.NewDatabase()
	db.Classes["Part"] = &reflection.ClassDescriptor{
		Name: "Part",
		Properties: map[string]*reflection.PropertyDescriptor{
			"Locked": {
				Name:       "Locked",
				DataType:   reflection.DataType{Variant: rbxdom.TypeBool},
				Serializes: true,
			},
		},
	}

	doc := `<roblox version="4">
<Item class="Part" referent="RBX0">
<Properties>
<int name="Locked">1</int>
</Properties>
</Item>
</roblox>`

	got, err := xml.Decode(strings.NewReader(doc), db)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	part := got.Get(got.Get(got.Root()).Children()[0])
	v, ok := part.Get("Locked").(rbxdom.ValueBool)
	if !ok {
		t.Fatalf("Locked = %#v, want ValueBool after conversion", part.Get("Locked"))
	}
	if !bool(v) {
		t.Errorf("Locked = %v, want true", v)
	}
}
