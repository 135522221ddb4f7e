package reflection_test

import (
	"testing"

	"github.com/robloxapi/rbxdom"
	"github.com/robloxapi/rbxdom/reflection"
)

func basicDatabase() *reflection.Database {
	db := reflection.NewDatabase()
	db.Classes["Instance"] = &reflection.ClassDescriptor{
		Name: "Instance",
		Properties: map[string]*reflection.PropertyDescriptor{
			"Name": {
				Name:       "Name",
				DataType:   reflection.DataType{Variant: rbxdom.TypeString},
				Serializes: true,
			},
		},
	}
	db.Classes["BasePart"] = &reflection.ClassDescriptor{
		Name:       "BasePart",
		Superclass: "Instance",
		Properties: map[string]*reflection.PropertyDescriptor{
			"Size": {
				Name:       "Size",
				DataType:   reflection.DataType{Variant: rbxdom.TypeVector3},
				Serializes: true,
			},
			"Transparency_Old": {
				Name:         "Transparency_Old",
				DataType:     reflection.DataType{Variant: rbxdom.TypeFloat32},
				Serializes:   true,
				SerializesAs: "Transparency_Old",
			},
			"Transparency": {
				Name:       "Transparency",
				DataType:   reflection.DataType{Variant: rbxdom.TypeFloat32},
				AliasFor:   "Transparency_Old",
				Serializes: true,
			},
			"Locked": {
				Name:     "Locked",
				DataType: reflection.DataType{Variant: rbxdom.TypeBool},
				// Serializes left false: not written to disk.
			},
		},
	}
	db.Classes["Part"] = &reflection.ClassDescriptor{
		Name:       "Part",
		Superclass: "BasePart",
		Properties: map[string]*reflection.PropertyDescriptor{},
	}
	return db
}

func TestResolveInheritedProperty(t *testing.T) {
	db := basicDatabase()
	res, err := db.Resolve("Part", "Size")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Class != "BasePart" {
		t.Errorf("Class = %q, want BasePart", res.Class)
	}
	if res.Canonical == nil || res.Canonical.Name != "Size" {
		t.Errorf("Canonical = %#v, want Size", res.Canonical)
	}
	if res.Serialized == nil || res.SerializedName != "Size" {
		t.Errorf("SerializedName = %q, want Size", res.SerializedName)
	}
}

func TestResolveSerializesAsNonIdentity(t *testing.T) {
	db := reflection.NewDatabase()
	db.Classes["Part"] = &reflection.ClassDescriptor{
		Name: "Part",
		Properties: map[string]*reflection.PropertyDescriptor{
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
	res, err := db.Resolve("Part", "Foo")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Canonical == nil || res.Canonical.Name != "Foo" {
		t.Errorf("Canonical = %#v, want Foo", res.Canonical)
	}
	if res.Serialized == nil || res.SerializedName != "foo_disk" {
		t.Errorf("SerializedName = %q, want foo_disk (distinct from the canonical name Foo)", res.SerializedName)
	}
}

func TestResolveAlias(t *testing.T) {
	db := basicDatabase()
	res, err := db.Resolve("Part", "Transparency")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Canonical == nil || res.Canonical.Name != "Transparency_Old" {
		t.Errorf("Canonical = %#v, want Transparency_Old (alias target)", res.Canonical)
	}
	if res.SerializedName != "Transparency_Old" {
		t.Errorf("SerializedName = %q, want Transparency_Old", res.SerializedName)
	}
}

func TestResolveNonSerializingProperty(t *testing.T) {
	db := basicDatabase()
	res, err := db.Resolve("Part", "Locked")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Serialized != nil {
		t.Errorf("Serialized = %#v, want nil for a non-serializing property", res.Serialized)
	}
}

func TestResolveUnknownProperty(t *testing.T) {
	db := basicDatabase()
	if _, err := db.Resolve("Part", "Nonexistent"); err != reflection.ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestResolveUnknownClass(t *testing.T) {
	db := basicDatabase()
	if _, err := db.Resolve("Nonexistent", "Name"); err != reflection.ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCanonicalName(t *testing.T) {
	db := basicDatabase()
	if name, ok := db.CanonicalName("Part", "Name"); !ok || name != "Name" {
		t.Errorf("CanonicalName(Part, Name) = (%q, %v), want (Name, true)", name, ok)
	}
	if name, ok := db.CanonicalName("Part", "Transparency_Old"); !ok || name != "Transparency_Old" {
		t.Errorf("CanonicalName(Part, Transparency_Old) = (%q, %v), want (Transparency_Old, true)", name, ok)
	}
	if name, ok := db.CanonicalName("Part", "DoesNotExist"); ok || name != "DoesNotExist" {
		t.Errorf("CanonicalName(Part, DoesNotExist) = (%q, %v), want (DoesNotExist, false)", name, ok)
	}
}

func TestNilDatabaseLookupsMiss(t *testing.T) {
	var db *reflection.Database
	if c := db.Class("Part"); c != nil {
		t.Errorf("Class on a nil Database = %#v, want nil", c)
	}
	if v := db.Default("Part", "Size"); v != nil {
		t.Errorf("Default on a nil Database = %#v, want nil", v)
	}
}

func TestDefaultFallsBackToNil(t *testing.T) {
	db := basicDatabase()
	if v := db.Default("Part", "Size"); v != nil {
		t.Errorf("Default with no recorded value = %#v, want nil", v)
	}
	db.Defaults["Part"] = map[string]rbxdom.Value{"Size": rbxdom.ValueVector3{X: 4, Y: 1.2, Z: 2}}
	if v := db.Default("Part", "Size"); v == nil {
		t.Error("Default after recording a value = nil, want the recorded value")
	}
}
