package reflection_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/robloxapi/rbxdom"
	"github.com/robloxapi/rbxdom/reflection"
)

func TestSaveLoadBytesRoundTrip(t *testing.T) {
	db := reflection.NewDatabase()
	db.Classes["Instance"] = &reflection.ClassDescriptor{
		Name: "Instance",
		Tags: map[reflection.ClassTag]bool{reflection.ClassTagNotCreatable: true},
		Properties: map[string]*reflection.PropertyDescriptor{
			"Name": {
				Name:          "Name",
				DataType:      reflection.DataType{Variant: rbxdom.TypeString},
				Scriptability: reflection.ScriptReadWrite,
				Serializes:    true,
			},
		},
	}
	db.Classes["Part"] = &reflection.ClassDescriptor{
		Name:       "Part",
		Superclass: "Instance",
		Properties: map[string]*reflection.PropertyDescriptor{
			"Size": {
				Name:       "Size",
				DataType:   reflection.DataType{Variant: rbxdom.TypeVector3},
				Serializes: true,
			},
		},
	}

	data, err := reflection.SaveBytes(db)
	if err != nil {
		t.Fatalf("SaveBytes: %v", err)
	}

	got, err := reflection.LoadBytes(data)
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}

	part := got.Class("Part")
	if part == nil {
		t.Fatal("Part class missing after round trip")
	}
	if part.Superclass != "Instance" {
		t.Errorf("Superclass = %q, want Instance", part.Superclass)
	}
	size, ok := part.Properties["Size"]
	if !ok {
		t.Fatal("Size property missing after round trip")
	}
	if size.DataType.Variant != rbxdom.TypeVector3 {
		t.Errorf("Size.DataType.Variant = %v, want TypeVector3", size.DataType.Variant)
	}

	inst := got.Class("Instance")
	if inst == nil || !inst.HasTag(reflection.ClassTagNotCreatable) {
		t.Error("Instance.Tags lost the NotCreatable tag across the round trip")
	}
	name := inst.Properties["Name"]
	if name == nil || name.Scriptability != reflection.ScriptReadWrite {
		t.Errorf("Name.Scriptability = %#v, want ScriptReadWrite", name)
	}
}

func TestDefaultFallsBackToBuiltin(t *testing.T) {
	t.Setenv("RBX_DATABASE", "")
	if dir, err := os.UserConfigDir(); err == nil {
		// Point the user-config override at a path that can't exist, so
		// Default() falls through to the embedded built-in database
		// regardless of the host running this test.
		t.Setenv("HOME", filepath.Join(dir, "rbxdom-test-does-not-exist"))
	}
	db := reflection.Default()
	if db == nil {
		t.Fatal("Default() returned nil")
	}
}
