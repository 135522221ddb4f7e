package rbxdom

import (
	"errors"
	"testing"
)

func TestNewAttributesAcceptsAllowedTypes(t *testing.T) {
	attrs, err := NewAttributes(map[string]Value{
		"Health": ValueFloat32(100),
		"Name":   ValueString("Steve"),
		"Alive":  ValueBool(true),
	})
	if err != nil {
		t.Fatalf("NewAttributes: %v", err)
	}
	if attrs.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", attrs.Len())
	}
	if v, ok := attrs.Get("Health").(ValueFloat32); !ok || v != 100 {
		t.Errorf("Get(Health) = %#v, want ValueFloat32(100)", attrs.Get("Health"))
	}
}

func TestNewAttributesRejectsDisallowedType(t *testing.T) {
	_, err := NewAttributes(map[string]Value{
		"Target": ValueRef{},
	})
	if !errors.Is(err, ErrAttributeType) {
		t.Fatalf("err = %v, want ErrAttributeType", err)
	}
}

func TestAttributesSetRejectsDisallowedType(t *testing.T) {
	var attrs ValueAttributes
	if err := attrs.Set("Owner", ValueRef{}); !errors.Is(err, ErrAttributeType) {
		t.Fatalf("Set err = %v, want ErrAttributeType", err)
	}
	if attrs.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after a rejected Set", attrs.Len())
	}
}

func TestAttributesSetAndGetRoundTrip(t *testing.T) {
	var attrs ValueAttributes
	if err := attrs.Set("Score", ValueFloat64(42)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, ok := attrs.Get("Score").(ValueFloat64); !ok || v != 42 {
		t.Errorf("Get(Score) = %#v, want ValueFloat64(42)", attrs.Get("Score"))
	}
	if err := attrs.Set("Score", nil); err != nil {
		t.Fatalf("Set(nil): %v", err)
	}
	if attrs.Get("Score") != nil {
		t.Error("Set(key, nil) should delete the attribute")
	}
}

func TestAttributesCopyIsIndependent(t *testing.T) {
	attrs, err := NewAttributes(map[string]Value{"Count": ValueFloat64(1)})
	if err != nil {
		t.Fatalf("NewAttributes: %v", err)
	}
	clone := attrs.Copy().(ValueAttributes)
	if err := clone.Set("Count", ValueFloat64(2)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v := attrs.Get("Count").(ValueFloat64); v != 1 {
		t.Errorf("original mutated through its Copy: Count = %v, want 1", v)
	}
	if v := clone.Get("Count").(ValueFloat64); v != 2 {
		t.Errorf("Count = %v, want 2", v)
	}
}

func TestAttributesRangeIsSortedByKey(t *testing.T) {
	attrs, err := NewAttributes(map[string]Value{
		"Zeta":  ValueBool(true),
		"Alpha": ValueBool(false),
		"Mid":   ValueBool(true),
	})
	if err != nil {
		t.Fatalf("NewAttributes: %v", err)
	}
	var keys []string
	attrs.Range(func(key string, _ Value) { keys = append(keys, key) })
	want := []string{"Alpha", "Mid", "Zeta"}
	if len(keys) != len(want) {
		t.Fatalf("Range visited %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Range order = %v, want %v", keys, want)
		}
	}
}
