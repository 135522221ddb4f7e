package rbxdom

import "testing"

func TestBasicRotationRoundTrip(t *testing.T) {
	if len(basicRotationMatrix) != 24 {
		t.Fatalf("basicRotationMatrix has %d entries, want 24", len(basicRotationMatrix))
	}
	for id, want := range basicRotationMatrix {
		got, ok := FromBasicRotationID(id)
		if !ok {
			t.Errorf("FromBasicRotationID(%#x): ok = false", id)
			continue
		}
		if got != want {
			t.Errorf("FromBasicRotationID(%#x) = %v, want %v", id, got, want)
		}
		gotID, ok := ToBasicRotationID(got)
		if !ok {
			t.Errorf("ToBasicRotationID(%v): ok = false, want id %#x", got, id)
			continue
		}
		if gotID != id {
			t.Errorf("ToBasicRotationID(%v) = %#x, want %#x", got, gotID, id)
		}
	}
}

func TestFromBasicRotationIDUnknown(t *testing.T) {
	if _, ok := FromBasicRotationID(0x01); ok {
		t.Error("FromBasicRotationID(0x01) = ok, want false (not a basic-rotation id)")
	}
}

func TestToBasicRotationIDRejectsNonOrthonormal(t *testing.T) {
	// Each row projects cleanly to a signed unit axis vector, but the rows
	// don't form a valid rotation (Y and Z both point +Y): not one of the
	// 24 basic rotations.
	m := Matrix3{
		+1, +0, +0,
		+0, +1, +0,
		+0, +1, +0,
	}
	if _, ok := ToBasicRotationID(m); ok {
		t.Error("ToBasicRotationID accepted a matrix that isn't one of the 24 basic rotations")
	}
}
