package schema

import "testing"

func TestStringAndNumericTagsPartitionOrder(t *testing.T) {
	strings := StringTags()
	numerics := NumericTags()
	if len(strings)+len(numerics) != Count {
		t.Fatalf("len(strings)+len(numerics) = %d, want %d", len(strings)+len(numerics), Count)
	}
	for i, tag := range strings {
		if tag.FileIndex != i {
			t.Errorf("string tag %q FileIndex = %d, want %d", tag.Name, tag.FileIndex, i)
		}
	}
	for _, tag := range numerics {
		if tag.FileIndex != -1 {
			t.Errorf("numeric tag %q FileIndex = %d, want -1", tag.Name, tag.FileIndex)
		}
	}
}

func TestByID(t *testing.T) {
	tag := ByID(Artist)
	if tag.Name != "artist" || tag.Kind != KindString {
		t.Errorf("ByID(Artist) = %+v", tag)
	}
}

func TestByIDPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("ByID out of range should panic")
		}
	}()
	ByID(TagID(Count))
}

func TestCheckVersion(t *testing.T) {
	if err := CheckVersion(Version); err != nil {
		t.Errorf("CheckVersion(Version) = %v, want nil", err)
	}
	if err := CheckVersion(3); err != ErrUnsupportedVersion {
		t.Errorf("CheckVersion(3) = %v, want ErrUnsupportedVersion", err)
	}
}

func TestOrderMatchesTagIDIndices(t *testing.T) {
	order := Order()
	for i, tag := range order {
		if int(tag.ID) != i {
			t.Errorf("Order()[%d].ID = %v, want %d", i, tag.ID, i)
		}
	}
}
