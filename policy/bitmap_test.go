package policy

import (
	"reflect"
	"testing"
)

func TestBitmapBitsAscending(t *testing.T) {
	b := BitmapOf(5, 1, 3)
	got := b.Bits()
	want := []int{1, 3, 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Bits() = %v, want %v", got, want)
	}
}

func TestBitmapContains(t *testing.T) {
	super := BitmapOf(1, 2, 3)
	sub := BitmapOf(1, 3)
	if !super.Contains(sub) {
		t.Errorf("expected %v to contain %v", super, sub)
	}
	missing := BitmapOf(1, 4)
	if super.Contains(missing) {
		t.Errorf("did not expect %v to contain %v", super, missing)
	}
}

func TestBitmapEmpty(t *testing.T) {
	var b Bitmap
	if !b.Empty() {
		t.Errorf("zero-value Bitmap should be empty")
	}
	b.Set(0)
	if b.Empty() {
		t.Errorf("Bitmap with a member should not be empty")
	}
}
