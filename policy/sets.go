package policy

// SetFlag carries the STAR ("matches everything") and COMP ("complement of
// the positive/negative bitmaps") flags that a TypeSet or RoleSet can carry
// alongside its bitmaps.
type SetFlag uint32

const (
	SetStar SetFlag = 1 << iota
	SetComp
)

// Has reports whether f includes flag bit test.
func (f SetFlag) Has(test SetFlag) bool {
	return f&test != 0
}

// TypeSet is a positive-minus-negative-minus-flags set of type indices, as
// it appears on the source or target side of an AvRule or a transition.
type TypeSet struct {
	Positive Bitmap
	Negative Bitmap
	Flags    SetFlag
}

// Plain reports whether the set has no negative members and no flags, in
// which case it expands directly to its positive bitmap's names.
func (s TypeSet) Plain() bool {
	return s.Negative.Empty() && s.Flags == 0
}

// RoleSet is the role-side analogue of TypeSet. Roles have no negative
// bitmap; only Flags is meaningful beyond the positive bitmap.
type RoleSet struct {
	Positive Bitmap
	Flags    SetFlag
}

// Plain reports whether the set carries no flags, expanding directly to
// its positive bitmap's names.
func (s RoleSet) Plain() bool {
	return s.Flags == 0
}
