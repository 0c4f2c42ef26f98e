package policy

// ScopeKind tells whether a name was declared by, or merely required by,
// the decl that names it.
type ScopeKind int

const (
	ScopeDecl ScopeKind = iota
	ScopeReq
)

// ScopeDatum is the per-name scope record: which kind of scope it holds,
// and every decl-id that declared it (decl-role reconstruction walks this
// list).
type ScopeDatum struct {
	Scope   ScopeKind
	DeclIDs []int
}

// ScopeIndex is a per-decl scope snapshot: one bitmap per symbol kind over
// that symbol's index space, plus a class-permissions bitmap array
// (ClassPerms[c] holds the permission bits touched for class index c).
type ScopeIndex struct {
	Symbols    [numSymbolKinds]Bitmap
	ClassPerms []Bitmap
}

// NewScopeIndex returns a ScopeIndex with all symbol bitmaps ready to use.
func NewScopeIndex() ScopeIndex {
	var idx ScopeIndex
	for k := range idx.Symbols {
		idx.Symbols[k] = NewBitmap()
	}
	return idx
}

// Subset reports whether idx is a scope-subset of super: every bit idx
// sets, per symbol kind and per class-perm entry, super also sets. This is
// the coverage test the block walker uses when deciding whether a nested
// optional can stay open under its enclosing decl.
func (idx ScopeIndex) Subset(super ScopeIndex) bool {
	for k := range idx.Symbols {
		if !super.Symbols[k].Contains(idx.Symbols[k]) {
			return false
		}
	}
	if len(idx.ClassPerms) > len(super.ClassPerms) {
		return false
	}
	for c, bm := range idx.ClassPerms {
		if !super.ClassPerms[c].Contains(bm) {
			return false
		}
	}
	return true
}
