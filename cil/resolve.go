package cil

import (
	"strings"

	"github.com/selinux-policy/pp2cil/policy"
)

// Resolver maps value indices to symbolic names via the database's
// per-symbol lookup tables. It is the sole place the "-1" (or, for
// optional-block user statements, "0") stored-value offset is applied;
// every other component works only with resolved names or zero-based
// indices.
type Resolver struct {
	db *policy.Database
}

// NewResolver builds a Resolver over db's symbol tables.
func NewResolver(db *policy.Database) *Resolver {
	return &Resolver{db: db}
}

// NameAt returns the name at the given zero-based index for kind.
func (r *Resolver) NameAt(kind policy.SymbolKind, index int) (string, error) {
	name, ok := r.db.Symbols[kind].Name(index)
	if !ok {
		return "", structuralErrorf("%s index %d has no name", kind, index)
	}
	return name, nil
}

// NameAtValue resolves a one-based stored value to a name, applying the
// uniform offset-1 convention.
func (r *Resolver) NameAtValue(kind policy.SymbolKind, value int) (string, error) {
	return r.NameAt(kind, value-1)
}

// NameAtSemanticValue resolves a stored value using an explicit offset: 0
// for MLS sensitivities referenced by a user statement inside an optional
// block, 1 everywhere else.
func (r *Resolver) NameAtSemanticValue(kind policy.SymbolKind, value, offset int) (string, error) {
	return r.NameAt(kind, value-offset)
}

// Names resolves every zero-based index in a bitmap to a name, in
// ascending index order.
func (r *Resolver) Names(kind policy.SymbolKind, bits policy.Bitmap) ([]string, error) {
	indices := bits.Bits()
	names := make([]string, 0, len(indices))
	for _, i := range indices {
		name, err := r.NameAt(kind, i)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// JoinNames joins names with single-space separators.
func JoinNames(names []string) string {
	return strings.Join(names, " ")
}
