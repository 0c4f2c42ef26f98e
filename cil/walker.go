package cil

import (
	"fmt"
	"sort"

	"github.com/selinux-policy/pp2cil/policy"
)

// BlockWalker drives the global block-tree traversal: the optional-block
// stack discipline, the global-scope-only emissions, and each decl's
// scoped passes, in the fixed order the target language requires.
type BlockWalker struct {
	l *Lowerer

	// stack holds the required-scope snapshot of every currently open
	// optional block, outermost first. It starts empty: an empty stack is
	// global scope, not a sentinel "one element" frame.
	stack []policy.ScopeIndex

	// declRoles is the DECL-scope role list (skipping object_r),
	// collected once before any block is walked rather than rescanned per
	// block.
	declRoles []string

	indent          int
	globalEmitted   bool
	currentOptional bool
}

// NewBlockWalker builds a BlockWalker over l's database.
func NewBlockWalker(l *Lowerer) *BlockWalker {
	return &BlockWalker{l: l, declRoles: collectDeclRoles(l.db)}
}

func collectDeclRoles(db *policy.Database) []string {
	var roles []string
	for _, name := range db.Symbols[policy.SymRole].Names {
		if name == policy.DefaultObject {
			continue
		}
		datum, ok := db.Scope[policy.SymRole][name]
		if !ok || datum.Scope != policy.ScopeDecl {
			continue
		}
		roles = append(roles, name)
	}
	return roles
}

// Walk traverses blocks in source order, starting at the given indent, and
// closes any optionals still open once the list is exhausted.
func (w *BlockWalker) Walk(blocks []*policy.AvRuleBlock, indent int) error {
	w.indent = indent
	for _, block := range blocks {
		if err := w.walkBlock(block); err != nil {
			return err
		}
	}
	return w.closeAll()
}

func (w *BlockWalker) closeAll() error {
	for len(w.stack) > 0 {
		w.stack = w.stack[:len(w.stack)-1]
		w.indent--
		if err := w.l.e.Line(w.indent, ")"); err != nil {
			return err
		}
	}
	return nil
}

func (w *BlockWalker) walkBlock(block *policy.AvRuleBlock) error {
	if len(block.Decls) == 0 {
		return nil
	}
	if len(block.Decls) > 1 {
		w.l.warn("block has %d decl alternatives, only the first is supported", len(block.Decls))
	}
	decl := block.Decls[0]
	w.currentOptional = block.Flags&policy.BlockOptional != 0

	if w.currentOptional {
		for len(w.stack) > 0 && !decl.Required.Subset(w.stack[len(w.stack)-1]) {
			w.stack = w.stack[:len(w.stack)-1]
			w.indent--
			if err := w.l.e.Line(w.indent, ")"); err != nil {
				return err
			}
		}
		name := fmt.Sprintf("%s_optional_%d", w.l.moduleName, decl.DeclID)
		if err := w.l.e.Line(w.indent, fmt.Sprintf("(optional %s", name)); err != nil {
			return err
		}
		w.stack = append(w.stack, decl.Required)
		w.indent++
	}

	if len(w.stack) == 0 && !w.globalEmitted {
		w.globalEmitted = true
		if err := w.emitGlobalScope(); err != nil {
			return err
		}
	}

	return w.walkDecl(decl)
}

// emitGlobalScope emits the two constructs that exist once for the whole
// database rather than per-decl: non-primary type aliases, and commons.
func (w *BlockWalker) emitGlobalScope() error {
	for _, name := range w.l.db.Symbols[policy.SymType].Names {
		t, ok := w.l.db.Types[name]
		if !ok || t.Flavor != policy.TypeFlavorType || t.Primary {
			continue
		}
		if err := w.l.LowerType(name, policy.ScopeDecl, w.indent); err != nil {
			return err
		}
	}
	for _, name := range w.l.db.Symbols[policy.SymCommon].Names {
		if err := w.l.LowerCommon(name, w.indent); err != nil {
			return err
		}
	}
	return nil
}

func (w *BlockWalker) walkDecl(decl *policy.AvRuleDecl) error {
	if err := w.emitDeclRoles(decl); err != nil {
		return err
	}
	if err := w.declaredScopes(decl); err != nil {
		return err
	}
	if err := w.requiredScopes(decl); err != nil {
		return err
	}
	if err := w.additiveScopes(decl); err != nil {
		return err
	}
	if err := w.l.LowerAvRules(decl.AvRules, w.indent); err != nil {
		return err
	}
	if err := w.l.LowerRoleTransitions(decl.RoleTransitions, w.indent); err != nil {
		return err
	}
	if err := w.l.LowerRoleAllows(decl.RoleAllows, w.indent); err != nil {
		return err
	}
	if err := w.l.LowerRangeTransitions(decl.RangeTransitions, w.indent); err != nil {
		return err
	}
	if err := w.l.LowerFilenameTransitions(decl.FilenameTransitions, w.indent); err != nil {
		return err
	}
	return w.l.LowerCondNodes(decl.CondNodes, w.indent)
}

// emitDeclRoles reconstructs per-decl role-type associations erased by the
// binary form: a precomputed decl-scope role, one of whose expanded types
// was declared by this decl, yields a (roletype role type) line.
func (w *BlockWalker) emitDeclRoles(decl *policy.AvRuleDecl) error {
	for _, roleName := range w.declRoles {
		role, ok := w.l.db.Roles[roleName]
		if !ok {
			continue
		}
		typeNames, err := w.l.ExpandTypeSet(role.Types, w.indent)
		if err != nil {
			return err
		}
		for _, typeName := range typeNames {
			scopeDatum, ok := w.l.db.Scope[policy.SymType][typeName]
			if !ok || !containsDeclID(scopeDatum.DeclIDs, decl.DeclID) {
				continue
			}
			if err := w.l.e.Line(w.indent, fmt.Sprintf("(roletype %s %s)", roleName, typeName)); err != nil {
				return err
			}
		}
	}
	return nil
}

func containsDeclID(ids []int, id int) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// lowerSymbol dispatches to the matching symbol lowerer; commons are
// handled only by emitGlobalScope.
func (w *BlockWalker) lowerSymbol(kind policy.SymbolKind, name string, scope policy.ScopeKind) error {
	switch kind {
	case policy.SymClass:
		return w.l.LowerClass(name, scope, w.indent)
	case policy.SymRole:
		return w.l.LowerRole(name, scope, w.indent)
	case policy.SymType:
		return w.l.LowerType(name, scope, w.indent)
	case policy.SymUser:
		return w.l.LowerUser(name, scope, w.currentOptional, w.indent)
	case policy.SymBool:
		return w.l.LowerBool(name, scope, w.indent)
	case policy.SymSens:
		return w.l.LowerSens(name, scope, w.indent)
	case policy.SymCat:
		return w.l.LowerCat(name, scope, w.indent)
	case policy.SymCommon:
		return nil
	default:
		return structuralErrorf("unknown symbol kind %d", kind)
	}
}

// declaredScopes invokes the DECL-scope lowerer for every name the decl
// declares, per symbol kind, then emits the two fixed orderings that ride
// along with categories and sensitivities.
func (w *BlockWalker) declaredScopes(decl *policy.AvRuleDecl) error {
	for k, bits := range decl.Declared.Symbols {
		kind := policy.SymbolKind(k)
		if kind == policy.SymCommon {
			continue
		}
		names, err := w.l.res.Names(kind, bits)
		if err != nil {
			return err
		}
		for _, name := range names {
			if err := w.lowerSymbol(kind, name, policy.ScopeDecl); err != nil {
				return err
			}
		}
		if kind == policy.SymCat && len(names) > 0 {
			if err := w.l.e.Line(w.indent, fmt.Sprintf("(categoryorder (%s))", JoinNames(names))); err != nil {
				return err
			}
		}
		if kind == policy.SymSens && len(names) > 0 {
			if err := w.l.e.Line(w.indent, fmt.Sprintf("(sensitivityorder (%s))", JoinNames(names))); err != nil {
				return err
			}
		}
	}
	return nil
}

// requiredScopes invokes the REQ-scope lowerer for every name the decl
// requires. Most lowerers early-return for REQ scope.
func (w *BlockWalker) requiredScopes(decl *policy.AvRuleDecl) error {
	for k, bits := range decl.Required.Symbols {
		kind := policy.SymbolKind(k)
		if kind == policy.SymCommon {
			continue
		}
		names, err := w.l.res.Names(kind, bits)
		if err != nil {
			return err
		}
		for _, name := range names {
			if err := w.lowerSymbol(kind, name, policy.ScopeReq); err != nil {
				return err
			}
		}
	}
	return nil
}

// additiveScopes invokes the REQ-scope lowerer over the decl's per-kind
// additive symbol tables (role-attribute and type-attribute additions,
// aggregated role-allow rules, and the like), in sorted name order for a
// deterministic rendering.
func (w *BlockWalker) additiveScopes(decl *policy.AvRuleDecl) error {
	for k, names := range decl.Additive {
		kind := policy.SymbolKind(k)
		if kind == policy.SymCommon {
			continue
		}
		sorted := make([]string, 0, len(names))
		for name := range names {
			sorted = append(sorted, name)
		}
		sort.Strings(sorted)
		for _, name := range sorted {
			if err := w.lowerSymbol(kind, name, policy.ScopeReq); err != nil {
				return err
			}
		}
	}
	return nil
}
