package policy

// RoleTransRule is a role_transition rule: for each (role, type) pair in
// the cross product and each class bit set, the lowerer emits one
// roletransition line to NewRole.
type RoleTransRule struct {
	Roles   RoleSet
	Types   TypeSet
	Classes Bitmap // zero-based class indices
	NewRole int    // one-based
}

// RoleAllowRule is a role-allow rule: every role in Roles is allowed to
// every role in NewRoles.
type RoleAllowRule struct {
	Roles    RoleSet
	NewRoles RoleSet
}

// RangeTransRule is a range_transition rule, meaningful only under MLS.
type RangeTransRule struct {
	SourceTypes TypeSet
	TargetTypes TypeSet
	Classes     Bitmap // zero-based class indices
	Range       SemanticMlsRange
}

// FilenameTransRule is a type_transition rule qualified by a filename.
type FilenameTransRule struct {
	SourceTypes TypeSet
	TargetTypes TypeSet
	Class       int // one-based
	Name        string
	NewType     int // one-based
}

// AvRuleBlockFlag carries the OPTIONAL bit a block can set.
type AvRuleBlockFlag uint32

const BlockOptional AvRuleBlockFlag = 1

// AvRuleDecl is one alternative of a block: its own scope snapshots, the
// symbols it additively contributes, and the rule lists attached to it.
type AvRuleDecl struct {
	DeclID int

	Declared ScopeIndex
	Required ScopeIndex

	// Additive holds, per symbol kind, the names this decl contributes
	// outside of a plain declaration (role-attribute/type-attribute
	// additions, aggregated role-allow rules, and the like). Values are
	// symbol-kind-specific and resolved by the corresponding lowerer.
	Additive [numSymbolKinds]map[string]struct{}

	AvRules             []AvRule
	RoleTransitions     []RoleTransRule
	RoleAllows          []RoleAllowRule
	RangeTransitions    []RangeTransRule
	FilenameTransitions []FilenameTransRule
	CondNodes           []CondNode
}

// AvRuleBlock is one node of the global block tree: a possibly-optional
// fragment with one or more decl alternatives (only the first of which is
// supported; extras are dropped with a warning, per the walker's rules).
type AvRuleBlock struct {
	Flags AvRuleBlockFlag
	Decls []*AvRuleDecl
}
