package policy

// AvRuleKind enumerates the eight rule keywords the AV-rule lowerer knows
// how to emit.
type AvRuleKind int

const (
	AvRuleAllow AvRuleKind = iota
	AvRuleAuditAllow
	AvRuleAuditDeny
	AvRuleDontAudit
	AvRuleNeverAllow
	AvRuleTransition
	AvRuleMember
	AvRuleChange
)

// IsAccessVector reports whether the rule's permission payload is a
// class-relative bitmask (true) or a default-new-type index (false).
func (k AvRuleKind) IsAccessVector() bool {
	switch k {
	case AvRuleAllow, AvRuleAuditAllow, AvRuleAuditDeny, AvRuleDontAudit, AvRuleNeverAllow:
		return true
	case AvRuleTransition, AvRuleMember, AvRuleChange:
		return false
	default:
		return false
	}
}

// permKind tags which variant a Permissions value holds.
type permKind int

const (
	permKindAV permKind = iota
	permKindNewType
)

// Permissions is the tagged variant of an AvRule's per-class payload: an
// access-vector bitmask for {allow,auditallow,auditdeny,dontaudit,neverallow},
// or a default new-type index for {transition,member,change}. The two
// shapes are never confusable at the type level.
type Permissions struct {
	kind      permKind
	bitmask   uint32
	newType   int
}

// AVPermissions builds the access-vector-bitmask variant.
func AVPermissions(bitmask uint32) Permissions {
	return Permissions{kind: permKindAV, bitmask: bitmask}
}

// NewTypePermission builds the default-new-type variant. typeIndex is the
// one-based stored type value; resolving it to a name is the Name
// Resolver's job, not the caller's.
func NewTypePermission(typeIndex int) Permissions {
	return Permissions{kind: permKindNewType, newType: typeIndex}
}

// IsAV reports whether this is the access-vector-bitmask variant.
func (p Permissions) IsAV() bool { return p.kind == permKindAV }

// Bitmask returns the access-vector bitmask. Valid only when IsAV.
func (p Permissions) Bitmask() uint32 { return p.bitmask }

// NewType returns the one-based new-type index. Valid only when !IsAV.
func (p Permissions) NewType() int { return p.newType }

// ClassPerm pairs a one-based class value with its permission payload. An
// AvRule carries a list of these, one per class the rule applies to.
type ClassPerm struct {
	Class int
	Perms Permissions
}

// AvRule is a single access-vector or transition-family rule.
type AvRule struct {
	Kind       AvRuleKind
	Source     TypeSet
	Target     TypeSet
	SelfFlag   bool
	ClassPerms []ClassPerm
}
