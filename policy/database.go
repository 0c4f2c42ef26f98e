package policy

// TargetPlatform selects which ocontext shape and fixed initial-sid name
// table a database uses.
type TargetPlatform int

const (
	TargetSELinux TargetPlatform = iota
	TargetXen
)

// PolicyType distinguishes a base policy from a loadable module.
type PolicyType int

const (
	PolicyBase PolicyType = iota
	PolicyModule
)

// HandleUnknown selects the kernel's behavior on an unknown permission.
type HandleUnknown int

const (
	HandleUnknownDeny HandleUnknown = iota
	HandleUnknownReject
	HandleUnknownAllow
)

// Database is the fully decoded policy database the translator walks. It
// is read-only from the moment a Decoder produces it: nothing under cil/
// mutates any field.
type Database struct {
	// Name is the raw module name as stored (empty for an unnamed base
	// module); NormalizeModuleName derives the adjusted prefix used for
	// synthesized names from it.
	Name string

	PolicyType     PolicyType
	TargetPlatform TargetPlatform
	MLS            bool
	HandleUnknown  HandleUnknown

	// PolicyCaps holds the policy-capability bits set, each resolved to
	// a name via an external CapabilityNameLookup.
	PolicyCaps Bitmap

	// Symbols holds the name tables for all eight symbol kinds, indexed
	// by SymbolKind.
	Symbols [numSymbolKinds]SymbolTable

	Commons map[string]*Common
	Classes map[string]*Class
	Roles   map[string]*Role
	Types   map[string]*Type
	Users   map[string]*User
	Bools   map[string]*Bool
	Sens    map[string]*Sens
	Cats    map[string]*Cat

	// Scope holds, per symbol kind, the per-name scope record.
	Scope [numSymbolKinds]map[string]*ScopeDatum

	// Blocks is the global block-tree root list, in source order.
	Blocks []*AvRuleBlock

	SelinuxOCtx SelinuxOContexts
	XenOCtx     XenOContexts
	GenFS       []GenFSEntry
}

// NewDatabase returns a Database with every map and symbol table
// initialized, ready for a Decoder to populate.
func NewDatabase() *Database {
	db := &Database{
		Commons: make(map[string]*Common),
		Classes: make(map[string]*Class),
		Roles:   make(map[string]*Role),
		Types:   make(map[string]*Type),
		Users:   make(map[string]*User),
		Bools:   make(map[string]*Bool),
		Sens:    make(map[string]*Sens),
		Cats:    make(map[string]*Cat),
	}
	for k := range db.Scope {
		db.Scope[k] = make(map[string]*ScopeDatum)
	}
	return db
}
