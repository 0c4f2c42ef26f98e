package cil

import (
	"fmt"

	"github.com/selinux-policy/pp2cil/policy"
)

// LowerCommon lowers a common permission set. Commons are emitted only at
// global scope (the block walker's step 3), never per-decl.
func (l *Lowerer) LowerCommon(name string, indent int) error {
	c, ok := l.db.Commons[name]
	if !ok {
		return structuralErrorf("common %q not found", name)
	}
	return l.e.Line(indent, fmt.Sprintf("(common %s (%s))", name, JoinNames(c.Permissions)))
}

// LowerClass lowers a class declaration: its own permission list, an
// optional classcommon link, default-selection rules, and its constraints
// and validatetrans rules. Classes at REQ scope are skipped entirely.
func (l *Lowerer) LowerClass(name string, scope policy.ScopeKind, indent int) error {
	if scope == policy.ScopeReq {
		return nil
	}
	c, ok := l.db.Classes[name]
	if !ok {
		return structuralErrorf("class %q not found", name)
	}

	if err := l.e.Line(indent, fmt.Sprintf("(class %s (%s))", name, JoinNames(c.Permissions))); err != nil {
		return err
	}
	if c.CommonName != "" {
		if err := l.e.Line(indent, fmt.Sprintf("(classcommon %s %s)", name, c.CommonName)); err != nil {
			return err
		}
	}
	if err := l.lowerClassDefault("defaultuser", name, c.DefaultUser, indent); err != nil {
		return err
	}
	if err := l.lowerClassDefault("defaultrole", name, c.DefaultRole, indent); err != nil {
		return err
	}
	if err := l.lowerClassDefault("defaulttype", name, c.DefaultType, indent); err != nil {
		return err
	}
	if err := l.lowerClassDefaultRange(name, c.DefaultRange, indent); err != nil {
		return err
	}
	if err := l.LowerConstraints(c.Value, c.Constraints, indent); err != nil {
		return err
	}
	return l.LowerValidateTrans(c.Value, c.ValidateTrans, indent)
}

func (l *Lowerer) lowerClassDefault(keyword, name string, base policy.DefaultBase, indent int) error {
	var val string
	switch base {
	case policy.DefaultNone:
		return nil
	case policy.DefaultSource:
		val = "source"
	case policy.DefaultTarget:
		val = "target"
	default:
		return structuralErrorf("unknown default base %d", base)
	}
	return l.e.Line(indent, fmt.Sprintf("(%s %s %s)", keyword, name, val))
}

func (l *Lowerer) lowerClassDefaultRange(name string, dr policy.DefaultRange, indent int) error {
	var val string
	switch dr {
	case policy.DefaultRangeNone:
		return nil
	case policy.DefaultRangeSourceLow:
		val = "source low"
	case policy.DefaultRangeSourceHigh:
		val = "source high"
	case policy.DefaultRangeSourceLowHigh:
		val = "source low high"
	case policy.DefaultRangeTargetLow:
		val = "target low"
	case policy.DefaultRangeTargetHigh:
		val = "target high"
	case policy.DefaultRangeTargetLowHigh:
		val = "target low high"
	default:
		return structuralErrorf("unknown default_range code %d", dr)
	}
	return l.e.Line(indent, fmt.Sprintf("(defaultrange %s %s)", name, val))
}

// LowerRole lowers a role or role-attribute declaration.
func (l *Lowerer) LowerRole(name string, scope policy.ScopeKind, indent int) error {
	r, ok := l.db.Roles[name]
	if !ok {
		return structuralErrorf("role %q not found", name)
	}

	if r.Dominates.Cardinality() > 1 {
		l.warn("role %s: dominance with more than one role is unsupported by the target language, dropping", name)
	}

	switch r.Flavor {
	case policy.RoleFlavorRole:
		if scope == policy.ScopeDecl && l.db.PolicyType == policy.PolicyModule {
			return l.e.Line(indent, fmt.Sprintf("(role %s)", name))
		}
		if err := l.lowerRoleTypes(name, r.Types, indent); err != nil {
			return err
		}
		return l.lowerRoleBounds(name, r.Bounds, indent)

	case policy.RoleFlavorAttrib:
		if scope == policy.ScopeDecl {
			if err := l.e.Line(indent, fmt.Sprintf("(roleattribute %s)", name)); err != nil {
				return err
			}
		}
		if !r.Roles.Empty() {
			roleNames, err := l.res.Names(policy.SymRole, r.Roles)
			if err != nil {
				return err
			}
			if err := l.e.Line(indent, fmt.Sprintf("(roleattributeset %s (%s))", name, JoinNames(roleNames))); err != nil {
				return err
			}
		}
		if err := l.lowerRoleTypes(name, r.Types, indent); err != nil {
			return err
		}
		return l.lowerRoleBounds(name, r.Bounds, indent)

	default:
		return structuralErrorf("unknown role flavor %d", r.Flavor)
	}
}

func (l *Lowerer) lowerRoleTypes(name string, ts policy.TypeSet, indent int) error {
	typeNames, err := l.ExpandTypeSet(ts, indent)
	if err != nil {
		return err
	}
	for _, t := range typeNames {
		if err := l.e.Line(indent, fmt.Sprintf("(roletype %s %s)", name, t)); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lowerer) lowerRoleBounds(name string, bounds int, indent int) error {
	if bounds == 0 {
		return nil
	}
	boundName, err := l.res.NameAtValue(policy.SymRole, bounds)
	if err != nil {
		return err
	}
	return l.e.Line(indent, fmt.Sprintf("(rolebounds %s %s)", name, boundName))
}

// LowerType lowers a type, type-alias, or type-attribute declaration.
func (l *Lowerer) LowerType(name string, scope policy.ScopeKind, indent int) error {
	t, ok := l.db.Types[name]
	if !ok {
		return structuralErrorf("type %q not found", name)
	}

	switch t.Flavor {
	case policy.TypeFlavorType:
		if scope != policy.ScopeDecl {
			return nil
		}
		if t.Primary {
			if err := l.e.Line(indent, fmt.Sprintf("(type %s)", name)); err != nil {
				return err
			}
			if err := l.e.Line(indent, fmt.Sprintf("(roletype %s %s)", policy.DefaultObject, name)); err != nil {
				return err
			}
		} else {
			actualName, err := l.res.NameAtValue(policy.SymType, t.Alias)
			if err != nil {
				return err
			}
			if err := l.e.Line(indent, fmt.Sprintf("(typealias %s)", name)); err != nil {
				return err
			}
			if err := l.e.Line(indent, fmt.Sprintf("(typealiasactual %s %s)", name, actualName)); err != nil {
				return err
			}
		}
		if t.Flags&policy.TypePermissive != 0 {
			if err := l.e.Line(indent, fmt.Sprintf("(typepermissive %s)", name)); err != nil {
				return err
			}
		}
		if t.Bounds > 0 {
			boundName, err := l.res.NameAtValue(policy.SymType, t.Bounds)
			if err != nil {
				return err
			}
			if err := l.e.Line(indent, fmt.Sprintf("(typebounds %s %s)", boundName, name)); err != nil {
				return err
			}
		}
		return nil

	case policy.TypeFlavorAttrib:
		if scope != policy.ScopeDecl {
			return nil
		}
		if err := l.e.Line(indent, fmt.Sprintf("(typeattribute %s)", name)); err != nil {
			return err
		}
		if !t.Types.Empty() {
			typeNames, err := l.res.Names(policy.SymType, t.Types)
			if err != nil {
				return err
			}
			if err := l.e.Line(indent, fmt.Sprintf("(typeattributeset %s (%s))", name, JoinNames(typeNames))); err != nil {
				return err
			}
		}
		return nil

	default:
		return structuralErrorf("unknown type flavor %d", t.Flavor)
	}
}

// LowerUser lowers a user declaration. optional is true when the
// containing block carries the OPTIONAL flag, which shifts the index offset
// of the semantic levels' sensitivities from 1 to 0.
func (l *Lowerer) LowerUser(name string, scope policy.ScopeKind, optional bool, indent int) error {
	if scope != policy.ScopeDecl {
		return nil
	}
	u, ok := l.db.Users[name]
	if !ok {
		return structuralErrorf("user %q not found", name)
	}

	if err := l.e.Line(indent, fmt.Sprintf("(user %s)", name)); err != nil {
		return err
	}
	if err := l.e.Line(indent, fmt.Sprintf("(userrole %s %s)", name, policy.DefaultObject)); err != nil {
		return err
	}
	roleNames, err := l.res.Names(policy.SymRole, u.Roles)
	if err != nil {
		return err
	}
	for _, r := range roleNames {
		if err := l.e.Line(indent, fmt.Sprintf("(userrole %s %s)", name, r)); err != nil {
			return err
		}
	}

	if !l.db.MLS {
		if err := l.e.Line(indent, fmt.Sprintf("(userlevel %s (%s))", name, policy.DefaultLevel)); err != nil {
			return err
		}
		return l.e.Line(indent, fmt.Sprintf("(userrange %s %s)", name, defaultRangeLiteral()))
	}

	offset := 1
	if optional {
		offset = 0
	}
	levelStr, err := l.renderSemanticLevel(u.DefaultLevel, offset)
	if err != nil {
		return err
	}
	if err := l.e.Line(indent, fmt.Sprintf("(userlevel %s %s)", name, levelStr)); err != nil {
		return err
	}
	rangeStr, err := l.renderSemanticRange(u.Range, offset)
	if err != nil {
		return err
	}
	return l.e.Line(indent, fmt.Sprintf("(userrange %s %s)", name, rangeStr))
}

// LowerBool lowers a boolean or tunable declaration.
func (l *Lowerer) LowerBool(name string, scope policy.ScopeKind, indent int) error {
	if scope != policy.ScopeDecl {
		return nil
	}
	b, ok := l.db.Bools[name]
	if !ok {
		return structuralErrorf("bool %q not found", name)
	}
	keyword := "boolean"
	if b.Flags&policy.BoolTunable != 0 {
		keyword = "tunable"
	}
	state := "false"
	if b.State {
		state = "true"
	}
	return l.e.Line(indent, fmt.Sprintf("(%s %s %s)", keyword, name, state))
}

// LowerSens lowers a sensitivity or sensitivity-alias declaration.
func (l *Lowerer) LowerSens(name string, scope policy.ScopeKind, indent int) error {
	if scope != policy.ScopeDecl {
		return nil
	}
	s, ok := l.db.Sens[name]
	if !ok {
		return structuralErrorf("sensitivity %q not found", name)
	}
	if s.IsAlias {
		actualName, err := l.res.NameAtValue(policy.SymSens, s.Actual)
		if err != nil {
			return err
		}
		if err := l.e.Line(indent, fmt.Sprintf("(sensitivityalias %s)", name)); err != nil {
			return err
		}
		if err := l.e.Line(indent, fmt.Sprintf("(sensitivityaliasactual %s %s)", name, actualName)); err != nil {
			return err
		}
	} else {
		if err := l.e.Line(indent, fmt.Sprintf("(sensitivity %s)", name)); err != nil {
			return err
		}
	}
	if !s.Categories.Empty() {
		catNames, err := l.res.Names(policy.SymCat, s.Categories)
		if err != nil {
			return err
		}
		if err := l.e.Line(indent, fmt.Sprintf("(sensitivitycategory %s (%s))", name, JoinNames(catNames))); err != nil {
			return err
		}
	}
	return nil
}

// LowerCat lowers a category or category-alias declaration.
func (l *Lowerer) LowerCat(name string, scope policy.ScopeKind, indent int) error {
	if scope != policy.ScopeDecl {
		return nil
	}
	c, ok := l.db.Cats[name]
	if !ok {
		return structuralErrorf("category %q not found", name)
	}
	if c.IsAlias {
		actualName, err := l.res.NameAtValue(policy.SymCat, c.Actual)
		if err != nil {
			return err
		}
		if err := l.e.Line(indent, fmt.Sprintf("(categoryalias %s)", name)); err != nil {
			return err
		}
		return l.e.Line(indent, fmt.Sprintf("(categoryaliasactual %s %s)", name, actualName))
	}
	return l.e.Line(indent, fmt.Sprintf("(category %s)", name))
}
