package cil

import (
	"fmt"

	"github.com/selinux-policy/pp2cil/policy"
)

// LowerRoleTransitions lowers a decl's role_transition rules: the cross
// product of roles × types × classes, one roletransition line each.
func (l *Lowerer) LowerRoleTransitions(rules []policy.RoleTransRule, indent int) error {
	for _, r := range rules {
		roleNames, err := l.ExpandRoleSet(r.Roles, indent)
		if err != nil {
			return err
		}
		typeNames, err := l.ExpandTypeSet(r.Types, indent)
		if err != nil {
			return err
		}
		newRole, err := l.res.NameAtValue(policy.SymRole, r.NewRole)
		if err != nil {
			return err
		}
		classBits := r.Classes.Bits()
		for _, role := range roleNames {
			for _, typ := range typeNames {
				for _, classBit := range classBits {
					className, err := l.res.NameAt(policy.SymClass, classBit)
					if err != nil {
						return err
					}
					line := fmt.Sprintf("(roletransition %s %s %s %s)", role, typ, className, newRole)
					if err := l.e.Line(indent, line); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// LowerRoleAllows lowers a decl's role-allow rules: every role in Roles
// is allowed to every role in NewRoles.
func (l *Lowerer) LowerRoleAllows(rules []policy.RoleAllowRule, indent int) error {
	for _, r := range rules {
		fromNames, err := l.ExpandRoleSet(r.Roles, indent)
		if err != nil {
			return err
		}
		toNames, err := l.ExpandRoleSet(r.NewRoles, indent)
		if err != nil {
			return err
		}
		for _, from := range fromNames {
			for _, to := range toNames {
				line := fmt.Sprintf("(roleallow %s %s)", from, to)
				if err := l.e.Line(indent, line); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// LowerRangeTransitions lowers a decl's range_transition rules; a no-op
// unless the database is MLS.
func (l *Lowerer) LowerRangeTransitions(rules []policy.RangeTransRule, indent int) error {
	if !l.db.MLS {
		return nil
	}
	for _, r := range rules {
		srcNames, err := l.ExpandTypeSet(r.SourceTypes, indent)
		if err != nil {
			return err
		}
		tgtNames, err := l.ExpandTypeSet(r.TargetTypes, indent)
		if err != nil {
			return err
		}
		rangeStr, err := l.renderSemanticRange(r.Range, 1)
		if err != nil {
			return err
		}
		classBits := r.Classes.Bits()
		for _, src := range srcNames {
			for _, tgt := range tgtNames {
				for _, classBit := range classBits {
					className, err := l.res.NameAt(policy.SymClass, classBit)
					if err != nil {
						return err
					}
					line := fmt.Sprintf("(rangetransition %s %s %s %s)", src, tgt, className, rangeStr)
					if err := l.e.Line(indent, line); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// LowerFilenameTransitions lowers a decl's filename-qualified
// type_transition rules: the cross product of source × target types.
func (l *Lowerer) LowerFilenameTransitions(rules []policy.FilenameTransRule, indent int) error {
	for _, r := range rules {
		srcNames, err := l.ExpandTypeSet(r.SourceTypes, indent)
		if err != nil {
			return err
		}
		tgtNames, err := l.ExpandTypeSet(r.TargetTypes, indent)
		if err != nil {
			return err
		}
		className, err := l.res.NameAtValue(policy.SymClass, r.Class)
		if err != nil {
			return err
		}
		newTypeName, err := l.res.NameAtValue(policy.SymType, r.NewType)
		if err != nil {
			return err
		}
		for _, src := range srcNames {
			for _, tgt := range tgtNames {
				line := fmt.Sprintf("(typetransition %s %s %s %q %s)", src, tgt, className, r.Name, newTypeName)
				if err := l.e.Line(indent, line); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
