package cil

import (
	"fmt"
	"strings"

	"github.com/selinux-policy/pp2cil/policy"
)

// ExpandTypeSet lowers a TypeSet into a name list, synthesizing a fresh
// typeattribute declaration (written through the emitter at indent) when
// the set carries a negative bitmap or any flag.
func (l *Lowerer) ExpandTypeSet(ts policy.TypeSet, indent int) ([]string, error) {
	if ts.Plain() {
		return l.res.Names(policy.SymType, ts.Positive)
	}
	return l.synthesizeAttr(policy.SymType, ts.Positive, ts.Negative, ts.Flags, indent)
}

// ExpandRoleSet lowers a RoleSet the same way ExpandTypeSet does; roles
// never carry a negative bitmap.
func (l *Lowerer) ExpandRoleSet(rs policy.RoleSet, indent int) ([]string, error) {
	if rs.Plain() {
		return l.res.Names(policy.SymRole, rs.Positive)
	}
	return l.synthesizeAttr(policy.SymRole, rs.Positive, policy.NewBitmap(), rs.Flags, indent)
}

// synthesizeAttr implements §4.3's five numbered steps for whichever
// symbol kind (type or role) is being expanded.
func (l *Lowerer) synthesizeAttr(kind policy.SymbolKind, pos, neg policy.Bitmap, flags policy.SetFlag, indent int) ([]string, error) {
	id, err := l.nextAttrID()
	if err != nil {
		return nil, err
	}

	var infix, declKeyword, setKeyword string
	if kind == policy.SymType {
		infix, declKeyword, setKeyword = "_typeattr_", "typeattribute", "typeattributeset"
	} else {
		infix, declKeyword, setKeyword = "_roleattr_", "roleattribute", "roleattributeset"
	}
	name := fmt.Sprintf("%s%s%d", l.moduleName, infix, id)

	if err := l.e.Line(indent, fmt.Sprintf("(%s %s)", declKeyword, name)); err != nil {
		return nil, err
	}

	posNames, err := l.res.Names(kind, pos)
	if err != nil {
		return nil, err
	}
	negNames, err := l.res.Names(kind, neg)
	if err != nil {
		return nil, err
	}

	body := composeSetBody(posNames, negNames, flags)
	if err := l.e.Line(indent, fmt.Sprintf("(%s %s %s)", setKeyword, name, body)); err != nil {
		return nil, err
	}
	return []string{name}, nil
}

// composeSetBody builds an attributeset's body: optional "(all)" for STAR,
// an outer "(not …)" wrapper for COMP, and inside, the and/not combination
// of the positive and negative name lists (or whichever one is non-empty
// alone).
func composeSetBody(posNames, negNames []string, flags policy.SetFlag) string {
	var inner string
	switch {
	case len(posNames) > 0 && len(negNames) > 0:
		inner = fmt.Sprintf("(and (%s) (not (%s)))", strings.Join(posNames, " "), strings.Join(negNames, " "))
	case len(posNames) > 0:
		inner = fmt.Sprintf("(%s)", strings.Join(posNames, " "))
	case len(negNames) > 0:
		inner = fmt.Sprintf("(not (%s))", strings.Join(negNames, " "))
	default:
		inner = ""
	}

	if flags.Has(policy.SetStar) {
		if inner == "" {
			inner = "(all)"
		} else {
			inner = fmt.Sprintf("(and (all) %s)", inner)
		}
	}

	if flags.Has(policy.SetComp) {
		if inner == "" {
			inner = "(not)"
		} else {
			inner = fmt.Sprintf("(not %s)", inner)
		}
	}

	return inner
}
