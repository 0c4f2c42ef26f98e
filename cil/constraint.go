package cil

import (
	"fmt"

	"github.com/selinux-policy/pp2cil/policy"
)

func constraintOpKeyword(op policy.ConstraintOp) (string, error) {
	switch op {
	case policy.ConstraintEq:
		return "eq", nil
	case policy.ConstraintNeq:
		return "neq", nil
	case policy.ConstraintDom:
		return "dom", nil
	case policy.ConstraintDomBy:
		return "domby", nil
	case policy.ConstraintIncomp:
		return "incomp", nil
	default:
		return "", structuralErrorf("unknown constraint operator %d", op)
	}
}

// attrPair picks the attribute-name pair a base selector (user/role/type)
// compares, given the target/xtarget modifier bits. Only the bare USER and
// ROLE cases are true two-attribute comparisons (1 vs 2); every TARGET and
// XTARGET modifier, and every TYPE case regardless of modifier, resolves to
// a single attribute with the second operand left empty.
func attrPair(prefix string, attr policy.ConstraintAttr, pairedWhenBare bool) (string, string) {
	switch {
	case attr.Has(policy.AttrTarget):
		return prefix + "2", ""
	case attr.Has(policy.AttrXTarget):
		return prefix + "3", ""
	default:
		if pairedWhenBare {
			return prefix + "1", prefix + "2"
		}
		return prefix + "1", ""
	}
}

// attr1Only picks the single attribute a NAMES leaf tests against its
// name list.
func attr1Only(prefix string, attr policy.ConstraintAttr) string {
	switch {
	case attr.Has(policy.AttrTarget):
		return prefix + "2"
	case attr.Has(policy.AttrXTarget):
		return prefix + "3"
	default:
		return prefix + "1"
	}
}

func selectAttrPair(attr policy.ConstraintAttr) (string, string, error) {
	switch {
	case attr.Has(policy.AttrL1L2):
		return "l1", "l2", nil
	case attr.Has(policy.AttrL1H2):
		return "l1", "h2", nil
	case attr.Has(policy.AttrH1L2):
		return "h1", "l2", nil
	case attr.Has(policy.AttrH1H2):
		return "h1", "h2", nil
	case attr.Has(policy.AttrL1H1):
		return "l1", "h1", nil
	case attr.Has(policy.AttrL2H2):
		return "l2", "h2", nil
	case attr.Has(policy.AttrUser):
		a1, a2 := attrPair("u", attr, true)
		return a1, a2, nil
	case attr.Has(policy.AttrRole):
		a1, a2 := attrPair("r", attr, true)
		return a1, a2, nil
	case attr.Has(policy.AttrType):
		a1, a2 := attrPair("t", attr, false)
		return a1, a2, nil
	default:
		return "", "", structuralErrorf("unknown constraint attribute %d", attr)
	}
}

func selectAttr1(attr policy.ConstraintAttr) (string, error) {
	switch {
	case attr.Has(policy.AttrUser):
		return attr1Only("u", attr), nil
	case attr.Has(policy.AttrRole):
		return attr1Only("r", attr), nil
	case attr.Has(policy.AttrType):
		return attr1Only("t", attr), nil
	default:
		return "", structuralErrorf("unknown constraint names attribute %d", attr)
	}
}

// lowerConstraintExpr rewrites a postfix ConstraintExpr into a single
// prefix expression string, the same stack algorithm lowerCondExpr uses,
// extended with the two leaf shapes (attribute-pair and attribute/names).
func (l *Lowerer) lowerConstraintExpr(expr policy.ConstraintExpr, indent int) (string, error) {
	var stack []string
	for _, atom := range expr {
		switch atom.ExprKind {
		case policy.ConstraintExprAttr:
			op, err := constraintOpKeyword(atom.Op)
			if err != nil {
				return "", err
			}
			a1, a2, err := selectAttrPair(atom.Attr)
			if err != nil {
				return "", err
			}
			stack = append(stack, fmt.Sprintf("(%s %s %s)", op, a1, a2))

		case policy.ConstraintExprNames:
			op, err := constraintOpKeyword(atom.Op)
			if err != nil {
				return "", err
			}
			a1, err := selectAttr1(atom.Attr)
			if err != nil {
				return "", err
			}
			var names []string
			switch {
			case atom.Attr.Has(policy.AttrType):
				names, err = l.ExpandTypeSet(atom.TypeNames, indent)
			case atom.Attr.Has(policy.AttrRole):
				names, err = l.res.Names(policy.SymRole, atom.Names)
			default:
				names, err = l.res.Names(policy.SymUser, atom.Names)
			}
			if err != nil {
				return "", err
			}
			stack = append(stack, fmt.Sprintf("(%s %s (%s))", op, a1, JoinNames(names)))

		case policy.ConstraintExprNot:
			if len(stack) < 1 {
				return "", structuralErrorf("constraint expression: not has no operand")
			}
			operand := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stack = append(stack, fmt.Sprintf("(not %s)", operand))

		case policy.ConstraintExprAnd, policy.ConstraintExprOr:
			if len(stack) < 2 {
				return "", structuralErrorf("constraint expression missing operands")
			}
			op := "and"
			if atom.ExprKind == policy.ConstraintExprOr {
				op = "or"
			}
			right := stack[len(stack)-1]
			left := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			stack = append(stack, fmt.Sprintf("(%s %s %s)", op, left, right))

		default:
			return "", structuralErrorf("unknown constraint expression kind %d", atom.ExprKind)
		}
	}
	if len(stack) != 1 {
		return "", structuralErrorf("constraint expression reduced to %d values, want 1", len(stack))
	}
	return stack[0], nil
}

// LowerConstraints lowers a class's constrain rules. The "mls" prefix is
// present if and only if the database's MLS flag is set.
func (l *Lowerer) LowerConstraints(classValue int, nodes []policy.ConstraintNode, indent int) error {
	className, err := l.res.NameAtValue(policy.SymClass, classValue)
	if err != nil {
		return err
	}
	keyword := "constrain"
	if l.db.MLS {
		keyword = "mlsconstrain"
	}
	for _, n := range nodes {
		permNames, err := l.perms.PermissionNames(classValue, n.Permissions)
		if err != nil {
			return structuralErrorf("resolve constraint permissions for class %s: %v", className, err)
		}
		expr, err := l.lowerConstraintExpr(n.Expr, indent)
		if err != nil {
			return err
		}
		line := fmt.Sprintf("(%s (%s (%s)) %s)", keyword, className, JoinNames(permNames), expr)
		if err := l.e.Line(indent, line); err != nil {
			return err
		}
	}
	return nil
}

// LowerValidateTrans lowers a class's validatetrans rules.
func (l *Lowerer) LowerValidateTrans(classValue int, nodes []policy.ConstraintNode, indent int) error {
	className, err := l.res.NameAtValue(policy.SymClass, classValue)
	if err != nil {
		return err
	}
	keyword := "validatetrans"
	if l.db.MLS {
		keyword = "mlsvalidatetrans"
	}
	for _, n := range nodes {
		expr, err := l.lowerConstraintExpr(n.Expr, indent)
		if err != nil {
			return err
		}
		line := fmt.Sprintf("(%s %s %s)", keyword, className, expr)
		if err := l.e.Line(indent, line); err != nil {
			return err
		}
	}
	return nil
}
