package cil

import (
	"fmt"

	"github.com/selinux-policy/pp2cil/policy"
)

func condOpKeyword(op policy.CondOpKind) (string, error) {
	switch op {
	case policy.CondOpOr:
		return "or", nil
	case policy.CondOpAnd:
		return "and", nil
	case policy.CondOpXor:
		return "xor", nil
	case policy.CondOpEq:
		return "eq", nil
	case policy.CondOpNeq:
		return "neq", nil
	default:
		return "", structuralErrorf("unknown conditional operator %d", op)
	}
}

// lowerCondExpr rewrites a postfix CondAtom sequence into a single prefix
// expression string, walking an operand stack of owned strings. Exactly
// one value must remain at the end; any other count is a structural error.
func (l *Lowerer) lowerCondExpr(expr []policy.CondAtom) (string, error) {
	var stack []string
	for _, atom := range expr {
		switch atom.Op {
		case policy.CondOpBool:
			name, err := l.res.NameAtValue(policy.SymBool, atom.BoolIndex)
			if err != nil {
				return "", err
			}
			stack = append(stack, fmt.Sprintf("(%s)", name))
		case policy.CondOpNot:
			if len(stack) < 1 {
				return "", structuralErrorf("conditional expression: not has no operand")
			}
			operand := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stack = append(stack, fmt.Sprintf("(not %s)", operand))
		default:
			op, err := condOpKeyword(atom.Op)
			if err != nil {
				return "", err
			}
			if len(stack) < 2 {
				return "", structuralErrorf("conditional expression: %s missing operands", op)
			}
			right := stack[len(stack)-1]
			left := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			stack = append(stack, fmt.Sprintf("(%s %s %s)", op, left, right))
		}
	}
	if len(stack) != 1 {
		return "", structuralErrorf("conditional expression reduced to %d values, want 1", len(stack))
	}
	return stack[0], nil
}

// LowerCondNode lowers one conditional node: the rewritten expression,
// then an indented (true …) block and/or (false …) block for whichever
// rule lists are non-empty, closed by a final ")" at indent.
func (l *Lowerer) LowerCondNode(node policy.CondNode, indent int) error {
	expr, err := l.lowerCondExpr(node.Expr)
	if err != nil {
		return err
	}

	kind := "booleanif"
	if node.Tunable() {
		kind = "tunableif"
	}

	if err := l.e.Line(indent, fmt.Sprintf("(%s %s", kind, expr)); err != nil {
		return err
	}

	if len(node.TrueRules) > 0 {
		if err := l.e.Line(indent+1, "(true"); err != nil {
			return err
		}
		if err := l.LowerAvRules(node.TrueRules, indent+2); err != nil {
			return err
		}
		if err := l.e.Line(indent+1, ")"); err != nil {
			return err
		}
	}
	if len(node.FalseRules) > 0 {
		if err := l.e.Line(indent+1, "(false"); err != nil {
			return err
		}
		if err := l.LowerAvRules(node.FalseRules, indent+2); err != nil {
			return err
		}
		if err := l.e.Line(indent+1, ")"); err != nil {
			return err
		}
	}

	return l.e.Line(indent, ")")
}

// LowerCondNodes lowers a decl's conditional-node list in order.
func (l *Lowerer) LowerCondNodes(nodes []policy.CondNode, indent int) error {
	for _, n := range nodes {
		if err := l.LowerCondNode(n, indent); err != nil {
			return err
		}
	}
	return nil
}
