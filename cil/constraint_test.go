package cil

import (
	"testing"

	"github.com/selinux-policy/pp2cil/policy"
)

func TestSelectAttrPairTargetLeavesSecondOperandEmpty(t *testing.T) {
	a1, a2, err := selectAttrPair(policy.AttrUser | policy.AttrTarget)
	if err != nil {
		t.Fatal(err)
	}
	if a1 != "u2" || a2 != "" {
		t.Errorf("selectAttrPair(User|Target) = (%q, %q), want (u2, \"\")", a1, a2)
	}
}

func TestSelectAttrPairXTargetLeavesSecondOperandEmpty(t *testing.T) {
	a1, a2, err := selectAttrPair(policy.AttrRole | policy.AttrXTarget)
	if err != nil {
		t.Fatal(err)
	}
	if a1 != "r3" || a2 != "" {
		t.Errorf("selectAttrPair(Role|XTarget) = (%q, %q), want (r3, \"\")", a1, a2)
	}
}

func TestSelectAttrPairTypeAlwaysLeavesSecondOperandEmpty(t *testing.T) {
	a1, a2, err := selectAttrPair(policy.AttrType)
	if err != nil {
		t.Fatal(err)
	}
	if a1 != "t1" || a2 != "" {
		t.Errorf("selectAttrPair(Type) = (%q, %q), want (t1, \"\")", a1, a2)
	}
}

func TestSelectAttrPairLevelBitsBypassBaseSelectors(t *testing.T) {
	a1, a2, err := selectAttrPair(policy.AttrL1H2)
	if err != nil {
		t.Fatal(err)
	}
	if a1 != "l1" || a2 != "h2" {
		t.Errorf("selectAttrPair(L1H2) = (%q, %q), want (l1, h2)", a1, a2)
	}
}

// TestLowerConstraintExprAttrLeafTypeOmitsSecondOperand mirrors pp.c's
// literal "(eq t1 )" rendering for a bare TYPE attribute comparison.
func TestLowerConstraintExprAttrLeafTypeOmitsSecondOperand(t *testing.T) {
	l, _ := newTestLowerer()
	expr := policy.ConstraintExpr{
		{ExprKind: policy.ConstraintExprAttr, Op: policy.ConstraintEq, Attr: policy.AttrType},
	}
	got, err := l.lowerConstraintExpr(expr, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != "(eq t1 )" {
		t.Errorf("lowerConstraintExpr = %q, want (eq t1 )", got)
	}
}

func TestLowerConstraintExprNamesLeaf(t *testing.T) {
	l, _ := newTestLowerer()
	expr := policy.ConstraintExpr{
		{
			ExprKind: policy.ConstraintExprNames,
			Op:       policy.ConstraintEq,
			Attr:     policy.AttrRole,
			Names:    policy.BitmapOf(1),
		},
	}
	got, err := l.lowerConstraintExpr(expr, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != "(eq r1 (r1))" {
		t.Errorf("lowerConstraintExpr = %q, want (eq r1 (r1))", got)
	}
}
