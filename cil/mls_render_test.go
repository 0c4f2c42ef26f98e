package cil

import (
	"testing"

	"github.com/selinux-policy/pp2cil/policy"
)

func TestRenderSemanticRangeNonMLSUsesDefaultLiteral(t *testing.T) {
	l, _ := newTestLowerer()
	got, err := l.renderSemanticRange(policy.SemanticMlsRange{}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got != "((systemlow)(systemlow))" {
		t.Errorf("renderSemanticRange = %q, want ((systemlow)(systemlow))", got)
	}
}

func TestRenderSemanticRangeMLSConcatenatesLevels(t *testing.T) {
	l, _ := newTestLowerer()
	l.db.MLS = true
	l.db.Symbols[policy.SymSens] = policy.SymbolTable{Names: []string{"s0"}}
	r := policy.SemanticMlsRange{
		Low:  policy.SemanticMlsLevel{Sens: 1},
		High: policy.SemanticMlsLevel{Sens: 1},
	}
	got, err := l.renderSemanticRange(r, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got != "((s0)(s0))" {
		t.Errorf("renderSemanticRange = %q, want ((s0)(s0))", got)
	}
}

func TestRenderCatSpansRangeAtom(t *testing.T) {
	l, _ := newTestLowerer()
	l.db.Symbols[policy.SymCat] = policy.SymbolTable{Names: []string{"c0", "c1", "c2"}}
	got, err := l.renderCatSpans([]policy.CatSpan{{Low: 1, High: 3}}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got != "c0.c2" {
		t.Errorf("renderCatSpans = %q, want c0.c2", got)
	}
}
