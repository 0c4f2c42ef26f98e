package cil

import (
	"strings"
	"testing"

	"github.com/selinux-policy/pp2cil/policy"
)

func TestExpandTypeSetPlainSkipsSynthesis(t *testing.T) {
	l, buf := newTestLowerer()
	ts := policy.TypeSet{Positive: policy.BitmapOf(0, 2)}
	names, err := l.ExpandTypeSet(ts, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "alpha" || names[1] != "gamma" {
		t.Errorf("ExpandTypeSet = %v, want [alpha gamma]", names)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no synthesized attribute output, got %q", buf.String())
	}
}

// TestExpandTypeSetStarAndCompSynthesizesAttribute is literal seed scenario
// 4: a TypeSet with STAR and COMP and empty bitmaps reduces to (not (all)).
func TestExpandTypeSetStarAndCompSynthesizesAttribute(t *testing.T) {
	l, buf := newTestLowerer()
	ts := policy.TypeSet{Flags: policy.SetStar | policy.SetComp}
	names, err := l.ExpandTypeSet(ts, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || !strings.HasPrefix(names[0], "mymodule_typeattr_") {
		t.Errorf("expected one synthesized name prefixed by module name, got %v", names)
	}
	out := buf.String()
	if !strings.Contains(out, "(typeattribute "+names[0]+")") {
		t.Errorf("missing typeattribute declaration: %q", out)
	}
	if !strings.Contains(out, "(typeattributeset "+names[0]+" (not (all)))") {
		t.Errorf("expected (not (all)) body, got %q", out)
	}
}

func TestExpandRoleSetSynthesizesRoleAttribute(t *testing.T) {
	l, buf := newTestLowerer()
	rs := policy.RoleSet{Positive: policy.BitmapOf(1), Flags: policy.SetStar}
	names, err := l.ExpandRoleSet(rs, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || !strings.HasPrefix(names[0], "mymodule_roleattr_") {
		t.Errorf("expected one synthesized role-attribute name, got %v", names)
	}
	if !strings.Contains(buf.String(), "(roleattribute "+names[0]+")") {
		t.Errorf("missing roleattribute declaration: %q", buf.String())
	}
}

func TestComposeSetBodyPositiveAndNegative(t *testing.T) {
	got := composeSetBody([]string{"a"}, []string{"b"}, 0)
	want := "(and (a) (not (b)))"
	if got != want {
		t.Errorf("composeSetBody = %q, want %q", got, want)
	}
}
