package cil

import (
	"strings"
	"testing"

	"github.com/selinux-policy/pp2cil/policy"
)

func TestLowerClassEmitsDefaults(t *testing.T) {
	l, buf := newTestLowerer()
	l.db.Classes["file"] = &policy.Class{
		Value:        1,
		Permissions:  []string{"read", "write"},
		CommonName:   "file_common",
		DefaultUser:  policy.DefaultSource,
		DefaultRange: policy.DefaultRangeSourceLowHigh,
	}
	if err := l.LowerClass("file", policy.ScopeDecl, 0); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"(class file (read write))",
		"(classcommon file file_common)",
		"(defaultuser file source)",
		"(defaultrange file source low high)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}

func TestLowerClassSkipsReqScope(t *testing.T) {
	l, buf := newTestLowerer()
	l.db.Classes["file"] = &policy.Class{Value: 1, Permissions: []string{"read"}}
	if err := l.LowerClass("file", policy.ScopeReq, 0); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output at REQ scope, got %q", buf.String())
	}
}

func TestLowerTypeAliasEmitsActual(t *testing.T) {
	l, buf := newTestLowerer()
	l.db.Types["alpha"] = &policy.Type{Flavor: policy.TypeFlavorType, Primary: false, Alias: 2}
	if err := l.LowerType("alpha", policy.ScopeDecl, 0); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "(typealias alpha)") {
		t.Errorf("missing typealias: %q", out)
	}
	if !strings.Contains(out, "(typealiasactual alpha beta)") {
		t.Errorf("missing typealiasactual: %q", out)
	}
}

func TestLowerUserNonMLSUsesLiteralDefaults(t *testing.T) {
	l, buf := newTestLowerer()
	l.db.Users["staff_u"] = &policy.User{}
	if err := l.LowerUser("staff_u", policy.ScopeDecl, false, 0); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "(userlevel staff_u (systemlow))") {
		t.Errorf("missing userlevel: %q", out)
	}
	if !strings.Contains(out, "(userrange staff_u ((systemlow)(systemlow)))") {
		t.Errorf("missing userrange: %q", out)
	}
}
