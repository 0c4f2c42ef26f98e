package cil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/selinux-policy/pp2cil/policy"
)

// TestTranslateBaseNonMLSPrelude is literal seed scenario 1: a base,
// non-MLS module with one primary type and one allow rule.
func TestTranslateBaseNonMLSPrelude(t *testing.T) {
	db := policy.NewDatabase()
	db.Name = "mymodule"
	db.Symbols[policy.SymType] = policy.SymbolTable{Names: []string{"alpha"}}
	db.Symbols[policy.SymClass] = policy.SymbolTable{Names: []string{"file"}}
	db.Types["alpha"] = &policy.Type{Flavor: policy.TypeFlavorType, Primary: true}

	decl := &policy.AvRuleDecl{
		DeclID: 1,
		AvRules: []policy.AvRule{
			{
				Kind:   policy.AvRuleAllow,
				Source: policy.TypeSet{Positive: policy.BitmapOf(0)},
				Target: policy.TypeSet{Positive: policy.BitmapOf(0)},
				ClassPerms: []policy.ClassPerm{
					{Class: 1, Perms: policy.AVPermissions(1)},
				},
			},
		},
	}
	decl.Declared.Symbols[policy.SymType] = policy.BitmapOf(0)
	db.Blocks = []*policy.AvRuleBlock{
		{Decls: []*policy.AvRuleDecl{decl}},
	}

	perms := fakePermissions{names: map[int][]string{1: {"read"}}}
	caps := fakeCaps{}

	var buf bytes.Buffer
	if err := Translate(db, nil, perms, caps, Options{}, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"(role object_r)",
		"(mls false)",
		"(type alpha)",
		"(roletype object_r alpha)",
		"(allow alpha alpha (file (read)))",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
}
