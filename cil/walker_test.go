package cil

import (
	"strings"
	"testing"

	"github.com/selinux-policy/pp2cil/policy"
)

func TestBlockWalkerClosesAllOptionals(t *testing.T) {
	l, buf := newTestLowerer()
	l.db.Commons["file_common"] = &policy.Common{Permissions: []string{"ioctl"}}
	l.db.Symbols[policy.SymCommon] = policy.SymbolTable{Names: []string{"file_common"}}

	decl := &policy.AvRuleDecl{DeclID: 1}
	block := &policy.AvRuleBlock{Flags: policy.BlockOptional, Decls: []*policy.AvRuleDecl{decl}}

	w := NewBlockWalker(l)
	if err := w.Walk([]*policy.AvRuleBlock{block}, 0); err != nil {
		t.Fatal(err)
	}
	if len(w.stack) != 0 {
		t.Errorf("expected stack fully closed, got depth %d", len(w.stack))
	}
	out := buf.String()
	if !strings.Contains(out, "(optional mymodule_optional_1") {
		t.Errorf("missing optional open line: %q", out)
	}
	if strings.Count(out, "(optional ") != 1 {
		t.Errorf("expected exactly one optional open, got %q", out)
	}
}

func TestBlockWalkerEmitsGlobalScopeOnceForNonOptionalBlock(t *testing.T) {
	l, buf := newTestLowerer()
	l.db.Commons["file_common"] = &policy.Common{Permissions: []string{"ioctl"}}
	l.db.Symbols[policy.SymCommon] = policy.SymbolTable{Names: []string{"file_common"}}

	block1 := &policy.AvRuleBlock{Decls: []*policy.AvRuleDecl{{DeclID: 1}}}
	block2 := &policy.AvRuleBlock{Decls: []*policy.AvRuleDecl{{DeclID: 2}}}

	w := NewBlockWalker(l)
	if err := w.Walk([]*policy.AvRuleBlock{block1, block2}, 0); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if got := strings.Count(out, "(common file_common (ioctl))"); got != 1 {
		t.Errorf("expected common emitted exactly once, got %d in %q", got, out)
	}
}
