package cil

import (
	"errors"
	"testing"

	"github.com/selinux-policy/pp2cil/policy"
)

func newTestResolver() *Resolver {
	db := policy.NewDatabase()
	db.Symbols[policy.SymType] = policy.SymbolTable{Names: []string{"alpha", "beta", "gamma"}}
	return NewResolver(db)
}

func TestResolverNameAtValueAppliesOffset(t *testing.T) {
	r := newTestResolver()
	name, err := r.NameAtValue(policy.SymType, 2)
	if err != nil {
		t.Fatal(err)
	}
	if name != "beta" {
		t.Errorf("NameAtValue(2) = %q, want beta", name)
	}
}

func TestResolverNameAtSemanticValueOffsetZero(t *testing.T) {
	r := newTestResolver()
	name, err := r.NameAtSemanticValue(policy.SymType, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if name != "beta" {
		t.Errorf("NameAtSemanticValue(1, offset 0) = %q, want beta", name)
	}
}

func TestResolverNamesAscending(t *testing.T) {
	r := newTestResolver()
	names, err := r.Names(policy.SymType, policy.BitmapOf(2, 0))
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "alpha" || names[1] != "gamma" {
		t.Errorf("Names() = %v, want [alpha gamma]", names)
	}
}

func TestResolverNameAtUnknownIndexIsStructuralError(t *testing.T) {
	r := newTestResolver()
	if _, err := r.NameAt(policy.SymType, 99); !errors.Is(err, ErrStructural) {
		t.Errorf("expected structural error, got %v", err)
	}
}

func TestJoinNames(t *testing.T) {
	if got := JoinNames([]string{"a", "b", "c"}); got != "a b c" {
		t.Errorf("JoinNames = %q, want %q", got, "a b c")
	}
}
