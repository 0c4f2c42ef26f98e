package cil

import (
	"bytes"
	"fmt"

	"github.com/selinux-policy/pp2cil/policy"
)

// fakePermissions is a stub PermissionDecoder: names[classValue][i] is the
// permission name for bit i of that class's bitmask.
type fakePermissions struct {
	names map[int][]string
}

func (f fakePermissions) PermissionNames(classValue int, bitmask uint32) ([]string, error) {
	names := f.names[classValue]
	var out []string
	for i := 0; i < len(names); i++ {
		if bitmask&(1<<uint(i)) != 0 {
			out = append(out, names[i])
		}
	}
	return out, nil
}

// fakeCaps is a stub CapabilityNameLookup.
type fakeCaps struct {
	names map[int]string
}

func (f fakeCaps) CapabilityName(id int) (string, error) {
	name, ok := f.names[id]
	if !ok {
		return "", fmt.Errorf("unknown capability %d", id)
	}
	return name, nil
}

// newTestLowerer builds a Lowerer over a small fixed symbol universe shared
// by most of this package's tests: three types, three roles, two classes.
func newTestLowerer() (*Lowerer, *bytes.Buffer) {
	db := policy.NewDatabase()
	db.Name = "mymodule"
	db.Symbols[policy.SymType] = policy.SymbolTable{Names: []string{"alpha", "beta", "gamma"}}
	db.Symbols[policy.SymRole] = policy.SymbolTable{Names: []string{"object_r", "r1", "r2"}}
	db.Symbols[policy.SymClass] = policy.SymbolTable{Names: []string{"file", "process"}}
	var buf bytes.Buffer
	e := NewEmitter(&buf)
	l := NewLowerer(db, fakePermissions{}, fakeCaps{}, e)
	return l, &buf
}
