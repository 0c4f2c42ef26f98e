package cil

import (
	"bytes"
	"testing"
)

func TestEmitterLineIndents(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmitter(&buf)
	if err := e.Line(0, "(role object_r)"); err != nil {
		t.Fatal(err)
	}
	if err := e.Line(2, "(type foo)"); err != nil {
		t.Fatal(err)
	}
	want := "(role object_r)\n        (type foo)\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestEmitterLineAtTracksIndentLevel(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmitter(&buf)
	e.Indent(1)
	if err := e.LineAt("(foo)"); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "    (foo)\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if e.Level() != 1 {
		t.Errorf("Level() = %d, want 1", e.Level())
	}
}
