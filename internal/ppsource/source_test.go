package ppsource

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

func TestReadAllGrowingSmall(t *testing.T) {
	want := "hello world"
	got, err := readAllGrowing(strings.NewReader(want))
	if err != nil {
		t.Fatalf("readAllGrowing: %v", err)
	}
	if string(got) != want {
		t.Errorf("readAllGrowing() = %q, want %q", got, want)
	}
}

func TestReadAllGrowingAcrossBoundary(t *testing.T) {
	want := bytes.Repeat([]byte("x"), initialBufferSize+37)
	got, err := readAllGrowing(bytes.NewReader(want))
	if err != nil {
		t.Fatalf("readAllGrowing: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("readAllGrowing() returned %d bytes, want %d", len(got), len(want))
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, io.ErrClosedPipe }

func TestReadAllGrowingReadError(t *testing.T) {
	if _, err := readAllGrowing(errReader{}); err == nil {
		t.Error("expected an error from a failing reader")
	}
}

func TestIsPipeOrSocket(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	isStream, err := isPipeOrSocket(r)
	if err != nil {
		t.Fatalf("isPipeOrSocket: %v", err)
	}
	if !isStream {
		t.Error("expected a pipe read end to report as a stream")
	}

	f, err := os.CreateTemp(t.TempDir(), "ppsource")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()

	isStream, err = isPipeOrSocket(f)
	if err != nil {
		t.Fatalf("isPipeOrSocket: %v", err)
	}
	if isStream {
		t.Error("expected a regular file to not report as a stream")
	}
}
