// Package ppsource prepares a readable byte source for the policy decoder:
// a seekable file is handed over untouched, while a pipe or socket is first
// drained into a growable in-memory buffer, mirroring pp.c's
// ppfile_to_module_package / fp_to_buffer handling of non-seekable input.
package ppsource

import (
	"bytes"
	"fmt"
	"io"
	"os"

	units "github.com/docker/go-units"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// initialBufferSize is the starting capacity of the growable buffer used
// for non-seekable input; it doubles each time it fills.
const initialBufferSize = 128 * 1024

// Load returns a reader presenting f's full content to the decoder. When f
// is a pipe or socket, its content is first drained into a growable
// in-memory buffer; otherwise f is returned directly, since a seekable
// file needs no buffering.
func Load(f *os.File) (io.Reader, error) {
	isStream, err := isPipeOrSocket(f)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}
	if !isStream {
		return f, nil
	}
	buf, err := readAllGrowing(f)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return bytes.NewReader(buf), nil
}

// isPipeOrSocket reports whether f refers to a FIFO or a socket, using a
// raw fstat rather than os.FileInfo.Mode()'s portable bits.
func isPipeOrSocket(f *os.File) (bool, error) {
	var st unix.Stat_t
	if err := unix.Fstat(int(f.Fd()), &st); err != nil {
		return false, err
	}
	switch st.Mode & unix.S_IFMT {
	case unix.S_IFIFO, unix.S_IFSOCK:
		return true, nil
	default:
		return false, nil
	}
}

// readAllGrowing reads r to completion into a buffer that starts at
// initialBufferSize and doubles whenever it fills, logging each doubling.
// A read error at any point is fatal.
func readAllGrowing(r io.Reader) ([]byte, error) {
	buf := make([]byte, 0, initialBufferSize)
	for {
		if len(buf) == cap(buf) {
			grown := make([]byte, len(buf), cap(buf)*2)
			copy(grown, buf)
			buf = grown
			logrus.Debugf("growing input buffer to %s", units.BytesSize(float64(cap(buf))))
		}
		n, err := r.Read(buf[len(buf):cap(buf)])
		buf = buf[:len(buf)+n]
		if err != nil {
			if err == io.EOF {
				return buf, nil
			}
			return nil, err
		}
	}
}
