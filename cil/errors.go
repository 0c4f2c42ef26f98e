package cil

import (
	"errors"
	"fmt"
)

// The four fatal error classes a translation run can abort with. Wrap one
// of these with fmt.Errorf("%w: ...", ErrX) (or the matching helper below)
// so a caller can errors.Is-match the class.
var (
	ErrIO         = errors.New("i/o error")
	ErrStructural = errors.New("structural error")
	ErrAllocation = errors.New("allocation failure")
	ErrSideCar    = errors.New("invalid side-car line")
)

func ioErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIO, fmt.Sprintf(format, args...))
}

func structuralErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrStructural, fmt.Sprintf(format, args...))
}

func allocationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrAllocation, fmt.Sprintf(format, args...))
}

func sideCarErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSideCar, fmt.Sprintf(format, args...))
}
