package policy

import "io"

// Decoder parses a serialized policy package and returns the fully
// populated Database plus its embedded text side-cars. Binary parsing
// itself is entirely its concern; the translation core only ever receives
// the result.
type Decoder interface {
	Decode(r io.Reader) (*Database, *SideCars, error)
}

// SideCars holds the four text blobs embedded in a policy package,
// verbatim, for the side-car lowerers to parse.
type SideCars struct {
	FileContexts      []byte
	SEUsers           []byte
	UserExtra         []byte
	NetfilterContexts []byte
}

// PermissionDecoder turns an access-vector bitmask for a given class into
// the ordered list of permission names it sets. Permission bit order is
// defined by the class (and any common it inherits from), which is why
// this is a collaborator rather than something the core bitmask alone can
// answer.
type PermissionDecoder interface {
	PermissionNames(classValue int, bitmask uint32) ([]string, error)
}

// CapabilityNameLookup resolves a policy-capability bit index to its name.
// An id with no known name is a fatal error.
type CapabilityNameLookup interface {
	CapabilityName(id int) (string, error)
}
