package cil

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/selinux-policy/pp2cil/policy"
)

// Options configures a translation run. It is the CLI wrapper's only
// config surface into the translator.
type Options struct {
	// Debug enables phase-boundary trace logging during Translate (see
	// Lowerer.trace), in addition to whatever the process's global logrus
	// level already gates elsewhere (internal/ppsource's buffer-growth
	// messages, for instance).
	Debug bool
}

// Lowerer bundles every piece of state the per-construct lowering
// functions share: the database, the name resolver, the emitter, the
// adjusted module-name prefix, and the monotonic synthesized-attribute
// counter. Threading it explicitly (rather than hiding the counter behind
// a package-level variable) keeps a translation run free of global state.
type Lowerer struct {
	db         *policy.Database
	res        *Resolver
	e          *Emitter
	moduleName string
	attrCount  int
	opts       Options

	perms policy.PermissionDecoder
	caps  policy.CapabilityNameLookup
}

// NewLowerer builds a Lowerer over db, writing through e and resolving
// class permissions and capability names via perms and caps.
func NewLowerer(db *policy.Database, perms policy.PermissionDecoder, caps policy.CapabilityNameLookup, e *Emitter) *Lowerer {
	return &Lowerer{
		db:         db,
		res:        NewResolver(db),
		e:          e,
		moduleName: policy.NormalizeModuleName(db.Name),
		perms:      perms,
		caps:       caps,
	}
}

// nextAttrID increments and returns the synthesized-attribute counter,
// shared across both type- and role-attribute synthesis.
func (l *Lowerer) nextAttrID() (int, error) {
	if l.attrCount == math.MaxInt {
		return 0, allocationErrorf("synthesized attribute counter overflow")
	}
	l.attrCount++
	return l.attrCount, nil
}

// warn logs an "unsupported but recoverable" diagnostic and continues.
func (l *Lowerer) warn(format string, args ...any) {
	logrus.Warnf(format, args...)
}

// trace logs a translation-phase diagnostic, shown only when Options.Debug
// asked for it. Separate from warn: this never indicates a problem, just
// where in the run we are.
func (l *Lowerer) trace(format string, args ...any) {
	if !l.opts.Debug {
		return
	}
	logrus.Debugf(format, args...)
}
