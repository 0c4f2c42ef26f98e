package cil

import (
	"fmt"
	"io"

	"github.com/selinux-policy/pp2cil/policy"
)

func handleUnknownKeyword(h policy.HandleUnknown) (string, error) {
	switch h {
	case policy.HandleUnknownDeny:
		return "deny", nil
	case policy.HandleUnknownReject:
		return "reject", nil
	case policy.HandleUnknownAllow:
		return "allow", nil
	default:
		return "", structuralErrorf("unknown handle_unknown code %d", h)
	}
}

// Translate lowers db, plus its text side-cars, into the target textual
// policy language, writing through w. perms and caps resolve the two
// external lookups the database does not carry directly: per-class
// permission bitmasks and policy-capability names.
func Translate(db *policy.Database, sideCars *policy.SideCars, perms policy.PermissionDecoder, caps policy.CapabilityNameLookup, opts Options, w io.Writer) error {
	e := NewEmitter(w)
	l := NewLowerer(db, perms, caps, e)
	l.opts = opts

	if db.PolicyType == policy.PolicyBase {
		l.trace("emitting base prelude")
		if err := l.emitBasePrelude(); err != nil {
			return err
		}
	}
	l.trace("lowering policy capabilities")
	if err := l.LowerPolicyCaps(0); err != nil {
		return err
	}

	l.trace("walking %d top-level block(s)", len(db.Blocks))
	walker := NewBlockWalker(l)
	if err := walker.Walk(db.Blocks, 0); err != nil {
		return err
	}

	l.trace("lowering object contexts")
	if err := l.LowerOContexts(0); err != nil {
		return err
	}

	if sideCars == nil {
		return nil
	}
	l.trace("lowering text side-cars")
	if err := l.LowerFileContexts(sideCars.FileContexts, 0); err != nil {
		return err
	}
	if err := l.LowerSEUsers(sideCars.SEUsers, 0); err != nil {
		return err
	}
	if err := l.LowerUserExtra(sideCars.UserExtra, 0); err != nil {
		return err
	}
	l.LowerNetfilterContexts(sideCars.NetfilterContexts)
	return nil
}

// emitBasePrelude emits the base-module-only top-level declarations: the
// implicit object role, the handle-unknown policy, the mls flag, and —
// when the policy is non-MLS — the default sensitivity and level so that
// downstream contexts can reference systemlow.
func (l *Lowerer) emitBasePrelude() error {
	if err := l.e.Line(0, "(role object_r)"); err != nil {
		return err
	}
	keyword, err := handleUnknownKeyword(l.db.HandleUnknown)
	if err != nil {
		return err
	}
	if err := l.e.Line(0, fmt.Sprintf("(handleunknown %s)", keyword)); err != nil {
		return err
	}
	mls := "false"
	if l.db.MLS {
		mls = "true"
	}
	if err := l.e.Line(0, fmt.Sprintf("(mls %s)", mls)); err != nil {
		return err
	}
	if l.db.MLS {
		return nil
	}
	if err := l.e.Line(0, "(sensitivity s0)"); err != nil {
		return err
	}
	if err := l.e.Line(0, "(sensitivityorder (s0))"); err != nil {
		return err
	}
	return l.e.Line(0, fmt.Sprintf("(level %s (s0))", policy.DefaultLevel))
}
