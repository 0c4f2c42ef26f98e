package cil

import (
	"fmt"

	"github.com/selinux-policy/pp2cil/policy"
)

// avRuleKeyword maps an AvRuleKind to its target-language keyword. The
// source's "auditdenty" misspelling (a bug, not a format requirement — see
// the design log) is corrected to "auditdeny" here.
func avRuleKeyword(kind policy.AvRuleKind) (string, error) {
	switch kind {
	case policy.AvRuleAllow:
		return "allow", nil
	case policy.AvRuleAuditAllow:
		return "auditallow", nil
	case policy.AvRuleAuditDeny:
		return "auditdeny", nil
	case policy.AvRuleDontAudit:
		return "dontaudit", nil
	case policy.AvRuleNeverAllow:
		return "neverallow", nil
	case policy.AvRuleTransition:
		return "typetransition", nil
	case policy.AvRuleMember:
		return "typemember", nil
	case policy.AvRuleChange:
		return "typechange", nil
	default:
		return "", structuralErrorf("unknown av-rule kind %d", kind)
	}
}

// LowerAvRules lowers each rule in rules, in order, at the given indent.
func (l *Lowerer) LowerAvRules(rules []policy.AvRule, indent int) error {
	for _, r := range rules {
		if err := l.lowerAvRule(r, indent); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lowerer) lowerAvRule(r policy.AvRule, indent int) error {
	keyword, err := avRuleKeyword(r.Kind)
	if err != nil {
		return err
	}

	srcNames, err := l.ExpandTypeSet(r.Source, indent)
	if err != nil {
		return err
	}
	tgtNames, err := l.ExpandTypeSet(r.Target, indent)
	if err != nil {
		return err
	}
	if r.SelfFlag {
		tgtNames = append(append([]string{}, tgtNames...), "self")
	}

	for _, src := range srcNames {
		for _, tgt := range tgtNames {
			for _, cp := range r.ClassPerms {
				if err := l.emitOneAvRule(keyword, r.Kind, src, tgt, cp, indent); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (l *Lowerer) emitOneAvRule(keyword string, kind policy.AvRuleKind, src, tgt string, cp policy.ClassPerm, indent int) error {
	className, err := l.res.NameAtValue(policy.SymClass, cp.Class)
	if err != nil {
		return err
	}

	if kind.IsAccessVector() {
		permNames, err := l.perms.PermissionNames(cp.Class, cp.Perms.Bitmask())
		if err != nil {
			return structuralErrorf("resolve permissions for class %s: %v", className, err)
		}
		line := fmt.Sprintf("(%s %s %s (%s (%s)))", keyword, src, tgt, className, JoinNames(permNames))
		return l.e.Line(indent, line)
	}

	newTypeName, err := l.res.NameAtValue(policy.SymType, cp.Perms.NewType())
	if err != nil {
		return err
	}
	line := fmt.Sprintf("(%s %s %s %s %s)", keyword, src, tgt, className, newTypeName)
	return l.e.Line(indent, line)
}
