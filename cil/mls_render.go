package cil

import (
	"fmt"
	"strings"

	"github.com/selinux-policy/pp2cil/policy"
)

// defaultRangeLiteral is emitted in place of any expanded range when the
// policy is non-MLS.
func defaultRangeLiteral() string {
	return fmt.Sprintf("((%s)(%s))", policy.DefaultLevel, policy.DefaultLevel)
}

// renderCatSpans resolves a semantic level's category spans to names,
// rendering a span as a bare name when Low == High or as a "lo.hi" range
// token otherwise, space-joined.
func (l *Lowerer) renderCatSpans(spans []policy.CatSpan, offset int) (string, error) {
	atoms := make([]string, 0, len(spans))
	for _, s := range spans {
		low, err := l.res.NameAtSemanticValue(policy.SymCat, s.Low, offset)
		if err != nil {
			return "", err
		}
		if s.Low == s.High {
			atoms = append(atoms, low)
			continue
		}
		high, err := l.res.NameAtSemanticValue(policy.SymCat, s.High, offset)
		if err != nil {
			return "", err
		}
		atoms = append(atoms, low+"."+high)
	}
	return strings.Join(atoms, " "), nil
}

// renderSemanticLevel renders a SemanticMlsLevel: "(<sens>)" with no
// categories, or "(<sens> (<cats>))". The given index offset applies to the
// sensitivity; categories always resolve with offset 1.
func (l *Lowerer) renderSemanticLevel(level policy.SemanticMlsLevel, offset int) (string, error) {
	sensName, err := l.res.NameAtSemanticValue(policy.SymSens, level.Sens, offset)
	if err != nil {
		return "", err
	}
	if len(level.Cats) == 0 {
		return fmt.Sprintf("(%s)", sensName), nil
	}
	cats, err := l.renderCatSpans(level.Cats, 1)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s (%s))", sensName, cats), nil
}

// renderSemanticRange renders a SemanticMlsRange as its low and high
// levels concatenated directly inside one outer pair of parens, or the
// literal default range twice when the policy is non-MLS.
func (l *Lowerer) renderSemanticRange(r policy.SemanticMlsRange, offset int) (string, error) {
	if !l.db.MLS {
		return defaultRangeLiteral(), nil
	}
	low, err := l.renderSemanticLevel(r.Low, offset)
	if err != nil {
		return "", err
	}
	high, err := l.renderSemanticLevel(r.High, offset)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s%s)", low, high), nil
}

// renderLevel renders a fully resolved MlsLevel the way renderSemanticLevel
// renders a SemanticMlsLevel, but against the zero-based Cats bitmap a
// resolved security context carries.
func (l *Lowerer) renderLevel(level policy.MlsLevel) (string, error) {
	sensName, err := l.res.NameAtValue(policy.SymSens, level.Sens)
	if err != nil {
		return "", err
	}
	if level.Cats.Empty() {
		return fmt.Sprintf("(%s)", sensName), nil
	}
	catNames, err := l.res.Names(policy.SymCat, level.Cats)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s (%s))", sensName, JoinNames(catNames)), nil
}

// renderRange renders a fully resolved MlsRange, or the literal default
// range twice when the policy is non-MLS.
func (l *Lowerer) renderRange(r policy.MlsRange) (string, error) {
	if !l.db.MLS {
		return defaultRangeLiteral(), nil
	}
	low, err := l.renderLevel(r.Low)
	if err != nil {
		return "", err
	}
	high, err := l.renderLevel(r.High)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s%s)", low, high), nil
}

// renderContext renders a fully resolved SecurityContext as
// "(<user> <role> <type> (<low><high>))".
func (l *Lowerer) renderContext(c policy.SecurityContext) (string, error) {
	userName, err := l.res.NameAtValue(policy.SymUser, c.User)
	if err != nil {
		return "", err
	}
	roleName, err := l.res.NameAtValue(policy.SymRole, c.Role)
	if err != nil {
		return "", err
	}
	typeName, err := l.res.NameAtValue(policy.SymType, c.Type)
	if err != nil {
		return "", err
	}
	rangeStr, err := l.renderRange(c.Range)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s %s %s %s)", userName, roleName, typeName, rangeStr), nil
}
