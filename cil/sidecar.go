package cil

import (
	"fmt"
	"strings"
)

// sideCarLines splits a side-car text blob into its logical lines, after
// trimming leading whitespace and discarding blank and "#"-prefixed lines.
func sideCarLines(blob []byte) []string {
	var lines []string
	for _, raw := range strings.Split(string(blob), "\n") {
		trimmed := strings.TrimLeft(raw, " \t")
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		lines = append(lines, strings.TrimRight(trimmed, " \t\r"))
	}
	return lines
}

func fileModeKeyword(mode string) (string, error) {
	switch mode {
	case "":
		return "any", nil
	case "--":
		return "file", nil
	case "-d":
		return "dir", nil
	case "-c":
		return "char", nil
	case "-b":
		return "block", nil
	case "-s":
		return "socket", nil
	case "-p":
		return "pipe", nil
	case "-l":
		return "symlink", nil
	default:
		return "", sideCarErrorf("unknown file_contexts mode %q", mode)
	}
}

// parseContextString splits a raw "u:r:t[:mls-range]" context string.
func parseContextString(s string) (user, role, typ, rangeField string, err error) {
	parts := strings.SplitN(s, ":", 4)
	if len(parts) < 3 {
		return "", "", "", "", sideCarErrorf("malformed security context %q", s)
	}
	user, role, typ = parts[0], parts[1], parts[2]
	if len(parts) == 4 {
		rangeField = parts[3]
	}
	return user, role, typ, rangeField, nil
}

// renderTextLevel renders a raw "sens[:cats]" level string, where cats is
// a comma-joined list of atoms (a category name, or a "lo.hi" range).
func renderTextLevel(s string) (string, error) {
	sens, catsField, hasCats := strings.Cut(s, ":")
	if sens == "" {
		return "", sideCarErrorf("malformed mls level %q", s)
	}
	if !hasCats {
		return fmt.Sprintf("(%s)", sens), nil
	}
	atoms := strings.Split(catsField, ",")
	return fmt.Sprintf("(%s (%s))", sens, strings.Join(atoms, " ")), nil
}

// renderTextRange renders a raw "low[-high]" range string, or the literal
// default range twice when rangeField is empty.
func renderTextRange(rangeField string) (string, error) {
	if rangeField == "" {
		return defaultRangeLiteral(), nil
	}
	low, high, hasHigh := strings.Cut(rangeField, "-")
	if !hasHigh {
		high = low
	}
	lowStr, err := renderTextLevel(low)
	if err != nil {
		return "", err
	}
	highStr, err := renderTextLevel(high)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s%s)", lowStr, highStr), nil
}

// LowerFileContexts parses and re-emits the file_contexts side-car.
func (l *Lowerer) LowerFileContexts(blob []byte, indent int) error {
	for _, line := range sideCarLines(blob) {
		if err := l.lowerFileContextLine(line, indent); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lowerer) lowerFileContextLine(line string, indent int) error {
	fields := strings.Fields(line)
	var regex, modeTok, ctxTok string
	switch len(fields) {
	case 2:
		regex, ctxTok = fields[0], fields[1]
	case 3:
		regex, modeTok, ctxTok = fields[0], fields[1], fields[2]
	default:
		return sideCarErrorf("malformed file_contexts line: %q", line)
	}
	mode, err := fileModeKeyword(modeTok)
	if err != nil {
		return err
	}

	if ctxTok == "<<none>>" {
		return l.e.Line(indent, fmt.Sprintf("(filecon %q \"\" %s ())", regex, mode))
	}

	user, role, typ, rangeField, err := parseContextString(ctxTok)
	if err != nil {
		return err
	}
	rangeStr, err := renderTextRange(rangeField)
	if err != nil {
		return err
	}
	return l.e.Line(indent, fmt.Sprintf("(filecon %q \"\" %s (%s %s %s %s))", regex, mode, user, role, typ, rangeStr))
}

// LowerSEUsers parses and re-emits the seusers side-car.
func (l *Lowerer) LowerSEUsers(blob []byte, indent int) error {
	for _, line := range sideCarLines(blob) {
		if err := l.lowerSEUserLine(line, indent); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lowerer) lowerSEUserLine(line string, indent int) error {
	parts := strings.SplitN(line, ":", 3)
	if len(parts) < 2 {
		return sideCarErrorf("malformed seusers line: %q", line)
	}
	linuxUser, seUser := parts[0], parts[1]
	rangeField := ""
	if len(parts) == 3 {
		rangeField = parts[2]
	}
	rangeStr, err := renderTextRange(rangeField)
	if err != nil {
		return err
	}

	if linuxUser == "__default__" {
		return l.e.Line(indent, fmt.Sprintf("(selinuxuserdefault %s %s)", seUser, rangeStr))
	}
	return l.e.Line(indent, fmt.Sprintf("(selinuxuser %s %s %s)", linuxUser, seUser, rangeStr))
}

// LowerUserExtra parses and re-emits the user_extra side-car.
func (l *Lowerer) LowerUserExtra(blob []byte, indent int) error {
	for _, line := range sideCarLines(blob) {
		if err := l.lowerUserExtraLine(line, indent); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lowerer) lowerUserExtraLine(line string, indent int) error {
	trimmed := strings.TrimSuffix(strings.TrimSpace(line), ";")
	fields := strings.Fields(trimmed)
	if len(fields) != 4 || fields[0] != "user" || fields[2] != "prefix" {
		return sideCarErrorf("malformed user_extra line: %q", line)
	}
	return l.e.Line(indent, fmt.Sprintf("(userprefix %s %s)", fields[1], fields[3]))
}

// LowerNetfilterContexts drops a non-empty netfilter_contexts blob with a
// warning; no downstream consumer is specified for it.
func (l *Lowerer) LowerNetfilterContexts(blob []byte) {
	if len(sideCarLines(blob)) > 0 {
		l.warn("dropping unsupported netfilter_contexts content")
	}
}
