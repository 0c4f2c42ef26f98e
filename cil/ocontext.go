package cil

import (
	"fmt"
	"net"

	"github.com/selinux-policy/pp2cil/policy"
)

// LowerOContexts dispatches to the platform-specific ocontext lowerer.
func (l *Lowerer) LowerOContexts(indent int) error {
	switch l.db.TargetPlatform {
	case policy.TargetSELinux:
		return l.lowerSelinuxOContexts(indent)
	case policy.TargetXen:
		return l.lowerXenOContexts(indent)
	default:
		return structuralErrorf("unknown target platform %d", l.db.TargetPlatform)
	}
}

// lowerSelinuxOContexts emits the seven SELinux ocontext slots in their
// fixed order: initial-sids, filesystems, ports, netifs, nodes-v4, fsuse,
// nodes-v6. The filesystems slot is unsupported by the target language.
func (l *Lowerer) lowerSelinuxOContexts(indent int) error {
	if err := l.lowerInitialSIDs(l.db.SelinuxOCtx.InitialSIDs, policy.SelinuxInitialSIDNames, indent); err != nil {
		return err
	}
	if l.db.SelinuxOCtx.Filesystems > 0 {
		l.warn("dropping %d unsupported selinux filesystem ocontext(s)", l.db.SelinuxOCtx.Filesystems)
	}
	if err := l.lowerPorts(l.db.SelinuxOCtx.Ports, indent); err != nil {
		return err
	}
	if err := l.lowerNetifs(l.db.SelinuxOCtx.Netifs, indent); err != nil {
		return err
	}
	if err := l.lowerNodesV4(l.db.SelinuxOCtx.NodesV4, indent); err != nil {
		return err
	}
	if err := l.lowerFSUses(l.db.SelinuxOCtx.FSUses, indent); err != nil {
		return err
	}
	if err := l.lowerNodesV6(l.db.SelinuxOCtx.NodesV6, indent); err != nil {
		return err
	}
	return l.lowerGenFS(indent)
}

// lowerXenOContexts emits the five Xen ocontext slots in their fixed
// order: initial-sids, pirqs, ioports, iomems, pcidevices.
func (l *Lowerer) lowerXenOContexts(indent int) error {
	if err := l.lowerInitialSIDs(l.db.XenOCtx.InitialSIDs, policy.XenInitialSIDNames, indent); err != nil {
		return err
	}
	if err := l.lowerPIRQs(l.db.XenOCtx.PIRQs, indent); err != nil {
		return err
	}
	if err := l.lowerIOPorts(l.db.XenOCtx.IOPorts, indent); err != nil {
		return err
	}
	if err := l.lowerIOMems(l.db.XenOCtx.IOMems, indent); err != nil {
		return err
	}
	if err := l.lowerPCIDevices(l.db.XenOCtx.PCIDevices, indent); err != nil {
		return err
	}
	return l.lowerGenFS(indent)
}

// lowerInitialSIDs emits (sid NAME) and (sidcontext NAME CTX) per entry in
// source order, then a trailing (sidorder (...)) listing the names in the
// reverse of their arrival order.
func (l *Lowerer) lowerInitialSIDs(ctxs []policy.InitialSIDContext, names []string, indent int) error {
	order := make([]string, 0, len(ctxs))
	for _, c := range ctxs {
		if c.SID < 0 || c.SID >= len(names) {
			return structuralErrorf("initial sid %d has no fixed name", c.SID)
		}
		name := names[c.SID]
		if err := l.e.Line(indent, fmt.Sprintf("(sid %s)", name)); err != nil {
			return err
		}
		ctxStr, err := l.renderContext(c.Context)
		if err != nil {
			return err
		}
		if err := l.e.Line(indent, fmt.Sprintf("(sidcontext %s %s)", name, ctxStr)); err != nil {
			return err
		}
		order = append(order, name)
	}
	if len(order) == 0 {
		return nil
	}
	reversed := make([]string, len(order))
	for i, n := range order {
		reversed[len(order)-1-i] = n
	}
	return l.e.Line(indent, fmt.Sprintf("(sidorder (%s))", JoinNames(reversed)))
}

func (l *Lowerer) lowerPorts(ports []policy.PortContext, indent int) error {
	for _, p := range ports {
		proto := "tcp"
		if p.Protocol == policy.ProtocolUDP {
			proto = "udp"
		}
		portStr := fmt.Sprintf("%d", p.Low)
		if p.Low != p.High {
			portStr = fmt.Sprintf("(%d %d)", p.Low, p.High)
		}
		ctxStr, err := l.renderContext(p.Context)
		if err != nil {
			return err
		}
		if err := l.e.Line(indent, fmt.Sprintf("(portcon %s %s %s)", proto, portStr, ctxStr)); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lowerer) lowerNetifs(netifs []policy.NetifContext, indent int) error {
	for _, n := range netifs {
		ifCtx, err := l.renderContext(n.IfContext)
		if err != nil {
			return err
		}
		pktCtx, err := l.renderContext(n.PacketContext)
		if err != nil {
			return err
		}
		if err := l.e.Line(indent, fmt.Sprintf("(netifcon %s %s %s)", n.Name, ifCtx, pktCtx)); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lowerer) lowerNodesV4(nodes []policy.NodeV4Context, indent int) error {
	for _, n := range nodes {
		addr := net.IP(n.Addr[:]).String()
		mask := net.IP(n.Mask[:]).String()
		ctxStr, err := l.renderContext(n.Context)
		if err != nil {
			return err
		}
		if err := l.e.Line(indent, fmt.Sprintf("(nodecon %s %s %s)", addr, mask, ctxStr)); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lowerer) lowerNodesV6(nodes []policy.NodeV6Context, indent int) error {
	for _, n := range nodes {
		addr := net.IP(n.Addr[:]).String()
		mask := net.IP(n.Mask[:]).String()
		ctxStr, err := l.renderContext(n.Context)
		if err != nil {
			return err
		}
		if err := l.e.Line(indent, fmt.Sprintf("(nodecon %s %s %s)", addr, mask, ctxStr)); err != nil {
			return err
		}
	}
	return nil
}

func fsUseBehaviorKeyword(b policy.FSUseBehavior) (string, error) {
	switch b {
	case policy.FSUseXattr:
		return "xattr", nil
	case policy.FSUseTrans:
		return "trans", nil
	case policy.FSUseTask:
		return "task", nil
	default:
		return "", structuralErrorf("unknown fs_use behavior %d", b)
	}
}

func (l *Lowerer) lowerFSUses(uses []policy.FSUseContext, indent int) error {
	for _, u := range uses {
		behavior, err := fsUseBehaviorKeyword(u.Behavior)
		if err != nil {
			return err
		}
		ctxStr, err := l.renderContext(u.Context)
		if err != nil {
			return err
		}
		if err := l.e.Line(indent, fmt.Sprintf("(fsuse %s %s %s)", behavior, u.FSType, ctxStr)); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lowerer) lowerGenFS(indent int) error {
	for _, g := range l.db.GenFS {
		ctxStr, err := l.renderContext(g.Context)
		if err != nil {
			return err
		}
		if err := l.e.Line(indent, fmt.Sprintf("(genfscon %s %s %s)", g.FSType, g.Path, ctxStr)); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lowerer) lowerPIRQs(pirqs []policy.PIRQContext, indent int) error {
	for _, p := range pirqs {
		ctxStr, err := l.renderContext(p.Context)
		if err != nil {
			return err
		}
		if err := l.e.Line(indent, fmt.Sprintf("(pirqcon %d %s)", p.PIRQ, ctxStr)); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lowerer) lowerIOPorts(ports []policy.IOPortContext, indent int) error {
	for _, p := range ports {
		portStr := fmt.Sprintf("%d", p.Low)
		if p.Low != p.High {
			portStr = fmt.Sprintf("(%d %d)", p.Low, p.High)
		}
		ctxStr, err := l.renderContext(p.Context)
		if err != nil {
			return err
		}
		if err := l.e.Line(indent, fmt.Sprintf("(ioportcon %s %s)", portStr, ctxStr)); err != nil {
			return err
		}
	}
	return nil
}

// lowerIOMems renders iomem ranges in upper-case hex; lowerPCIDevices
// renders device addresses in lower-case hex. The asymmetry is the
// source's, preserved verbatim rather than normalized away.
func (l *Lowerer) lowerIOMems(mems []policy.IOMemContext, indent int) error {
	for _, m := range mems {
		var rangeStr string
		if m.Low == m.High {
			rangeStr = fmt.Sprintf("%#X", m.Low)
		} else {
			rangeStr = fmt.Sprintf("(%#X %#X)", m.Low, m.High)
		}
		ctxStr, err := l.renderContext(m.Context)
		if err != nil {
			return err
		}
		if err := l.e.Line(indent, fmt.Sprintf("(iomemcon %s %s)", rangeStr, ctxStr)); err != nil {
			return err
		}
	}
	return nil
}

func (l *Lowerer) lowerPCIDevices(devs []policy.PCIDeviceContext, indent int) error {
	for _, d := range devs {
		ctxStr, err := l.renderContext(d.Context)
		if err != nil {
			return err
		}
		if err := l.e.Line(indent, fmt.Sprintf("(pcidevicecon %#x %s)", d.Device, ctxStr)); err != nil {
			return err
		}
	}
	return nil
}

// LowerPolicyCaps emits one (policycap NAME) per bit set in the database's
// policy-capabilities bitmap. An id with no known name is fatal.
func (l *Lowerer) LowerPolicyCaps(indent int) error {
	for _, bit := range l.db.PolicyCaps.Bits() {
		name, err := l.caps.CapabilityName(bit)
		if err != nil {
			return structuralErrorf("resolve policy capability %d: %v", bit, err)
		}
		if err := l.e.Line(indent, fmt.Sprintf("(policycap %s)", name)); err != nil {
			return err
		}
	}
	return nil
}
