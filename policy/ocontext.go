package policy

// ProtocolKind distinguishes a port ocontext's protocol.
type ProtocolKind int

const (
	ProtocolTCP ProtocolKind = iota
	ProtocolUDP
)

// FSUseBehavior enumerates the three fs_use behaviors the target language
// can express.
type FSUseBehavior int

const (
	FSUseXattr FSUseBehavior = iota
	FSUseTrans
	FSUseTask
)

// InitialSIDContext binds a fixed numeric initial-sid id to its context.
// Name resolution against the platform's fixed name table happens in the
// ocontext lowerer, not here.
type InitialSIDContext struct {
	SID     int // zero-based index into the platform's fixed name table
	Context SecurityContext
}

// PortContext is a TCP/UDP port range ocontext.
type PortContext struct {
	Protocol ProtocolKind
	Low      uint16
	High     uint16
	Context  SecurityContext
}

// NetifContext carries the two contexts (interface, packet) of a netif
// ocontext.
type NetifContext struct {
	Name          string
	IfContext     SecurityContext
	PacketContext SecurityContext
}

// NodeV4Context is an IPv4 node/mask ocontext.
type NodeV4Context struct {
	Addr    [4]byte
	Mask    [4]byte
	Context SecurityContext
}

// NodeV6Context is an IPv6 node/mask ocontext.
type NodeV6Context struct {
	Addr    [16]byte
	Mask    [16]byte
	Context SecurityContext
}

// FSUseContext is an fs_use ocontext.
type FSUseContext struct {
	Behavior FSUseBehavior
	FSType   string
	Context  SecurityContext
}

// GenFSEntry is a single genfscon entry.
type GenFSEntry struct {
	FSType  string
	Path    string
	Context SecurityContext
}

// PIRQContext is a Xen PIRQ ocontext.
type PIRQContext struct {
	PIRQ    int
	Context SecurityContext
}

// IOPortContext is a Xen I/O port range ocontext.
type IOPortContext struct {
	Low, High uint32
	Context   SecurityContext
}

// IOMemContext is a Xen I/O memory range ocontext.
type IOMemContext struct {
	Low, High uint64
	Context   SecurityContext
}

// PCIDeviceContext is a Xen PCI device ocontext.
type PCIDeviceContext struct {
	Device  uint64
	Context SecurityContext
}

// SelinuxOContexts holds the SELinux-platform ocontext slots, in the fixed
// emission order: initial-sids, filesystems, ports, netifs, nodes-v4,
// fsuse, nodes-v6.
type SelinuxOContexts struct {
	InitialSIDs []InitialSIDContext
	Filesystems int // count only; the slot is unsupported and dropped with a warning
	Ports       []PortContext
	Netifs      []NetifContext
	NodesV4     []NodeV4Context
	FSUses      []FSUseContext
	NodesV6     []NodeV6Context
}

// XenOContexts holds the Xen-platform ocontext slots, in the fixed
// emission order: initial-sids, pirqs, ioports, iomems, pcidevices.
type XenOContexts struct {
	InitialSIDs []InitialSIDContext
	PIRQs       []PIRQContext
	IOPorts     []IOPortContext
	IOMems      []IOMemContext
	PCIDevices  []PCIDeviceContext
}
