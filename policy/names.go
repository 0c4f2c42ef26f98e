package policy

import "strings"

// DefaultLevel is the literal sensitivity name used wherever a context
// needs a level but the policy is non-MLS, or a base module pre-emits its
// default sensitivity.
const DefaultLevel = "systemlow"

// DefaultObject is the literal role name every object context carries.
const DefaultObject = "object_r"

// SelinuxInitialSIDNames is the fixed, order-significant name table SELinux
// initial-sid contexts are resolved against.
var SelinuxInitialSIDNames = []string{
	"null", "kernel", "security", "unlabeled", "fs", "file", "file_labels",
	"init", "any_socket", "port", "netif", "netmsg", "node", "igmp_packet",
	"icmp_socket", "tcp_socket", "sysctl_modprobe", "sysctl", "sysctl_fs",
	"sysctl_kernel", "sysctl_net", "sysctl_net_unix", "sysctl_vm",
	"sysctl_dev", "kmod", "policy", "scmp_packet", "devnull",
}

// XenInitialSIDNames is the fixed, order-significant name table Xen
// initial-sid contexts are resolved against.
var XenInitialSIDNames = []string{
	"null", "xen", "dom0", "domio", "domxen", "unlabeled", "security",
	"ioport", "iomem", "irq", "device",
}

// NormalizeModuleName derives the adjusted module-name prefix used for
// synthesized attribute and optional-block names: an empty (base-module)
// name becomes "base", and every non-alphanumeric rune is rewritten to '_'.
func NormalizeModuleName(name string) string {
	if name == "" {
		name = "base"
	}
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
