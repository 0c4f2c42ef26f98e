package policy

import "testing"

func TestNormalizeModuleName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty becomes base", "", "base"},
		{"alnum untouched", "mymodule1", "mymodule1"},
		{"dash and dot rewritten", "my-module.v2", "my_module_v2"},
		{"leading digit kept", "123abc", "123abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeModuleName(tt.in); got != tt.want {
				t.Errorf("NormalizeModuleName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSelinuxInitialSIDNamesLength(t *testing.T) {
	if len(SelinuxInitialSIDNames) != 28 {
		t.Errorf("len(SelinuxInitialSIDNames) = %d, want 28", len(SelinuxInitialSIDNames))
	}
}

func TestXenInitialSIDNamesLength(t *testing.T) {
	if len(XenInitialSIDNames) != 11 {
		t.Errorf("len(XenInitialSIDNames) = %d, want 11", len(XenInitialSIDNames))
	}
}
