package buildinfo

import "testing"

func TestBinaryVersionDefault(t *testing.T) {
	if BinaryVersion == "" {
		t.Error("BinaryVersion should never be empty; expected build-time value or \"dev\"")
	}
}

func TestModuleVersionDoesNotPanic(t *testing.T) {
	// Value depends on how the test binary was built; only the contract matters.
	_ = ModuleVersion()
}
