package cli

import "testing"

func TestJSONOutputRequested(t *testing.T) {
	cmd := newRootCmd()
	if jsonOutputRequested(cmd) {
		t.Fatal("expected json output to be off by default")
	}
	if err := cmd.PersistentFlags().Set("json", "true"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if !jsonOutputRequested(cmd) {
		t.Fatal("expected json output after setting the flag")
	}
}

func TestJSONOutputRequestedWithoutFlag(t *testing.T) {
	bare := newRootCmd()
	bare.ResetFlags()
	if jsonOutputRequested(bare) {
		t.Fatal("expected false when the flag is not registered")
	}
}
