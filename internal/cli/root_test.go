package cli

import (
	"os"
	"testing"
)

func resetFlags() {
	ignoreFlags = nil
	warnFlags = nil
	skipFlags = nil
	stateFlag = false
	testFlag = false
}

func TestBuildOptionsAppliesFlags(t *testing.T) {
	defer resetFlags()
	resetFlags()
	ignoreFlags = []string{"case", "index"}
	skipFlags = []string{"task"}
	warnFlags = []string{"no-missing-var"}
	stateFlag = true

	opts, err := buildOptions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !opts.IgnoreCase || !opts.IgnoreVarIndex {
		t.Fatal("expected -r case and -r index to be applied")
	}
	if !opts.SkipTask {
		t.Fatal("expected -S task to be applied")
	}
	if opts.WarnMissingVars {
		t.Fatal("expected -Wno-missing-var to be applied")
	}
	if !opts.WarnMissingScopes {
		t.Fatal("unrelated warnings should remain on")
	}
	if !opts.CompareStates {
		t.Fatal("expected --compare-states to be applied")
	}
}

func TestBuildOptionsRejectsUnknownFlag(t *testing.T) {
	defer resetFlags()
	resetFlags()
	ignoreFlags = []string{"bogus"}

	if _, err := buildOptions(); err == nil {
		t.Fatal("expected an error for an unrecognized -r flag")
	}
}

func TestBuildOptionsTestVcdiffEnvOverride(t *testing.T) {
	defer resetFlags()
	resetFlags()
	os.Setenv("TEST_VCDIFF", "1")
	defer os.Unsetenv("TEST_VCDIFF")

	opts, err := buildOptions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !opts.TestMode {
		t.Fatal("TEST_VCDIFF should force test mode")
	}
	if opts.WarnMissingScopes || opts.WarnSizeMismatch {
		t.Fatal("TEST_VCDIFF should disable all warnings")
	}
}
