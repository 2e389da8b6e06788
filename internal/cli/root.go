// Package cli wires vcdiff's command-line surface: flag parsing, the
// TEST_VCDIFF environment override, and dispatch into the vcd package.
package cli

import (
	"fmt"
	"os"

	"github.com/db47h/vcdiff"
	"github.com/spf13/cobra"
)

var (
	ignoreFlags []string
	warnFlags   []string
	skipFlags   []string
	stateFlag   bool
	testFlag    bool
)

// exitCode carries the process exit status out of RunE, since cobra itself
// only distinguishes "no error" from "error" and vcdiff needs to preserve
// the three-way 0/1/2 status the tool this package was ported from used.
var exitCode int

// version is what the --version flag reports; bumped manually, there being
// no build-time injection step in this repo.
const version = "1.0"

// NewRootCmd returns the vcdiff root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "vcdiff <file1.vcd> <file2.vcd>",
		Short:   "Compare two Value Change Dump waveform files",
		Version: version,
		Long: `vcdiff compares two VCD waveform files signal by signal and timestamp by
timestamp, reporting every point where the two disagree. It never considers
the register-transfer-level meaning of a signal, only the values actually
recorded in each file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			exitCode = run(args[0], args[1])
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&ignoreFlags, "ignore", "r", nil,
		"relax a structural matching rule: case, type, index (repeatable)")
	cmd.Flags().StringArrayVarP(&warnFlags, "no-warn", "W", nil,
		"disable a diagnostic: no-missing-scope, no-missing-var, no-missing-tstamp, "+
			"no-alias, no-unexp-token, no-size-mismatch, no-type-mismatch, no-all (repeatable)")
	cmd.Flags().StringArrayVarP(&skipFlags, "skip", "S", nil,
		"exclude a scope kind from comparison: module, function, task (repeatable)")
	cmd.Flags().BoolVarP(&stateFlag, "compare-states", "s", false,
		"compare settled values between events instead of raw transitions")
	cmd.Flags().BoolVar(&testFlag, "test", false,
		"emit a per-timestamp hash sum instead of a human-readable diff")

	cmd.AddCommand(newListCmd())

	return cmd
}

// Execute runs the root command and returns the process exit status vcdiff
// should terminate with: 0 for a clean comparison (diffs are reported on
// stdout, not treated as failure), 1 if a file could not be opened, 2 on a
// malformed VCD header, 3 for a CLI usage error.
func Execute() int {
	cmd := NewRootCmd()
	cmd.SilenceUsage = true
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 3
	}
	return exitCode
}

func buildOptions() (vcd.Options, error) {
	opts := vcd.DefaultOptions()

	for _, f := range ignoreFlags {
		if err := opts.ApplyIgnore(f); err != nil {
			return opts, err
		}
	}
	for _, f := range skipFlags {
		if err := opts.ApplySkip(f); err != nil {
			return opts, err
		}
	}
	for _, f := range warnFlags {
		if err := opts.ApplyWarnOff(f); err != nil {
			return opts, err
		}
	}

	opts.CompareStates = stateFlag
	opts.TestMode = testFlag

	// TEST_VCDIFF mirrors the original tool's environment override: force
	// test mode and silence every warning, used by its own regression suite.
	if os.Getenv("TEST_VCDIFF") != "" {
		opts.TestMode = true
		opts.DisableAllWarnings()
	}

	return opts, nil
}

func run(name1, name2 string) int {
	opts, err := buildOptions()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 3
	}

	r1, err := os.Open(name1)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer r1.Close()

	r2, err := os.Open(name2)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer r2.Close()

	f1 := vcd.Open(name1, r1, opts, os.Stderr)
	f2 := vcd.Open(name2, r2, opts, os.Stderr)

	c := vcd.NewComparator(f1, f2, opts, os.Stdout)
	return c.Compare()
}
