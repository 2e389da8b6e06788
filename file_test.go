package vcd

import (
	"strings"
	"testing"
)

func mustFile(t *testing.T, text string, opts Options) *File {
	t.Helper()
	f := Open("t.vcd", strings.NewReader(text), opts, nil)
	if err := f.ParseHeader(); err != nil {
		t.Fatalf("ParseHeader() error: %v", err)
	}
	return f
}

func TestParseHeaderBuildsScopeTree(t *testing.T) {
	f := mustFile(t, `$timescale 1 ns $end
$scope module top $end
$scope module child $end
$var wire 1 ! a $end
$upscope $end
$upscope $end
$enddefinitions $end
`, DefaultOptions())

	top, ok := f.RootScope().GetScope("top")
	if !ok {
		t.Fatal("expected a \"top\" scope under root")
	}
	child, ok := top.GetScope("child")
	if !ok {
		t.Fatal("expected a \"child\" scope under top")
	}
	if _, ok := child.GetVariable("a"); !ok {
		t.Fatal("expected variable \"a\" in child scope")
	}
	if f.Timescale() != -9 {
		t.Fatalf("Timescale() = %d, want -9 for \"1 ns\"", f.Timescale())
	}
}

func TestParseHeaderFoldsNamesToLowercaseByDefault(t *testing.T) {
	f := mustFile(t, `$scope module TOP $end
$var wire 1 ! MySignal $end
$upscope $end
$enddefinitions $end
`, DefaultOptions())

	if _, ok := f.RootScope().GetScope("top"); !ok {
		t.Fatal("expected scope name folded to lowercase")
	}
	top, _ := f.RootScope().GetScope("top")
	if _, ok := top.GetVariable("mysignal"); !ok {
		t.Fatal("expected variable name folded to lowercase")
	}
}

func TestParseHeaderIgnoreCasePreservesOriginalCase(t *testing.T) {
	opts := DefaultOptions()
	opts.IgnoreCase = true
	f := mustFile(t, `$scope module TOP $end
$var wire 1 ! MySignal $end
$upscope $end
$enddefinitions $end
`, opts)

	if _, ok := f.RootScope().GetScope("TOP"); !ok {
		t.Fatal("expected scope name preserved under IgnoreCase")
	}
}

func TestParseHeaderSecondNameSharingIdentBecomesAlias(t *testing.T) {
	f := mustFile(t, `$scope module top $end
$var wire 1 ! original $end
$var wire 1 ! mirror $end
$upscope $end
$enddefinitions $end
`, DefaultOptions())

	top, _ := f.RootScope().GetScope("top")
	mirror, ok := top.GetVariable("mirror")
	if !ok {
		t.Fatal("expected variable \"mirror\"")
	}
	alias, ok := mirror.(*Alias)
	if !ok {
		t.Fatalf("expected \"mirror\" to be an Alias, got %T", mirror)
	}
	original, _ := top.GetVariable("original")
	if alias.Target() != original {
		t.Fatal("expected mirror's alias target to be the \"original\" variable")
	}
}

func TestParseHeaderSingleIndexBuildsVectorIncrementally(t *testing.T) {
	f := mustFile(t, `$scope module top $end
$var wire 1 ! data [0] $end
$var wire 1 " data [1] $end
$upscope $end
$enddefinitions $end
`, DefaultOptions())

	top, _ := f.RootScope().GetScope("top")
	data, ok := top.GetVariable("data")
	if !ok {
		t.Fatal("expected variable \"data\"")
	}
	vec, ok := data.(*Vector)
	if !ok {
		t.Fatalf("expected \"data\" to be a Vector, got %T", data)
	}
	if vec.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", vec.Size())
	}
}

func TestParseHeaderExplicitRangeBuildsFilledVector(t *testing.T) {
	f := mustFile(t, `$scope module top $end
$var reg 4 ! data [3:0] $end
$upscope $end
$enddefinitions $end
`, DefaultOptions())

	top, _ := f.RootScope().GetScope("top")
	data, _ := top.GetVariable("data")
	vec := data.(*Vector)
	if vec.Size() != 4 {
		t.Fatalf("Size() = %d, want 4", vec.Size())
	}
	if vec.LeftIdx() != 3 || vec.RightIdx() != 0 {
		t.Fatalf("range = [%d:%d], want [3:0]", vec.LeftIdx(), vec.RightIdx())
	}
}

func TestNextDeltaAdvancesTimestampsAndValues(t *testing.T) {
	f := mustFile(t, `$scope module top $end
$var wire 1 ! a $end
$upscope $end
$enddefinitions $end
#0
0!
#10
1!
`, DefaultOptions())

	changes := map[*Link]struct{}{}
	ok, err := f.NextDelta(changes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected NextDelta to report a timestamp")
	}
	if f.NextTimestamp() != 10 {
		t.Fatalf("NextTimestamp() = %d, want 10", f.NextTimestamp())
	}

	top, _ := f.RootScope().GetScope("top")
	a, _ := top.GetVariable("a")
	if a.ValueString() != "0" {
		t.Fatalf("ValueString() = %q, want \"0\"", a.ValueString())
	}

	ok, err = f.NextDelta(changes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected NextDelta to report end of file")
	}
}

func TestNextDeltaVectorAndRealValues(t *testing.T) {
	f := mustFile(t, `$scope module top $end
$var reg 4 ! data [3:0] $end
$var real 1 " temperature $end
$upscope $end
$enddefinitions $end
#0
b1010 !
r36.5 "
`, DefaultOptions())

	changes := map[*Link]struct{}{}
	if _, err := f.NextDelta(changes); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	top, _ := f.RootScope().GetScope("top")
	data, _ := top.GetVariable("data")
	if data.ValueString() != "1010" {
		t.Fatalf("ValueString() = %q, want \"1010\"", data.ValueString())
	}
	temp, _ := top.GetVariable("temperature")
	if temp.ValueString() != "36.5" {
		t.Fatalf("ValueString() = %q, want \"36.5\"", temp.ValueString())
	}
}
