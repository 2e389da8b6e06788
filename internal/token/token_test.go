package token_test

import (
	"strings"
	"testing"

	"github.com/db47h/vcdiff/internal/token"
)

func TestNextSplitsOnWhitespace(t *testing.T) {
	tk := token.New(strings.NewReader("$var wire 1 ! clk $end\n"))

	want := []string{"$var", "wire", "1", "!", "clk", "$end"}
	for _, w := range want {
		got, ok := tk.Next()
		if !ok || got != w {
			t.Fatalf("Next() = %q, %v; want %q, true", got, ok, w)
		}
	}

	if _, ok := tk.Next(); ok {
		t.Fatal("Next() at EOF returned ok = true")
	}
	if tk.Valid() {
		t.Fatal("Valid() = true after EOF")
	}
}

func TestTokensNeverSpanLines(t *testing.T) {
	tk := token.New(strings.NewReader("foo\nbar\n"))

	if got, _ := tk.Next(); got != "foo" {
		t.Fatalf("Next() = %q, want foo", got)
	}
	if got, _ := tk.Next(); got != "bar" {
		t.Fatalf("Next() = %q, want bar", got)
	}
	if tk.LineNumber() != 2 {
		t.Fatalf("LineNumber() = %d, want 2", tk.LineNumber())
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	tk := token.New(strings.NewReader("a b"))

	p1, _ := tk.Peek()
	p2, _ := tk.Peek()
	if p1 != "a" || p2 != "a" {
		t.Fatalf("Peek() not idempotent: %q, %q", p1, p2)
	}

	got, _ := tk.Next()
	if got != "a" {
		t.Fatalf("Next() after Peek() = %q, want a", got)
	}
	got, _ = tk.Next()
	if got != "b" {
		t.Fatalf("Next() = %q, want b", got)
	}
}

func TestPutPushesBackOneLevel(t *testing.T) {
	tk := token.New(strings.NewReader("a b c"))

	_, _ = tk.Next() // a
	_, _ = tk.Next() // b
	tk.Put()         // un-consume b

	got, _ := tk.Next()
	if got != "b" {
		t.Fatalf("Next() after Put() = %q, want b", got)
	}
	got, _ = tk.Next()
	if got != "c" {
		t.Fatalf("Next() = %q, want c", got)
	}
}

func TestExpectConsumesOnMatch(t *testing.T) {
	tk := token.New(strings.NewReader("$end other"))

	if !tk.Expect("$end") {
		t.Fatal("Expect($end) = false, want true")
	}
	got, _ := tk.Next()
	if got != "other" {
		t.Fatalf("Next() after matching Expect = %q, want other", got)
	}
}

func TestExpectPutsBackOnMismatch(t *testing.T) {
	tk := token.New(strings.NewReader("$scope module"))

	if tk.Expect("$end") {
		t.Fatal("Expect($end) = true, want false")
	}
	got, _ := tk.Next()
	if got != "$scope" {
		t.Fatalf("Next() after failed Expect = %q, want $scope (pushed back)", got)
	}
}

func TestBlankLinesAreSkipped(t *testing.T) {
	tk := token.New(strings.NewReader("\n\n  \nfoo\n"))

	got, ok := tk.Next()
	if !ok || got != "foo" {
		t.Fatalf("Next() = %q, %v; want foo, true", got, ok)
	}
}

func TestLongLineIsNotTruncated(t *testing.T) {
	long := strings.Repeat("x", 8192)
	tk := token.New(strings.NewReader(long + " tail\n"))

	got, _ := tk.Next()
	if got != long {
		t.Fatalf("Next() returned %d bytes, want %d", len(got), len(long))
	}
	got, _ = tk.Next()
	if got != "tail" {
		t.Fatalf("Next() = %q, want tail", got)
	}
}
