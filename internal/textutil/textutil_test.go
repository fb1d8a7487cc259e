package textutil

import "testing"

func TestPlural(t *testing.T) {
	cases := map[int]string{0: "0 clips", 1: "1 clip", 12: "12 clips"}
	for count, want := range cases {
		if got := Plural(count, "clip"); got != want {
			t.Fatalf("Plural(%d) = %q, want %q", count, got, want)
		}
	}
}

func TestSingleLine(t *testing.T) {
	got := SingleLine("Traceback:\n  File \"x\"\n\tAttributeError:  boom ")
	if got != "Traceback: File \"x\" AttributeError: boom" {
		t.Fatalf("SingleLine = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("timeline", 0); got != "timeline" {
		t.Fatalf("limit 0 should disable truncation, got %q", got)
	}
	if got := Truncate("timeline", 20); got != "timeline" {
		t.Fatalf("short value changed: %q", got)
	}
	if got := Truncate("timeline", 5); got != "time…" {
		t.Fatalf("Truncate = %q", got)
	}
}

func TestTernary(t *testing.T) {
	if Ternary(true, "a", "b") != "a" || Ternary(false, 1, 2) != 2 {
		t.Fatal("Ternary picked the wrong branch")
	}
}
