package frame

import "testing"

func TestHeaders_SetGetPreservesInsertionOrder(t *testing.T) {
	h := NewHeaders()
	h.Set("Content-Type", "command/reply")
	h.Set("Reply-Text", "+OK")
	h.Set("Job-UUID", "abc-123")

	want := []string{"Content-Type", "Reply-Text", "Job-UUID"}
	got := h.Keys()
	if len(got) != len(want) {
		t.Fatalf("expected %d keys, got %d: %v", len(want), len(got), got)
	}
	for i, k := range want {
		if got[i] != k {
			t.Fatalf("key %d: expected %q, got %q", i, k, got[i])
		}
	}
}

func TestHeaders_SetOverwriteKeepsPosition(t *testing.T) {
	h := NewHeaders()
	h.Set("A", "1")
	h.Set("B", "2")
	h.Set("A", "3")

	if got := h.Get("A"); got != "3" {
		t.Fatalf("expected overwritten value 3, got %q", got)
	}
	want := []string{"A", "B"}
	got := h.Keys()
	for i, k := range want {
		if got[i] != k {
			t.Fatalf("expected position of %q unchanged, got order %v", k, got)
		}
	}
}

func TestHeaders_GetMissReturnsEmptyString(t *testing.T) {
	h := NewHeaders()
	if got := h.Get("Missing"); got != "" {
		t.Fatalf("expected empty string for missing header, got %q", got)
	}
	if h.Has("Missing") {
		t.Fatal("Has reported true for a missing header")
	}
}

func TestHeaders_EqualIgnoresOrder(t *testing.T) {
	a := NewHeaders()
	a.Set("X", "1")
	a.Set("Y", "2")

	b := NewHeaders()
	b.Set("Y", "2")
	b.Set("X", "1")

	if !a.Equal(b) {
		t.Fatal("expected headers with same pairs in different order to be equal")
	}

	b.Set("Z", "3")
	if a.Equal(b) {
		t.Fatal("expected headers with differing field counts to be unequal")
	}
}

func TestParseHeaderLine(t *testing.T) {
	cases := []struct {
		line  string
		field string
		value string
		ok    bool
	}{
		{"Content-Type: command/reply", "Content-Type", "command/reply", true},
		{"Reply-Text:   +OK accepted", "Reply-Text", "+OK accepted", true},
		{"no-colon-here", "", "", false},
		{"Job-UUID:", "Job-UUID", "", true},
	}
	for _, c := range cases {
		field, value, ok := parseHeaderLine(c.line)
		if ok != c.ok || field != c.field || value != c.value {
			t.Errorf("parseHeaderLine(%q) = (%q, %q, %v), want (%q, %q, %v)",
				c.line, field, value, ok, c.field, c.value, c.ok)
		}
	}
}
