package curate

import "testing"

func TestCapGroups_CapsRealGroups(t *testing.T) {
	entries := []entry{
		{baseID: "a", locKey: "cell:1", grouped: true},
		{baseID: "b", locKey: "cell:1", grouped: true},
		{baseID: "c", locKey: "cell:1", grouped: true},
		{baseID: "d", locKey: "cell:2", grouped: true},
	}

	out := capGroups(entries, 2)
	if len(out) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(out))
	}

	counts := map[string]int{}
	for _, e := range out {
		counts[e.locKey]++
	}
	if counts["cell:1"] != 2 {
		t.Errorf("cell:1 count = %d, want 2", counts["cell:1"])
	}
}

func TestCapGroups_KeepsOrderWithinGroup(t *testing.T) {
	entries := []entry{
		{baseID: "a", locKey: "cell:1", grouped: true},
		{baseID: "x", locKey: "cell:2", grouped: true},
		{baseID: "b", locKey: "cell:1", grouped: true},
	}

	out := capGroups(entries, 2)
	if len(out) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(out))
	}
	// first-seen group order: cell:1 (a, b) then cell:2 (x)
	want := []string{"a", "b", "x"}
	for i, id := range want {
		if out[i].baseID != id {
			t.Errorf("out[%d] = %q, want %q", i, out[i].baseID, id)
		}
	}
}

func TestCapGroups_SingletonsNeverCapped(t *testing.T) {
	entries := []entry{
		{baseID: "a", locKey: "handle:a", grouped: false},
		{baseID: "b", locKey: "handle:b", grouped: false},
		{baseID: "c", locKey: "handle:c", grouped: false},
		{baseID: "d", locKey: "cell:1", grouped: true},
	}

	out := capGroups(entries, 1)
	if len(out) != 4 {
		t.Fatalf("expected all 4 entries, got %d", len(out))
	}
	// grouped entries come first, singletons appended after
	if out[0].baseID != "d" {
		t.Errorf("out[0] = %q, want grouped entry first", out[0].baseID)
	}
}
