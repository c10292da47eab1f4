package curate

import (
	"testing"

	"github.com/artloci/nearby/internal/domain/hit"
)

func testHit(handle, title string) hit.Hit {
	return hit.Hit{Handle: handle, Title: title}
}

func photoHit(handle, title, photoID string) hit.Hit {
	h := testHit(handle, title)
	h.Location = &hit.Location{LocationPhotoID: photoID}
	return h
}

func coordHit(handle, title string, lat, lng float64) hit.Hit {
	h := testHit(handle, title)
	h.Location = &hit.Location{Latitude: lat, Longitude: lng, HasCoords: true}
	return h
}

func outHandles(hits []hit.Hit) []string {
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.Handle
	}
	return out
}

// Two photo-grouped locations, 3 hits on the first, 2 on the second:
// the output is capped per group and never places two first-location hits
// adjacent while a second-location hit is available.
func TestCurate_PhotoGroupingDistribution(t *testing.T) {
	hits := []hit.Hit{
		photoHit("l1-a", "Alley Mural One", "p1"),
		photoHit("l1-b", "Alley Mural Two", "p1"),
		photoHit("l1-c", "Alley Mural Three", "p1"),
		photoHit("l2-a", "Harbour Wall One", "p2"),
		photoHit("l2-b", "Harbour Wall Two", "p2"),
	}

	out := Curate(hits, Options{
		Policy:      PolicyPhoto,
		MaxPerGroup: 2,
		TargetCount: 4,
	})

	if len(out) != 4 {
		t.Fatalf("expected exactly 4 items, got %d: %v", len(out), outHandles(out))
	}

	counts := map[string]int{}
	for _, h := range out {
		counts[h.Location.LocationPhotoID]++
	}
	if counts["p1"] > 2 || counts["p2"] > 2 {
		t.Errorf("per-group cap violated: %v", counts)
	}

	for i := 1; i < len(out); i++ {
		if out[i].Location.LocationPhotoID == out[i-1].Location.LocationPhotoID {
			t.Errorf("adjacent items share location %q in %v",
				out[i].Location.LocationPhotoID, outHandles(out))
		}
	}
}

// Size and variant suffixes collapse to one base identity; the first
// occurrence survives.
func TestCurate_VariantCollapse(t *testing.T) {
	hits := []hit.Hit{
		photoHit("art-x-40x60", "Art X Large", "p1"),
		photoHit("art-x-variant-2", "Art X Alt", "p2"),
	}

	out := Curate(hits, Options{Policy: PolicyPhoto, TargetCount: 10})
	if len(out) != 1 {
		t.Fatalf("expected variants to collapse to 1 item, got %d", len(out))
	}
	if out[0].Handle != "art-x-40x60" {
		t.Errorf("first occurrence should survive, got %q", out[0].Handle)
	}
}

// Titles that are equal after lowercasing and trimming collapse regardless
// of the overlap threshold.
func TestCurate_ExactTitleCollapse(t *testing.T) {
	hits := []hit.Hit{
		photoHit("a", "Sunset Over Paris", "p1"),
		photoHit("b", "sunset over paris ", "p2"),
	}

	out := Curate(hits, Options{
		Policy:         PolicyPhoto,
		CollapseTitles: true,
		TargetCount:    10,
	})
	if len(out) != 1 {
		t.Fatalf("expected exact-match titles to collapse, got %d", len(out))
	}
}

// Featured hits drain first; regular hits fill the remaining budget under
// the same grouping rules.
func TestCurate_FeaturedFirst(t *testing.T) {
	hits := []hit.Hit{
		photoHit("r1", "Regular One", "q1"),
		photoHit("r2", "Regular Two", "q2"),
	}
	for i, h := range []string{"f1", "f2"} {
		fh := photoHit(h, "Featured "+h, "fp"+string(rune('1'+i)))
		fh.Featured = true
		hits = append(hits, fh)
	}
	hits = append(hits,
		photoHit("r3", "Regular Three", "q3"),
		photoHit("r4", "Regular Four", "q4"),
		photoHit("r5", "Regular Five", "q5"),
		photoHit("r6", "Regular Six", "q6"),
		photoHit("r7", "Regular Seven", "q7"),
		photoHit("r8", "Regular Eight", "q8"),
		photoHit("r9", "Regular Nine", "q9"),
		photoHit("r10", "Regular Ten", "q10"),
	)

	out := Curate(hits, Options{
		Policy:        PolicyPhoto,
		FeaturedFirst: true,
		TargetCount:   6,
	})

	if len(out) != 6 {
		t.Fatalf("expected 6 items, got %d", len(out))
	}
	if !out[0].Featured || !out[1].Featured {
		t.Errorf("featured hits must come first: %v", outHandles(out))
	}
	for _, h := range out[2:] {
		if h.Featured {
			t.Errorf("featured hit after regular hits: %v", outHandles(out))
		}
	}
}

// All hits in one location group: the group cap bounds the output, not the
// target count.
func TestCurate_SingleGroupCapped(t *testing.T) {
	var hits []hit.Hit
	for _, h := range []string{"a", "b", "c", "d", "e"} {
		hits = append(hits, photoHit(h, "Title "+h, "p1"))
	}

	out := Curate(hits, Options{
		Policy:      PolicyPhoto,
		MaxPerGroup: 2,
		TargetCount: 10,
	})
	if len(out) != 2 {
		t.Fatalf("expected output capped at 2, got %d", len(out))
	}
}

func TestCurate_CoordinateGrouping(t *testing.T) {
	hits := []hit.Hit{
		coordHit("a1", "One", 48.858400, 2.294500),
		coordHit("a2", "Two", 48.858400, 2.294500), // same cell
		coordHit("b1", "Three", 48.860600, 2.337600),
	}

	out := Curate(hits, Options{MaxPerGroup: 1, TargetCount: 10})
	if len(out) != 2 {
		t.Fatalf("expected same-cell hits capped to 1, got %d items", len(out))
	}
}

// Partial location details degrade down the priority chain instead of
// failing: no coordinates means place ID, then address, then photo ID.
func TestCurate_LocationKeyDegradation(t *testing.T) {
	mk := func(handle string, loc *hit.Location) hit.Hit {
		h := testHit(handle, "Title "+handle)
		h.Location = loc
		return h
	}

	hits := []hit.Hit{
		mk("p1", &hit.Location{PlaceID: "place-1"}),
		mk("p2", &hit.Location{PlaceID: "place-1"}),
		mk("a1", &hit.Location{FormattedAddress: "1 Main St"}),
		mk("a2", &hit.Location{FormattedAddress: "1 Main St"}),
	}

	out := Curate(hits, Options{MaxPerGroup: 1, TargetCount: 10})
	if len(out) != 2 {
		t.Fatalf("expected degradation to place/address grouping, got %d items", len(out))
	}
}

func TestCurate_EmptyInput(t *testing.T) {
	if out := Curate(nil, Options{TargetCount: 10}); len(out) != 0 {
		t.Errorf("expected empty output for empty input, got %d", len(out))
	}
}

func TestCurate_NonPositiveTarget(t *testing.T) {
	hits := []hit.Hit{photoHit("a", "Title", "p1")}
	for _, target := range []int{0, -1} {
		if out := Curate(hits, Options{TargetCount: target}); len(out) != 0 {
			t.Errorf("target %d: expected empty output, got %d", target, len(out))
		}
	}
}

// Hits without handles or titles flow through without faulting.
func TestCurate_MissingFields(t *testing.T) {
	hits := []hit.Hit{
		{},
		{Title: "Only Title"},
		{Handle: "only-handle"},
	}

	out := Curate(hits, Options{CollapseTitles: true, TargetCount: 10})
	if len(out) == 0 {
		t.Fatal("expected hits with missing fields to survive")
	}
}

// Hits with no location detail at all survive as uncapped singletons in the
// untiered pipeline, and trail both tiers in the featured-first variant.
func TestCurate_UnlocatedHits(t *testing.T) {
	t.Run("untiered", func(t *testing.T) {
		hits := []hit.Hit{
			testHit("u1", "Unlocated One"),
			testHit("u2", "Unlocated Two"),
			photoHit("l1", "Located", "p1"),
		}
		out := Curate(hits, Options{Policy: PolicyPhoto, MaxPerGroup: 1, TargetCount: 10})
		if len(out) != 3 {
			t.Fatalf("expected 3 items, got %d", len(out))
		}
	})

	t.Run("featured-first appends unlocated last", func(t *testing.T) {
		hits := []hit.Hit{
			testHit("u1", "Unlocated One"),
			photoHit("l1", "Located One", "p1"),
			photoHit("l2", "Located Two", "p2"),
		}
		out := Curate(hits, Options{Policy: PolicyPhoto, FeaturedFirst: true, TargetCount: 2})
		if len(out) != 2 {
			t.Fatalf("expected 2 items, got %d", len(out))
		}
		for _, h := range out {
			if h.Handle == "u1" {
				t.Errorf("unlocated hit must not displace located hits: %v", outHandles(out))
			}
		}
	})
}

// The engine never mutates or reorders its input slice.
func TestCurate_InputUntouched(t *testing.T) {
	hits := []hit.Hit{
		photoHit("b", "Title B", "p1"),
		photoHit("a", "Title A", "p2"),
	}
	Curate(hits, Options{Policy: PolicyPhoto, TargetCount: 1})

	if hits[0].Handle != "b" || hits[1].Handle != "a" {
		t.Errorf("input slice reordered: %v", outHandles(hits))
	}
}
