package curate

// distribute interleaves hits from different location groups into one output
// sequence of at most targetCount items. Two consecutive items share a
// location group only when every remaining group's next candidate would
// repeat it, and share a style only when no substitute group is style-clean.
// Greedy first-fit with a rotating scan start; no backtracking — the
// alternative scan looks one step ahead and never revisits earlier
// placements.
func distribute(entries []entry, targetCount int) []entry {
	if targetCount <= 0 || len(entries) == 0 {
		return nil
	}

	// Arena: per-group item slices in first-seen order, with an index cursor
	// per group instead of destructive shifts from shared lists.
	order := make(map[string]int, len(entries))
	var groups [][]entry
	for _, e := range entries {
		idx, ok := order[e.locKey]
		if !ok {
			idx = len(groups)
			order[e.locKey] = idx
			groups = append(groups, nil)
		}
		groups[idx] = append(groups[idx], e)
	}

	cursor := make([]int, len(groups))
	active := make([]int, len(groups))
	for i := range active {
		active[i] = i
	}

	out := make([]entry, 0, min(targetCount, len(entries)))
	start := 0
	lastLoc, lastStyle := "", ""

	for len(out) < targetCount && len(active) > 0 {
		chosen := -1  // first scanned position passing both checks
		locOnly := -1 // first scanned position passing the location check only

		for i := 0; i < len(active); i++ {
			pos := (start + i) % len(active)
			g := active[pos]
			next := &groups[g][cursor[g]]

			if next.locKey == lastLoc {
				continue
			}
			if locOnly == -1 {
				locOnly = pos
			}
			if lastStyle != "" && next.styleKey == lastStyle {
				// style conflict: look for a substitute further in rotation
				continue
			}
			chosen = pos
			break
		}
		if chosen == -1 {
			// style is a soft preference: place the first location-clean
			// candidate anyway
			chosen = locOnly
		}
		if chosen == -1 {
			// every remaining group's next item repeats the last placed
			// location; place from the rotation start rather than stall
			chosen = start % len(active)
		}

		g := active[chosen]
		placed := groups[g][cursor[g]]
		out = append(out, placed)
		lastLoc, lastStyle = placed.locKey, placed.styleKey
		cursor[g]++

		if cursor[g] == len(groups[g]) {
			active = append(active[:chosen], active[chosen+1:]...)
			// removal shifts later groups left; when the removed slot is the
			// scan start itself its successor takes its place, so the
			// advance below must count from the removed position
			if chosen <= start {
				start--
			}
		}

		// round-robin fairness: the next scan starts one position later
		start++
		if len(active) > 0 {
			start %= len(active)
		} else {
			start = 0
		}
	}

	return out
}
