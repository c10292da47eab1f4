package curate

// capGroups limits how many hits from the same location group survive at
// all. Groups are emitted in first-seen order, input order preserved within
// each group; singleton-fallback hits are appended afterwards without limit
// (two hits that merely both lack a real location never cap each other).
func capGroups(entries []entry, maxPerGroup int) []entry {
	groupOrder := make([]string, 0, len(entries))
	groups := make(map[string][]entry, len(entries))
	var singletons []entry

	for _, e := range entries {
		if !e.grouped {
			singletons = append(singletons, e)
			continue
		}
		if _, ok := groups[e.locKey]; !ok {
			groupOrder = append(groupOrder, e.locKey)
		}
		if len(groups[e.locKey]) < maxPerGroup {
			groups[e.locKey] = append(groups[e.locKey], e)
		}
	}

	out := make([]entry, 0, len(entries))
	for _, key := range groupOrder {
		out = append(out, groups[key]...)
	}
	return append(out, singletons...)
}
