package curate

// splitTiers partitions entries into the featured and regular tier,
// order-preserving in both outputs.
func splitTiers(entries []entry) (featured, regular []entry) {
	for _, e := range entries {
		if e.hit.Featured {
			featured = append(featured, e)
		} else {
			regular = append(regular, e)
		}
	}
	return featured, regular
}

// splitLocated separates entries carrying any location detail from entries
// with none. In tiered mode the unlocated remainder is appended after both
// tiers are exhausted.
func splitLocated(entries []entry) (located, unlocated []entry) {
	for _, e := range entries {
		if e.hit.HasLocation() {
			located = append(located, e)
		} else {
			unlocated = append(unlocated, e)
		}
	}
	return located, unlocated
}
