package cartoon

// idGapLimit returns the largest id step allowed between consecutive
// residues. Crossing from negative to positive ids skips the unused id 0.
func idGapLimit(id1, id2 int) int {
	if id1 < 0 && id2 > 0 {
		return 2
	}
	return 1
}

// discontinuous reports whether any frame of a window spans a residue id gap.
func discontinuous(frames [4]*Frame) bool {
	for _, f := range frames {
		for k := 0; k < 2; k++ {
			id1, id2 := f.Residues[k].ID(), f.Residues[k+1].ID()
			if id2-id1 > idGapLimit(id1, id2) {
				return true
			}
		}
	}
	return false
}

// withinDistance reports whether both consecutive primary atom pairs of a
// frame are closer than limit.
func withinDistance(f *Frame, limit float32) bool {
	return f.primary[0].Distance(f.primary[1]) < limit &&
		f.primary[1].Distance(f.primary[2]) < limit
}

// windowDistanceOK applies withinDistance to every frame of a window.
func windowDistanceOK(frames [4]*Frame, limit float32) bool {
	for _, f := range frames {
		if !withinDistance(f, limit) {
			return false
		}
	}
	return true
}
