package feed

// Snapshot is the ordered visible text of a rendered entry list.
type Snapshot []string

// TakeSnapshot captures the text of each entry.
func TakeSnapshot(entries []Entry) Snapshot {
	snap := make(Snapshot, len(entries))
	for i, e := range entries {
		snap[i] = e.Text()
	}
	return snap
}

// Collisions lists the positions present in both snapshots whose text is equal.
func (s Snapshot) Collisions(other Snapshot) []int {
	n := min(len(s), len(other))
	var same []int
	for i := 0; i < n; i++ {
		if s[i] == other[i] {
			same = append(same, i)
		}
	}
	return same
}

// DiffersEverywhere reports whether no shared position holds the same text.
func (s Snapshot) DiffersEverywhere(other Snapshot) bool {
	return len(s.Collisions(other)) == 0
}
