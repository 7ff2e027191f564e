// Package rank implements competition ranking over metric values.
package rank

import "sort"

// Candidate is one (entity, value) pair to be ranked.
type Candidate struct {
	ID    string
	Label string
	Value float64
}

// Entry is one ranked row. Entries with equal values share a rank, and the
// next distinct value's rank equals 1 + the number of strictly better
// entries ("1,1,3", not "1,1,2").
type Entry struct {
	Rank  int
	ID    string
	Label string
	Value float64
}

// Ranking holds the ordered entries plus an id -> rank lookup for O(1)
// reverse access.
type Ranking struct {
	Entries  []Entry
	RankByID map[string]int
}

// Rank orders candidates by value, descending when higherIsBetter and
// ascending otherwise. Ties keep their input order; the sort is stable, so
// callers that feed roster order get roster order back within a tie block.
func Rank(candidates []Candidate, higherIsBetter bool) Ranking {
	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)

	sort.SliceStable(ordered, func(i, j int) bool {
		if higherIsBetter {
			return ordered[i].Value > ordered[j].Value
		}
		return ordered[i].Value < ordered[j].Value
	})

	entries := make([]Entry, len(ordered))
	byID := make(map[string]int, len(ordered))
	current := 0
	for i, c := range ordered {
		if i == 0 || ordered[i].Value != ordered[i-1].Value {
			current = i + 1
		}
		entries[i] = Entry{Rank: current, ID: c.ID, Label: c.Label, Value: c.Value}
		byID[c.ID] = current
	}

	return Ranking{Entries: entries, RankByID: byID}
}
