package dataset

import "fmt"

// DedupResult is the outcome of DropDuplicates.
type DedupResult struct {
	Table   *Table
	Removed int
}

// Message describes the outcome the way the pipeline reports it.
func (r DedupResult) Message() string {
	if r.Removed == 0 {
		return "No duplicate rows found."
	}
	return fmt.Sprintf("Number of duplicate rows: %d", r.Removed)
}

// DuplicateCount counts rows equal, cell for cell, to an earlier row.
func DuplicateCount(t *Table) int {
	return t.Len() - len(firstOccurrences(t))
}

// DropDuplicates keeps the first occurrence of every distinct row. When the
// table has no duplicates the same *Table is returned untouched.
func DropDuplicates(t *Table) DedupResult {
	keep := firstOccurrences(t)
	removed := t.Len() - len(keep)
	if removed == 0 {
		return DedupResult{Table: t}
	}
	return DedupResult{Table: t.Take(keep), Removed: removed}
}

func firstOccurrences(t *Table) []int {
	seen := make(map[string]struct{}, t.Len())
	keep := make([]int, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		k := t.rowKey(i)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keep = append(keep, i)
	}
	return keep
}
