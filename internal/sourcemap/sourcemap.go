// Package sourcemap maps a line number in an emitted bundle back to the
// originating module key and the corresponding line in that module's
// pre-rewrite source (spec.md §4.G).
package sourcemap

// Map is a parallel line_index/module_keys pair as produced by the emitter.
type Map struct {
	LineIndex  []int
	ModuleKeys []string
}

// Location is the result of a successful lookup.
type Location struct {
	ModuleKey string
	Line      int
}

// Lookup scans LineIndex from the start for the first entry strictly
// greater than line, and reports the parallel module key together with the
// 1-based line within that module's pre-rewrite source. It reports ok=false
// if line falls beyond every recorded entry.
func (m Map) Lookup(line int) (loc Location, ok bool) {
	for i, entry := range m.LineIndex {
		if entry > line {
			return Location{
				ModuleKey: m.ModuleKeys[i],
				Line:      entry - line + 1,
			}, true
		}
	}
	return Location{}, false
}
