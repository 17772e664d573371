package uds

import "fmt"

// SubfunctionEntry names a single subfunction value or a closed range of
// values. A single value is declared with Low == High.
type SubfunctionEntry struct {
	Name string
	Low  int
	High int
}

// SubfunctionTable is an explicit {name -> code or range} mapping for one
// service's subfunctions.
type SubfunctionTable struct {
	// Label describes what the subfunction selects, e.g. "session".
	Label   string
	Entries []SubfunctionEntry
}

// Name resolves a subfunction id to its declared name. Range entries match
// on the closed interval [Low, High]. Unmatched ids render as a custom
// value of the table's label.
func (t SubfunctionTable) Name(id int) string {
	for _, e := range t.Entries {
		if e.Low <= id && id <= e.High {
			return e.Name
		}
	}
	return fmt.Sprintf("Custom %s", t.Label)
}

// Code resolves a declared name back to its subfunction id. Range entries
// resolve to their lower bound.
func (t SubfunctionTable) Code(name string) (int, bool) {
	for _, e := range t.Entries {
		if e.Name == name {
			return e.Low, true
		}
	}
	return 0, false
}
