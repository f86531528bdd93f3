package lint

import "github.com/crewlint/crewlint/internal/schema"

// Shape is the layout of an agents document.
type Shape int

const (
	// ShapeFlat: the whole document is a single agent record.
	ShapeFlat Shape = iota
	// ShapeNested: every top-level key names an agent record.
	ShapeNested
)

func (s Shape) String() string {
	if s == ShapeNested {
		return "nested"
	}
	return "flat"
}

// ClassifyAgents decides whether an agents document is nested or flat. It is nested
// iff at least one top-level value is a mapping holding a "role" or "goal" key.
//
// The heuristic is ambiguous: a single flat agent without role and goal, whose
// other values are mappings, still classifies as flat, while a nested document
// whose agents all omit both keys classifies as flat too and is validated as one
// record. Callers must not rely on anything stronger.
func ClassifyAgents(doc *schema.Record) Shape {
	shape := ShapeFlat
	doc.Each(func(_ string, value any) bool {
		rec, ok := value.(*schema.Record)
		if ok && rec != nil && (rec.Has("role") || rec.Has("goal")) {
			shape = ShapeNested
			return false
		}
		return true
	})
	return shape
}
