package zodiac

// Portion is one weighted slice of a parent span.
// Start and End are absolute offsets on the parent's axis (degrees, minutes
// or days); the axis does not matter to the subdivision rule.
type Portion struct {
	Lord  Body    `json:"lord"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Span returns the portion's width.
func (p Portion) Span() float64 {
	return p.End - p.Start
}

// Contains reports whether x is inside the half-open portion [Start, End).
func (p Portion) Contains(x float64) bool {
	return x >= p.Start && x < p.End
}

// Subdivide splits [origin, origin+span) into nine portions proportional to
// the period weights, rotating SubSequence from first.
//
// The last portion ends exactly at origin+span so children always tile the
// parent; every level of the lord and dasha hierarchies goes through here.
func Subdivide(first Body, origin, span float64) [NumBodies]Portion {
	var out [NumBodies]Portion
	startIdx := first.SequenceIndex()
	cursor := origin
	for i := 0; i < NumBodies; i++ {
		lord := SubSequence[(startIdx+i)%NumBodies]
		width := span * lord.Weight() / TotalWeight
		end := cursor + width
		if i == NumBodies-1 {
			end = origin + span
		}
		out[i] = Portion{Lord: lord, Start: cursor, End: end}
		cursor = end
	}
	return out
}

// Locate returns the portion of Subdivide(first, origin, span) containing x.
// ok is false when x falls outside every bucket (float edge at the far end).
func Locate(first Body, origin, span, x float64) (Portion, bool) {
	for _, p := range Subdivide(first, origin, span) {
		if p.Contains(x) {
			return p, true
		}
	}
	return Portion{}, false
}
