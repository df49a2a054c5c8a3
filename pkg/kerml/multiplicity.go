package kerml

// UnboundedValue is the sentinel upper bound meaning "no upper limit".
const UnboundedValue = -1

// MultiplicityRange constrains how many values a feature may hold. Bounds
// are stored as given; validity (lower ≥ 0, upper ≥ lower or unbounded) is
// a validation-engine concern.
type MultiplicityRange struct {
	ElementBase
	LowerBound int `json:"lowerBound"`
	UpperBound int `json:"upperBound"`
}

// NewMultiplicityRange creates a range, assigning an id when none is
// supplied.
func NewMultiplicityRange(id string, lower, upper int) *MultiplicityRange {
	return &MultiplicityRange{ElementBase: newBase(id, ""), LowerBound: lower, UpperBound: upper}
}

func (m *MultiplicityRange) ElementKind() Kind { return KindMultiplicityRange }

// IsUnbounded reports whether the upper bound is the unbounded sentinel.
func (m *MultiplicityRange) IsUnbounded() bool { return m.UpperBound == UnboundedValue }
