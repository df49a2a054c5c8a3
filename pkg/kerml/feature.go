package kerml

// Direction of a feature relative to its owning type.
type Direction string

const (
	DirectionIn    Direction = "in"
	DirectionOut   Direction = "out"
	DirectionInOut Direction = "inout"
)

// Feature is a typed, ownable property or role attached to a type. It is
// itself a Type (it can own nested features and specialize), and adds the
// feature flags, a direction and a reference to its own classifying type.
// TypeID is distinct from specialization: it names what the feature is
// typed by, not what it is-a.
type Feature struct {
	Type
	IsUnique        bool      `json:"isUnique,omitempty"`
	IsOrdered       bool      `json:"isOrdered,omitempty"`
	IsComposite     bool      `json:"isComposite,omitempty"`
	IsPortion       bool      `json:"isPortion,omitempty"`
	IsReadOnly      bool      `json:"isReadOnly,omitempty"`
	IsDerived       bool      `json:"isDerived,omitempty"`
	IsEnd           bool      `json:"isEnd,omitempty"`
	Direction       Direction `json:"direction,omitempty"`
	TypeID          string    `json:"typeId,omitempty"`
	RedefinitionIDs []string  `json:"redefinitionIds,omitempty"`
}

// NewFeature creates a Feature, assigning an id when none is supplied.
func NewFeature(id, name string) *Feature {
	return &Feature{Type: Type{ElementBase: newBase(id, name)}}
}

func (f *Feature) ElementKind() Kind { return KindFeature }

// AddRedefinition records a redefined feature id, deduplicating repeats.
func (f *Feature) AddRedefinition(id string) {
	f.RedefinitionIDs = appendUnique(f.RedefinitionIDs, id)
}

// RemoveRedefinition removes a redefined feature id and reports whether it
// was present.
func (f *Feature) RemoveRedefinition(id string) bool {
	ids, ok := removeID(f.RedefinitionIDs, id)
	f.RedefinitionIDs = ids
	return ok
}
