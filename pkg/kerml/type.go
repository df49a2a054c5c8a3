package kerml

import "fmt"

// ErrSelfSpecialization is returned when a type is asked to specialize
// itself. Transitive cycles are left to the validation engine because the
// graph is built incrementally; the direct self-edge is never meaningful.
var ErrSelfSpecialization = fmt.Errorf("type cannot specialize itself")

// Type owns an insertion-ordered sequence of features and declares which
// other types it specializes. Feature ownership is exclusive: AddFeature
// rewrites the feature's owner id, so a feature belongs to at most one type
// at a time.
type Type struct {
	ElementBase
	IsAbstract        bool       `json:"isAbstract,omitempty"`
	IsConjugated      bool       `json:"isConjugated,omitempty"`
	Multiplicity      string     `json:"multiplicity,omitempty"`
	SpecializationIDs []string   `json:"specializationIds,omitempty"`
	Features          []*Feature `json:"features,omitempty"`
}

// NewType creates a Type, assigning an id when none is supplied.
func NewType(id, name string) *Type {
	return &Type{ElementBase: newBase(id, name)}
}

func (t *Type) ElementKind() Kind { return KindType }

// AddFeature appends f to the owned feature sequence and reassigns its
// owner id. Insert transfers ownership: if f was previously owned by a
// different type, removing it from that type's list is the caller's
// responsibility. Duplicate ids are appended as-is; uniqueness is a
// validation concern.
func (t *Type) AddFeature(f *Feature) {
	f.OwnerID = t.ID
	t.Features = append(t.Features, f)
}

// RemoveFeature removes the first owned feature with the given id and
// reports whether a match was found. The removed feature keeps its stale
// owner id; the owner decides lifetime, not the back-reference.
func (t *Type) RemoveFeature(id string) bool {
	for i, f := range t.Features {
		if f.ID == id {
			t.Features = append(t.Features[:i], t.Features[i+1:]...)
			return true
		}
	}
	return false
}

// FindFeatureByID returns the first owned feature with the given id, or nil.
func (t *Type) FindFeatureByID(id string) *Feature {
	for _, f := range t.Features {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// FindFeatureByName returns the first owned feature with the given name, or
// nil. Names are not unique at this layer, so duplicates resolve to the
// earliest insertion.
func (t *Type) FindFeatureByName(name string) *Feature {
	for _, f := range t.Features {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// AddSpecialization records a specialization target, rejecting the direct
// self-reference and deduplicating repeats.
func (t *Type) AddSpecialization(generalID string) error {
	if generalID == t.ID {
		return fmt.Errorf("%w: %s", ErrSelfSpecialization, t.ID)
	}
	t.SpecializationIDs = appendUnique(t.SpecializationIDs, generalID)
	return nil
}

// RemoveSpecialization removes a specialization target and reports whether
// it was present.
func (t *Type) RemoveSpecialization(generalID string) bool {
	ids, ok := removeID(t.SpecializationIDs, generalID)
	t.SpecializationIDs = ids
	return ok
}

// Specializes reports whether generalID is a direct specialization target.
func (t *Type) Specializes(generalID string) bool {
	return containsID(t.SpecializationIDs, generalID)
}
