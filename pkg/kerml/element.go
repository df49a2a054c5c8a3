// Package kerml implements the in-memory metamodel for a KerML-style type
// system: elements, types, features, classifiers, relationship edges, type
// operators and the structural/behavioral specializations built on top of
// them. Everything cross-references by id; resolution against a collection
// (usually a Model) is the caller's job.
package kerml

import "github.com/google/uuid"

// Kind discriminates the concrete element kinds. The same strings are used
// as the __type tag in the portable record format, so they must stay stable.
type Kind string

const (
	KindType               Kind = "Type"
	KindFeature            Kind = "Feature"
	KindClassifier         Kind = "Classifier"
	KindDataType           Kind = "DataType"
	KindClass              Kind = "Class"
	KindStructure          Kind = "Structure"
	KindAssociation        Kind = "Association"
	KindConnector          Kind = "Connector"
	KindBindingConnector   Kind = "BindingConnector"
	KindSuccession         Kind = "Succession"
	KindItemFlow           Kind = "ItemFlow"
	KindSuccessionItemFlow Kind = "SuccessionItemFlow"
	KindBehavior           Kind = "Behavior"
	KindStep               Kind = "Step"
	KindFunction           Kind = "Function"
	KindExpression         Kind = "Expression"
	KindPredicate          Kind = "Predicate"
	KindInteraction        Kind = "Interaction"
	KindSpecialization     Kind = "Specialization"
	KindConjugation        Kind = "Conjugation"
	KindFeatureMembership  Kind = "FeatureMembership"
	KindTypeFeaturing      Kind = "TypeFeaturing"
	KindFeatureChaining    Kind = "FeatureChaining"
	KindFeatureInverting   Kind = "FeatureInverting"
	KindUnion              Kind = "Union"
	KindIntersect          Kind = "Intersect"
	KindDifference         Kind = "Difference"
	KindMultiplicityRange  Kind = "MultiplicityRange"
	KindFeatureValue       Kind = "FeatureValue"
	KindMetadataFeature    Kind = "MetadataFeature"
	KindPackage            Kind = "Package"
	KindModel              Kind = "Model"
)

// ElementBase carries the identity and descriptive metadata shared by every
// model entity. OwnerID is a weak back-reference used for lookups only; the
// owning collection, not this field, decides lifetime.
type ElementBase struct {
	ID            string `json:"id"`
	Name          string `json:"name,omitempty"`
	ShortName     string `json:"shortName,omitempty"`
	QualifiedName string `json:"qualifiedName,omitempty"`
	Description   string `json:"description,omitempty"`
	OwnerID       string `json:"ownerId,omitempty"`
}

// Element is implemented by every concrete model entity.
type Element interface {
	ElementID() string
	ElementKind() Kind
	Base() *ElementBase
}

// ElementID returns the stable identifier.
func (b *ElementBase) ElementID() string { return b.ID }

// Base exposes the shared metadata record for generic access.
func (b *ElementBase) Base() *ElementBase { return b }

// newBase builds the shared metadata, assigning a fresh id when none is
// supplied. Ids are opaque; uuid strings are just a convenient source of
// uniqueness.
func newBase(id, name string) ElementBase {
	if id == "" {
		id = uuid.NewString()
	}
	return ElementBase{ID: id, Name: name}
}

// appendUnique appends id to ids unless already present, preserving order.
func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

// removeID removes the first occurrence of id and reports whether it was
// found.
func removeID(ids []string, id string) ([]string, bool) {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i], ids[i+1:]...), true
		}
	}
	return ids, false
}

func containsID(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}
