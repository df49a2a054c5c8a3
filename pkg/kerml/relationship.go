package kerml

// Relationship is implemented by the first-class edge kinds that relate two
// elements by id. Edges are stored independently of their endpoints, so
// whole-model integrity is checked post hoc by the validation engine;
// construction never fails on empty endpoints.
type Relationship interface {
	Element
	// Endpoints returns the two endpoint ids in declaration order.
	Endpoints() (string, string)
	// EndpointRoles returns the role names matching Endpoints, for
	// diagnostics.
	EndpointRoles() (string, string)
}

// Specialization is a directed is-a edge from a specific to a general type.
type Specialization struct {
	ElementBase
	SpecificID string `json:"specificId"`
	GeneralID  string `json:"generalId"`
}

func NewSpecialization(id, specificID, generalID string) *Specialization {
	return &Specialization{ElementBase: newBase(id, ""), SpecificID: specificID, GeneralID: generalID}
}

func (s *Specialization) ElementKind() Kind              { return KindSpecialization }
func (s *Specialization) Endpoints() (string, string)    { return s.SpecificID, s.GeneralID }
func (s *Specialization) EndpointRoles() (string, string) { return "specific", "general" }

// Conjugation relates a type to its conjugate.
type Conjugation struct {
	ElementBase
	OriginalTypeID   string `json:"originalTypeId"`
	ConjugatedTypeID string `json:"conjugatedTypeId"`
}

func NewConjugation(id, originalTypeID, conjugatedTypeID string) *Conjugation {
	return &Conjugation{ElementBase: newBase(id, ""), OriginalTypeID: originalTypeID, ConjugatedTypeID: conjugatedTypeID}
}

func (c *Conjugation) ElementKind() Kind              { return KindConjugation }
func (c *Conjugation) Endpoints() (string, string)    { return c.OriginalTypeID, c.ConjugatedTypeID }
func (c *Conjugation) EndpointRoles() (string, string) { return "originalType", "conjugatedType" }

// FeatureMembership asserts that a type owns a given feature.
type FeatureMembership struct {
	ElementBase
	OwningTypeID    string `json:"owningTypeId"`
	MemberFeatureID string `json:"memberFeatureId"`
}

func NewFeatureMembership(id, owningTypeID, memberFeatureID string) *FeatureMembership {
	return &FeatureMembership{ElementBase: newBase(id, ""), OwningTypeID: owningTypeID, MemberFeatureID: memberFeatureID}
}

func (m *FeatureMembership) ElementKind() Kind              { return KindFeatureMembership }
func (m *FeatureMembership) Endpoints() (string, string)    { return m.OwningTypeID, m.MemberFeatureID }
func (m *FeatureMembership) EndpointRoles() (string, string) { return "owningType", "memberFeature" }

// TypeFeaturing records that a feature is featured by a type it is not
// necessarily owned by.
type TypeFeaturing struct {
	ElementBase
	FeatureID       string `json:"featureId"`
	FeaturingTypeID string `json:"featuringTypeId"`
}

func NewTypeFeaturing(id, featureID, featuringTypeID string) *TypeFeaturing {
	return &TypeFeaturing{ElementBase: newBase(id, ""), FeatureID: featureID, FeaturingTypeID: featuringTypeID}
}

func (t *TypeFeaturing) ElementKind() Kind              { return KindTypeFeaturing }
func (t *TypeFeaturing) Endpoints() (string, string)    { return t.FeatureID, t.FeaturingTypeID }
func (t *TypeFeaturing) EndpointRoles() (string, string) { return "feature", "featuringType" }

// FeatureChaining links a feature to one link of its chain.
type FeatureChaining struct {
	ElementBase
	FeatureID         string `json:"featureId"`
	ChainingFeatureID string `json:"chainingFeatureId"`
}

func NewFeatureChaining(id, featureID, chainingFeatureID string) *FeatureChaining {
	return &FeatureChaining{ElementBase: newBase(id, ""), FeatureID: featureID, ChainingFeatureID: chainingFeatureID}
}

func (f *FeatureChaining) ElementKind() Kind              { return KindFeatureChaining }
func (f *FeatureChaining) Endpoints() (string, string)    { return f.FeatureID, f.ChainingFeatureID }
func (f *FeatureChaining) EndpointRoles() (string, string) { return "feature", "chainingFeature" }

// FeatureInverting pairs a feature with its inverse.
type FeatureInverting struct {
	ElementBase
	FeatureInvertedID  string `json:"featureInvertedId"`
	InvertingFeatureID string `json:"invertingFeatureId"`
}

func NewFeatureInverting(id, featureInvertedID, invertingFeatureID string) *FeatureInverting {
	return &FeatureInverting{ElementBase: newBase(id, ""), FeatureInvertedID: featureInvertedID, InvertingFeatureID: invertingFeatureID}
}

func (f *FeatureInverting) ElementKind() Kind              { return KindFeatureInverting }
func (f *FeatureInverting) Endpoints() (string, string)    { return f.FeatureInvertedID, f.InvertingFeatureID }
func (f *FeatureInverting) EndpointRoles() (string, string) { return "featureInverted", "invertingFeature" }
