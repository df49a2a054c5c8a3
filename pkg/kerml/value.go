package kerml

// FeatureValue binds a value element to a feature, both referenced by id.
type FeatureValue struct {
	ElementBase
	FeatureID string `json:"featureId"`
	ValueID   string `json:"valueId"`
}

func NewFeatureValue(id, featureID, valueID string) *FeatureValue {
	return &FeatureValue{ElementBase: newBase(id, ""), FeatureID: featureID, ValueID: valueID}
}

func (v *FeatureValue) ElementKind() Kind { return KindFeatureValue }

// MetadataFeature annotates arbitrary elements with structured metadata.
type MetadataFeature struct {
	Feature
	AnnotatedElementIDs []string `json:"annotatedElementIds,omitempty"`
}

func NewMetadataFeature(id, name string) *MetadataFeature {
	return &MetadataFeature{Feature: Feature{Type: Type{ElementBase: newBase(id, name)}}}
}

func (m *MetadataFeature) ElementKind() Kind { return KindMetadataFeature }

// AddAnnotatedElement records an annotated element id, deduplicating
// repeats.
func (m *MetadataFeature) AddAnnotatedElement(id string) {
	m.AnnotatedElementIDs = appendUnique(m.AnnotatedElementIDs, id)
}

// RemoveAnnotatedElement removes an annotated element id and reports
// whether it was present.
func (m *MetadataFeature) RemoveAnnotatedElement(id string) bool {
	ids, ok := removeID(m.AnnotatedElementIDs, id)
	m.AnnotatedElementIDs = ids
	return ok
}
