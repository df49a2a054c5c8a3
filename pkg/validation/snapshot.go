// Package validation implements the stateless constraint engine. Every
// check takes a read-only snapshot of plain collections and returns a list
// of structured issues; nothing here throws or mutates, so the engine is
// safe to run over an inconsistent or partially built model.
package validation

import "github.com/yoshimomax/sysmlmodeler/pkg/kerml"

// Issue is one model-consistency finding.
type Issue struct {
	ElementID   string `json:"elementId"`
	ElementType string `json:"elementType"`
	Code        string `json:"errorCode"`
	Message     string `json:"message"`
}

// Issue codes, one constraint family each.
const (
	CodeSpecializationCycle  = "SPECIALIZATION_CYCLE"
	CodeInvalidLowerBound    = "INVALID_LOWER_BOUND"
	CodeInvalidUpperBound    = "INVALID_UPPER_BOUND"
	CodeEmptyOperands        = "EMPTY_OPERANDS"
	CodeMissingFirstOperand  = "MISSING_FIRST_OPERAND"
	CodeMissingSecondOperand = "MISSING_SECOND_OPERAND"
	CodeMissingEndpoint      = "MISSING_ENDPOINT"
	CodeIncompatibleFlags    = "INCOMPATIBLE_FLAGS"
	CodeMissingTypeReference = "MISSING_TYPE_REFERENCE"
	CodeUnknownTypeReference = "UNKNOWN_TYPE_REFERENCE"
	CodeUnknownFeature       = "UNKNOWN_FEATURE"
	CodeTooFewConnectorEnds  = "TOO_FEW_CONNECTOR_ENDS"
)

// Snapshot is the engine's input: collections grouped by kind. The engine
// has no knowledge of how they were populated; SnapshotFromModel is the
// usual builder but tests and callers may assemble one by hand.
type Snapshot struct {
	// Types holds the type-like, non-feature elements (types, classifiers,
	// operators, behaviors). Their ids form the known-type set.
	Types []kerml.Element
	// Features holds the feature-like elements, including features owned
	// by types and arbitrarily nested ones.
	Features []kerml.Element
	// Specializations feed the cycle check in addition to the
	// specialization target ids carried on the types themselves.
	Specializations []*kerml.Specialization
	// Relationships holds every edge entity, specializations included,
	// for the endpoint completeness check.
	Relationships []kerml.Relationship
	Ranges        []*kerml.MultiplicityRange
	Unions        []*kerml.Union
	Intersects    []*kerml.Intersect
	Differences   []*kerml.Difference
}

// SnapshotFromModel buckets a model's flat element array into the
// snapshot collections, walking ownership trees so nested features are
// seen too. A feature may legally appear both as a standalone element and
// in its owner's feature list (flat streams deserialize that way), so
// bucketing dedups by id; each element feeds the per-element checks once.
// The model is not mutated.
func SnapshotFromModel(m *kerml.Model) *Snapshot {
	snap := &Snapshot{}
	seen := make(map[string]bool)
	for _, e := range m.Elements {
		snap.add(e, seen)
	}
	return snap
}

func (s *Snapshot) add(e kerml.Element, seen map[string]bool) {
	switch v := e.(type) {
	case *kerml.Specialization:
		s.Specializations = append(s.Specializations, v)
		s.Relationships = append(s.Relationships, v)
		return
	case kerml.Relationship:
		s.Relationships = append(s.Relationships, v)
		return
	case *kerml.MultiplicityRange:
		s.Ranges = append(s.Ranges, v)
		return
	case *kerml.Union:
		s.Unions = append(s.Unions, v)
	case *kerml.Intersect:
		s.Intersects = append(s.Intersects, v)
	case *kerml.Difference:
		s.Differences = append(s.Differences, v)
	case *kerml.Package, *kerml.FeatureValue, *kerml.Model:
		return
	}

	if seen[e.ElementID()] {
		return
	}
	seen[e.ElementID()] = true

	if kerml.FeatureOf(e) != nil {
		s.Features = append(s.Features, e)
	} else if kerml.TypeOf(e) != nil {
		s.Types = append(s.Types, e)
	} else {
		return
	}

	// Owned features, recursively. They are plain Features, so only one
	// level of type-assertion is needed per node.
	s.addOwned(kerml.TypeOf(e), seen)
}

func (s *Snapshot) addOwned(t *kerml.Type, seen map[string]bool) {
	if t == nil {
		return
	}
	for _, f := range t.Features {
		if seen[f.ID] {
			continue
		}
		seen[f.ID] = true
		s.Features = append(s.Features, f)
		s.addOwned(&f.Type, seen)
	}
}

// typeIDs returns the known-type id set.
func (s *Snapshot) typeIDs() map[string]bool {
	ids := make(map[string]bool, len(s.Types))
	for _, e := range s.Types {
		ids[e.ElementID()] = true
	}
	return ids
}

// featureIDs returns the known-feature id set.
func (s *Snapshot) featureIDs() map[string]bool {
	ids := make(map[string]bool, len(s.Features))
	for _, e := range s.Features {
		ids[e.ElementID()] = true
	}
	return ids
}
