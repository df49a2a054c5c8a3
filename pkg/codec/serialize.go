package codec

import (
	"encoding/json"
	"fmt"

	"github.com/yoshimomax/sysmlmodeler/pkg/kerml"
)

// Serialize produces the portable record for one element. Every declared
// field is included (empty optionals are dropped), and type-like elements
// embed the serialized form of their directly-owned features inline, so an
// arbitrarily deep ownership tree serializes as one nested record.
func Serialize(e kerml.Element) (Record, error) {
	rec := Record{TypeKey: string(e.ElementKind())}
	writeBase(rec, e.Base())

	switch v := e.(type) {
	case *kerml.Type:
		writeType(rec, v)
	case *kerml.Feature:
		writeFeature(rec, v)
	case *kerml.Classifier:
		writeClassifier(rec, v)
	case *kerml.DataType:
		writeClassifier(rec, &v.Classifier)
	case *kerml.Class:
		writeClassifier(rec, &v.Classifier)
	case *kerml.Structure:
		writeClassifier(rec, &v.Classifier)
	case *kerml.Association:
		writeClassifier(rec, &v.Classifier)
	case *kerml.Connector:
		writeConnector(rec, v)
	case *kerml.BindingConnector:
		writeConnector(rec, &v.Connector)
	case *kerml.Succession:
		writeSuccession(rec, v)
	case *kerml.ItemFlow:
		writeConnector(rec, &v.Connector)
		putString(rec, "itemTypeId", v.ItemTypeID)
	case *kerml.SuccessionItemFlow:
		writeSuccession(rec, &v.Succession)
		putString(rec, "itemTypeId", v.ItemTypeID)
	case *kerml.Behavior:
		writeBehavior(rec, v)
	case *kerml.Step:
		writeFeature(rec, &v.Feature)
	case *kerml.Function:
		writeFunction(rec, v)
	case *kerml.Expression:
		writeExpression(rec, v)
	case *kerml.Predicate:
		writeExpression(rec, &v.Expression)
	case *kerml.Interaction:
		writeBehavior(rec, &v.Behavior)
		putStrings(rec, "participantIds", v.ParticipantIDs)
	case *kerml.Specialization:
		rec["specificId"] = v.SpecificID
		rec["generalId"] = v.GeneralID
	case *kerml.Conjugation:
		rec["originalTypeId"] = v.OriginalTypeID
		rec["conjugatedTypeId"] = v.ConjugatedTypeID
	case *kerml.FeatureMembership:
		rec["owningTypeId"] = v.OwningTypeID
		rec["memberFeatureId"] = v.MemberFeatureID
	case *kerml.TypeFeaturing:
		rec["featureId"] = v.FeatureID
		rec["featuringTypeId"] = v.FeaturingTypeID
	case *kerml.FeatureChaining:
		rec["featureId"] = v.FeatureID
		rec["chainingFeatureId"] = v.ChainingFeatureID
	case *kerml.FeatureInverting:
		rec["featureInvertedId"] = v.FeatureInvertedID
		rec["invertingFeatureId"] = v.InvertingFeatureID
	case *kerml.Union:
		writeType(rec, &v.Type)
		putStrings(rec, "operandIds", v.OperandIDs)
	case *kerml.Intersect:
		writeType(rec, &v.Type)
		putStrings(rec, "operandIds", v.OperandIDs)
	case *kerml.Difference:
		writeType(rec, &v.Type)
		rec["firstOperandId"] = v.FirstOperandID
		rec["secondOperandId"] = v.SecondOperandID
	case *kerml.MultiplicityRange:
		rec["lowerBound"] = v.LowerBound
		rec["upperBound"] = v.UpperBound
	case *kerml.FeatureValue:
		rec["featureId"] = v.FeatureID
		rec["valueId"] = v.ValueID
	case *kerml.MetadataFeature:
		writeFeature(rec, &v.Feature)
		putStrings(rec, "annotatedElementIds", v.AnnotatedElementIDs)
	case *kerml.Package:
		putStrings(rec, "elementIds", v.ElementIDs)
		putStrings(rec, "importIds", v.ImportIDs)
	case *kerml.Model:
		return SerializeModel(v)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownKind, e)
	}

	return rec, nil
}

// SerializeModel produces the root record: shared metadata, root package
// ids and the flat elements array.
func SerializeModel(m *kerml.Model) (Record, error) {
	rec := Record{TypeKey: string(kerml.KindModel)}
	writeBase(rec, m.Base())
	putStrings(rec, "rootPackageIds", m.RootPackageIDs)

	elements := make([]Record, 0, len(m.Elements))
	for _, e := range m.Elements {
		er, err := Serialize(e)
		if err != nil {
			return nil, fmt.Errorf("serialize element %s: %w", e.ElementID(), err)
		}
		elements = append(elements, er)
	}
	if len(elements) > 0 {
		rec["elements"] = elements
	}
	return rec, nil
}

// EncodeModel renders a model as indented JSON, the on-disk and on-wire
// form of the root record.
func EncodeModel(m *kerml.Model) ([]byte, error) {
	rec, err := SerializeModel(m)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(rec, "", "  ")
}

func writeBase(rec Record, b *kerml.ElementBase) {
	rec["id"] = b.ID
	putString(rec, "name", b.Name)
	putString(rec, "shortName", b.ShortName)
	putString(rec, "qualifiedName", b.QualifiedName)
	putString(rec, "description", b.Description)
	putString(rec, "ownerId", b.OwnerID)
}

func writeType(rec Record, t *kerml.Type) {
	putBool(rec, "isAbstract", t.IsAbstract)
	putBool(rec, "isConjugated", t.IsConjugated)
	putString(rec, "multiplicity", t.Multiplicity)
	putStrings(rec, "specializationIds", t.SpecializationIDs)

	if len(t.Features) > 0 {
		features := make([]Record, 0, len(t.Features))
		for _, f := range t.Features {
			fr := Record{TypeKey: string(kerml.KindFeature)}
			writeBase(fr, f.Base())
			writeFeature(fr, f)
			features = append(features, fr)
		}
		rec["features"] = features
	}
}

func writeFeature(rec Record, f *kerml.Feature) {
	writeType(rec, &f.Type)
	putBool(rec, "isUnique", f.IsUnique)
	putBool(rec, "isOrdered", f.IsOrdered)
	putBool(rec, "isComposite", f.IsComposite)
	putBool(rec, "isPortion", f.IsPortion)
	putBool(rec, "isReadOnly", f.IsReadOnly)
	putBool(rec, "isDerived", f.IsDerived)
	putBool(rec, "isEnd", f.IsEnd)
	putString(rec, "direction", string(f.Direction))
	putString(rec, "typeId", f.TypeID)
	putStrings(rec, "redefinitionIds", f.RedefinitionIDs)
}

func writeClassifier(rec Record, c *kerml.Classifier) {
	writeType(rec, &c.Type)
	putBool(rec, "isFinal", c.IsFinal)
	putBool(rec, "isIndividual", c.IsIndividual)
}

func writeConnector(rec Record, c *kerml.Connector) {
	writeFeature(rec, &c.Feature)
	putStrings(rec, "connectedFeatureIds", c.ConnectedFeatureIDs)
}

func writeSuccession(rec Record, s *kerml.Succession) {
	writeConnector(rec, &s.Connector)
	putString(rec, "effect", s.Effect)
	putString(rec, "guard", s.Guard)
}

func writeBehavior(rec Record, b *kerml.Behavior) {
	writeClassifier(rec, &b.Classifier)
	putStrings(rec, "stepIds", b.StepIDs)
}

func writeFunction(rec Record, f *kerml.Function) {
	writeBehavior(rec, &f.Behavior)
	putString(rec, "resultId", f.ResultID)
}

func writeExpression(rec Record, e *kerml.Expression) {
	writeFunction(rec, &e.Function)
	putString(rec, "body", e.Body)
}
