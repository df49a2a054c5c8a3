package codec

import (
	"encoding/json"
	"fmt"

	"github.com/yoshimomax/sysmlmodeler/pkg/kerml"
)

// Deserialize reconstructs the concrete element named by the record's
// discriminator. Any already-built children whose ownerId equals the new
// element's id are re-parented into its owned feature sequence; this is how
// callers that deserialize a flat stream reattach nested features. An
// unrecognized discriminator or a record missing a required field yields a
// typed error and no element.
func Deserialize(rec Record, children ...kerml.Element) (kerml.Element, error) {
	kindName, err := requireString(rec, TypeKey)
	if err != nil {
		return nil, err
	}
	id, err := requireString(rec, "id")
	if err != nil {
		return nil, err
	}

	var e kerml.Element
	switch kerml.Kind(kindName) {
	case kerml.KindType:
		t := kerml.NewType(id, "")
		if err := readType(rec, t); err != nil {
			return nil, err
		}
		e = t
	case kerml.KindFeature:
		f := kerml.NewFeature(id, "")
		if err := readFeature(rec, f); err != nil {
			return nil, err
		}
		e = f
	case kerml.KindClassifier:
		c := kerml.NewClassifier(id, "")
		if err := readClassifier(rec, c); err != nil {
			return nil, err
		}
		e = c
	case kerml.KindDataType:
		d := kerml.NewDataType(id, "")
		if err := readClassifier(rec, &d.Classifier); err != nil {
			return nil, err
		}
		e = d
	case kerml.KindClass:
		c := kerml.NewClass(id, "")
		if err := readClassifier(rec, &c.Classifier); err != nil {
			return nil, err
		}
		e = c
	case kerml.KindStructure:
		s := kerml.NewStructure(id, "")
		if err := readClassifier(rec, &s.Classifier); err != nil {
			return nil, err
		}
		e = s
	case kerml.KindAssociation:
		a := kerml.NewAssociation(id, "")
		if err := readClassifier(rec, &a.Classifier); err != nil {
			return nil, err
		}
		e = a
	case kerml.KindConnector:
		c := kerml.NewConnector(id, "")
		if err := readConnector(rec, c); err != nil {
			return nil, err
		}
		e = c
	case kerml.KindBindingConnector:
		b := kerml.NewBindingConnector(id, "")
		if err := readConnector(rec, &b.Connector); err != nil {
			return nil, err
		}
		e = b
	case kerml.KindSuccession:
		s := kerml.NewSuccession(id, "")
		if err := readSuccession(rec, s); err != nil {
			return nil, err
		}
		e = s
	case kerml.KindItemFlow:
		f := kerml.NewItemFlow(id, "")
		if err := readConnector(rec, &f.Connector); err != nil {
			return nil, err
		}
		f.ItemTypeID, _ = getString(rec, "itemTypeId")
		e = f
	case kerml.KindSuccessionItemFlow:
		f := kerml.NewSuccessionItemFlow(id, "")
		if err := readSuccession(rec, &f.Succession); err != nil {
			return nil, err
		}
		f.ItemTypeID, _ = getString(rec, "itemTypeId")
		e = f
	case kerml.KindBehavior:
		b := kerml.NewBehavior(id, "")
		if err := readBehavior(rec, b); err != nil {
			return nil, err
		}
		e = b
	case kerml.KindStep:
		s := kerml.NewStep(id, "")
		if err := readFeature(rec, &s.Feature); err != nil {
			return nil, err
		}
		e = s
	case kerml.KindFunction:
		f := kerml.NewFunction(id, "")
		if err := readFunction(rec, f); err != nil {
			return nil, err
		}
		e = f
	case kerml.KindExpression:
		x := kerml.NewExpression(id, "")
		if err := readExpression(rec, x); err != nil {
			return nil, err
		}
		e = x
	case kerml.KindPredicate:
		p := kerml.NewPredicate(id, "")
		if err := readExpression(rec, &p.Expression); err != nil {
			return nil, err
		}
		e = p
	case kerml.KindInteraction:
		i := kerml.NewInteraction(id, "")
		if err := readBehavior(rec, &i.Behavior); err != nil {
			return nil, err
		}
		i.ParticipantIDs = getStringSlice(rec, "participantIds")
		e = i
	case kerml.KindSpecialization:
		specific, err := requireString(rec, "specificId")
		if err != nil {
			return nil, err
		}
		general, err := requireString(rec, "generalId")
		if err != nil {
			return nil, err
		}
		e = kerml.NewSpecialization(id, specific, general)
	case kerml.KindConjugation:
		original, err := requireString(rec, "originalTypeId")
		if err != nil {
			return nil, err
		}
		conjugated, err := requireString(rec, "conjugatedTypeId")
		if err != nil {
			return nil, err
		}
		e = kerml.NewConjugation(id, original, conjugated)
	case kerml.KindFeatureMembership:
		owning, err := requireString(rec, "owningTypeId")
		if err != nil {
			return nil, err
		}
		member, err := requireString(rec, "memberFeatureId")
		if err != nil {
			return nil, err
		}
		e = kerml.NewFeatureMembership(id, owning, member)
	case kerml.KindTypeFeaturing:
		feature, err := requireString(rec, "featureId")
		if err != nil {
			return nil, err
		}
		featuring, err := requireString(rec, "featuringTypeId")
		if err != nil {
			return nil, err
		}
		e = kerml.NewTypeFeaturing(id, feature, featuring)
	case kerml.KindFeatureChaining:
		feature, err := requireString(rec, "featureId")
		if err != nil {
			return nil, err
		}
		chaining, err := requireString(rec, "chainingFeatureId")
		if err != nil {
			return nil, err
		}
		e = kerml.NewFeatureChaining(id, feature, chaining)
	case kerml.KindFeatureInverting:
		inverted, err := requireString(rec, "featureInvertedId")
		if err != nil {
			return nil, err
		}
		inverting, err := requireString(rec, "invertingFeatureId")
		if err != nil {
			return nil, err
		}
		e = kerml.NewFeatureInverting(id, inverted, inverting)
	case kerml.KindUnion:
		u := kerml.NewUnion(id, "")
		if err := readType(rec, &u.Type); err != nil {
			return nil, err
		}
		u.OperandIDs = getStringSlice(rec, "operandIds")
		e = u
	case kerml.KindIntersect:
		i := kerml.NewIntersect(id, "")
		if err := readType(rec, &i.Type); err != nil {
			return nil, err
		}
		i.OperandIDs = getStringSlice(rec, "operandIds")
		e = i
	case kerml.KindDifference:
		d := kerml.NewDifference(id, "")
		if err := readType(rec, &d.Type); err != nil {
			return nil, err
		}
		first, err := requireString(rec, "firstOperandId")
		if err != nil {
			return nil, err
		}
		second, err := requireString(rec, "secondOperandId")
		if err != nil {
			return nil, err
		}
		d.UpdateOperands(first, second)
		e = d
	case kerml.KindMultiplicityRange:
		lower, err := requireInt(rec, "lowerBound")
		if err != nil {
			return nil, err
		}
		upper, err := requireInt(rec, "upperBound")
		if err != nil {
			return nil, err
		}
		e = kerml.NewMultiplicityRange(id, lower, upper)
	case kerml.KindFeatureValue:
		feature, err := requireString(rec, "featureId")
		if err != nil {
			return nil, err
		}
		value, err := requireString(rec, "valueId")
		if err != nil {
			return nil, err
		}
		e = kerml.NewFeatureValue(id, feature, value)
	case kerml.KindMetadataFeature:
		m := kerml.NewMetadataFeature(id, "")
		if err := readFeature(rec, &m.Feature); err != nil {
			return nil, err
		}
		m.AnnotatedElementIDs = getStringSlice(rec, "annotatedElementIds")
		e = m
	case kerml.KindPackage:
		p := kerml.NewPackage(id, "")
		p.ElementIDs = getStringSlice(rec, "elementIds")
		p.ImportIDs = getStringSlice(rec, "importIds")
		e = p
	case kerml.KindModel:
		return DeserializeModel(rec)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kindName)
	}

	readBase(rec, e.Base())
	reparent(e, children)
	return e, nil
}

// DeserializeModel reconstructs a model from the root record. Elements are
// rebuilt in array order; each element sees the ones built before it as
// re-parenting candidates, which restores ownership for flat streams where
// features precede their owner.
func DeserializeModel(rec Record) (*kerml.Model, error) {
	kindName, err := requireString(rec, TypeKey)
	if err != nil {
		return nil, err
	}
	if kerml.Kind(kindName) != kerml.KindModel {
		return nil, fmt.Errorf("%w: expected Model, got %q", ErrUnknownKind, kindName)
	}
	id, err := requireString(rec, "id")
	if err != nil {
		return nil, err
	}

	m := kerml.NewModel(id, "")
	readBase(rec, m.Base())
	m.RootPackageIDs = getStringSlice(rec, "rootPackageIds")

	var built []kerml.Element
	for i, er := range getRecordSlice(rec, "elements") {
		e, err := Deserialize(er, built...)
		if err != nil {
			return nil, fmt.Errorf("deserialize element %d: %w", i, err)
		}
		built = append(built, e)
		m.AddElement(e)
	}
	return m, nil
}

// DecodeModel parses the JSON form of a root record.
func DecodeModel(data []byte) (*kerml.Model, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode model record: %w", err)
	}
	return DeserializeModel(rec)
}

// reparent appends feature children owned by e that are not already in its
// owned sequence. Insertion order of the children slice is preserved.
func reparent(e kerml.Element, children []kerml.Element) {
	t := kerml.TypeOf(e)
	if t == nil {
		return
	}
	for _, c := range children {
		if c.Base().OwnerID != e.ElementID() {
			continue
		}
		f := kerml.FeatureOf(c)
		if f == nil || t.FindFeatureByID(f.ID) != nil {
			continue
		}
		t.Features = append(t.Features, f)
	}
}

func readBase(rec Record, b *kerml.ElementBase) {
	b.Name, _ = getString(rec, "name")
	b.ShortName, _ = getString(rec, "shortName")
	b.QualifiedName, _ = getString(rec, "qualifiedName")
	b.Description, _ = getString(rec, "description")
	b.OwnerID, _ = getString(rec, "ownerId")
}

func readType(rec Record, t *kerml.Type) error {
	t.IsAbstract = getBool(rec, "isAbstract")
	t.IsConjugated = getBool(rec, "isConjugated")
	t.Multiplicity, _ = getString(rec, "multiplicity")
	t.SpecializationIDs = getStringSlice(rec, "specializationIds")

	for i, fr := range getRecordSlice(rec, "features") {
		fid, err := requireString(fr, "id")
		if err != nil {
			return fmt.Errorf("embedded feature %d: %w", i, err)
		}
		f := kerml.NewFeature(fid, "")
		if err := readFeature(fr, f); err != nil {
			return fmt.Errorf("embedded feature %d: %w", i, err)
		}
		readBase(fr, f.Base())
		t.Features = append(t.Features, f)
	}
	return nil
}

func readFeature(rec Record, f *kerml.Feature) error {
	if err := readType(rec, &f.Type); err != nil {
		return err
	}
	f.IsUnique = getBool(rec, "isUnique")
	f.IsOrdered = getBool(rec, "isOrdered")
	f.IsComposite = getBool(rec, "isComposite")
	f.IsPortion = getBool(rec, "isPortion")
	f.IsReadOnly = getBool(rec, "isReadOnly")
	f.IsDerived = getBool(rec, "isDerived")
	f.IsEnd = getBool(rec, "isEnd")
	if d, ok := getString(rec, "direction"); ok {
		f.Direction = kerml.Direction(d)
	}
	f.TypeID, _ = getString(rec, "typeId")
	f.RedefinitionIDs = getStringSlice(rec, "redefinitionIds")
	return nil
}

func readClassifier(rec Record, c *kerml.Classifier) error {
	if err := readType(rec, &c.Type); err != nil {
		return err
	}
	c.IsFinal = getBool(rec, "isFinal")
	c.IsIndividual = getBool(rec, "isIndividual")
	return nil
}

func readConnector(rec Record, c *kerml.Connector) error {
	if err := readFeature(rec, &c.Feature); err != nil {
		return err
	}
	c.ConnectedFeatureIDs = getStringSlice(rec, "connectedFeatureIds")
	return nil
}

func readSuccession(rec Record, s *kerml.Succession) error {
	if err := readConnector(rec, &s.Connector); err != nil {
		return err
	}
	s.Effect, _ = getString(rec, "effect")
	s.Guard, _ = getString(rec, "guard")
	return nil
}

func readBehavior(rec Record, b *kerml.Behavior) error {
	if err := readClassifier(rec, &b.Classifier); err != nil {
		return err
	}
	b.StepIDs = getStringSlice(rec, "stepIds")
	return nil
}

func readFunction(rec Record, f *kerml.Function) error {
	if err := readBehavior(rec, &f.Behavior); err != nil {
		return err
	}
	f.ResultID, _ = getString(rec, "resultId")
	return nil
}

func readExpression(rec Record, e *kerml.Expression) error {
	if err := readFunction(rec, &e.Function); err != nil {
		return err
	}
	e.Body, _ = getString(rec, "body")
	return nil
}
