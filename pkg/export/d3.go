// Package export transforms a model into the D3 force-directed graph JSON
// consumed by the diagram-rendering frontend. Elements become nodes;
// ownership, specialization, relationship edges, operator operands and
// connector ends become typed links.
package export

import (
	"encoding/json"
	"os"

	"github.com/yoshimomax/sysmlmodeler/pkg/kerml"
)

// D3Node represents a node in the D3 force-directed graph.
type D3Node struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind,omitempty"`
	Group    string `json:"group,omitempty"`
	ParentID string `json:"parentId,omitempty"`
	Abstract bool   `json:"abstract,omitempty"`
}

// D3Link represents a link/edge in the D3 force-directed graph.
type D3Link struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Relation string `json:"relation"`
}

// D3Graph is the full graph structure for D3.js.
type D3Graph struct {
	Nodes []D3Node `json:"nodes"`
	Links []D3Link `json:"links"`
}

// Link relation labels. The frontend styles edges by these strings, so
// they are part of the export contract.
const (
	RelationOwns        = "owns"
	RelationSpecializes = "specializes"
	RelationMember      = "member"
	RelationConjugates  = "conjugates"
	RelationFeatures    = "features"
	RelationChains      = "chains"
	RelationInverts     = "inverts"
	RelationOperand     = "operand"
	RelationConnects    = "connects"
	RelationStep        = "step"
)

// Transformer converts a model into a D3 graph. Unresolved link targets are
// kept; the frontend renders dangling ends in a warning style, so nothing
// is silently dropped here.
type Transformer struct {
	// ExcludeRelationshipNodes drops the edge entities themselves from the
	// node set, keeping only the links they imply. Edge nodes clutter the
	// canvas, so NewTransformer turns this on.
	ExcludeRelationshipNodes bool
}

// NewTransformer creates a transformer with the frontend's defaults.
func NewTransformer() *Transformer {
	return &Transformer{ExcludeRelationshipNodes: true}
}

// Transform walks the model's flat element array and produces the graph.
func (t *Transformer) Transform(m *kerml.Model) *D3Graph {
	graph := &D3Graph{Nodes: []D3Node{}, Links: []D3Link{}}
	seen := make(map[string]bool)

	addNode := func(e kerml.Element, parentID string) {
		if seen[e.ElementID()] {
			return
		}
		seen[e.ElementID()] = true
		base := e.Base()
		name := base.Name
		if name == "" {
			name = base.ID
		}
		node := D3Node{
			ID:       base.ID,
			Name:     name,
			Kind:     string(e.ElementKind()),
			Group:    groupOf(e),
			ParentID: parentID,
		}
		if ty := kerml.TypeOf(e); ty != nil {
			node.Abstract = ty.IsAbstract
		}
		graph.Nodes = append(graph.Nodes, node)
	}

	addLink := func(source, target, relation string) {
		if source == "" || target == "" {
			return
		}
		graph.Links = append(graph.Links, D3Link{Source: source, Target: target, Relation: relation})
	}

	var addOwned func(ty *kerml.Type)
	addOwned = func(ty *kerml.Type) {
		for _, f := range ty.Features {
			addNode(f, ty.ID)
			addLink(ty.ID, f.ID, RelationOwns)
			addOwned(&f.Type)
		}
	}

	for _, e := range m.Elements {
		if rel, ok := e.(kerml.Relationship); ok {
			if !t.ExcludeRelationshipNodes {
				addNode(e, "")
			}
			first, second := rel.Endpoints()
			addLink(first, second, relationLabel(rel))
			continue
		}

		addNode(e, e.Base().OwnerID)

		if ty := kerml.TypeOf(e); ty != nil {
			for _, g := range ty.SpecializationIDs {
				addLink(ty.ID, g, RelationSpecializes)
			}
			addOwned(ty)
		}
		if c := kerml.ConnectorOf(e); c != nil {
			for _, end := range c.ConnectedFeatureIDs {
				addLink(c.ID, end, RelationConnects)
			}
		}
		if b := kerml.BehaviorOf(e); b != nil {
			for _, step := range b.StepIDs {
				addLink(b.ID, step, RelationStep)
			}
		}

		switch v := e.(type) {
		case *kerml.Union:
			for _, op := range v.OperandIDs {
				addLink(v.ID, op, RelationOperand)
			}
		case *kerml.Intersect:
			for _, op := range v.OperandIDs {
				addLink(v.ID, op, RelationOperand)
			}
		case *kerml.Difference:
			addLink(v.ID, v.FirstOperandID, RelationOperand)
			addLink(v.ID, v.SecondOperandID, RelationOperand)
		}
	}

	return graph
}

// relationLabel maps an edge kind to its link relation string.
func relationLabel(rel kerml.Relationship) string {
	switch rel.ElementKind() {
	case kerml.KindSpecialization:
		return RelationSpecializes
	case kerml.KindConjugation:
		return RelationConjugates
	case kerml.KindFeatureMembership:
		return RelationMember
	case kerml.KindTypeFeaturing:
		return RelationFeatures
	case kerml.KindFeatureChaining:
		return RelationChains
	case kerml.KindFeatureInverting:
		return RelationInverts
	}
	return string(rel.ElementKind())
}

// groupOf buckets kinds for coloring on the canvas.
func groupOf(e kerml.Element) string {
	switch e.ElementKind() {
	case kerml.KindUnion, kerml.KindIntersect, kerml.KindDifference:
		return "operator"
	case kerml.KindBehavior, kerml.KindStep, kerml.KindFunction,
		kerml.KindExpression, kerml.KindPredicate, kerml.KindInteraction:
		return "behavior"
	case kerml.KindConnector, kerml.KindBindingConnector, kerml.KindSuccession,
		kerml.KindItemFlow, kerml.KindSuccessionItemFlow:
		return "connector"
	case kerml.KindPackage, kerml.KindModel:
		return "organization"
	case kerml.KindMultiplicityRange, kerml.KindFeatureValue, kerml.KindMetadataFeature:
		return "value"
	}
	if kerml.FeatureOf(e) != nil {
		return "feature"
	}
	return "type"
}

// Transform is a convenience wrapper using the default transformer.
func Transform(m *kerml.Model) *D3Graph {
	return NewTransformer().Transform(m)
}

// SaveGraph writes the graph to a JSON file.
func SaveGraph(graph *D3Graph, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(graph)
}
