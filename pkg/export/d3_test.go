package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoshimomax/sysmlmodeler/pkg/kerml"
)

func demoModel(t *testing.T) *kerml.Model {
	t.Helper()
	m := kerml.NewModel("m1", "demo")

	vehicle := kerml.NewType("t1", "Vehicle")
	vehicle.IsAbstract = true
	wheels := kerml.NewFeature("f1", "wheels")
	wheels.TypeID = "wheel"
	vehicle.AddFeature(wheels)

	car := kerml.NewType("t2", "Car")
	require.NoError(t, car.AddSpecialization("t1"))

	m.AddElement(vehicle)
	m.AddElement(car)
	m.AddElement(kerml.NewSpecialization("r1", "t2", "t1"))
	return m
}

func linksByRelation(g *D3Graph, relation string) []D3Link {
	var out []D3Link
	for _, l := range g.Links {
		if l.Relation == relation {
			out = append(out, l)
		}
	}
	return out
}

func nodeIDs(g *D3Graph) map[string]D3Node {
	out := make(map[string]D3Node, len(g.Nodes))
	for _, n := range g.Nodes {
		out[n.ID] = n
	}
	return out
}

func TestTransformBasicGraph(t *testing.T) {
	g := Transform(demoModel(t))

	nodes := nodeIDs(g)
	require.Contains(t, nodes, "t1")
	require.Contains(t, nodes, "t2")
	require.Contains(t, nodes, "f1")
	assert.NotContains(t, nodes, "r1", "edge entities excluded by default")

	assert.True(t, nodes["t1"].Abstract)
	assert.Equal(t, "type", nodes["t1"].Group)
	assert.Equal(t, "feature", nodes["f1"].Group)
	assert.Equal(t, "t1", nodes["f1"].ParentID)

	owns := linksByRelation(g, RelationOwns)
	require.Len(t, owns, 1)
	assert.Equal(t, D3Link{Source: "t1", Target: "f1", Relation: RelationOwns}, owns[0])

	// The carried specialization id and the first-class edge both produce
	// a specializes link.
	spec := linksByRelation(g, RelationSpecializes)
	assert.Len(t, spec, 2)
}

func TestTransformKeepsDanglingTargets(t *testing.T) {
	m := kerml.NewModel("m1", "demo")
	u := kerml.NewUnion("u1", "U")
	u.AddOperand("ghost")
	m.AddElement(u)

	g := Transform(m)
	ops := linksByRelation(g, RelationOperand)
	require.Len(t, ops, 1)
	assert.Equal(t, "ghost", ops[0].Target)
}

func TestTransformConnectorAndBehaviorLinks(t *testing.T) {
	m := kerml.NewModel("m1", "demo")

	c := kerml.NewConnector("c1", "link")
	c.AddConnectedFeature("f1")
	c.AddConnectedFeature("f2")
	m.AddElement(c)

	b := kerml.NewBehavior("b1", "drive")
	b.AddStep("s1")
	m.AddElement(b)

	d := kerml.NewDifference("d1", "D")
	d.UpdateOperands("x", "")
	m.AddElement(d)

	g := Transform(m)

	assert.Len(t, linksByRelation(g, RelationConnects), 2)
	assert.Len(t, linksByRelation(g, RelationStep), 1)
	ops := linksByRelation(g, RelationOperand)
	require.Len(t, ops, 1, "empty operand produces no link")
	assert.Equal(t, "x", ops[0].Target)

	nodes := nodeIDs(g)
	assert.Equal(t, "connector", nodes["c1"].Group)
	assert.Equal(t, "behavior", nodes["b1"].Group)
	assert.Equal(t, "operator", nodes["d1"].Group)
}

func TestTransformStepLinksForEveryBehaviorKind(t *testing.T) {
	m := kerml.NewModel("m1", "demo")

	b := kerml.NewBehavior("b1", "drive")
	b.AddStep("s1")
	fn := kerml.NewFunction("fn1", "speed")
	fn.AddStep("s2")
	ex := kerml.NewExpression("e1", "expr")
	ex.AddStep("s3")
	pr := kerml.NewPredicate("p1", "isMoving")
	pr.AddStep("s4")
	in := kerml.NewInteraction("i1", "handshake")
	in.AddStep("s5")

	for _, e := range []kerml.Element{b, fn, ex, pr, in} {
		m.AddElement(e)
	}

	steps := linksByRelation(Transform(m), RelationStep)
	require.Len(t, steps, 5)
	sources := make(map[string]bool, len(steps))
	for _, l := range steps {
		sources[l.Source] = true
	}
	for _, id := range []string{"b1", "fn1", "e1", "p1", "i1"} {
		assert.True(t, sources[id], "step link from %s", id)
	}
}

func TestTransformIncludesEdgeNodesOnDemand(t *testing.T) {
	tr := &Transformer{ExcludeRelationshipNodes: false}
	g := tr.Transform(demoModel(t))

	nodes := nodeIDs(g)
	assert.Contains(t, nodes, "r1")
}

func TestRelationLabels(t *testing.T) {
	cases := map[string]kerml.Relationship{
		RelationSpecializes: kerml.NewSpecialization("r1", "a", "b"),
		RelationConjugates:  kerml.NewConjugation("r2", "a", "b"),
		RelationMember:      kerml.NewFeatureMembership("r3", "a", "b"),
		RelationFeatures:    kerml.NewTypeFeaturing("r4", "a", "b"),
		RelationChains:      kerml.NewFeatureChaining("r5", "a", "b"),
		RelationInverts:     kerml.NewFeatureInverting("r6", "a", "b"),
	}
	for want, rel := range cases {
		assert.Equal(t, want, relationLabel(rel))
	}
}

func TestTransformEmptyModel(t *testing.T) {
	g := Transform(kerml.NewModel("m1", "empty"))
	assert.NotNil(t, g.Nodes)
	assert.NotNil(t, g.Links)
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Links)
}

func TestSaveGraph(t *testing.T) {
	g := Transform(demoModel(t))
	path := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, SaveGraph(g, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got D3Graph
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Len(t, got.Nodes, len(g.Nodes))
	assert.Len(t, got.Links, len(g.Links))
}
