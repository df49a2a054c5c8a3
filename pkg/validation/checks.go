package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yoshimomax/sysmlmodeler/pkg/kerml"
)

// CheckSpecializationCycles walks the specialization graph and reports each
// distinct cycle once. The adjacency map merges the first-class
// specialization edges with the target ids carried on the types themselves,
// since both express the same is-a relation. A diamond hierarchy (shared
// acyclic ancestors) is valid and reports nothing.
func CheckSpecializationCycles(snap *Snapshot) []Issue {
	adj := make(map[string][]string)
	addEdge := func(specific, general string) {
		if specific == "" || general == "" {
			return
		}
		for _, g := range adj[specific] {
			if g == general {
				return
			}
		}
		adj[specific] = append(adj[specific], general)
	}

	var starts []string
	for _, sp := range snap.Specializations {
		addEdge(sp.SpecificID, sp.GeneralID)
		starts = append(starts, sp.SpecificID)
	}
	for _, e := range append(append([]kerml.Element{}, snap.Types...), snap.Features...) {
		t := kerml.TypeOf(e)
		if t == nil {
			continue
		}
		for _, g := range t.SpecializationIDs {
			addEdge(t.ID, g)
		}
		starts = append(starts, t.ID)
	}

	var issues []Issue
	reported := make(map[string]bool) // canonical cycle key -> already reported

	for _, start := range starts {
		visited := make(map[string]bool)
		var path []string
		onPath := make(map[string]int)

		var walk func(node string)
		walk = func(node string) {
			onPath[node] = len(path)
			path = append(path, node)
			visited[node] = true

			for _, general := range adj[node] {
				if idx, ok := onPath[general]; ok {
					cycle := append([]string{}, path[idx:]...)
					key := canonicalCycleKey(cycle)
					if !reported[key] {
						reported[key] = true
						issues = append(issues, Issue{
							ElementID:   cycle[0],
							ElementType: "Type",
							Code:        CodeSpecializationCycle,
							Message:     fmt.Sprintf("specialization cycle: %s -> %s", strings.Join(cycle, " -> "), cycle[0]),
						})
					}
					continue
				}
				if !visited[general] {
					walk(general)
				}
			}

			path = path[:len(path)-1]
			delete(onPath, node)
		}

		if !visited[start] {
			walk(start)
		}
	}
	return issues
}

// canonicalCycleKey identifies a cycle independent of the node the walk
// entered it from.
func canonicalCycleKey(cycle []string) string {
	sorted := append([]string{}, cycle...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}

// CheckMultiplicityBounds flags negative lower bounds and upper bounds
// below the lower bound, with -1 meaning unbounded.
func CheckMultiplicityBounds(snap *Snapshot) []Issue {
	var issues []Issue
	for _, r := range snap.Ranges {
		if r.LowerBound < 0 {
			issues = append(issues, Issue{
				ElementID:   r.ID,
				ElementType: string(kerml.KindMultiplicityRange),
				Code:        CodeInvalidLowerBound,
				Message:     fmt.Sprintf("lower bound must be >= 0, got %d", r.LowerBound),
			})
		}
		if r.UpperBound != kerml.UnboundedValue && r.UpperBound < r.LowerBound {
			issues = append(issues, Issue{
				ElementID:   r.ID,
				ElementType: string(kerml.KindMultiplicityRange),
				Code:        CodeInvalidUpperBound,
				Message:     fmt.Sprintf("upper bound %d is below lower bound %d", r.UpperBound, r.LowerBound),
			})
		}
	}
	return issues
}

// CheckOperatorArity flags empty operand lists on unions and intersects and
// each missing difference operand independently. At least one operand is
// the minimum for union/intersect.
func CheckOperatorArity(snap *Snapshot) []Issue {
	var issues []Issue
	for _, u := range snap.Unions {
		if len(u.OperandIDs) == 0 {
			issues = append(issues, Issue{
				ElementID:   u.ID,
				ElementType: string(kerml.KindUnion),
				Code:        CodeEmptyOperands,
				Message:     "union requires at least one operand",
			})
		}
	}
	for _, i := range snap.Intersects {
		if len(i.OperandIDs) == 0 {
			issues = append(issues, Issue{
				ElementID:   i.ID,
				ElementType: string(kerml.KindIntersect),
				Code:        CodeEmptyOperands,
				Message:     "intersect requires at least one operand",
			})
		}
	}
	for _, d := range snap.Differences {
		if d.FirstOperandID == "" {
			issues = append(issues, Issue{
				ElementID:   d.ID,
				ElementType: string(kerml.KindDifference),
				Code:        CodeMissingFirstOperand,
				Message:     "difference requires a first operand",
			})
		}
		if d.SecondOperandID == "" {
			issues = append(issues, Issue{
				ElementID:   d.ID,
				ElementType: string(kerml.KindDifference),
				Code:        CodeMissingSecondOperand,
				Message:     "difference requires a second operand",
			})
		}
	}
	return issues
}

// CheckRelationshipEndpoints flags any edge with an empty endpoint id.
func CheckRelationshipEndpoints(snap *Snapshot) []Issue {
	var issues []Issue
	for _, rel := range snap.Relationships {
		first, second := rel.Endpoints()
		firstRole, secondRole := rel.EndpointRoles()
		if first == "" {
			issues = append(issues, Issue{
				ElementID:   rel.ElementID(),
				ElementType: string(rel.ElementKind()),
				Code:        CodeMissingEndpoint,
				Message:     fmt.Sprintf("%s endpoint is empty", firstRole),
			})
		}
		if second == "" {
			issues = append(issues, Issue{
				ElementID:   rel.ElementID(),
				ElementType: string(rel.ElementKind()),
				Code:        CodeMissingEndpoint,
				Message:     fmt.Sprintf("%s endpoint is empty", secondRole),
			})
		}
	}
	return issues
}

// CheckFeatureFlags flags the composite/portion conflict and end features
// without a type reference.
func CheckFeatureFlags(snap *Snapshot) []Issue {
	var issues []Issue
	for _, e := range snap.Features {
		f := kerml.FeatureOf(e)
		if f == nil {
			continue
		}
		if f.IsComposite && f.IsPortion {
			issues = append(issues, Issue{
				ElementID:   f.ID,
				ElementType: string(e.ElementKind()),
				Code:        CodeIncompatibleFlags,
				Message:     "isComposite and isPortion are mutually exclusive",
			})
		}
		if f.IsEnd && f.TypeID == "" {
			issues = append(issues, Issue{
				ElementID:   f.ID,
				ElementType: string(e.ElementKind()),
				Code:        CodeMissingTypeReference,
				Message:     "end feature requires a type reference",
			})
		}
	}
	return issues
}

// CheckReferentialIntegrity flags feature type references that do not
// resolve against the known-type set and owned features missing from the
// known-feature set.
func CheckReferentialIntegrity(snap *Snapshot) []Issue {
	var issues []Issue
	typeIDs := snap.typeIDs()
	featureIDs := snap.featureIDs()

	for _, e := range snap.Features {
		f := kerml.FeatureOf(e)
		if f == nil || f.TypeID == "" {
			continue
		}
		if !typeIDs[f.TypeID] {
			issues = append(issues, Issue{
				ElementID:   f.ID,
				ElementType: string(e.ElementKind()),
				Code:        CodeUnknownTypeReference,
				Message:     fmt.Sprintf("feature type %q does not resolve to a known type", f.TypeID),
			})
		}
	}

	for _, e := range snap.Types {
		t := kerml.TypeOf(e)
		if t == nil {
			continue
		}
		for _, f := range t.Features {
			if !featureIDs[f.ID] {
				issues = append(issues, Issue{
					ElementID:   t.ID,
					ElementType: string(e.ElementKind()),
					Code:        CodeUnknownFeature,
					Message:     fmt.Sprintf("owned feature %q is not in the known feature set", f.ID),
				})
			}
		}
	}
	return issues
}

// CheckConnectorArity flags connectors with fewer than two connected
// features. The constructor deliberately does not enforce this because
// connectors are built one end at a time.
func CheckConnectorArity(snap *Snapshot) []Issue {
	var issues []Issue
	for _, e := range snap.Features {
		c := kerml.ConnectorOf(e)
		if c == nil {
			continue
		}
		if len(c.ConnectedFeatureIDs) < 2 {
			issues = append(issues, Issue{
				ElementID:   c.ID,
				ElementType: string(e.ElementKind()),
				Code:        CodeTooFewConnectorEnds,
				Message:     fmt.Sprintf("connector has %d connected features, expected at least 2", len(c.ConnectedFeatureIDs)),
			})
		}
	}
	return issues
}

// Validate runs every constraint family over one snapshot and concatenates
// the results in invocation order. The global ordering across families is
// not a contract; counts and codes are.
func Validate(snap *Snapshot) []Issue {
	var issues []Issue
	issues = append(issues, CheckSpecializationCycles(snap)...)
	issues = append(issues, CheckMultiplicityBounds(snap)...)
	issues = append(issues, CheckOperatorArity(snap)...)
	issues = append(issues, CheckRelationshipEndpoints(snap)...)
	issues = append(issues, CheckFeatureFlags(snap)...)
	issues = append(issues, CheckConnectorArity(snap)...)
	issues = append(issues, CheckReferentialIntegrity(snap)...)
	return issues
}

// ValidateModel snapshots a model and validates it. The model is read, not
// mutated; callers must not mutate it concurrently.
func ValidateModel(m *kerml.Model) []Issue {
	return Validate(SnapshotFromModel(m))
}
