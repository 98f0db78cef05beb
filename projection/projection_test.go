/*
 * EliasDB
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package projection

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"devt.de/krotik/travgraph/graph"
	"devt.de/krotik/travgraph/graph/data"
	"devt.de/krotik/travgraph/graph/util"
	"devt.de/krotik/travgraph/traversal"
)

/*
newVertex creates a new vertex with a given label.
*/
func newVertex(label string) data.Vertex {
	v := data.NewGraphVertex()
	v.SetAttr(data.VertexLabel, label)
	return v
}

/*
newEdge creates a new edge with a given label between two vertices.
*/
func newEdge(label string, out uint64, in uint64) data.Edge {
	e := data.NewGraphEdge()
	e.SetAttr(data.VertexLabel, label)
	e.SetAttr(data.EdgeOutVertex, out)
	e.SetAttr(data.EdgeInVertex, in)
	return e
}

/*
createTestGraph creates a graph with 3 vertices and the edges 0 -> 1 (L1)
and 0 -> 2 (L2).
*/
func createTestGraph() (*graph.Manager, []data.Edge) {
	gm := graph.NewGraphManager("test")

	gm.StoreVertex(newVertex("A"))
	gm.StoreVertex(newVertex("B"))
	gm.StoreVertex(newVertex("B"))

	edges := []data.Edge{newEdge("L1", 0, 1), newEdge("L2", 0, 2)}

	for _, e := range edges {
		gm.StoreEdge(e)
	}

	return gm, edges
}

/*
readOnlyGraph hides the rule functions of a graph manager.
*/
type readOnlyGraph struct {
	gm *graph.Manager
}

func (g *readOnlyGraph) NumberOfVertices() uint64 {
	return g.gm.NumberOfVertices()
}

func (g *readOnlyGraph) Vertices(filter graph.VertexFilter) iter.Seq[data.Vertex] {
	return g.gm.Vertices(filter)
}

func (g *readOnlyGraph) OutEdges(id uint64, filter graph.EdgeFilter) iter.Seq[data.Edge] {
	return g.gm.OutEdges(id, filter)
}

/*
triples returns all triples of a matrix as a string.
*/
func triples[T any](all iter.Seq[traversal.Triple[T]]) string {
	return fmt.Sprint(slices.Collect(all))
}

func TestBulkCopy(t *testing.T) {
	gm, _ := createTestGraph()

	added := testutil.ToFloat64(ProjectedEdgesTotal.WithLabelValues(PhaseBulk, ResultAdded))

	m, p, err := Project[string](gm, &Options[string]{})

	if err != nil {
		t.Error(err)
		return
	}

	if res := m.MaxNumberOfVertices(); res != 3 {
		t.Error("Unexpected result:", res)
		return
	}

	// All out edges of a vertex are copied

	if res := triples(m.All()); res != "[(0, L1, 1) (0, L2, 2)]" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := testutil.ToFloat64(ProjectedEdgesTotal.WithLabelValues(PhaseBulk, ResultAdded)) - added; res != 2 {
		t.Error("Unexpected result:", res)
		return
	}

	// Learning was not requested

	if p.IsLearning() {
		t.Error("Projection should not learn")
		return
	}

	if res := fmt.Sprint(gm.GraphRules()); res != "[system.deletevertexedges]" {
		t.Error("Unexpected result:", res)
		return
	}

	gm.StoreEdge(newEdge("L3", 1, 2))

	if m.HasEdge(1, 2) {
		t.Error("Edge should not be projected")
		return
	}
}

func TestContinuousLearning(t *testing.T) {
	gm, edges := createTestGraph()

	learning := testutil.ToFloat64(LearningProjections)

	m, p, err := Project[string](gm, nil)

	if err != nil {
		t.Error(err)
		return
	}

	if !p.IsLearning() || !strings.HasPrefix(p.Name(), RulePrefix) {
		t.Error("Unexpected projection state:", p.Name(), p.IsLearning())
		return
	}

	if res := fmt.Sprint(gm.GraphRules()); res != fmt.Sprintf("[%v system.deletevertexedges]", p.Name()) {
		t.Error("Unexpected result:", res)
		return
	}

	if res := testutil.ToFloat64(LearningProjections) - learning; res != 1 {
		t.Error("Unexpected result:", res)
		return
	}

	// New edges appear in the projection

	l3 := newEdge("L3", 1, 2)

	if err := gm.StoreEdge(l3); err != nil {
		t.Error(err)
		return
	}

	if res := fmt.Sprint(slices.Collect(m.OutEdges(1))); res != "[L3]" {
		t.Error("Unexpected result:", res)
		return
	}

	// Removed edges disappear

	if _, err := gm.RemoveEdge(edges[0].ID()); err != nil {
		t.Error(err)
		return
	}

	if m.HasEdge(0, 1) {
		t.Error("Edge should have been removed")
		return
	}

	// Updates move cells

	moved := gm.FetchEdge(edges[1].ID())
	moved.SetAttr(data.VertexLabel, "L4")
	moved.SetAttr(data.EdgeOutVertex, 2)
	moved.SetAttr(data.EdgeInVertex, 1)

	if err := gm.StoreEdge(moved); err != nil {
		t.Error(err)
		return
	}

	if res := triples(m.All()); res != "[(1, L3, 2) (2, L4, 1)]" {
		t.Error("Unexpected result:", res)
		return
	}

	// Value changes overwrite the cell

	removed := testutil.ToFloat64(ProjectedEdgesTotal.WithLabelValues(PhaseLearn, ResultRemoved))

	relabeled := gm.FetchEdge(l3.ID())
	relabeled.SetAttr(data.VertexLabel, "L3b")

	if err := gm.StoreEdge(relabeled); err != nil {
		t.Error(err)
		return
	}

	if res := triples(m.All()); res != "[(1, L3b, 2) (2, L4, 1)]" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := testutil.ToFloat64(ProjectedEdgesTotal.WithLabelValues(PhaseLearn, ResultRemoved)) - removed; res != 0 {
		t.Error("Unexpected result:", res)
		return
	}

	// Removing a vertex removes its edges from the projection

	if _, err := gm.RemoveVertex(2); err != nil {
		t.Error(err)
		return
	}

	if res := m.NumberOfEdges(); res != 0 {
		t.Error("Unexpected result:", res)
		return
	}

	// Edges outside of the projection capacity are reported to the caller

	gm.StoreVertex(newVertex("C"))
	gm.StoreVertex(newVertex("C"))

	failed := testutil.ToFloat64(ProjectedEdgesTotal.WithLabelValues(PhaseLearn, ResultError))

	outside := newEdge("L5", 0, 4)

	if err := gm.StoreEdge(outside); !errors.Is(err, util.ErrRule) ||
		!errors.Is(err, util.ErrVertexOutOfRange) {
		t.Error("Unexpected result:", err)
		return
	}

	if res := testutil.ToFloat64(ProjectedEdgesTotal.WithLabelValues(PhaseLearn, ResultError)) - failed; res != 1 {
		t.Error("Unexpected result:", res)
		return
	}

	// The source graph keeps the edge and removing it is a no-op for the projection

	if _, err := gm.RemoveEdge(outside.ID()); err != nil {
		t.Error(err)
		return
	}

	if res := m.NumberOfEdges(); res != 0 {
		t.Error("Unexpected result:", res)
		return
	}

	// Closing stops the learning

	p.Close()
	p.Close()

	if p.IsLearning() {
		t.Error("Projection should not learn anymore")
		return
	}

	if res := fmt.Sprint(gm.GraphRules()); res != "[system.deletevertexedges]" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := testutil.ToFloat64(LearningProjections) - learning; res != 0 {
		t.Error("Unexpected result:", res)
		return
	}

	gm.StoreEdge(newEdge("L6", 0, 1))

	if m.HasEdge(0, 1) {
		t.Error("Edge should not be projected")
		return
	}
}

func TestFilters(t *testing.T) {
	gm, _ := createTestGraph()

	gm.StoreEdge(newEdge("L3", 1, 2))
	gm.StoreEdge(newEdge("X", 2, 0))

	m, p, err := Project[string](gm, &Options[string]{
		VertexFilter: func(v data.Vertex) bool {
			return v.Label() == "B"
		},
		EdgeFilter: func(e data.Edge) bool {
			return strings.HasPrefix(e.Label(), "L")
		},
		ContinuousLearning: true,
	})

	if err != nil {
		t.Error(err)
		return
	}
	defer p.Close()

	// Capacity covers the highest filtered vertex id

	if res := m.MaxNumberOfVertices(); res != 3 {
		t.Error("Unexpected result:", res)
		return
	}

	if res := triples(m.All()); res != "[(1, L3, 2)]" {
		t.Error("Unexpected result:", res)
		return
	}

	// The same filters apply to new edges

	gm.StoreEdge(newEdge("L7", 0, 1))
	gm.StoreEdge(newEdge("L8", 2, 1))
	gm.StoreEdge(newEdge("Y", 1, 1))

	if res := triples(m.All()); res != "[(1, L3, 2) (2, L8, 1)]" {
		t.Error("Unexpected result:", res)
		return
	}
}

func TestExplicitSize(t *testing.T) {
	gm, _ := createTestGraph()

	failed := testutil.ToFloat64(ProjectedEdgesTotal.WithLabelValues(PhaseBulk, ResultError))

	// Edge 0 -> 2 does not fit into a target with 2 vertices

	m, p, err := Project[string](gm, &Options[string]{MaxVertices: 2, ContinuousLearning: true})

	if !errors.Is(err, util.ErrVertexOutOfRange) || err.Error() !=
		"GraphError: Vertex id out of range (Vertex 2 is not below 2)" {
		t.Error("Unexpected result:", err)
		return
	}

	if res := m.MaxNumberOfVertices(); res != 2 {
		t.Error("Unexpected result:", res)
		return
	}

	if res := testutil.ToFloat64(ProjectedEdgesTotal.WithLabelValues(PhaseBulk, ResultError)) - failed; res != 1 {
		t.Error("Unexpected result:", res)
		return
	}

	// A failed copy does not start learning

	if p.IsLearning() {
		t.Error("Failed projection should not learn")
		return
	}

	// A big enough target holds everything

	m, p, err = Project[string](gm, &Options[string]{MaxVertices: 5, ContinuousLearning: true})

	if err != nil {
		t.Error(err)
		return
	}
	defer p.Close()

	if res := triples(m.All()); res != "[(0, L1, 1) (0, L2, 2)]" {
		t.Error("Unexpected result:", res)
		return
	}

	gm.StoreVertex(newVertex("D"))

	if err := gm.StoreEdge(newEdge("L3", 0, 3)); err != nil {
		t.Error(err)
		return
	}

	if !m.HasEdge(0, 3) {
		t.Error("Edge should have been projected")
		return
	}
}

func TestProjectUndirected(t *testing.T) {
	gm, _ := createTestGraph()

	u, p, err := ProjectUndirected[string](gm, nil)

	if err != nil {
		t.Error(err)
		return
	}
	defer p.Close()

	if err := gm.StoreEdge(newEdge("L3", 2, 1)); err != nil {
		t.Error(err)
		return
	}

	if res := triples(u.All()); res != "[(0, L1, 1) (0, L2, 2) (1, L3, 2)]" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := fmt.Sprint(slices.Collect(u.Neighbors(2))); res != "[0 1]" {
		t.Error("Unexpected result:", res)
		return
	}
}

func TestProjectInto(t *testing.T) {
	gm, _ := createTestGraph()

	target := traversal.NewAdjacencyMatrixGraph[string](10)

	p, err := ProjectInto[string](target, &readOnlyGraph{gm}, nil)

	if err != nil {
		t.Error(err)
		return
	}

	// Read only graphs cannot be followed

	if p.IsLearning() {
		t.Error("Projection should not learn")
		return
	}

	if res := triples(target.All()); res != "[(0, L1, 1) (0, L2, 2)]" {
		t.Error("Unexpected result:", res)
		return
	}
}

func TestConversionErrors(t *testing.T) {
	gm, _ := createTestGraph()

	// Labels cannot be used as numbers

	_, p, err := Project[float64](gm, nil)

	if !errors.Is(err, util.ErrConversion) || err.Error() !=
		"GraphError: Could not convert edge value (Label \"L1\" of edge 0 is not a float64)" {
		t.Error("Unexpected result:", err)
		return
	}

	if p.IsLearning() {
		t.Error("Failed projection should not learn")
		return
	}

	// Errors during learning are returned to the caller of the graph change

	e := gm.FetchEdge(0)
	e.SetAttr("weight", 0.5)
	gm.StoreEdge(e)

	e = gm.FetchEdge(1)
	e.SetAttr("weight", "2")
	gm.StoreEdge(e)

	m, p, err := Project[float64](gm, &Options[float64]{
		Converter:          PropertyConverter("weight", Float64Value),
		ContinuousLearning: true,
	})

	if err != nil {
		t.Error(err)
		return
	}
	defer p.Close()

	if res := triples(m.All()); res != "[(0, 0.5, 1) (0, 2, 2)]" {
		t.Error("Unexpected result:", res)
		return
	}

	err = gm.StoreEdge(newEdge("L3", 1, 2))

	if !errors.Is(err, util.ErrRule) || !strings.Contains(err.Error(), "Edge 2 has no property weight") {
		t.Error("Unexpected result:", err)
		return
	}

	// The change of the source graph itself was applied

	if gm.FetchEdge(2) == nil || m.HasEdge(1, 2) {
		t.Error("Unexpected graph state")
		return
	}
}

func TestConverters(t *testing.T) {
	e := newEdge("L", 0, 1)
	e.SetAttr("w", "x")

	if _, err := PropertyConverter("w", Float64Value)(e); err == nil || err.Error() !=
		`GraphError: Could not convert edge value (Property w of edge 0: strconv.ParseFloat: parsing "x": invalid syntax)` {
		t.Error("Unexpected result:", err)
		return
	}

	if res, err := PropertyConverter("w", StringValue)(e); err != nil || res != "x" {
		t.Error("Unexpected result:", res, err)
		return
	}

	if res, err := LabelConverter[any]()(e); err != nil || res != "L" {
		t.Error("Unexpected result:", res, err)
		return
	}

	for _, v := range []interface{}{1, int64(2), uint32(3), float32(1.5), "4.5"} {
		if _, err := Float64Value(v); err != nil {
			t.Error("Unexpected error:", v, err)
			return
		}
	}

	if _, err := Float64Value(true); err == nil || err.Error() != "Value true of type bool is not a number" {
		t.Error("Unexpected result:", err)
		return
	}

	if res, err := Uint64Value("12"); err != nil || res != 12 {
		t.Error("Unexpected result:", res, err)
		return
	}

	if _, err := Uint64Value(-1); err == nil {
		t.Error("Negative values should not be converted")
		return
	}
}

func TestLabelCodes(t *testing.T) {
	gm, _ := createTestGraph()

	gm.StoreEdge(newEdge("L1", 2, 1))

	nm := util.NewNamesManager()

	m, p, err := Project(gm, &Options[uint32]{
		Converter:          LabelCodeConverter(nm),
		ContinuousLearning: true,
	})

	if err != nil {
		t.Error(err)
		return
	}
	defer p.Close()

	if res := triples(m.All()); res != "[(0, 1, 1) (0, 2, 2) (2, 1, 1)]" {
		t.Error("Unexpected result:", res)
		return
	}

	gm.StoreEdge(newEdge("L9", 1, 0))

	if v, ok := m.Edge(1, 0); !ok || nm.Decode32(v) != "L9" {
		t.Error("Unexpected result:", v, ok)
		return
	}
}
