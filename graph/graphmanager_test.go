/*
 * EliasDB
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package graph

import (
	"errors"
	"fmt"
	"testing"

	"devt.de/krotik/travgraph/graph/data"
	"devt.de/krotik/travgraph/graph/util"
)

/*
newGraphManagerNoRules returns a new GraphManager instance without loading rules.
*/
func newGraphManagerNoRules(name string) *Manager {
	return createGraphManager(name, util.NewSequentialIDSource(), util.NewSequentialIDSource())
}

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

func TestVertexStorage(t *testing.T) {
	gm := NewGraphManager("test")

	if res := gm.Name(); res != "Graph test" {
		t.Error("Unexpected result:", res)
		return
	}

	v1 := newVertex("Person")
	v1.SetAttr("name", "Hans")

	if err := gm.StoreVertex(v1); err != nil {
		t.Error(err)
		return
	}

	if res := v1.ID(); res != 0 {
		t.Error("Unexpected id:", res)
		return
	}

	v2 := newVertex("Person")

	if err := gm.StoreVertex(v2); err != nil {
		t.Error(err)
		return
	}

	if res := v2.ID(); res != 1 {
		t.Error("Unexpected id:", res)
		return
	}

	if res := gm.NumberOfVertices(); res != 2 {
		t.Error("Unexpected result:", res)
		return
	}

	fetched := gm.FetchVertex(0)

	if fetched.Attr("name") != "Hans" || fetched.RevID() != 1 {
		t.Error("Unexpected result:", fetched)
		return
	}

	// Fetched vertices are copies

	fetched.SetAttr("name", "Heinz")

	if res := gm.FetchVertex(0).Attr("name"); res != "Hans" {
		t.Error("Stored data should not be changed:", res)
		return
	}

	// Update increases the revision

	if err := gm.StoreVertex(fetched); err != nil {
		t.Error(err)
		return
	}

	if res := gm.FetchVertex(0); res.RevID() != 2 || res.Attr("name") != "Heinz" {
		t.Error("Unexpected result:", res)
		return
	}

	if res := gm.NumberOfVertices(); res != 2 {
		t.Error("Unexpected result:", res)
		return
	}

	// Explicit ids move the identifier space forward

	v3 := newVertex("Person")
	v3.SetAttr(data.VertexID, 10)

	if err := gm.StoreVertex(v3); err != nil {
		t.Error(err)
		return
	}

	v4 := newVertex("Person")

	if err := gm.StoreVertex(v4); err != nil || v4.ID() != 11 {
		t.Error("Unexpected result:", v4.ID(), err)
		return
	}

	if res := gm.FetchVertex(99); res != nil {
		t.Error("Unexpected result:", res)
		return
	}

	if res, err := gm.RemoveVertex(99); res != nil || err != nil {
		t.Error("Unexpected result:", res, err)
		return
	}

	if res, err := gm.RemoveVertex(10); err != nil || res.ID() != 10 {
		t.Error("Unexpected result:", res, err)
		return
	}

	if res := gm.NumberOfVertices(); res != 3 {
		t.Error("Unexpected result:", res)
		return
	}
}

func TestVertexStorageErrors(t *testing.T) {
	gm := NewGraphManager("test")

	var ge *util.GraphError

	err := gm.StoreVertex(nil)
	if !errors.As(err, &ge) || ge.Type != util.ErrInvalidData {
		t.Error("Unexpected result:", err)
		return
	}

	if err := gm.StoreVertex(newVertex("a-b")); err == nil || err.Error() !=
		"GraphError: Invalid data (Vertex label a-b is not alphanumeric - can only contain [a-zA-Z0-9_])" {
		t.Error("Unexpected result:", err)
		return
	}

	v := newVertex("a")
	v.SetAttr("", "x")

	if err := gm.StoreVertex(v); err == nil || err.Error() !=
		"GraphError: Invalid data (Vertex contains empty string attribute name)" {
		t.Error("Unexpected result:", err)
		return
	}

	v = newVertex("a")
	v.SetAttr(data.VertexID, -5)

	if err := gm.StoreVertex(v); !errors.Is(err, util.ErrInvalidData) {
		t.Error("Unexpected result:", err)
		return
	}

	// Attribute values must be copyable

	v = newVertex("a")
	v.SetAttr("point", struct{ X int }{1})

	if err := gm.StoreVertex(v); !errors.Is(err, util.ErrInvalidData) ||
		gm.NumberOfVertices() != 0 {
		t.Error("Unexpected result:", err)
		return
	}
}

func TestStoredDataIsCopied(t *testing.T) {
	gm := NewGraphManager("test")

	v := newVertex("A")
	tags := map[string]interface{}{"k": "stored"}
	v.SetAttr("tags", tags)

	if err := gm.StoreVertex(v); err != nil {
		t.Error(err)
		return
	}

	// Changes of the caller do not reach the graph

	tags["k"] = "changed by caller"

	fetched := gm.FetchVertex(v.ID())

	if res := fetched.Attr("tags").(map[string]interface{})["k"]; res != "stored" {
		t.Error("Unexpected result:", res)
		return
	}

	// Neither do changes of fetched data

	fetched.Attr("tags").(map[string]interface{})["k"] = "changed after fetch"

	if res := gm.FetchVertex(v.ID()).Attr("tags").(map[string]interface{})["k"]; res != "stored" {
		t.Error("Unexpected result:", res)
		return
	}

	gm.StoreVertex(newVertex("B"))

	e := newEdge("L", 0, 1)
	e.SetAttr("path", []interface{}{"a", "b"})

	if err := gm.StoreEdge(e); err != nil || e.ID() != 0 || e.RevID() != 1 {
		t.Error("Unexpected result:", e, err)
		return
	}

	e.Attr("path").([]interface{})[0] = "x"

	if res := fmt.Sprint(gm.FetchEdge(0).Attr("path")); res != "[a b]" {
		t.Error("Unexpected result:", res)
		return
	}
}

func TestEdgeStorage(t *testing.T) {
	gm := NewGraphManager("test")

	for i := 0; i < 3; i++ {
		gm.StoreVertex(newVertex("V"))
	}

	e1 := newEdge("L1", 0, 1)
	e2 := newEdge("L2", 0, 2)
	e3 := newEdge("L3", 2, 0)

	for _, e := range []data.Edge{e1, e2, e3} {
		if err := gm.StoreEdge(e); err != nil {
			t.Error(err)
			return
		}
	}

	if res := gm.NumberOfEdges(); res != 3 {
		t.Error("Unexpected result:", res)
		return
	}

	var labels []string
	for e := range gm.OutEdges(0, nil) {
		labels = append(labels, e.Label())
	}

	if res := fmt.Sprint(labels); res != "[L1 L2]" {
		t.Error("Unexpected result:", res)
		return
	}

	labels = nil
	for e := range gm.OutEdges(0, func(e data.Edge) bool { return e.InVertexID() == 2 }) {
		labels = append(labels, e.Label())
	}

	if res := fmt.Sprint(labels); res != "[L2]" {
		t.Error("Unexpected result:", res)
		return
	}

	labels = nil
	for e := range gm.InEdges(0, nil) {
		labels = append(labels, e.Label())
	}

	if res := fmt.Sprint(labels); res != "[L3]" {
		t.Error("Unexpected result:", res)
		return
	}

	// Move an edge to other endpoints

	moved := gm.FetchEdge(e1.ID())
	moved.SetAttr(data.EdgeOutVertex, 1)
	moved.SetAttr(data.EdgeInVertex, 2)

	if err := gm.StoreEdge(moved); err != nil {
		t.Error(err)
		return
	}

	if res := gm.FetchEdge(e1.ID()); res.RevID() != 2 || res.OutVertexID() != 1 {
		t.Error("Unexpected result:", res)
		return
	}

	labels = nil
	for e := range gm.OutEdges(0, nil) {
		labels = append(labels, e.Label())
	}

	if res := fmt.Sprint(labels); res != "[L2]" {
		t.Error("Unexpected result:", res)
		return
	}

	if res, err := gm.RemoveEdge(e2.ID()); err != nil || res.Label() != "L2" {
		t.Error("Unexpected result:", res, err)
		return
	}

	if res, err := gm.RemoveEdge(e2.ID()); err != nil || res != nil {
		t.Error("Unexpected result:", res, err)
		return
	}

	if res := gm.FetchEdge(e2.ID()); res != nil {
		t.Error("Unexpected result:", res)
		return
	}

	// Early termination of an enumeration

	count := 0
	for range gm.Vertices(nil) {
		count++
		break
	}

	if count != 1 {
		t.Error("Unexpected result:", count)
		return
	}
}

func TestEdgeStorageErrors(t *testing.T) {
	gm := NewGraphManager("test")

	gm.StoreVertex(newVertex("V"))

	if err := gm.StoreEdge(nil); !errors.Is(err, util.ErrInvalidData) {
		t.Error("Unexpected result:", err)
		return
	}

	e := data.NewGraphEdge()
	e.SetAttr(data.EdgeOutVertex, 0)

	if err := gm.StoreEdge(e); err == nil || err.Error() !=
		"GraphError: Invalid data (Edge is missing an out or in vertex id)" {
		t.Error("Unexpected result:", err)
		return
	}

	if err := gm.StoreEdge(newEdge("L", 0, 5)); err == nil || err.Error() !=
		"GraphError: Unknown vertex (In vertex 5)" {
		t.Error("Unexpected result:", err)
		return
	}

	if err := gm.StoreEdge(newEdge("L", 7, 0)); err == nil || err.Error() !=
		"GraphError: Unknown vertex (Out vertex 7)" {
		t.Error("Unexpected result:", err)
		return
	}

	if res := gm.NumberOfEdges(); res != 0 {
		t.Error("Unexpected result:", res)
		return
	}
}

func TestVertexEnumeration(t *testing.T) {
	gm := NewGraphManager("test")

	for _, l := range []string{"A", "B", "A", "C"} {
		gm.StoreVertex(newVertex(l))
	}

	var ids []uint64
	for v := range gm.Vertices(func(v data.Vertex) bool { return v.Label() == "A" }) {
		ids = append(ids, v.ID())
	}

	if res := fmt.Sprint(ids); res != "[0 2]" {
		t.Error("Unexpected result:", res)
		return
	}

	it := gm.VertexIterator(func(v data.Vertex) bool { return v.Label() != "A" })

	ids = nil
	for it.HasNext() {
		ids = append(ids, it.Next().ID())
	}

	if res := fmt.Sprint(ids); res != "[1 3]" || it.Error() != nil {
		t.Error("Unexpected result:", res, it.Error())
		return
	}

	if res := it.Next(); res != nil {
		t.Error("Unexpected result:", res)
		return
	}

	// Removing a vertex while iterating

	it = gm.VertexIterator(nil)

	gm.RemoveVertex(0)

	if res := it.Next(); res != nil || it.Error() == nil ||
		it.Error().Error() != "GraphError: Unknown vertex (Vertex 0 was removed)" {
		t.Error("Unexpected result:", res, it.Error())
		return
	}

	if res := it.Next(); res.ID() != 1 {
		t.Error("Unexpected result:", res)
		return
	}
}
