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
	"fmt"

	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/common/sortutil"
	"devt.de/krotik/common/stringutil"
	"devt.de/krotik/travgraph/graph/data"
	"devt.de/krotik/travgraph/graph/util"
)

// Helper functions for GraphManager
// =================================

/*
checkVertex checks if a given vertex can be written to the graph.
*/
func (gm *Manager) checkVertex(vertex data.Vertex) error {
	return gm.checkItemGeneral(vertex, "Vertex")
}

/*
checkItemGeneral checks the general properties of a given graph item.
*/
func (gm *Manager) checkItemGeneral(vertex data.Vertex, name string) error {
	if vertex == nil {
		return &util.GraphError{Type: util.ErrInvalidData, Detail: name + " is nil"}
	}

	if _, ok := vertex.Data()[data.VertexID]; ok && !vertex.HasID() {
		return &util.GraphError{
			Type:   util.ErrInvalidData,
			Detail: fmt.Sprintf("%v id %v is not a non-negative number", name, vertex.Attr(data.VertexID)),
		}
	}

	if label := vertex.Label(); label != "" && !stringutil.IsAlphaNumeric(label) {
		return &util.GraphError{
			Type:   util.ErrInvalidData,
			Detail: fmt.Sprintf("%v label %v is not alphanumeric - can only contain [a-zA-Z0-9_]", name, label),
		}
	}

	for attr := range vertex.Data() {
		if attr == "" {
			return &util.GraphError{Type: util.ErrInvalidData, Detail: name + " contains empty string attribute name"}
		}
	}

	return nil
}

/*
checkEdge checks if a given edge can be written to the graph. This function
expects the caller to hold the manager's lock.
*/
func (gm *Manager) checkEdge(edge data.Edge) error {
	if edge == nil {
		return &util.GraphError{Type: util.ErrInvalidData, Detail: "Edge is nil"}
	}

	if err := gm.checkItemGeneral(edge, "Edge"); err != nil {
		return err
	}

	if !data.HasEnds(edge) {
		return &util.GraphError{Type: util.ErrInvalidData, Detail: "Edge is missing an out or in vertex id"}
	}

	if _, ok := gm.vertices[edge.OutVertexID()]; !ok {
		return &util.GraphError{Type: util.ErrUnknownVertex, Detail: fmt.Sprint("Out vertex ", edge.OutVertexID())}
	}

	if _, ok := gm.vertices[edge.InVertexID()]; !ok {
		return &util.GraphError{Type: util.ErrUnknownVertex, Detail: fmt.Sprint("In vertex ", edge.InVertexID())}
	}

	return nil
}

/*
cloneVertex makes a deep copy of a given vertex so stored data is not shared
with the caller.
*/
func cloneVertex(vertex data.Vertex) (data.Vertex, error) {
	res, err := data.VertexClone(vertex)

	if err != nil {
		return nil, &util.GraphError{
			Type:   util.ErrInvalidData,
			Detail: fmt.Sprint("Vertex data cannot be copied: ", err),
		}
	}

	return res, nil
}

/*
cloneEdge makes a deep copy of a given edge.
*/
func cloneEdge(edge data.Edge) (data.Edge, error) {
	res, err := data.EdgeClone(edge)

	if err != nil {
		return nil, &util.GraphError{
			Type:   util.ErrInvalidData,
			Detail: fmt.Sprint("Edge data cannot be copied: ", err),
		}
	}

	return res, nil
}

/*
copyVertex makes a deep copy of a stored vertex. Stored data has been copied
before so this cannot fail.
*/
func copyVertex(vertex data.Vertex) data.Vertex {
	if vertex == nil {
		return nil
	}

	res, err := cloneVertex(vertex)
	errorutil.AssertOk(err)

	return res
}

/*
copyEdge makes a deep copy of a stored edge.
*/
func copyEdge(edge data.Edge) data.Edge {
	if edge == nil {
		return nil
	}

	res, err := cloneEdge(edge)
	errorutil.AssertOk(err)

	return res
}

/*
sortedIDs returns the keys of an id map in ascending order.
*/
func sortedIDs[V any](m map[uint64]V) []uint64 {
	ids := make([]uint64, 0, len(m))

	for id := range m {
		ids = append(ids, id)
	}

	sortutil.UInt64s(ids)

	return ids
}

/*
addToIndex adds an edge id to the index entry of a vertex.
*/
func addToIndex(index map[uint64]map[uint64]struct{}, vertex uint64, edge uint64) {
	entry, ok := index[vertex]
	if !ok {
		entry = make(map[uint64]struct{})
		index[vertex] = entry
	}
	entry[edge] = struct{}{}
}

/*
removeFromIndex removes an edge id from the index entry of a vertex.
*/
func removeFromIndex(index map[uint64]map[uint64]struct{}, vertex uint64, edge uint64) {
	if entry, ok := index[vertex]; ok {
		delete(entry, edge)
		if len(entry) == 0 {
			delete(index, vertex)
		}
	}
}
