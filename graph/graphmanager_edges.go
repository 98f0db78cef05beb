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
	"iter"

	"devt.de/krotik/travgraph/graph/data"
	"devt.de/krotik/travgraph/graph/util"
)

/*
FetchEdge fetches a single edge from the graph. Returns nil if the edge
does not exist.
*/
func (gm *Manager) FetchEdge(id uint64) data.Edge {

	// Take reader lock

	gm.mutex.RLock()
	defer gm.mutex.RUnlock()

	return copyEdge(gm.edges[id])
}

/*
StoreEdge stores a single edge. Both endpoints must exist in the graph. An
edge without an id gets the next id from the identifier space of this
graph (the id is also set on the given edge). Storing an edge with an
existing id updates it and increases its revision id.
*/
func (gm *Manager) StoreEdge(edge data.Edge) error {
	stored, old, err := gm.writeEdge(edge)
	if err != nil {
		return err
	}

	if old == nil {
		return gm.gr.graphEvent(EventEdgeCreated, stored)
	}

	return gm.gr.graphEvent(EventEdgeUpdated, stored, old)
}

/*
writeEdge writes a copy of an edge to the graph and returns a copy of the
stored edge and the old edge if there was one. The given edge receives the
id and revision of the stored edge.
*/
func (gm *Manager) writeEdge(edge data.Edge) (data.Edge, data.Edge, error) {
	if edge == nil {
		return nil, nil, &util.GraphError{Type: util.ErrInvalidData, Detail: "Edge is nil"}
	}

	stored, err := cloneEdge(edge)
	if err != nil {
		return nil, nil, err
	}

	// Take writer lock

	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	if err := gm.checkEdge(stored); err != nil {
		return nil, nil, err
	}

	if stored.HasID() {
		gm.eids.Claim(stored.ID())
	} else {
		stored.SetAttr(data.VertexID, gm.eids.NextID())
	}

	id := stored.ID()
	old := gm.edges[id]

	var revid uint64 = 1
	if old != nil {
		revid = old.RevID() + 1

		removeFromIndex(gm.outIndex, old.OutVertexID(), id)
		removeFromIndex(gm.inIndex, old.InVertexID(), id)
	}

	// Normalize ids to real numbers

	stored.SetAttr(data.VertexID, id)
	stored.SetAttr(data.VertexRevID, revid)
	stored.SetAttr(data.EdgeOutVertex, stored.OutVertexID())
	stored.SetAttr(data.EdgeInVertex, stored.InVertexID())

	gm.edges[id] = stored

	addToIndex(gm.outIndex, stored.OutVertexID(), id)
	addToIndex(gm.inIndex, stored.InVertexID(), id)

	edge.SetAttr(data.VertexID, id)
	edge.SetAttr(data.VertexRevID, revid)

	return copyEdge(stored), old, nil
}

/*
RemoveEdge removes a single edge from the graph. Returns the deleted edge or
nil if the edge did not exist.
*/
func (gm *Manager) RemoveEdge(id uint64) (data.Edge, error) {
	old := gm.deleteEdge(id)

	if old == nil {
		return nil, nil
	}

	return old, gm.gr.graphEvent(EventEdgeDeleted, old)
}

/*
deleteEdge deletes an edge from the graph.
*/
func (gm *Manager) deleteEdge(id uint64) data.Edge {

	// Take writer lock

	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	old, ok := gm.edges[id]
	if ok {
		delete(gm.edges, id)

		removeFromIndex(gm.outIndex, old.OutVertexID(), id)
		removeFromIndex(gm.inIndex, old.InVertexID(), id)
	}

	return old
}

/*
OutEdges returns a lazy sequence of all edges starting at a given vertex
which pass a given filter. Edges are produced in ascending id order.
*/
func (gm *Manager) OutEdges(id uint64, filter EdgeFilter) iter.Seq[data.Edge] {
	return gm.indexedEdges(gm.outIndex, id, filter)
}

/*
InEdges returns a lazy sequence of all edges pointing to a given vertex
which pass a given filter. Edges are produced in ascending id order.
*/
func (gm *Manager) InEdges(id uint64, filter EdgeFilter) iter.Seq[data.Edge] {
	return gm.indexedEdges(gm.inIndex, id, filter)
}

/*
indexedEdges returns a lazy sequence over an edge index entry.
*/
func (gm *Manager) indexedEdges(index map[uint64]map[uint64]struct{}, id uint64,
	filter EdgeFilter) iter.Seq[data.Edge] {

	return func(yield func(data.Edge) bool) {

		gm.mutex.RLock()
		ids := sortedIDs(index[id])
		gm.mutex.RUnlock()

		for _, eid := range ids {
			edge := gm.FetchEdge(eid)

			if edge == nil || (filter != nil && !filter(edge)) {
				continue
			}

			if !yield(edge) {
				return
			}
		}
	}
}
