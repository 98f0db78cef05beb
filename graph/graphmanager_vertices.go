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
)

/*
FetchVertex fetches a single vertex from the graph. Returns nil if the vertex
does not exist.
*/
func (gm *Manager) FetchVertex(id uint64) data.Vertex {

	// Take reader lock

	gm.mutex.RLock()
	defer gm.mutex.RUnlock()

	return copyVertex(gm.vertices[id])
}

/*
StoreVertex stores a single vertex. A vertex without an id gets the next id
from the identifier space of this graph (the id is also set on the given
vertex). Storing a vertex with an existing id updates it and increases its
revision id.
*/
func (gm *Manager) StoreVertex(vertex data.Vertex) error {
	if err := gm.checkVertex(vertex); err != nil {
		return err
	}

	stored, old, err := gm.writeVertex(vertex)
	if err != nil {
		return err
	}

	if old == nil {
		return gm.gr.graphEvent(EventVertexCreated, stored)
	}

	return gm.gr.graphEvent(EventVertexUpdated, stored, old)
}

/*
writeVertex writes a copy of a vertex to the graph and returns a copy of the
stored vertex and the old vertex if there was one. The given vertex receives
the id and revision of the stored vertex.
*/
func (gm *Manager) writeVertex(vertex data.Vertex) (data.Vertex, data.Vertex, error) {
	stored, err := cloneVertex(vertex)
	if err != nil {
		return nil, nil, err
	}

	// Take writer lock

	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	if stored.HasID() {
		gm.vids.Claim(stored.ID())
	} else {
		stored.SetAttr(data.VertexID, gm.vids.NextID())
	}

	id := stored.ID()
	old := gm.vertices[id]

	var revid uint64 = 1
	if old != nil {
		revid = old.RevID() + 1
	}

	// Normalize the id to a real number

	stored.SetAttr(data.VertexID, id)
	stored.SetAttr(data.VertexRevID, revid)

	gm.vertices[id] = stored

	vertex.SetAttr(data.VertexID, id)
	vertex.SetAttr(data.VertexRevID, revid)

	return copyVertex(stored), old, nil
}

/*
RemoveVertex removes a single vertex from the graph. Returns the deleted
vertex or nil if the vertex did not exist. Edges of the vertex are removed
by SystemRuleDeleteVertexEdges.
*/
func (gm *Manager) RemoveVertex(id uint64) (data.Vertex, error) {
	old := gm.deleteVertex(id)

	if old == nil {
		return nil, nil
	}

	return old, gm.gr.graphEvent(EventVertexDeleted, old)
}

/*
deleteVertex deletes a vertex from the graph.
*/
func (gm *Manager) deleteVertex(id uint64) data.Vertex {

	// Take writer lock

	gm.mutex.Lock()
	defer gm.mutex.Unlock()

	old, ok := gm.vertices[id]
	if ok {
		delete(gm.vertices, id)
	}

	return old
}

/*
Vertices returns a lazy sequence of all vertices which pass a given filter
in ascending id order. The sequence works on a snapshot of the vertex ids
which is taken when the iteration starts.
*/
func (gm *Manager) Vertices(filter VertexFilter) iter.Seq[data.Vertex] {
	return func(yield func(data.Vertex) bool) {

		gm.mutex.RLock()
		ids := sortedIDs(gm.vertices)
		gm.mutex.RUnlock()

		for _, id := range ids {
			vertex := gm.FetchVertex(id)

			if vertex == nil || (filter != nil && !filter(vertex)) {
				continue
			}

			if !yield(vertex) {
				return
			}
		}
	}
}

/*
VertexIterator returns an iterator over all vertices which pass a given
filter.
*/
func (gm *Manager) VertexIterator(filter VertexFilter) *VertexIterator {
	gm.mutex.RLock()
	defer gm.mutex.RUnlock()

	return &VertexIterator{gm, filter, sortedIDs(gm.vertices), 0, nil}
}
