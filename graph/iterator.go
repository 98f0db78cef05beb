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

	"devt.de/krotik/travgraph/graph/data"
	"devt.de/krotik/travgraph/graph/util"
)

/*
VertexIterator can be used to iterate the vertices of a graph.
*/
type VertexIterator struct {
	gm        *Manager     // GraphManager which created the iterator
	filter    VertexFilter // Filter for vertices
	ids       []uint64     // Snapshot of vertex ids
	pos       int          // Position of the next candidate
	LastError error        // Last encountered error
}

/*
Next returns the next vertex. Sets the LastError attribute if the vertex was
removed since the iterator was created.
*/
func (it *VertexIterator) Next() data.Vertex {
	it.skipFiltered()

	if it.pos >= len(it.ids) {
		return nil
	}

	id := it.ids[it.pos]
	it.pos++

	vertex := it.gm.FetchVertex(id)

	if vertex == nil {
		it.LastError = &util.GraphError{Type: util.ErrUnknownVertex,
			Detail: fmt.Sprint("Vertex ", id, " was removed")}
	}

	return vertex
}

/*
HasNext returns if there is a next vertex.
*/
func (it *VertexIterator) HasNext() bool {
	it.skipFiltered()

	return it.pos < len(it.ids)
}

/*
Error returns the last encountered error.
*/
func (it *VertexIterator) Error() error {
	return it.LastError
}

/*
skipFiltered moves the position forward over vertices which do not pass
the filter.
*/
func (it *VertexIterator) skipFiltered() {
	if it.filter == nil {
		return
	}

	for it.pos < len(it.ids) {
		vertex := it.gm.FetchVertex(it.ids[it.pos])

		if vertex == nil || it.filter(vertex) {
			return
		}

		it.pos++
	}
}
