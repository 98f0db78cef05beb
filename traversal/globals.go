/*
 * EliasDB
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package traversal contains compact graph representations for fast read-only
traversal. The graphs store only vertex ids and edge values. They are
usually derived from a property graph (see the projection package).

Vertex ids are dense unsigned integers which are used as direct indices
into fixed size storage. The capacity of a graph is set at construction
time and cannot grow.

AdjacencyListGraph

Sparse directed graph. Each vertex which was added with AddVertex has a set
of successor ids. KeyedAdjacencyListGraph has the same contract for any
ordered key type and is backed by a map.

WeightedAdjacencyListGraph

Sparse directed graph where each successor entry carries a weight. The
identity of a successor entry is its destination vertex only - adding an
edge to an existing destination keeps the first weight.

AdjacencyMatrixGraph

Dense directed graph with one value slot per ordered vertex pair. Empty
slots are tracked separately so every value (including the zero value) can
be stored.

UndirectedAdjacencyMatrixGraph

Dense undirected graph which stores only the upper triangle of the matrix.
Each edge is stored as (smaller id, larger id).

Enumerations

All enumerations are lazy sequences (iter.Seq) which read the live storage
of a graph. Changing a graph while an enumeration is running gives
undefined results. None of the graphs in this package are safe for
concurrent use.
*/
package traversal

import (
	"fmt"

	"devt.de/krotik/travgraph/graph/util"
)

/*
Triple is a single edge of a graph with its value.
*/
type Triple[T any] struct {
	Out   uint64 // Id of the out vertex
	Value T      // Edge value
	In    uint64 // Id of the in vertex
}

/*
String returns a string representation of this triple.
*/
func (t Triple[T]) String() string {
	return fmt.Sprintf("(%v, %v, %v)", t.Out, t.Value, t.In)
}

/*
checkVertexRange checks that a vertex id is below a given capacity.
*/
func checkVertexRange(id uint64, capacity uint64) error {
	if id >= capacity {
		return &util.GraphError{
			Type:   util.ErrVertexOutOfRange,
			Detail: fmt.Sprintf("Vertex %v is not below %v", id, capacity),
		}
	}
	return nil
}

/*
uninitializedVertex returns an error for a vertex which was never added.
*/
func uninitializedVertex(id interface{}) error {
	return &util.GraphError{
		Type:   util.ErrUninitializedVertex,
		Detail: fmt.Sprint("Vertex ", id),
	}
}
