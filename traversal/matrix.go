/*
 * EliasDB
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package traversal

import (
	"fmt"
	"iter"

	"devt.de/krotik/common/errorutil"
	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

/*
MaxMatrixVertices is the largest vertex capacity of a matrix graph. It keeps
the cell index arithmetic within uint64. A matrix allocates one cell for every
vertex pair so the capacity which can actually be allocated is much lower
(a matrix with 2^16 vertices already holds 2^32 cells). Constructors panic via
an errorutil assertion above this limit; below it running out of memory is
the caller's concern.
*/
const MaxMatrixVertices = 1 << 31

/*
AdjacencyMatrixGraph is a dense directed graph. Cell (out, in) holds the
value of the edge from out to in.
*/
type AdjacencyMatrixGraph[T any] struct {
	maxVertices uint64            // Capacity of the matrix
	cells       []T               // Row-major cell values
	present     *roaring64.Bitmap // Indices of occupied cells
}

/*
NewAdjacencyMatrixGraph creates a new empty matrix graph for a given
number of vertices.
*/
func NewAdjacencyMatrixGraph[T any](maxVertices uint64) *AdjacencyMatrixGraph[T] {
	errorutil.AssertTrue(maxVertices <= MaxMatrixVertices,
		fmt.Sprintf("Matrix capacity %v exceeds %v vertices", maxVertices, uint64(MaxMatrixVertices)))

	size := maxVertices * maxVertices

	return &AdjacencyMatrixGraph[T]{maxVertices, make([]T, size), roaring64.New()}
}

/*
MaxNumberOfVertices returns the vertex capacity of this graph.
*/
func (g *AdjacencyMatrixGraph[T]) MaxNumberOfVertices() uint64 {
	return g.maxVertices
}

/*
NumberOfEdges returns the number of stored edges.
*/
func (g *AdjacencyMatrixGraph[T]) NumberOfEdges() uint64 {
	return g.present.GetCardinality()
}

/*
index returns the cell index of an edge after checking both ids.
*/
func (g *AdjacencyMatrixGraph[T]) index(out uint64, in uint64) (uint64, error) {
	if err := checkVertexRange(out, g.maxVertices); err != nil {
		return 0, err
	}
	if err := checkVertexRange(in, g.maxVertices); err != nil {
		return 0, err
	}
	return out*g.maxVertices + in, nil
}

/*
AddEdge stores an edge value. An existing value is overwritten.
*/
func (g *AdjacencyMatrixGraph[T]) AddEdge(out uint64, in uint64, value T) error {
	i, err := g.index(out, in)

	if err == nil {
		g.present.Add(i)
		g.cells[i] = value
	}

	return err
}

/*
RemoveEdge empties a cell. Removing an edge which does not exist has no
effect.
*/
func (g *AdjacencyMatrixGraph[T]) RemoveEdge(out uint64, in uint64) error {
	i, err := g.index(out, in)

	if err == nil && g.present.CheckedRemove(i) {
		var zero T
		g.cells[i] = zero
	}

	return err
}

/*
Edge returns the value of an edge.
*/
func (g *AdjacencyMatrixGraph[T]) Edge(out uint64, in uint64) (T, bool) {
	var zero T

	i, err := g.index(out, in)

	if err != nil || !g.present.Contains(i) {
		return zero, false
	}

	return g.cells[i], true
}

/*
HasEdge checks if an edge exists.
*/
func (g *AdjacencyMatrixGraph[T]) HasEdge(out uint64, in uint64) bool {
	_, ok := g.Edge(out, in)
	return ok
}

/*
Out returns the successors of a vertex in ascending order.
*/
func (g *AdjacencyMatrixGraph[T]) Out(v uint64) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		g.row(v, func(in uint64, _ T) bool {
			return yield(in)
		})
	}
}

/*
OutEdges returns the values of all edges which start at a vertex ordered by
their in vertex.
*/
func (g *AdjacencyMatrixGraph[T]) OutEdges(v uint64) iter.Seq[T] {
	return func(yield func(T) bool) {
		g.row(v, func(_ uint64, value T) bool {
			return yield(value)
		})
	}
}

/*
In returns the predecessors of a vertex in ascending order.
*/
func (g *AdjacencyMatrixGraph[T]) In(v uint64) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		g.column(v, func(out uint64, _ T) bool {
			return yield(out)
		})
	}
}

/*
InEdges returns the values of all edges which end at a vertex ordered by
their out vertex.
*/
func (g *AdjacencyMatrixGraph[T]) InEdges(v uint64) iter.Seq[T] {
	return func(yield func(T) bool) {
		g.column(v, func(_ uint64, value T) bool {
			return yield(value)
		})
	}
}

/*
row visits all occupied cells (v, x).
*/
func (g *AdjacencyMatrixGraph[T]) row(v uint64, visit func(uint64, T) bool) {
	if v >= g.maxVertices {
		return
	}

	start := v * g.maxVertices
	end := start + g.maxVertices

	for i := range occupied(g.present, start, end) {
		if !visit(i-start, g.cells[i]) {
			return
		}
	}
}

/*
column visits all occupied cells (x, v).
*/
func (g *AdjacencyMatrixGraph[T]) column(v uint64, visit func(uint64, T) bool) {
	if v >= g.maxVertices {
		return
	}

	for out := uint64(0); out < g.maxVertices; out++ {
		if i := out*g.maxVertices + v; g.present.Contains(i) {
			if !visit(out, g.cells[i]) {
				return
			}
		}
	}
}

/*
All returns all edges of this graph in row-major order.
*/
func (g *AdjacencyMatrixGraph[T]) All() iter.Seq[Triple[T]] {
	return func(yield func(Triple[T]) bool) {
		for i := range occupied(g.present, 0, g.maxVertices*g.maxVertices) {
			if !yield(g.triple(i)) {
				return
			}
		}
	}
}

/*
Iterator returns an iterator over all edges of this graph in row-major order.
*/
func (g *AdjacencyMatrixGraph[T]) Iterator() *TripleIterator[T] {
	return &TripleIterator[T]{g, 0}
}

/*
triple builds the triple of an occupied cell.
*/
func (g *AdjacencyMatrixGraph[T]) triple(i uint64) Triple[T] {
	return Triple[T]{i / g.maxVertices, g.cells[i], i % g.maxVertices}
}

/*
String returns a string representation of this graph.
*/
func (g *AdjacencyMatrixGraph[T]) String() string {
	var buf []byte

	buf = fmt.Appendf(buf, "AdjacencyMatrixGraph (%v vertices, %v edges)\n",
		g.maxVertices, g.NumberOfEdges())

	for t := range g.All() {
		buf = fmt.Appendf(buf, "    %v\n", t)
	}

	return string(buf)
}

/*
TripleIterator iterates over the edges of a matrix graph.
*/
type TripleIterator[T any] struct {
	g   *AdjacencyMatrixGraph[T] // Graph to iterate
	pos uint64                   // Next cell to examine
}

/*
HasNext returns if there is a next edge.
*/
func (it *TripleIterator[T]) HasNext() bool {
	_, ok := nextOccupied(it.g.present, it.pos)
	return ok
}

/*
Next returns the next edge. Returns the zero triple if there are no more edges.
*/
func (it *TripleIterator[T]) Next() Triple[T] {
	i, ok := nextOccupied(it.g.present, it.pos)

	if !ok {
		it.pos = it.g.maxVertices * it.g.maxVertices
		return Triple[T]{}
	}

	it.pos = i + 1

	return it.g.triple(i)
}

/*
occupied returns the occupied cell indices in [start, end) in ascending order.
*/
func occupied(present *roaring64.Bitmap, start uint64, end uint64) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		it := present.Iterator()
		it.AdvanceIfNeeded(start)

		for it.HasNext() {
			if i := it.Next(); i >= end || !yield(i) {
				return
			}
		}
	}
}

/*
nextOccupied returns the first occupied cell index which is not below a given
index.
*/
func nextOccupied(present *roaring64.Bitmap, from uint64) (uint64, bool) {
	it := present.Iterator()
	it.AdvanceIfNeeded(from)

	if !it.HasNext() {
		return 0, false
	}

	return it.PeekNext(), true
}
