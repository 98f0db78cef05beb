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
UndirectedAdjacencyMatrixGraph is a dense undirected graph. Only the upper
triangle of the matrix is stored: row i holds the cells (i, j) with i <= j.
*/
type UndirectedAdjacencyMatrixGraph[T any] struct {
	maxVertices uint64            // Capacity of the matrix
	cells       []T               // Triangle cell values
	present     *roaring64.Bitmap // Indices of occupied cells
}

/*
NewUndirectedAdjacencyMatrixGraph creates a new empty undirected matrix
graph for a given number of vertices.
*/
func NewUndirectedAdjacencyMatrixGraph[T any](maxVertices uint64) *UndirectedAdjacencyMatrixGraph[T] {
	errorutil.AssertTrue(maxVertices <= MaxMatrixVertices,
		fmt.Sprintf("Matrix capacity %v exceeds %v vertices", maxVertices, uint64(MaxMatrixVertices)))

	size := maxVertices * (maxVertices + 1) / 2

	return &UndirectedAdjacencyMatrixGraph[T]{maxVertices, make([]T, size), roaring64.New()}
}

/*
MaxNumberOfVertices returns the vertex capacity of this graph.
*/
func (g *UndirectedAdjacencyMatrixGraph[T]) MaxNumberOfVertices() uint64 {
	return g.maxVertices
}

/*
NumberOfEdges returns the number of stored edges.
*/
func (g *UndirectedAdjacencyMatrixGraph[T]) NumberOfEdges() uint64 {
	return g.present.GetCardinality()
}

/*
rowStart returns the cell index of (i, i).
*/
func (g *UndirectedAdjacencyMatrixGraph[T]) rowStart(i uint64) uint64 {
	return i*g.maxVertices - i*(i-1)/2
}

/*
index returns the cell index of an edge after checking both ids.
*/
func (g *UndirectedAdjacencyMatrixGraph[T]) index(a uint64, b uint64) (uint64, error) {
	if err := checkVertexRange(a, g.maxVertices); err != nil {
		return 0, err
	}
	if err := checkVertexRange(b, g.maxVertices); err != nil {
		return 0, err
	}
	if a > b {
		a, b = b, a
	}
	return g.rowStart(a) + b - a, nil
}

/*
AddEdge stores an edge value. The order of the vertices does not matter.
*/
func (g *UndirectedAdjacencyMatrixGraph[T]) AddEdge(a uint64, b uint64, value T) error {
	i, err := g.index(a, b)

	if err == nil {
		g.present.Add(i)
		g.cells[i] = value
	}

	return err
}

/*
Connect stores an edge with the zero value of T.
*/
func (g *UndirectedAdjacencyMatrixGraph[T]) Connect(a uint64, b uint64) error {
	var zero T
	return g.AddEdge(a, b, zero)
}

/*
RemoveEdge empties a cell. Removing an edge which does not exist has no
effect.
*/
func (g *UndirectedAdjacencyMatrixGraph[T]) RemoveEdge(a uint64, b uint64) error {
	i, err := g.index(a, b)

	if err == nil && g.present.CheckedRemove(i) {
		var zero T
		g.cells[i] = zero
	}

	return err
}

/*
Edge returns the value of an edge.
*/
func (g *UndirectedAdjacencyMatrixGraph[T]) Edge(a uint64, b uint64) (T, bool) {
	var zero T

	i, err := g.index(a, b)

	if err != nil || !g.present.Contains(i) {
		return zero, false
	}

	return g.cells[i], true
}

/*
HasEdge checks if an edge exists.
*/
func (g *UndirectedAdjacencyMatrixGraph[T]) HasEdge(a uint64, b uint64) bool {
	_, ok := g.Edge(a, b)
	return ok
}

/*
Neighbors returns all neighbors of a vertex in ascending order. A vertex
with a self loop is its own neighbor.
*/
func (g *UndirectedAdjacencyMatrixGraph[T]) Neighbors(v uint64) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		g.incident(v, func(other uint64, _ T) bool {
			return yield(other)
		})
	}
}

/*
Edges returns the values of all edges of a vertex ordered by neighbor.
*/
func (g *UndirectedAdjacencyMatrixGraph[T]) Edges(v uint64) iter.Seq[T] {
	return func(yield func(T) bool) {
		g.incident(v, func(_ uint64, value T) bool {
			return yield(value)
		})
	}
}

/*
incident visits all edges of a vertex. Edges to smaller ids are found in
column v of the earlier rows. Edges to larger or equal ids are in row v.
*/
func (g *UndirectedAdjacencyMatrixGraph[T]) incident(v uint64, visit func(uint64, T) bool) {
	if v >= g.maxVertices {
		return
	}

	for other := uint64(0); other < v; other++ {
		if i := g.rowStart(other) + v - other; g.present.Contains(i) {
			if !visit(other, g.cells[i]) {
				return
			}
		}
	}

	start := g.rowStart(v)
	end := start + g.maxVertices - v

	for i := range occupied(g.present, start, end) {
		if !visit(v+i-start, g.cells[i]) {
			return
		}
	}
}

/*
All returns all edges of this graph as (smaller id, value, larger id)
triples in row-major order.
*/
func (g *UndirectedAdjacencyMatrixGraph[T]) All() iter.Seq[Triple[T]] {
	return func(yield func(Triple[T]) bool) {
		for a := uint64(0); a < g.maxVertices; a++ {
			start := g.rowStart(a)
			end := start + g.maxVertices - a

			for i := range occupied(g.present, start, end) {
				if !yield(Triple[T]{a, g.cells[i], a + i - start}) {
					return
				}
			}
		}
	}
}

/*
String returns a string representation of this graph.
*/
func (g *UndirectedAdjacencyMatrixGraph[T]) String() string {
	var buf []byte

	buf = fmt.Appendf(buf, "UndirectedAdjacencyMatrixGraph (%v vertices, %v edges)\n",
		g.maxVertices, g.NumberOfEdges())

	for t := range g.All() {
		buf = fmt.Appendf(buf, "    %v\n", t)
	}

	return string(buf)
}
