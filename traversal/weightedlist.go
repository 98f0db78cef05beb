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
	"iter"
	"maps"
	"slices"
)

/*
WeightedAdjacencyListGraph is a sparse directed graph where every edge
carries a weight. There is at most one edge between two vertices.
*/
type WeightedAdjacencyListGraph[T any] struct {
	successors []map[uint64]T
}

/*
NewWeightedAdjacencyListGraph creates a new weighted adjacency list graph
with a given number of vertex slots.
*/
func NewWeightedAdjacencyListGraph[T any](numberOfVertices uint64) *WeightedAdjacencyListGraph[T] {
	return &WeightedAdjacencyListGraph[T]{make([]map[uint64]T, numberOfVertices)}
}

/*
NumberOfVertices returns the number of vertex slots of this graph.
*/
func (g *WeightedAdjacencyListGraph[T]) NumberOfVertices() uint64 {
	return uint64(len(g.successors))
}

/*
AddVertex initializes a vertex. Adding a vertex twice keeps its successors.
*/
func (g *WeightedAdjacencyListGraph[T]) AddVertex(id uint64) error {
	if err := checkVertexRange(id, g.NumberOfVertices()); err != nil {
		return err
	}

	if g.successors[id] == nil {
		g.successors[id] = make(map[uint64]T)
	}

	return nil
}

/*
HasVertex checks if a vertex has been added.
*/
func (g *WeightedAdjacencyListGraph[T]) HasVertex(id uint64) bool {
	return id < g.NumberOfVertices() && g.successors[id] != nil
}

/*
AddEdge adds a weighted edge. If there is already an edge between the
given vertices then the existing weight is kept.
*/
func (g *WeightedAdjacencyListGraph[T]) AddEdge(out uint64, in uint64, weight T) error {
	if err := checkVertexRange(out, g.NumberOfVertices()); err != nil {
		return err
	}

	s := g.successors[out]

	if s == nil {
		return uninitializedVertex(out)
	}

	if err := checkVertexRange(in, g.NumberOfVertices()); err != nil {
		return err
	}

	if _, ok := s[in]; !ok {
		s[in] = weight
	}

	return nil
}

/*
Weight returns the weight of an edge.
*/
func (g *WeightedAdjacencyListGraph[T]) Weight(out uint64, in uint64) (T, bool) {
	var zero T

	if !g.HasVertex(out) {
		return zero, false
	}

	w, ok := g.successors[out][in]

	return w, ok
}

/*
OutDegree returns the number of successors of a vertex.
*/
func (g *WeightedAdjacencyListGraph[T]) OutDegree(id uint64) int {
	if !g.HasVertex(id) {
		return 0
	}
	return len(g.successors[id])
}

/*
Successors returns the successors of a vertex with their weights ordered by
vertex id.
*/
func (g *WeightedAdjacencyListGraph[T]) Successors(id uint64) iter.Seq2[uint64, T] {
	return func(yield func(uint64, T) bool) {
		if !g.HasVertex(id) {
			return
		}

		s := g.successors[id]

		for _, in := range slices.Sorted(maps.Keys(s)) {
			if !yield(in, s[in]) {
				return
			}
		}
	}
}
