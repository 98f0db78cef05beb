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
	"cmp"
	"iter"
	"maps"
	"slices"
)

/*
AdjacencyListGraph is a sparse directed graph with a fixed number of vertex
slots. A slot holds a successor set once the vertex has been added.
*/
type AdjacencyListGraph struct {
	successors []map[uint64]struct{} // Successor sets (nil if vertex was not added)
}

/*
NewAdjacencyListGraph creates a new adjacency list graph with a given
number of vertex slots.
*/
func NewAdjacencyListGraph(numberOfVertices uint64) *AdjacencyListGraph {
	return &AdjacencyListGraph{make([]map[uint64]struct{}, numberOfVertices)}
}

/*
NumberOfVertices returns the number of vertex slots of this graph.
*/
func (g *AdjacencyListGraph) NumberOfVertices() uint64 {
	return uint64(len(g.successors))
}

/*
AddVertex initializes a vertex. Adding a vertex twice keeps its successors.
*/
func (g *AdjacencyListGraph) AddVertex(id uint64) error {
	if err := checkVertexRange(id, g.NumberOfVertices()); err != nil {
		return err
	}

	if g.successors[id] == nil {
		g.successors[id] = make(map[uint64]struct{})
	}

	return nil
}

/*
HasVertex checks if a vertex has been added.
*/
func (g *AdjacencyListGraph) HasVertex(id uint64) bool {
	return id < g.NumberOfVertices() && g.successors[id] != nil
}

/*
AddEdge adds a directed edge. The out vertex must have been added before.
The in vertex needs only to be in range. Adding an existing edge has no
effect.
*/
func (g *AdjacencyListGraph) AddEdge(out uint64, in uint64) error {
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

	s[in] = struct{}{}

	return nil
}

/*
HasEdge checks if a directed edge exists.
*/
func (g *AdjacencyListGraph) HasEdge(out uint64, in uint64) bool {
	if !g.HasVertex(out) {
		return false
	}
	_, ok := g.successors[out][in]
	return ok
}

/*
OutDegree returns the number of successors of a vertex.
*/
func (g *AdjacencyListGraph) OutDegree(id uint64) int {
	if !g.HasVertex(id) {
		return 0
	}
	return len(g.successors[id])
}

/*
Successors returns the successors of a vertex in ascending order. The
sequence is empty if the vertex was not added.
*/
func (g *AdjacencyListGraph) Successors(id uint64) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		if !g.HasVertex(id) {
			return
		}

		for _, s := range slices.Sorted(maps.Keys(g.successors[id])) {
			if !yield(s) {
				return
			}
		}
	}
}

/*
KeyedAdjacencyListGraph is a sparse directed graph whose vertices are
identified by arbitrary ordered keys.
*/
type KeyedAdjacencyListGraph[K cmp.Ordered] struct {
	successors map[K]map[K]struct{}
}

/*
NewKeyedAdjacencyListGraph creates a new empty keyed adjacency list graph.
*/
func NewKeyedAdjacencyListGraph[K cmp.Ordered]() *KeyedAdjacencyListGraph[K] {
	return &KeyedAdjacencyListGraph[K]{make(map[K]map[K]struct{})}
}

/*
NumberOfVertices returns the number of added vertices.
*/
func (g *KeyedAdjacencyListGraph[K]) NumberOfVertices() int {
	return len(g.successors)
}

/*
AddVertex initializes a vertex. Adding a vertex twice keeps its successors.
*/
func (g *KeyedAdjacencyListGraph[K]) AddVertex(id K) {
	if _, ok := g.successors[id]; !ok {
		g.successors[id] = make(map[K]struct{})
	}
}

/*
HasVertex checks if a vertex has been added.
*/
func (g *KeyedAdjacencyListGraph[K]) HasVertex(id K) bool {
	_, ok := g.successors[id]
	return ok
}

/*
AddEdge adds a directed edge. The out vertex must have been added before.
*/
func (g *KeyedAdjacencyListGraph[K]) AddEdge(out K, in K) error {
	s, ok := g.successors[out]

	if !ok {
		return uninitializedVertex(out)
	}

	s[in] = struct{}{}

	return nil
}

/*
HasEdge checks if a directed edge exists.
*/
func (g *KeyedAdjacencyListGraph[K]) HasEdge(out K, in K) bool {
	_, ok := g.successors[out][in]
	return ok
}

/*
OutDegree returns the number of successors of a vertex.
*/
func (g *KeyedAdjacencyListGraph[K]) OutDegree(id K) int {
	return len(g.successors[id])
}

/*
Vertices returns all added vertices in ascending order.
*/
func (g *KeyedAdjacencyListGraph[K]) Vertices() iter.Seq[K] {
	return sortedKeys(g.successors)
}

/*
Successors returns the successors of a vertex in ascending order.
*/
func (g *KeyedAdjacencyListGraph[K]) Successors(id K) iter.Seq[K] {
	return sortedKeys(g.successors[id])
}

/*
sortedKeys returns the keys of a map as an ascending sequence.
*/
func sortedKeys[K cmp.Ordered, V any](m map[K]V) iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, k := range slices.Sorted(maps.Keys(m)) {
			if !yield(k) {
				return
			}
		}
	}
}
