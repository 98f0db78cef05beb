/*
 * EliasDB
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package projection

import (
	"errors"
	"fmt"
	"iter"
	"sync"
	"sync/atomic"

	"devt.de/krotik/travgraph/graph"
	"devt.de/krotik/travgraph/graph/data"
	"devt.de/krotik/travgraph/graph/util"
	"devt.de/krotik/travgraph/traversal"
)

/*
PropertyGraph is a property graph which can be projected.
*/
type PropertyGraph interface {

	/*
		NumberOfVertices returns the number of vertices in the graph.
	*/
	NumberOfVertices() uint64

	/*
		Vertices returns all vertices which pass a given filter.
	*/
	Vertices(filter graph.VertexFilter) iter.Seq[data.Vertex]

	/*
		OutEdges returns all edges starting at a given vertex which pass a
		given filter.
	*/
	OutEdges(id uint64, filter graph.EdgeFilter) iter.Seq[data.Edge]
}

/*
MutableGraph is a property graph which notifies registered rules about
changes.
*/
type MutableGraph interface {

	/*
		SetGraphRule registers a graph rule.
	*/
	SetGraphRule(rule graph.Rule)

	/*
		RemoveGraphRule removes a graph rule by name.
	*/
	RemoveGraphRule(name string) bool
}

/*
Target is a traversal graph which can receive projected edges.
*/
type Target[T any] interface {

	/*
		AddEdge stores an edge value.
	*/
	AddEdge(out uint64, in uint64, value T) error

	/*
		RemoveEdge removes an edge.
	*/
	RemoveEdge(out uint64, in uint64) error
}

/*
Options controls which parts of a property graph are projected and how edge
values are produced.
*/
type Options[T any] struct {
	MaxVertices        uint64                // Capacity of the created target (0 derives it from the source)
	VertexFilter       graph.VertexFilter    // Filter for out vertices (nil accepts all)
	EdgeFilter         graph.EdgeFilter      // Filter for edges (nil accepts all)
	Converter          EdgeValueConverter[T] // Edge value converter (nil uses the edge label)
	ContinuousLearning bool                  // Follow changes of the source graph
}

/*
DefaultOptions returns options which project everything using edge labels
as values and which follow changes of the source graph.
*/
func DefaultOptions[T any]() *Options[T] {
	return &Options[T]{ContinuousLearning: true}
}

/*
projectionCounter is used to give every projection a unique name.
*/
var projectionCounter atomic.Uint64

/*
Projection is a live link between a property graph and a traversal graph.
*/
type Projection[T any] struct {
	name         string             // Name of the projection (also the rule name)
	vertexFilter graph.VertexFilter // Filter for out vertices
	edgeFilter   graph.EdgeFilter   // Filter for edges
	converter    EdgeValueConverter[T]
	target       Target[T]    // Target graph
	source       MutableGraph // Source graph while learning
	mutex        *sync.Mutex  // Guards target writes and the learning state
}

/*
Project creates a directed matrix graph from a property graph.
*/
func Project[T any](g PropertyGraph, opts *Options[T]) (*traversal.AdjacencyMatrixGraph[T], *Projection[T], error) {
	opts = withDefaults(opts)

	target := traversal.NewAdjacencyMatrixGraph[T](targetSize(g, opts))
	p, err := ProjectInto[T](target, g, opts)

	return target, p, err
}

/*
ProjectUndirected creates an undirected matrix graph from a property graph.
The direction of projected edges is dropped.
*/
func ProjectUndirected[T any](g PropertyGraph, opts *Options[T]) (*traversal.UndirectedAdjacencyMatrixGraph[T], *Projection[T], error) {
	opts = withDefaults(opts)

	target := traversal.NewUndirectedAdjacencyMatrixGraph[T](targetSize(g, opts))
	p, err := ProjectInto[T](target, g, opts)

	return target, p, err
}

/*
ProjectInto projects a property graph into an existing target graph. The
projection starts learning only if the initial copy was successful.
*/
func ProjectInto[T any](target Target[T], g PropertyGraph, opts *Options[T]) (*Projection[T], error) {
	opts = withDefaults(opts)

	p := &Projection[T]{
		name:         fmt.Sprint(RulePrefix, projectionCounter.Add(1)),
		vertexFilter: opts.VertexFilter,
		edgeFilter:   opts.EdgeFilter,
		converter:    opts.Converter,
		target:       target,
		mutex:        &sync.Mutex{},
	}

	if err := p.copyAll(g); err != nil {
		return p, err
	}

	if opts.ContinuousLearning {
		if mg, ok := g.(MutableGraph); ok {
			p.source = mg
			mg.SetGraphRule(&projectionRule[T]{p})
			LearningProjections.Inc()

			LogDebug("Projection ", p.name, " follows changes of the source graph")

		} else {
			LogInfo("Projection ", p.name, " cannot follow changes: source graph does not accept rules")
		}
	}

	return p, nil
}

/*
withDefaults fills in default values for missing options.
*/
func withDefaults[T any](opts *Options[T]) *Options[T] {
	if opts == nil {
		opts = DefaultOptions[T]()
	}

	if opts.Converter == nil {
		res := *opts
		res.Converter = LabelConverter[T]()
		opts = &res
	}

	return opts
}

/*
targetSize determines the capacity of a new target graph. Without an
explicit size the target holds every vertex which passes the vertex filter.
*/
func targetSize[T any](g PropertyGraph, opts *Options[T]) uint64 {
	if opts.MaxVertices > 0 {
		return opts.MaxVertices
	}

	var count, size uint64

	for v := range g.Vertices(opts.VertexFilter) {
		count++
		size = max(size, v.ID()+1)
	}

	return max(count, size)
}

/*
Name returns the name of this projection.
*/
func (p *Projection[T]) Name() string {
	return p.name
}

/*
IsLearning returns if this projection follows changes of its source graph.
*/
func (p *Projection[T]) IsLearning() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.source != nil
}

/*
Close stops following changes of the source graph. The target graph keeps
its content.
*/
func (p *Projection[T]) Close() {
	p.mutex.Lock()
	source := p.source
	p.source = nil
	p.mutex.Unlock()

	if source != nil {
		source.RemoveGraphRule(p.name)
		LearningProjections.Dec()

		LogDebug("Projection ", p.name, " stopped following the source graph")
	}
}

/*
copyAll copies every matching out edge of every matching vertex.
*/
func (p *Projection[T]) copyAll(g PropertyGraph) error {
	for v := range g.Vertices(p.vertexFilter) {
		for e := range g.OutEdges(v.ID(), p.edgeFilter) {
			if err := p.add(PhaseBulk, e); err != nil {
				return err
			}
		}
	}

	LogDebug("Projection ", p.name, " copied source graph")

	return nil
}

/*
add converts an edge and adds it to the target graph.
*/
func (p *Projection[T]) add(phase string, edge data.Edge) error {
	val, err := p.converter(edge)

	if err == nil {
		p.mutex.Lock()
		err = p.target.AddEdge(edge.OutVertexID(), edge.InVertexID(), val)
		p.mutex.Unlock()
	}

	return p.count(phase, ResultAdded, edge, err)
}

/*
remove removes the cell of an edge from the target graph. Edges with ends
outside of the target capacity were never added so removing them is a no-op.
*/
func (p *Projection[T]) remove(phase string, edge data.Edge) error {
	p.mutex.Lock()
	err := p.target.RemoveEdge(edge.OutVertexID(), edge.InVertexID())
	p.mutex.Unlock()

	return p.count(phase, ResultRemoved, edge, err)
}

/*
count records the result of an edge operation.
*/
func (p *Projection[T]) count(phase string, result string, edge data.Edge, err error) error {
	if result == ResultRemoved && errors.Is(err, util.ErrVertexOutOfRange) {
		LogDebug("Projection ", p.name, " ignored removal of edge ", edge.ID(), ": ", err)
		countEdge(phase, ResultSkipped)
		return nil

	} else if err != nil {
		LogDebug("Projection ", p.name, " could not project edge ", edge.ID(), ": ", err)
		countEdge(phase, ResultError)
		return err
	}

	countEdge(phase, result)

	return nil
}

/*
accepts checks if an edge of the source graph belongs to this projection.
*/
func (p *Projection[T]) accepts(gm *graph.Manager, edge data.Edge) bool {
	if p.edgeFilter != nil && !p.edgeFilter(edge) {
		return false
	}

	if p.vertexFilter != nil {
		out := gm.FetchVertex(edge.OutVertexID())
		return out != nil && p.vertexFilter(out)
	}

	return true
}
