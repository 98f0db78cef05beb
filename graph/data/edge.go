/*
 * EliasDB
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package data

/*
Edge models directed edges in the graph
*/
type Edge interface {
	Vertex

	/*
		OutVertexID returns the id of the vertex this edge starts from.
	*/
	OutVertexID() uint64

	/*
		InVertexID returns the id of the vertex this edge points to.
	*/
	InVertexID() uint64

	/*
		OtherEnd returns the id of the endpoint which is on the other side
		from the given vertex id.
	*/
	OtherEnd(id uint64) uint64
}

/*
EdgeOutVertex is the attribute holding the out vertex id
*/
const EdgeOutVertex = "out"

/*
EdgeInVertex is the attribute holding the in vertex id
*/
const EdgeInVertex = "in"

/*
graphEdge data structure.
*/
type graphEdge struct {
	*graphVertex
}

/*
NewGraphEdge creates a new Edge instance.
*/
func NewGraphEdge() Edge {
	return &graphEdge{&graphVertex{make(map[string]interface{})}}
}

/*
NewGraphEdgeFromVertex creates a new Edge instance.
*/
func NewGraphEdgeFromVertex(vertex Vertex) Edge {
	if vertex == nil {
		return nil
	}
	return &graphEdge{&graphVertex{vertex.Data()}}
}

/*
OutVertexID returns the id of the vertex this edge starts from.
*/
func (ge *graphEdge) OutVertexID() uint64 {
	id, _ := ge.uint64Attr(EdgeOutVertex)
	return id
}

/*
InVertexID returns the id of the vertex this edge points to.
*/
func (ge *graphEdge) InVertexID() uint64 {
	id, _ := ge.uint64Attr(EdgeInVertex)
	return id
}

/*
OtherEnd returns the id of the endpoint which is on the other side
from the given vertex id.
*/
func (ge *graphEdge) OtherEnd(id uint64) uint64 {
	if id == ge.OutVertexID() {
		return ge.InVertexID()
	}
	return ge.OutVertexID()
}

/*
String returns a string representation of this edge.
*/
func (ge *graphEdge) String() string {
	return dataToString("GraphEdge", ge.graphVertex)
}
