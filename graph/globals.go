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
Package graph contains the API to an in-memory property graph.

Manager API

The main API is provided by a Manager object which can be created with the
NewGraphManager() constructor function. The manager provides CRUD
functionality for vertices and edges through store, fetch and remove
functions. Vertices and edges get dense numeric ids from an IDSource if they
do not bring their own. Every store of an existing item increases its
revision id.

Enumeration

All vertices can be enumerated in id order with the Vertices() function. The
outgoing and incoming edges of a vertex can be enumerated with OutEdges() and
InEdges(). All enumerations accept an optional filter function and work on a
snapshot of the ids taken when the enumeration starts. A VertexIterator
provides the same enumeration with an explicit HasNext() / Next() API.

Rules

Graph rules provide automatic operations which are triggered by graph events.
Rules are called synchronously after a change has been applied and before the
changing function returns. Errors of rules are returned to the caller of the
changing function. The rule SystemRuleDeleteVertexEdges is automatically
loaded when a new Manager is created. Rules can be removed again with
RemoveGraphRule().

Transactions

Vertex and edge operations can be grouped in a transaction object created
with NewGraphTrans(). Rolling transactions (NewRollingTrans()) commit
themselves after a given number of operations.

Import / Export

A graph can be written to and read from a JSON document of the form:

	{
		vertices : [ { <attr> : <value> }, ... ]
		edges : [ { <attr> : <value> }, ... ]
	}
*/
package graph

import "devt.de/krotik/travgraph/graph/data"

/*
VERSION of the GraphManager
*/
const VERSION = 1

/*
VertexFilter decides if a vertex should be part of an enumeration. A nil
filter accepts all vertices.
*/
type VertexFilter func(vertex data.Vertex) bool

/*
EdgeFilter decides if an edge should be part of an enumeration. A nil
filter accepts all edges.
*/
type EdgeFilter func(edge data.Edge) bool

// Graph events
//=============

/*
EventVertexCreated is thrown when a vertex gets created.

Parameters: created vertex
*/
const EventVertexCreated = 0x01

/*
EventVertexUpdated is thrown when a vertex gets updated.

Parameters: updated vertex, old vertex
*/
const EventVertexUpdated = 0x02

/*
EventVertexDeleted is thrown when a vertex gets deleted.

Parameters: deleted vertex
*/
const EventVertexDeleted = 0x03

/*
EventEdgeCreated is thrown when an edge gets created.

Parameters: created edge
*/
const EventEdgeCreated = 0x04

/*
EventEdgeUpdated is thrown when an edge gets updated.

Parameters: updated edge, old edge
*/
const EventEdgeUpdated = 0x05

/*
EventEdgeDeleted is thrown when an edge gets deleted.

Parameters: deleted edge
*/
const EventEdgeDeleted = 0x06
