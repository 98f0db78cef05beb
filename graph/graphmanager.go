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
	"sync"

	"devt.de/krotik/travgraph/graph/data"
	"devt.de/krotik/travgraph/graph/util"
)

/*
Manager data structure
*/
type Manager struct {
	name     string                         // Name of this graph
	vertices map[uint64]data.Vertex         // Stored vertices
	edges    map[uint64]data.Edge           // Stored edges
	outIndex map[uint64]map[uint64]struct{} // Outgoing edge ids of each vertex
	inIndex  map[uint64]map[uint64]struct{} // Incoming edge ids of each vertex
	vids     util.IDSource                  // Identifier space for vertices
	eids     util.IDSource                  // Identifier space for edges
	gr       *graphRulesManager             // Manager for graph rules
	mutex    *sync.RWMutex                  // Mutex to protect atomic graph operations
}

/*
NewGraphManager returns a new GraphManager instance which uses sequential
ids for vertices and edges.
*/
func NewGraphManager(name string) *Manager {
	return NewGraphManagerWithIDs(name, util.NewSequentialIDSource(),
		util.NewSequentialIDSource())
}

/*
NewGraphManagerWithIDs returns a new GraphManager instance which uses the
given identifier spaces.
*/
func NewGraphManagerWithIDs(name string, vids util.IDSource, eids util.IDSource) *Manager {
	gm := createGraphManager(name, vids, eids)

	gm.SetGraphRule(&SystemRuleDeleteVertexEdges{})

	return gm
}

/*
createGraphManager creates a new GraphManager instance.
*/
func createGraphManager(name string, vids util.IDSource, eids util.IDSource) *Manager {
	gm := &Manager{name, make(map[uint64]data.Vertex), make(map[uint64]data.Edge),
		make(map[uint64]map[uint64]struct{}), make(map[uint64]map[uint64]struct{}),
		vids, eids, &graphRulesManager{nil, make(map[string]Rule),
			make(map[int]map[string]Rule), &sync.RWMutex{}}, &sync.RWMutex{}}

	gm.gr.gm = gm

	return gm
}

/*
Name returns the name of this graph manager.
*/
func (gm *Manager) Name() string {
	return fmt.Sprint("Graph ", gm.name)
}

/*
SetGraphRule sets a GraphRule. A rule with the same name is replaced.
*/
func (gm *Manager) SetGraphRule(rule Rule) {
	gm.gr.SetGraphRule(rule)
}

/*
RemoveGraphRule removes a GraphRule. Returns if a rule was removed.
*/
func (gm *Manager) RemoveGraphRule(name string) bool {
	return gm.gr.RemoveGraphRule(name)
}

/*
GraphRules returns a list of all available graph rules.
*/
func (gm *Manager) GraphRules() []string {
	return gm.gr.GraphRules()
}

/*
NumberOfVertices returns the number of stored vertices.
*/
func (gm *Manager) NumberOfVertices() uint64 {
	gm.mutex.RLock()
	defer gm.mutex.RUnlock()

	return uint64(len(gm.vertices))
}

/*
NumberOfEdges returns the number of stored edges.
*/
func (gm *Manager) NumberOfEdges() uint64 {
	gm.mutex.RLock()
	defer gm.mutex.RUnlock()

	return uint64(len(gm.edges))
}
