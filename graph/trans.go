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
	"errors"
	"fmt"
	"sync"

	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/travgraph/graph/data"
	"devt.de/krotik/travgraph/graph/util"
)

/*
Trans is a transaction object which should be used to group vertex and edge
operations.
*/
type Trans interface {

	/*
	   ID returns a unique transaction ID.
	*/
	ID() string

	/*
	   String returns a string representation of this transaction.
	*/
	String() string

	/*
	   Counts returns the transaction size in terms of objects. Returned values
	   are vertices to store, edges to store, vertices to remove and edges to remove.
	*/
	Counts() (int, int, int, int)

	/*
	   IsEmpty returns if this transaction is empty.
	*/
	IsEmpty() bool

	/*
	   Commit writes the transaction to the graph. Vertices are stored first,
	   then edges are stored, then edges and finally vertices are removed.
	   The commit stops at the first invalid operation - operations which
	   were already applied stay applied. Errors of graph rules do not stop
	   the commit; they are collected and returned at the end.
	*/
	Commit() error

	/*
	   StoreVertex stores a single vertex. An existing vertex with the same
	   id is overwritten.
	*/
	StoreVertex(vertex data.Vertex) error

	/*
	   RemoveVertex removes a single vertex.
	*/
	RemoveVertex(id uint64) error

	/*
	   StoreEdge stores a single edge. The edge may connect vertices which
	   are stored by the same transaction.
	*/
	StoreEdge(edge data.Edge) error

	/*
	   RemoveEdge removes a single edge.
	*/
	RemoveEdge(id uint64) error
}

/*
NewGraphTrans creates a new graph transaction. This object is not thread safe
and should only be used for non-concurrent use cases; use NewConcurrentGraphTrans
for concurrent use cases.
*/
func NewGraphTrans(gm *Manager) Trans {
	return newInternalGraphTrans(gm)
}

/*
NewConcurrentGraphTrans creates a new thread-safe graph transaction.
*/
func NewConcurrentGraphTrans(gm *Manager) Trans {
	return &concurrentTrans{NewGraphTrans(gm), &sync.RWMutex{}}
}

/*
NewRollingTrans wraps an existing transaction into a rolling transaction.
Rolling transactions can be used for large datasets and will commit
themselves after n operations. Rolling transactions are always thread-safe.
*/
func NewRollingTrans(t Trans, n int, gm *Manager, newTrans func(*Manager) Trans) Trans {

	// Smallest commit threshold is 1

	if n < 1 {
		n = 1
	}

	return &rollingTrans{
		id: nextTransID(),
		gm: gm,

		currentTrans: t,
		newTransFunc: newTrans,

		opThreshold: n,
		opCount:     0,

		transLock: &sync.RWMutex{},
	}
}

/*
newInternalGraphTrans is used for internal transactions.
*/
func newInternalGraphTrans(gm *Manager) *baseTrans {
	return &baseTrans{id: nextTransID(), gm: gm}
}

/*
idCounter is a simple counter for ids
*/
var idCounter uint64
var idCounterLock = &sync.Mutex{}

/*
nextTransID returns a new unique transaction id.
*/
func nextTransID() string {
	idCounterLock.Lock()
	defer idCounterLock.Unlock()

	idCounter++

	return fmt.Sprint(idCounter)
}

/*
baseTrans is the main data structure for a graph transaction
*/
type baseTrans struct {
	id string   // Unique transaction ID
	gm *Manager // Graph manager which created this transaction

	storeVertices  []data.Vertex // Vertices which should be stored
	storeEdges     []data.Edge   // Edges which should be stored
	removeVertices []uint64      // Vertices which should be removed
	removeEdges    []uint64      // Edges which should be removed
}

/*
ID returns a unique transaction ID.
*/
func (gt *baseTrans) ID() string {
	return gt.id
}

/*
IsEmpty returns if this transaction is empty.
*/
func (gt *baseTrans) IsEmpty() bool {
	sv, se, rv, re := gt.Counts()

	return sv == 0 && se == 0 && rv == 0 && re == 0
}

/*
Counts returns the transaction size in terms of objects. Returned values
are vertices to store, edges to store, vertices to remove and edges to remove.
*/
func (gt *baseTrans) Counts() (int, int, int, int) {
	return len(gt.storeVertices), len(gt.storeEdges), len(gt.removeVertices), len(gt.removeEdges)
}

/*
String returns a string representation of this transaction.
*/
func (gt *baseTrans) String() string {
	sv, se, rv, re := gt.Counts()

	return fmt.Sprintf("Transaction %v - Vertices: I:%v R:%v - Edges: I:%v R:%v",
		gt.id, sv, rv, se, re)
}

/*
Commit writes the transaction to the graph.
*/
func (gt *baseTrans) Commit() error {

	// Return if there is nothing to do

	if gt.IsEmpty() {
		return nil
	}

	storeVertices, storeEdges := gt.storeVertices, gt.storeEdges
	removeVertices, removeEdges := gt.removeVertices, gt.removeEdges

	// A transaction can only be committed once

	gt.storeVertices, gt.storeEdges = nil, nil
	gt.removeVertices, gt.removeEdges = nil, nil

	ruleErrors := errorutil.NewCompositeError()
	var causes []error

	// apply runs a single operation and sorts out rule errors

	apply := func(err error) error {
		if errors.Is(err, util.ErrRule) {
			ruleErrors.Add(err)
			causes = append(causes, err)
			return nil
		}
		return err
	}

	for _, v := range storeVertices {
		if err := apply(gt.gm.StoreVertex(v)); err != nil {
			return err
		}
	}

	for _, e := range storeEdges {
		if err := apply(gt.gm.StoreEdge(e)); err != nil {
			return err
		}
	}

	for _, id := range removeEdges {
		if _, err := gt.gm.RemoveEdge(id); apply(err) != nil {
			return err
		}
	}

	for _, id := range removeVertices {
		if _, err := gt.gm.RemoveVertex(id); apply(err) != nil {
			return err
		}
	}

	if ruleErrors.HasErrors() {
		return &util.GraphError{Type: util.ErrRule, Detail: ruleErrors.Error(), Causes: causes}
	}

	return nil
}

/*
StoreVertex stores a single vertex.
*/
func (gt *baseTrans) StoreVertex(vertex data.Vertex) error {
	if err := gt.gm.checkVertex(vertex); err != nil {
		return err
	}

	gt.storeVertices = append(gt.storeVertices, vertex)

	return nil
}

/*
RemoveVertex removes a single vertex.
*/
func (gt *baseTrans) RemoveVertex(id uint64) error {
	gt.removeVertices = append(gt.removeVertices, id)

	return nil
}

/*
StoreEdge stores a single edge. The existence of the connected vertices is
checked on commit.
*/
func (gt *baseTrans) StoreEdge(edge data.Edge) error {
	if edge == nil {
		return &util.GraphError{Type: util.ErrInvalidData, Detail: "Edge is nil"}
	}

	if err := gt.gm.checkItemGeneral(edge, "Edge"); err != nil {
		return err
	}

	if !data.HasEnds(edge) {
		return &util.GraphError{Type: util.ErrInvalidData, Detail: "Edge is missing an out or in vertex id"}
	}

	gt.storeEdges = append(gt.storeEdges, edge)

	return nil
}

/*
RemoveEdge removes a single edge.
*/
func (gt *baseTrans) RemoveEdge(id uint64) error {
	gt.removeEdges = append(gt.removeEdges, id)

	return nil
}

/*
concurrentTrans is a lock-wrapper around baseTrans which allows concurrent use.
*/
type concurrentTrans struct {
	Trans
	transLock *sync.RWMutex // Lock for this transaction
}

/*
ID returns a unique transaction ID.
*/
func (gt *concurrentTrans) ID() string {
	gt.transLock.RLock()
	defer gt.transLock.RUnlock()

	return gt.Trans.ID()
}

/*
String returns a string representation of this transaction.
*/
func (gt *concurrentTrans) String() string {
	gt.transLock.RLock()
	defer gt.transLock.RUnlock()

	return gt.Trans.String()
}

/*
Counts returns the transaction size in terms of objects.
*/
func (gt *concurrentTrans) Counts() (int, int, int, int) {
	gt.transLock.RLock()
	defer gt.transLock.RUnlock()

	return gt.Trans.Counts()
}

/*
IsEmpty returns if this transaction is empty.
*/
func (gt *concurrentTrans) IsEmpty() bool {
	gt.transLock.RLock()
	defer gt.transLock.RUnlock()

	return gt.Trans.IsEmpty()
}

/*
Commit writes the transaction to the graph.
*/
func (gt *concurrentTrans) Commit() error {
	gt.transLock.Lock()
	defer gt.transLock.Unlock()

	return gt.Trans.Commit()
}

/*
StoreVertex stores a single vertex.
*/
func (gt *concurrentTrans) StoreVertex(vertex data.Vertex) error {
	gt.transLock.Lock()
	defer gt.transLock.Unlock()

	return gt.Trans.StoreVertex(vertex)
}

/*
RemoveVertex removes a single vertex.
*/
func (gt *concurrentTrans) RemoveVertex(id uint64) error {
	gt.transLock.Lock()
	defer gt.transLock.Unlock()

	return gt.Trans.RemoveVertex(id)
}

/*
StoreEdge stores a single edge.
*/
func (gt *concurrentTrans) StoreEdge(edge data.Edge) error {
	gt.transLock.Lock()
	defer gt.transLock.Unlock()

	return gt.Trans.StoreEdge(edge)
}

/*
RemoveEdge removes a single edge.
*/
func (gt *concurrentTrans) RemoveEdge(id uint64) error {
	gt.transLock.Lock()
	defer gt.transLock.Unlock()

	return gt.Trans.RemoveEdge(id)
}

/*
rollingTrans is a transaction which commits itself after a number of
operations.
*/
type rollingTrans struct {
	id string   // ID of this transaction
	gm *Manager // Graph manager which created this transaction

	currentTrans Trans                // Current transaction which is being filled
	newTransFunc func(*Manager) Trans // Function to create a new transaction
	opThreshold  int                  // Operation threshold
	opCount      int                  // Operation count
	committed    [4]int               // Counts of committed operations
	transLock    *sync.RWMutex        // Lock for this transaction
}

/*
ID returns a unique transaction ID.
*/
func (gt *rollingTrans) ID() string {
	gt.transLock.RLock()
	defer gt.transLock.RUnlock()

	return gt.id
}

/*
IsEmpty returns if this transaction is empty.
*/
func (gt *rollingTrans) IsEmpty() bool {
	gt.transLock.RLock()
	defer gt.transLock.RUnlock()

	return gt.currentTrans.IsEmpty()
}

/*
Counts returns the number of operations of this transaction including
the operations which were already committed.
*/
func (gt *rollingTrans) Counts() (int, int, int, int) {
	gt.transLock.RLock()
	defer gt.transLock.RUnlock()

	sv, se, rv, re := gt.currentTrans.Counts()

	return sv + gt.committed[0], se + gt.committed[1],
		rv + gt.committed[2], re + gt.committed[3]
}

/*
String returns a string representation of this transaction.
*/
func (gt *rollingTrans) String() string {
	sv, se, rv, re := gt.Counts()

	return fmt.Sprintf("Rolling transaction %v - Vertices: I:%v R:%v - "+
		"Edges: I:%v R:%v - Threshold: %v",
		gt.id, sv, rv, se, re, gt.opThreshold)
}

/*
Commit writes the remaining operations of this rolling transaction to
the graph.
*/
func (gt *rollingTrans) Commit() error {
	gt.transLock.Lock()
	defer gt.transLock.Unlock()

	return gt.commitCurrent()
}

/*
commitCurrent commits the current transaction and starts a new one.
*/
func (gt *rollingTrans) commitCurrent() error {
	cTrans := gt.currentTrans
	gt.currentTrans = gt.newTransFunc(gt.gm)
	gt.opCount = 0

	sv, se, rv, re := cTrans.Counts()

	gt.committed[0] += sv
	gt.committed[1] += se
	gt.committed[2] += rv
	gt.committed[3] += re

	return cTrans.Commit()
}

/*
checkNewSubTrans commits the current transaction once the operation
threshold has been reached.
*/
func (gt *rollingTrans) checkNewSubTrans(err error) error {
	if err == nil {
		if gt.opCount++; gt.opCount >= gt.opThreshold {
			err = gt.commitCurrent()
		}
	}

	return err
}

/*
StoreVertex stores a single vertex.
*/
func (gt *rollingTrans) StoreVertex(vertex data.Vertex) error {
	gt.transLock.Lock()
	defer gt.transLock.Unlock()

	return gt.checkNewSubTrans(gt.currentTrans.StoreVertex(vertex))
}

/*
RemoveVertex removes a single vertex.
*/
func (gt *rollingTrans) RemoveVertex(id uint64) error {
	gt.transLock.Lock()
	defer gt.transLock.Unlock()

	return gt.checkNewSubTrans(gt.currentTrans.RemoveVertex(id))
}

/*
StoreEdge stores a single edge.
*/
func (gt *rollingTrans) StoreEdge(edge data.Edge) error {
	gt.transLock.Lock()
	defer gt.transLock.Unlock()

	return gt.checkNewSubTrans(gt.currentTrans.StoreEdge(edge))
}

/*
RemoveEdge removes a single edge.
*/
func (gt *rollingTrans) RemoveEdge(id uint64) error {
	gt.transLock.Lock()
	defer gt.transLock.Unlock()

	return gt.checkNewSubTrans(gt.currentTrans.RemoveEdge(id))
}
