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
	"sort"
	"sync"

	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/travgraph/graph/data"
	"devt.de/krotik/travgraph/graph/util"
)

/*
GraphRulesManager data structure
*/
type graphRulesManager struct {
	gm       *Manager                // GraphManager which provides events
	rules    map[string]Rule         // Map of graph rules
	eventMap map[int]map[string]Rule // Map of events to graph rules
	mutex    *sync.RWMutex           // Mutex to protect the rule maps
}

/*
Rule models a graph rule.
*/
type Rule interface {

	/*
	   Name returns the name of the rule.
	*/
	Name() string

	/*
		Handles returns a list of events which are handled by this rule.
	*/
	Handles() []int

	/*
		Handle handles an event. The given GraphManager is not locked while
		the rule runs and can be queried and changed.
	*/
	Handle(gm *Manager, event int, data ...interface{}) error
}

/*
graphEvent main event handler which receives all graph related events.
Rules are called in the order of their names.
*/
func (gr *graphRulesManager) graphEvent(event int, data ...interface{}) error {

	gr.mutex.RLock()

	rulesMap := gr.eventMap[event]
	names := make([]string, 0, len(rulesMap))
	for name := range rulesMap {
		names = append(names, name)
	}
	sort.Strings(names)

	rules := make([]Rule, 0, len(names))
	for _, name := range names {
		rules = append(rules, rulesMap[name])
	}

	gr.mutex.RUnlock()

	errors := errorutil.NewCompositeError()
	var causes []error

	for _, rule := range rules {
		if err := rule.Handle(gr.gm, event, data...); err != nil {
			errors.Add(err)
			causes = append(causes, err)
		}
	}

	if errors.HasErrors() {
		return &util.GraphError{Type: util.ErrRule, Detail: errors.Error(), Causes: causes}
	}

	return nil
}

/*
SetGraphRule sets a GraphRule.
*/
func (gr *graphRulesManager) SetGraphRule(rule Rule) {
	gr.mutex.Lock()
	defer gr.mutex.Unlock()

	gr.removeGraphRule(rule.Name())

	gr.rules[rule.Name()] = rule

	for _, handledEvent := range rule.Handles() {

		rules, ok := gr.eventMap[handledEvent]
		if !ok {
			rules = make(map[string]Rule)
			gr.eventMap[handledEvent] = rules
		}

		rules[rule.Name()] = rule
	}
}

/*
RemoveGraphRule removes a GraphRule.
*/
func (gr *graphRulesManager) RemoveGraphRule(name string) bool {
	gr.mutex.Lock()
	defer gr.mutex.Unlock()

	return gr.removeGraphRule(name)
}

/*
removeGraphRule removes a GraphRule. This function expects the caller to
hold the rules lock.
*/
func (gr *graphRulesManager) removeGraphRule(name string) bool {
	rule, ok := gr.rules[name]
	if !ok {
		return false
	}

	delete(gr.rules, name)

	for _, handledEvent := range rule.Handles() {
		if rules, ok := gr.eventMap[handledEvent]; ok {
			delete(rules, name)

			if len(rules) == 0 {
				delete(gr.eventMap, handledEvent)
			}
		}
	}

	return true
}

/*
GraphRules returns a list of all available graph rules.
*/
func (gr *graphRulesManager) GraphRules() []string {
	gr.mutex.RLock()
	defer gr.mutex.RUnlock()

	ret := make([]string, 0, len(gr.rules))

	for rule := range gr.rules {
		ret = append(ret, rule)
	}

	sort.StringSlice(ret).Sort()

	return ret
}

// System rule SystemRuleDeleteVertexEdges
// =======================================

/*
SystemRuleDeleteVertexEdges is a system rule to delete all edges of a vertex
when the vertex is deleted. Every removed edge produces its own
EventEdgeDeleted.
*/
type SystemRuleDeleteVertexEdges struct {
}

/*
Name returns the name of the rule.
*/
func (r *SystemRuleDeleteVertexEdges) Name() string {
	return "system.deletevertexedges"
}

/*
Handles returns a list of events which are handled by this rule.
*/
func (r *SystemRuleDeleteVertexEdges) Handles() []int {
	return []int{EventVertexDeleted}
}

/*
Handle handles an event.
*/
func (r *SystemRuleDeleteVertexEdges) Handle(gm *Manager, event int, ed ...interface{}) error {
	vertex := ed[0].(data.Vertex)

	// Collect first - removing edges changes the index

	var ids []uint64

	for edge := range gm.OutEdges(vertex.ID(), nil) {
		ids = append(ids, edge.ID())
	}

	for edge := range gm.InEdges(vertex.ID(), nil) {

		// Self loops appear in both lists

		if edge.OtherEnd(vertex.ID()) != vertex.ID() {
			ids = append(ids, edge.ID())
		}
	}

	errors := errorutil.NewCompositeError()

	for _, id := range ids {
		if _, err := gm.RemoveEdge(id); err != nil {
			errors.Add(err)
		}
	}

	if errors.HasErrors() {
		return errors
	}

	return nil
}
