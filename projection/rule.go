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
	"devt.de/krotik/travgraph/graph"
	"devt.de/krotik/travgraph/graph/data"
)

/*
projectionRule applies edge changes of a source graph to a projection.
*/
type projectionRule[T any] struct {
	p *Projection[T]
}

/*
Name returns the name of the rule.
*/
func (r *projectionRule[T]) Name() string {
	return r.p.name
}

/*
Handles returns a list of events which are handled by this rule.
*/
func (r *projectionRule[T]) Handles() []int {
	return []int{graph.EventEdgeCreated, graph.EventEdgeUpdated, graph.EventEdgeDeleted}
}

/*
Handle handles an event.
*/
func (r *projectionRule[T]) Handle(gm *graph.Manager, event int, ed ...interface{}) error {
	if !r.p.IsLearning() {
		return nil
	}

	edge := ed[0].(data.Edge)

	switch event {

	case graph.EventEdgeCreated:
		if r.p.accepts(gm, edge) {
			return r.p.add(PhaseLearn, edge)
		}
		countEdge(PhaseLearn, ResultSkipped)

	case graph.EventEdgeUpdated:
		old := ed[1].(data.Edge)
		accepted := r.p.accepts(gm, edge)

		// An edge which stays between the same vertices only changes its value

		if accepted && data.VertexCompare(edge, old, []string{data.EdgeOutVertex, data.EdgeInVertex}) {
			return r.p.add(PhaseLearn, edge)
		}

		if err := r.p.remove(PhaseLearn, old); err != nil {
			return err
		}
		if accepted {
			return r.p.add(PhaseLearn, edge)
		}
		countEdge(PhaseLearn, ResultSkipped)

	case graph.EventEdgeDeleted:
		return r.p.remove(PhaseLearn, edge)
	}

	return nil
}
