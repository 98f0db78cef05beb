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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Phases of a projection

const (
	PhaseBulk  = "bulk"
	PhaseLearn = "learn"
)

// Results of a single edge operation

const (
	ResultAdded   = "added"
	ResultRemoved = "removed"
	ResultSkipped = "skipped"
	ResultError   = "error"
)

var (
	ProjectedEdgesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travgraph_projection_edges_total",
		Help: "Total number of edge operations applied to projection targets",
	}, []string{"phase", "result"})

	LearningProjections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "travgraph_projection_learning",
		Help: "Current number of projections which follow their source graph",
	})
)

/*
countEdge records a single edge operation.
*/
func countEdge(phase string, result string) {
	ProjectedEdgesTotal.WithLabelValues(phase, result).Inc()
}
