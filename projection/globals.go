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
Package projection derives traversal graphs from a property graph.

A projection copies all edges of a property graph which pass a vertex
filter (applied to the out vertex) and an edge filter into a traversal
graph. Each copied edge becomes a cell (out vertex id, in vertex id) whose
value is produced by an edge value converter. An edge which does not fit
into the target (a vertex id at or above its capacity) fails the projection
with an ErrVertexOutOfRange error.

Continuous learning

If the source graph accepts graph rules (see MutableGraph) a projection can
keep its target up to date. New edges are filtered, converted and added;
deleted edges are removed from the target. The updates run synchronously
inside the mutating call of the source graph so errors are returned to the
caller of that call. A projection stops learning once it is closed.
*/
package projection

import (
	"log"
)

/*
RulePrefix is the name prefix of graph rules registered by projections
*/
const RulePrefix = "projection."

/*
Logger is a function which processes log messages from projections
*/
type Logger func(v ...interface{})

/*
LogInfo is called if an info message is logged in the projection code
*/
var LogInfo = Logger(log.Print)

/*
LogDebug is called if a debug message is logged in the projection code
(by default disabled)
*/
var LogDebug = Logger(LogNull)

/*
LogNull is a discarding logger to be used for disabling loggers
*/
var LogNull = func(v ...interface{}) {
}
