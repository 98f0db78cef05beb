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
	"encoding/json"
	"fmt"
	"io"

	"devt.de/krotik/travgraph/graph/data"
)

/*
ExportGraph dumps the contents of a graph to an io.Writer in JSON format:

	{
		vertices : [ { <attr> : <value> }, ... ]
		edges : [ { <attr> : <value> }, ... ]
	}

Vertices and edges are written in ascending id order.
*/
func ExportGraph(out io.Writer, gm *Manager) error {
	vertices := make([]map[string]interface{}, 0)
	edges := make([]map[string]interface{}, 0)
	edgeList := make([]data.Vertex, 0)

	it := gm.VertexIterator(nil)

	for it.HasNext() {
		vertex := it.Next()

		if it.LastError != nil {
			return it.LastError
		}

		vertices = append(vertices, vertex.Data())

		for edge := range gm.OutEdges(vertex.ID(), nil) {
			edgeList = append(edgeList, edge)
		}
	}

	data.VertexSort(edgeList)

	for _, edge := range edgeList {
		edges = append(edges, edge.Data())
	}

	res, err := json.MarshalIndent(map[string]interface{}{
		"vertices": vertices,
		"edges":    edges,
	}, "", "  ")

	if err == nil {
		_, err = out.Write(res)
	}

	return err
}

/*
ImportBatchSize is the number of operations after which an import commits
its changes.
*/
var ImportBatchSize = 1000

/*
ImportGraph imports the JSON contents of an io.Reader into a given graph.
The format produced by ExportGraph is expected. Vertices are stored before
edges; the import stops at the first invalid vertex or edge.
*/
func ImportGraph(in io.Reader, gm *Manager) error {

	dec := json.NewDecoder(in)
	dec.UseNumber()

	gdata := make(map[string][]map[string]interface{})

	if err := dec.Decode(&gdata); err != nil {
		return fmt.Errorf("Could not decode file content as object with list of vertices and edges: %s", err.Error())
	}

	trans := NewRollingTrans(NewGraphTrans(gm), ImportBatchSize, gm, NewGraphTrans)

	for _, vdata := range gdata["vertices"] {
		if err := trans.StoreVertex(data.NewGraphVertexFromMap(vdata)); err != nil {
			return err
		}
	}

	for _, edata := range gdata["edges"] {
		if err := trans.StoreEdge(data.NewGraphEdgeFromVertex(data.NewGraphVertexFromMap(edata))); err != nil {
			return err
		}
	}

	return trans.Commit()
}
