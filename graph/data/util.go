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

import (
	"encoding/gob"
	"encoding/json"
	"math"
	"reflect"
	"sort"
	"strconv"

	"devt.de/krotik/common/datautil"
)

func init() {

	// Register attribute value types which are not known to gob

	gob.Register(make(map[string]interface{}))
	gob.Register(make(map[string]string))
	gob.Register(make([]interface{}, 0))
	gob.Register(json.Number(""))
}

/*
ToUint64 converts a given attribute value into an unsigned number. Imported
data carries numbers as float64 or json.Number.
*/
func ToUint64(val interface{}) (uint64, bool) {
	switch v := val.(type) {
	case uint64:
		return v, true
	case uint32:
		return uint64(v), true
	case uint:
		return uint64(v), true
	case int:
		return uint64(v), v >= 0
	case int32:
		return uint64(v), v >= 0
	case int64:
		return uint64(v), v >= 0
	case float64:
		if v >= 0 && v < math.MaxUint64 && v == math.Trunc(v) {
			return uint64(v), true
		}
		return 0, false
	case json.Number:
		n, err := strconv.ParseUint(string(v), 10, 64)
		return n, err == nil
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		return n, err == nil
	}

	return 0, false
}

/*
HasEnds returns if both endpoints of a given edge are set.
*/
func HasEnds(edge Edge) bool {
	_, ok1 := ToUint64(edge.Attr(EdgeOutVertex))
	_, ok2 := ToUint64(edge.Attr(EdgeInVertex))
	return ok1 && ok2
}

/*
VertexCompare compares vertex attributes.
*/
func VertexCompare(vertex1 Vertex, vertex2 Vertex, attrs []string) bool {

	if attrs == nil {
		if len(vertex1.Data()) != len(vertex2.Data()) {
			return false
		}

		attrs = make([]string, 0, len(vertex1.Data()))

		for attr := range vertex1.Data() {
			attrs = append(attrs, attr)
		}
	}

	for _, attr := range attrs {
		if !reflect.DeepEqual(vertex1.Attr(attr), vertex2.Attr(attr)) {
			return false
		}
	}

	return true
}

/*
VertexClone clones a vertex. An error is returned if the vertex data cannot
be copied.
*/
func VertexClone(vertex Vertex) (Vertex, error) {
	var data map[string]interface{}

	if err := datautil.CopyObject(vertex.Data(), &data); err != nil {
		return nil, err
	}

	return &graphVertex{data}, nil
}

/*
EdgeClone clones an edge. An error is returned if the edge data cannot
be copied.
*/
func EdgeClone(edge Edge) (Edge, error) {
	vertex, err := VertexClone(edge)
	if err != nil {
		return nil, err
	}
	return NewGraphEdgeFromVertex(vertex), nil
}

/*
VertexSort sorts a list of vertices.
*/
func VertexSort(list []Vertex) {
	sort.Sort(VertexSlice(list))
}

/*
VertexSlice attaches the methods of sort.Interface to []Vertex, sorting in
increasing order by id.
*/
type VertexSlice []Vertex

/*
Len belongs to the sort.Interface.
*/
func (p VertexSlice) Len() int { return len(p) }

/*
Less belongs to the sort.Interface.
*/
func (p VertexSlice) Less(i, j int) bool {
	return p[i].ID() < p[j].ID()
}

/*
Swap belongs to the sort.Interface.
*/
func (p VertexSlice) Swap(i, j int) { p[i], p[j] = p[j], p[i] }
