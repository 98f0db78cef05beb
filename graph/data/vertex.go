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
Package data contains classes and functions to handle property graph data.

Vertices

Vertices are items stored in the graph. The graphVertex object is the minimal
implementation of the Vertex interface. Every vertex has a numeric id, a label
and a revision id. Setting a nil value to an attribute is equivalent to
removing the attribute.

Edges

Edges connect an out vertex with an in vertex. The graphEdge object is the
minimal implementation of the Edge interface. Edges carry attributes in the
same way as vertices.
*/
package data

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
)

/*
Vertex models vertices in the graph
*/
type Vertex interface {

	/*
		ID returns the numeric id of this vertex.
	*/
	ID() uint64

	/*
		HasID returns if an id was assigned to this vertex.
	*/
	HasID() bool

	/*
		Label returns the label of this vertex.
	*/
	Label() string

	/*
		RevID returns the revision id of this vertex.
	*/
	RevID() uint64

	/*
		Data returns the data of this vertex.
	*/
	Data() map[string]interface{}

	/*
		Attr returns an attribute of this vertex.
	*/
	Attr(attr string) interface{}

	/*
		SetAttr sets an attribute of this vertex. Setting a nil
		value removes the attribute.
	*/
	SetAttr(attr string, val interface{})

	/*
		String returns a string representation of this vertex.
	*/
	String() string
}

/*
VertexID is the id attribute of a vertex
*/
const VertexID = "id"

/*
VertexLabel is the label attribute of a vertex
*/
const VertexLabel = "label"

/*
VertexRevID is the revision id attribute of a vertex
*/
const VertexRevID = "revid"

/*
graphVertex data structure.
*/
type graphVertex struct {
	data map[string]interface{} // Data which is held by this vertex
}

/*
NewGraphVertex creates a new Vertex instance.
*/
func NewGraphVertex() Vertex {
	return &graphVertex{make(map[string]interface{})}
}

/*
NewGraphVertexFromMap creates a new Vertex instance.
*/
func NewGraphVertexFromMap(data map[string]interface{}) Vertex {
	return &graphVertex{data}
}

/*
ID returns the numeric id of this vertex.
*/
func (gv *graphVertex) ID() uint64 {
	id, _ := gv.uint64Attr(VertexID)
	return id
}

/*
HasID returns if an id was assigned to this vertex.
*/
func (gv *graphVertex) HasID() bool {
	_, ok := gv.uint64Attr(VertexID)
	return ok
}

/*
Label returns the label of this vertex.
*/
func (gv *graphVertex) Label() string {
	return gv.stringAttr(VertexLabel)
}

/*
RevID returns the revision id of this vertex.
*/
func (gv *graphVertex) RevID() uint64 {
	rev, _ := gv.uint64Attr(VertexRevID)
	return rev
}

/*
Data returns the data of this vertex.
*/
func (gv *graphVertex) Data() map[string]interface{} {
	return gv.data
}

/*
Attr returns an attribute of this vertex.
*/
func (gv *graphVertex) Attr(attr string) interface{} {
	return gv.data[attr]
}

/*
SetAttr sets an attribute of this vertex. Setting a nil
value removes the attribute.
*/
func (gv *graphVertex) SetAttr(attr string, val interface{}) {
	if val != nil {
		gv.data[attr] = val
	} else {
		delete(gv.data, attr)
	}
}

/*
Return the value of an attribute as a string. Or an
empty string if it can't be represented as a string.
*/
func (gv *graphVertex) stringAttr(attr string) string {
	val, found := gv.data[attr]

	if st, ok := val.(string); found && ok {
		return st
	} else if st, ok := val.(fmt.Stringer); found && ok {
		return st.String()
	}

	return ""
}

/*
Return the value of an attribute as an unsigned number.
*/
func (gv *graphVertex) uint64Attr(attr string) (uint64, bool) {
	return ToUint64(gv.data[attr])
}

/*
String returns a string representation of this vertex.
*/
func (gv *graphVertex) String() string {
	return dataToString("GraphVertex", gv)
}

/*
dataToString returns a string representation of a data item.
*/
func dataToString(dataType string, gv *graphVertex) string {
	var buf bytes.Buffer
	attrlist := make([]string, 0, len(gv.data))
	maxlen := len(VertexLabel)

	for attr := range gv.data {
		attrlist = append(attrlist, attr)
		if alen := len(attr); alen > maxlen {
			maxlen = alen
		}
	}

	sort.StringSlice(attrlist).Sort()

	buf.WriteString(dataType + ":\n")

	buf.WriteString(fmt.Sprintf("    %"+
		strconv.Itoa(maxlen)+"v : %v\n", VertexID, gv.ID()))
	buf.WriteString(fmt.Sprintf("    %"+
		strconv.Itoa(maxlen)+"v : %v\n", VertexLabel, gv.Label()))

	for _, attr := range attrlist {
		if attr == VertexID || attr == VertexLabel {
			continue
		}
		buf.WriteString(fmt.Sprintf("    %"+
			strconv.Itoa(maxlen)+"v : %v\n", attr, gv.data[attr]))
	}

	return buf.String()
}
