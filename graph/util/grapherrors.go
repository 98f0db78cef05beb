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
Package util contains utility classes for the property graph and the
traversal graphs which are derived from it.

GraphError

Models a graph related error. Low-level errors should be wrapped in a GraphError
before they are returned to a client. The Type of a GraphError is always one of
the error types defined in this package and can be checked with errors.Is.

IDSource

Provides the identifier space for vertices and edges. Identifiers are dense
unsigned integers starting at 0 which can be used as direct array indices.
*/
package util

import (
	"errors"
	"fmt"
)

/*
GraphError is a graph related error
*/
type GraphError struct {
	Type   error   // Error type (to be used for equal checks)
	Detail string  // Details of this error
	Causes []error // Errors which caused this error (e.g. failed rules)
}

/*
Error returns a human-readable string representation of this error.
*/
func (ge *GraphError) Error() string {
	if ge.Detail != "" {
		return fmt.Sprintf("GraphError: %v (%v)", ge.Type, ge.Detail)
	}

	return fmt.Sprintf("GraphError: %v", ge.Type)
}

/*
Unwrap returns the error type of this error followed by its causes.
*/
func (ge *GraphError) Unwrap() []error {
	return append([]error{ge.Type}, ge.Causes...)
}

/*
Property graph related error types
*/
var (
	ErrInvalidData   = errors.New("Invalid data")
	ErrUnknownVertex = errors.New("Unknown vertex")
	ErrRule          = errors.New("Graph rule error")
)

/*
Traversal graph related error types
*/
var (
	ErrUninitializedVertex = errors.New("Vertex was not initialized")
	ErrVertexOutOfRange    = errors.New("Vertex id out of range")
	ErrConversion          = errors.New("Could not convert edge value")
)
