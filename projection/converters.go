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
	"encoding/json"
	"fmt"
	"strconv"

	"devt.de/krotik/travgraph/graph/data"
	"devt.de/krotik/travgraph/graph/util"
)

/*
EdgeValueConverter produces the traversal graph value of an edge.
*/
type EdgeValueConverter[T any] func(edge data.Edge) (T, error)

/*
LabelConverter returns a converter which uses the label of an edge as its
value. The label can only be used if T can hold a string.
*/
func LabelConverter[T any]() EdgeValueConverter[T] {
	return func(edge data.Edge) (T, error) {
		var zero T

		if v, ok := any(edge.Label()).(T); ok {
			return v, nil
		}

		return zero, &util.GraphError{
			Type:   util.ErrConversion,
			Detail: fmt.Sprintf("Label %q of edge %v is not a %T", edge.Label(), edge.ID(), zero),
		}
	}
}

/*
PropertyConverter returns a converter which reads a named edge property and
converts it with a given value conversion function.
*/
func PropertyConverter[T any](key string, conv func(interface{}) (T, error)) EdgeValueConverter[T] {
	return func(edge data.Edge) (T, error) {
		var zero T

		val := edge.Attr(key)

		if val == nil {
			return zero, &util.GraphError{
				Type:   util.ErrConversion,
				Detail: fmt.Sprintf("Edge %v has no property %v", edge.ID(), key),
			}
		}

		res, err := conv(val)

		if err != nil {
			return zero, &util.GraphError{
				Type:   util.ErrConversion,
				Detail: fmt.Sprintf("Property %v of edge %v: %v", key, edge.ID(), err),
			}
		}

		return res, nil
	}
}

/*
LabelCodeConverter returns a converter which uses a numeric code of the
edge label as value. Codes are created on demand and can be decoded with
the given names manager.
*/
func LabelCodeConverter(nm *util.NamesManager) EdgeValueConverter[uint32] {
	return func(edge data.Edge) (uint32, error) {
		if code := nm.Encode32(edge.Label(), true); code != util.NoCode {
			return code, nil
		}

		return util.NoCode, &util.GraphError{
			Type:   util.ErrConversion,
			Detail: fmt.Sprintf("No code for label %q of edge %v", edge.Label(), edge.ID()),
		}
	}
}

/*
StringValue converts any property value to a string.
*/
func StringValue(val interface{}) (string, error) {
	return fmt.Sprint(val), nil
}

/*
Float64Value converts numeric property values (including numbers read from
JSON and numeric strings) to a float64.
*/
func Float64Value(val interface{}) (float64, error) {
	switch v := val.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(v, 64)
	}

	return 0, fmt.Errorf("Value %v of type %T is not a number", val, val)
}

/*
Uint64Value converts non-negative integral property values to an uint64.
*/
func Uint64Value(val interface{}) (uint64, error) {
	if v, ok := data.ToUint64(val); ok {
		return v, nil
	}

	return 0, fmt.Errorf("Value %v of type %T is not an unsigned integer", val, val)
}
