/*
 * EliasDB
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package util

import (
	"math"
	"sync"
)

/*
NoCode is returned for names which have no code
*/
const NoCode uint32 = 0

/*
NamesManager data structure
*/
type NamesManager struct {
	codes map[string]uint32 // Codes of all known names
	names []string          // Names by code (code 1 is at index 0)
	mutex *sync.RWMutex     // Lock for this names manager
}

/*
NewNamesManager creates a new names manager instance.
*/
func NewNamesManager() *NamesManager {
	return &NamesManager{make(map[string]uint32), nil, &sync.RWMutex{}}
}

/*
Encode32 encodes a given name as a 32 bit code. If the create flag
is set to false then a new entry will not be created if it does not exist
and NoCode is returned.
*/
func (nm *NamesManager) Encode32(name string, create bool) uint32 {
	nm.mutex.RLock()
	code, ok := nm.codes[name]
	nm.mutex.RUnlock()

	if ok || !create {
		return code
	}

	nm.mutex.Lock()
	defer nm.mutex.Unlock()

	// Check again - another writer may have been faster

	if code, ok = nm.codes[name]; !ok {

		if uint64(len(nm.names)) >= math.MaxUint32 {
			return NoCode
		}

		nm.names = append(nm.names, name)
		code = uint32(len(nm.names))
		nm.codes[name] = code
	}

	return code
}

/*
Decode32 decodes a given 32 bit code to a name. Returns an empty string
for unknown codes.
*/
func (nm *NamesManager) Decode32(code uint32) string {
	nm.mutex.RLock()
	defer nm.mutex.RUnlock()

	if code == NoCode || int(code) > len(nm.names) {
		return ""
	}

	return nm.names[code-1]
}

/*
Len returns the number of known names.
*/
func (nm *NamesManager) Len() int {
	nm.mutex.RLock()
	defer nm.mutex.RUnlock()

	return len(nm.names)
}
