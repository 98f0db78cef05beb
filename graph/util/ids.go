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

import "sync"

/*
IDSource hands out dense identifiers for vertices or edges.
*/
type IDSource interface {

	/*
		NextID returns the next unused identifier.
	*/
	NextID() uint64

	/*
		Claim marks a given identifier as used.
	*/
	Claim(id uint64)
}

/*
sequentialIDSource hands out 0, 1, 2, ... skipping claimed identifiers.
*/
type sequentialIDSource struct {
	next  uint64      // Next candidate identifier
	mutex *sync.Mutex // Mutex to protect the counter
}

/*
NewSequentialIDSource creates a new IDSource which starts at 0.
*/
func NewSequentialIDSource() IDSource {
	return &sequentialIDSource{0, &sync.Mutex{}}
}

/*
NextID returns the next unused identifier.
*/
func (s *sequentialIDSource) NextID() uint64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	id := s.next
	s.next++

	return id
}

/*
Claim marks a given identifier as used. Identifiers above the current
counter move the counter forward.
*/
func (s *sequentialIDSource) Claim(id uint64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if id >= s.next {
		s.next = id + 1
	}
}
