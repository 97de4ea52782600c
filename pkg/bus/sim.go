// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package bus

import "sync"

// Sim is a simulated word bus backed by a sparse in-memory store.  Unwritten
// addresses read as zero.  All operations are safe for concurrent use; the
// internal lock also serves as the serialization point for callers who need
// read-modify-write sequences to be observed whole.
//
// Beyond plain storage, a Sim counts its reads and writes and can be primed
// to fail at chosen addresses, which makes it the workhorse for exercising
// the register core's bus-traffic and error-propagation contracts.
type Sim struct {
	mu sync.RWMutex
	// Sparse word store, keyed by byte address.
	words map[uint32]uint32
	// Primed failures, keyed by byte address.
	faults map[uint32]error
	// Access counters.
	reads  uint
	writes uint
}

// NewSim constructs an empty simulated bus.
func NewSim() *Sim {
	return &Sim{
		words:  make(map[uint32]uint32),
		faults: make(map[uint32]error),
	}
}

// ReadWord reads the word at the given address, counting the access.
func (p *Sim) ReadWord(addr uint32) (uint32, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	//
	p.reads++
	//
	if err, ok := p.faults[addr]; ok {
		return 0, &Error{Op: "read", Addr: addr, Err: err}
	}
	//
	return p.words[addr], nil
}

// WriteWord writes a word to the given address, counting the access.
func (p *Sim) WriteWord(addr uint32, data uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	//
	p.writes++
	//
	if err, ok := p.faults[addr]; ok {
		return &Error{Op: "write", Addr: addr, Err: err}
	}
	//
	p.words[addr] = data
	//
	return nil
}

// Poke stores a word directly, bypassing fault injection and the access
// counters.  Intended for test setup.
func (p *Sim) Poke(addr uint32, data uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	//
	p.words[addr] = data
}

// Peek reads a word directly, bypassing fault injection and the access
// counters.  Intended for test inspection.
func (p *Sim) Peek(addr uint32) uint32 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	//
	return p.words[addr]
}

// InjectFault primes every subsequent access to the given address to fail
// with the given error.
func (p *Sim) InjectFault(addr uint32, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	//
	p.faults[addr] = err
}

// Counts returns the number of reads and writes performed so far.
func (p *Sim) Counts() (reads uint, writes uint) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	//
	return p.reads, p.writes
}

// ResetCounts zeroes the access counters.
func (p *Sim) ResetCounts() {
	p.mu.Lock()
	defer p.mu.Unlock()
	//
	p.reads, p.writes = 0, 0
}
