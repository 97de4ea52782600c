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
package regmap

import (
	"fmt"

	"github.com/bleviet/fpga-lib-sub001/pkg/bus"
)

// MemoryMap binds a base address and a bus transport to a named collection of
// registers, materializing one RegisterAccessor per register.  The transport
// is owned exclusively by its memory map: accessors hold only non-owning
// references back to the map and must not outlive it.
//
// Register and array names share one namespace within a map; adding either
// under an existing name fails.  Offsets, by contrast, are deliberately not
// required to be unique, since real devices alias registers (the same address
// viewed through different layouts).
type MemoryMap struct {
	// Given name of this memory map (e.g. the peripheral name).
	name string
	// Base byte address of this map on the bus.
	base uint32
	// Word transport, exclusively owned.
	bus bus.Bus
	// Registers in declaration order.
	registers []*Register
	// Accessor lookup by register name.
	accessors map[string]*RegisterAccessor
	// Register arrays by name.
	arrays map[string]*RegisterArrayAccessor
}

// NewMemoryMap constructs an empty memory map at the given base address over
// the given transport.
func NewMemoryMap(name string, base uint32, b bus.Bus) *MemoryMap {
	return &MemoryMap{
		name:      name,
		base:      base,
		bus:       b,
		accessors: make(map[string]*RegisterAccessor),
		arrays:    make(map[string]*RegisterArrayAccessor),
	}
}

// Name returns the given name of this memory map.
func (p *MemoryMap) Name() string {
	return p.name
}

// Base returns the base byte address of this map on the bus.
func (p *MemoryMap) Base() uint32 {
	return p.base
}

// AddRegister stores a register definition in this map and materializes its
// accessor.  It fails with a ConstructionError if the name is already taken.
func (p *MemoryMap) AddRegister(reg *Register) (*RegisterAccessor, error) {
	if p.taken(reg.Name()) {
		return nil, &ConstructionError{
			Register: reg.Name(),
			Reason:   "name already present in memory map",
		}
	}
	//
	accessor := &RegisterAccessor{owner: p, reg: reg}
	p.registers = append(p.registers, reg)
	p.accessors[reg.Name()] = accessor
	//
	return accessor, nil
}

// AddArray registers an indexed family of structurally identical registers,
// where every element reuses the given field template.  The template is
// validated once, up front, by constructing a probe element.  It fails with a
// ConstructionError if the name is already taken, the count is zero, the
// stride cannot hold an element, or the template itself is invalid.
func (p *MemoryMap) AddArray(name string, base uint32, count uint, stride uint32, width uint,
	template ...*BitField) (*RegisterArrayAccessor, error) {
	if p.taken(name) {
		return nil, &ConstructionError{
			Register: name,
			Reason:   "name already present in memory map",
		}
	} else if count == 0 {
		return nil, &ConstructionError{Register: name, Reason: "array has no elements"}
	} else if stride == 0 {
		return nil, &ConstructionError{Register: name, Reason: "array stride is zero"}
	}
	// The whole region must fit within the 32-bit address space.
	if end := uint64(p.base) + uint64(base) + uint64(count)*uint64(stride); end > 1<<32 {
		return nil, &ConstructionError{
			Register: name,
			Reason:   fmt.Sprintf("region of %d elements at stride %d exceeds the address space", count, stride),
		}
	}
	// Validate the shared template by constructing a probe element.
	if _, err := NewRegister(name, base, width, template...); err != nil {
		return nil, err
	}
	//
	array := &RegisterArrayAccessor{
		owner:    p,
		name:     name,
		base:     base,
		count:    count,
		stride:   stride,
		width:    width,
		template: template,
	}
	p.arrays[name] = array
	//
	return array, nil
}

// Register returns the accessor for the named register, or a NameError if no
// such register exists.
func (p *MemoryMap) Register(name string) (*RegisterAccessor, error) {
	if accessor, ok := p.accessors[name]; ok {
		return accessor, nil
	}
	//
	return nil, &NameError{Scope: p.name, Kind: "register", Name: name}
}

// Array returns the named register array, or a NameError if no such array
// exists.
func (p *MemoryMap) Array(name string) (*RegisterArrayAccessor, error) {
	if array, ok := p.arrays[name]; ok {
		return array, nil
	}
	//
	return nil, &NameError{Scope: p.name, Kind: "register array", Name: name}
}

// Registers returns the register definitions held by this map in declaration
// order.  This is the read-only surface consumed by code generators and
// editors; the returned slice must not be modified.
func (p *MemoryMap) Registers() []*Register {
	return p.registers
}

// taken determines whether the given name is already bound to a register or
// an array within this map.
func (p *MemoryMap) taken(name string) bool {
	if _, ok := p.accessors[name]; ok {
		return true
	}
	//
	_, ok := p.arrays[name]
	//
	return ok
}
