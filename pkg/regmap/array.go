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

import "fmt"

// RegisterArrayAccessor exposes an indexed family of structurally identical
// registers, such as a block-RAM-like region, where every element shares one
// field template.  Elements are never materialized up front: indexing
// constructs an ephemeral register definition at the element's address and
// binds an accessor to it.  For large regions this keeps the memory cost
// independent of the element count, since every element's layout is
// identical and cheap to reconstruct per access.
type RegisterArrayAccessor struct {
	// Memory map providing base address and transport.
	owner *MemoryMap
	// Given name of this array.
	name string
	// Byte offset of element zero from the memory map base address.
	base uint32
	// Number of elements.
	count uint
	// Byte distance between consecutive elements.
	stride uint32
	// Width (in bits) of each element.
	width uint
	// Field template shared by every element.
	template []*BitField
}

// ArrayInfo is a descriptive summary of a register array.
type ArrayInfo struct {
	// Given name of the array.
	Name string
	// Absolute bus address of element zero.
	BaseAddress uint32
	// Number of elements.
	Count uint
	// Byte distance between consecutive elements.
	Stride uint32
	// Total byte size of the region covered by the array.
	TotalBytes uint32
	// Absolute bus address of the first byte of the region.
	FirstAddress uint32
	// Absolute bus address of the last byte of the region (inclusive).
	LastAddress uint32
}

// Name returns the given name of this array.
func (p *RegisterArrayAccessor) Name() string {
	return p.name
}

// Count returns the number of elements in this array.
func (p *RegisterArrayAccessor) Count() uint {
	return p.count
}

// Template returns the field template shared by every element.  The returned
// slice must not be modified.
func (p *RegisterArrayAccessor) Template() []*BitField {
	return p.template
}

// Element returns an accessor for the i'th element of this array, or an
// IndexError if i lies outside [0,count).  The element's register definition
// is constructed on demand at offset base + i*stride.
func (p *RegisterArrayAccessor) Element(i int) (*RegisterAccessor, error) {
	if i < 0 || uint(i) >= p.count {
		return nil, &IndexError{Array: p.name, Index: i, Count: p.count}
	}
	//
	offset := p.base + uint32(i)*p.stride
	// Template was validated when the array was registered, hence this
	// cannot fail.
	reg, err := NewRegister(fmt.Sprintf("%s[%d]", p.name, i), offset, p.width, p.template...)
	if err != nil {
		return nil, err
	}
	//
	return &RegisterAccessor{owner: p.owner, reg: reg}, nil
}

// Info returns a descriptive summary of this array.  It has no side effects
// and touches no hardware.
func (p *RegisterArrayAccessor) Info() ArrayInfo {
	var (
		first = p.owner.base + p.base
		total = uint32(p.count) * p.stride
	)
	//
	return ArrayInfo{
		Name:         p.name,
		BaseAddress:  first,
		Count:        p.count,
		Stride:       p.stride,
		TotalBytes:   total,
		FirstAddress: first,
		LastAddress:  first + total - 1,
	}
}
