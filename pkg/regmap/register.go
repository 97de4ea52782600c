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

	"github.com/bits-and-blooms/bitset"
)

// Register is the pure definition of a single hardware register: a fixed bit
// width together with an ordered collection of non-overlapping, uniquely
// named bit fields.  A register definition carries no transport state of its
// own; pairing it with a memory map yields a RegisterAccessor through which
// the physical register is read and written.
//
// Registers are validated on construction and immutable thereafter.
type Register struct {
	// Given name of this register, unique within its owning memory map.
	name string
	// Byte offset of this register from the memory map base address.
	offset uint32
	// Width (in bits) of this register.
	width uint
	// Fields of this register, in declaration order.
	fields []*BitField
	// Field lookup by name.
	index map[string]*BitField
	// Human-readable description (may be empty).
	description string
}

// NewRegister constructs a new register definition of the given width (in
// bits) holding the given fields.  Construction fails if the width lies
// outside [1,32], if any field extends beyond the register width, if two
// fields share a name, or if two fields overlap on any bit position.
func NewRegister(name string, offset uint32, width uint, fields ...*BitField) (*Register, error) {
	if width == 0 || width > WordBits {
		return nil, &ConstructionError{
			Register: name,
			Reason:   fmt.Sprintf("width %d outside range [1,%d]", width, WordBits),
		}
	}
	//
	var (
		occupied = bitset.New(WordBits)
		index    = make(map[string]*BitField, len(fields))
	)
	// Check fields fit, and mark occupied bit positions as we go.
	for _, field := range fields {
		if _, ok := index[field.Name()]; ok {
			return nil, &ConstructionError{
				Register: name, Field: field.Name(),
				Reason: "duplicate field name",
			}
		} else if field.Offset()+field.Width() > width {
			return nil, &ConstructionError{
				Register: name, Field: field.Name(),
				Reason: fmt.Sprintf("bits [%s] extend beyond register width %d", field.Bits(), width),
			}
		}
		//
		for bit := field.Offset(); bit < field.Offset()+field.Width(); bit++ {
			if occupied.Test(bit) {
				return nil, &ConstructionError{
					Register: name, Field: field.Name(),
					Reason: fmt.Sprintf("bit %d already occupied by another field", bit),
				}
			}
			//
			occupied.Set(bit)
		}
		//
		index[field.Name()] = field
	}
	//
	return &Register{
		name:   name,
		offset: offset,
		width:  width,
		fields: fields,
		index:  index,
	}, nil
}

// WithDescription returns a copy of this register carrying the given
// human-readable description.
func (p *Register) WithDescription(description string) *Register {
	reg := *p
	reg.description = description
	//
	return &reg
}

// Name returns the given name of this register.
func (p *Register) Name() string {
	return p.name
}

// Offset returns the byte offset of this register from the memory map base
// address.
func (p *Register) Offset() uint32 {
	return p.offset
}

// Width returns the width of this register in bits.
func (p *Register) Width() uint {
	return p.width
}

// Description returns the human-readable description of this register.
func (p *Register) Description() string {
	return p.description
}

// Fields returns the fields of this register in declaration order.  The
// returned slice must not be modified.
func (p *Register) Fields() []*BitField {
	return p.fields
}

// Field returns the field with the given name, or a NameError if no such
// field exists.
func (p *Register) Field(name string) (*BitField, error) {
	if field, ok := p.index[name]; ok {
		return field, nil
	}
	//
	return nil, &NameError{Scope: p.name, Kind: "field", Name: name}
}

// HasField determines whether this register holds a field of the given name.
func (p *Register) HasField(name string) bool {
	_, ok := p.index[name]
	return ok
}

// MaxValue returns the largest value this register can hold, i.e. the mask
// covering its full width.
func (p *Register) MaxValue() uint32 {
	return uint32((uint64(1) << p.width) - 1)
}

// ResetValue returns the register value after a hardware reset: the bitwise
// OR of every field's declared reset value shifted to its offset.  Fields
// without a declared reset value contribute nothing.
func (p *Register) ResetValue() uint32 {
	var word uint32
	//
	for _, field := range p.fields {
		if value, ok := field.Reset(); ok {
			word |= value << field.Offset()
		}
	}
	//
	return word
}

// ReadField isolates the named field's value from a full register word.  It
// fails with a NameError if the field is unknown, or an AccessError if the
// field cannot be read at field granularity.
func (p *Register) ReadField(name string, word uint32) (uint32, error) {
	field, err := p.Field(name)
	//
	if err != nil {
		return 0, err
	} else if !field.Access().Readable() {
		return 0, &AccessError{Register: p.name, Field: name, Access: field.Access(), Op: "read"}
	}
	//
	return field.Extract(word), nil
}

// WriteField computes the register word resulting from writing value to the
// named field of word, applying the field's access semantics.  The argument
// word is never mutated; for access types which do not require the current
// value the caller passes a zero base.  It fails with a NameError if the
// field is unknown, an AccessError if the field cannot be written, or a
// RangeError if the value does not fit the field.
func (p *Register) WriteField(name string, word uint32, value uint32) (uint32, error) {
	field, err := p.Field(name)
	//
	if err != nil {
		return 0, err
	} else if !field.Access().Writable() {
		return 0, &AccessError{Register: p.name, Field: name, Access: field.Access(), Op: "write"}
	} else if value > field.Max() {
		return 0, &RangeError{Register: p.name, Field: name, Value: value, Max: field.Max()}
	}
	//
	if field.Access() == ReadWriteOneToClear {
		// Every one bit written clears the corresponding register bit;
		// zero bits are left unchanged.
		return word &^ (value << field.Offset()), nil
	}
	// Plain insertion.  For write-only and self-clearing fields the caller
	// passes a zero base, since no prior read is performed.  Range already
	// checked above, hence no error.
	word, _ = field.Insert(word, value)
	//
	return word, nil
}
