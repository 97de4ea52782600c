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
	"strconv"
	"strings"
)

// WordBits is the maximum width (in bits) of a register word, and hence the
// upper bound on any field's offset plus width.
const WordBits = 32

// BitRange identifies a contiguous run of bits within a register word, given
// by the position of its least significant bit and its width.
type BitRange struct {
	// Position of the least significant bit (0-based).
	Offset uint
	// Number of bits.
	Width uint
}

// Bit constructs the single-bit range at position n.
func Bit(n uint) BitRange {
	return BitRange{Offset: n, Width: 1}
}

// Bits constructs the inclusive range [high:low].  High must not be below
// low; that constraint is checked during field construction rather than here,
// so that the error can name the field.
func Bits(high, low uint) BitRange {
	if high < low {
		// Deliberately propagate an impossible width, caught by NewBitField.
		return BitRange{Offset: low, Width: 0}
	}
	//
	return BitRange{Offset: low, Width: high - low + 1}
}

// ParseBitRange parses a textual bit-range specification.  A bare number "n"
// yields the single bit at position n, whilst "H:L" yields the inclusive
// range from bit H down to bit L.  Square brackets around either form are
// accepted (e.g. "[7:4]").
func ParseBitRange(spec string) (BitRange, error) {
	var original = spec
	// Strip optional brackets, which must come as a pair
	if strings.HasPrefix(spec, "[") != strings.HasSuffix(spec, "]") {
		return BitRange{}, &ConstructionError{Reason: fmt.Sprintf("malformed bit range %q", original)}
	}
	//
	spec = strings.TrimPrefix(spec, "[")
	spec = strings.TrimSuffix(spec, "]")
	// Check for a high:low pair
	if high, low, ok := strings.Cut(spec, ":"); ok {
		h, err1 := strconv.ParseUint(strings.TrimSpace(high), 0, 32)
		l, err2 := strconv.ParseUint(strings.TrimSpace(low), 0, 32)
		//
		if err1 != nil || err2 != nil {
			return BitRange{}, &ConstructionError{Reason: fmt.Sprintf("malformed bit range %q", original)}
		} else if h < l {
			return BitRange{}, &ConstructionError{Reason: fmt.Sprintf("bit range %q has high bit below low bit", original)}
		}
		//
		return Bits(uint(h), uint(l)), nil
	}
	// Otherwise, a single bit position
	n, err := strconv.ParseUint(strings.TrimSpace(spec), 0, 32)
	if err != nil {
		return BitRange{}, &ConstructionError{Reason: fmt.Sprintf("malformed bit range %q", original)}
	}
	//
	return Bit(uint(n)), nil
}

// String returns the textual form of this range ("n" for single bits,
// "H:L" otherwise).
func (p BitRange) String() string {
	if p.Width == 1 {
		return fmt.Sprintf("%d", p.Offset)
	}
	//
	return fmt.Sprintf("%d:%d", p.Offset+p.Width-1, p.Offset)
}

// BitField is the definition of a named sub-range of bits within a register
// word, together with its access semantics and (optional) reset value.  Bit
// fields are validated on construction and immutable thereafter; each is
// owned by exactly one register, or shared as a template between the elements
// of a register array.
type BitField struct {
	// Given name of this field, unique within its owning register.
	name string
	// Bits occupied by this field.
	bits BitRange
	// Access semantics of this field.
	access AccessType
	// Reset value, if declared.
	reset *uint32
	// Human-readable description (may be empty).
	description string
}

// NewBitField constructs a new bit field over the given range with the given
// access semantics.  Construction fails if the range is empty, wider than a
// register word, or extends beyond the word boundary.
func NewBitField(name string, bits BitRange, access AccessType) (*BitField, error) {
	if bits.Width == 0 || bits.Width > WordBits {
		return nil, &ConstructionError{
			Field:  name,
			Reason: fmt.Sprintf("width %d outside range [1,%d]", bits.Width, WordBits),
		}
	} else if bits.Offset+bits.Width > WordBits {
		return nil, &ConstructionError{
			Field:  name,
			Reason: fmt.Sprintf("bits [%s] extend beyond bit %d", bits.String(), WordBits-1),
		}
	}
	//
	return &BitField{name: name, bits: bits, access: access}, nil
}

// WithReset returns a copy of this field carrying the given reset value.
// Construction fails if the value does not fit the field.
func (p *BitField) WithReset(value uint32) (*BitField, error) {
	if value > p.Max() {
		return nil, &ConstructionError{
			Field:  p.name,
			Reason: fmt.Sprintf("reset value 0x%x exceeds maximum 0x%x", value, p.Max()),
		}
	}
	//
	field := *p
	field.reset = &value
	//
	return &field, nil
}

// WithDescription returns a copy of this field carrying the given
// human-readable description.
func (p *BitField) WithDescription(description string) *BitField {
	field := *p
	field.description = description
	//
	return &field
}

// Name returns the given name of this field.
func (p *BitField) Name() string {
	return p.name
}

// Bits returns the range of bits this field occupies.
func (p *BitField) Bits() BitRange {
	return p.bits
}

// Offset returns the position of this field's least significant bit.
func (p *BitField) Offset() uint {
	return p.bits.Offset
}

// Width returns the width of this field in bits.
func (p *BitField) Width() uint {
	return p.bits.Width
}

// Access returns the access semantics of this field.
func (p *BitField) Access() AccessType {
	return p.access
}

// Reset returns the declared reset value of this field, if any.
func (p *BitField) Reset() (uint32, bool) {
	if p.reset == nil {
		return 0, false
	}
	//
	return *p.reset, true
}

// Description returns the human-readable description of this field.
func (p *BitField) Description() string {
	return p.description
}

// Max returns the largest value this field can hold.
func (p *BitField) Max() uint32 {
	return uint32((uint64(1) << p.bits.Width) - 1)
}

// Mask returns the field's bit mask positioned within the register word.
func (p *BitField) Mask() uint32 {
	return p.Max() << p.bits.Offset
}

// Extract isolates this field's value from a full register word.
func (p *BitField) Extract(word uint32) uint32 {
	return (word >> p.bits.Offset) & p.Max()
}

// Insert places value into this field's bits of word, leaving all other bits
// untouched, and returns the resulting word.  Insertion fails with a
// RangeError if the value does not fit the field.
func (p *BitField) Insert(word uint32, value uint32) (uint32, error) {
	if value > p.Max() {
		return 0, &RangeError{Field: p.name, Value: value, Max: p.Max()}
	}
	//
	return (word &^ p.Mask()) | (value << p.bits.Offset), nil
}
