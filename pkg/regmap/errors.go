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

// ConstructionError signals an invalid register or field definition, such as
// an out-of-bounds width, a reset value which does not fit the field, a
// duplicate name or two fields overlapping on a bit position.  Definitions
// which fail construction are unusable; the caller must fix the definition
// rather than handle this error at runtime.
type ConstructionError struct {
	// Register being constructed (may be empty for a bare field).
	Register string
	// Field implicated (may be empty for register-level violations).
	Field string
	// Description of the violated bound.
	Reason string
}

func (p *ConstructionError) Error() string {
	switch {
	case p.Register != "" && p.Field != "":
		return fmt.Sprintf("register %q: field %q: %s", p.Register, p.Field, p.Reason)
	case p.Register != "":
		return fmt.Sprintf("register %q: %s", p.Register, p.Reason)
	}
	//
	return fmt.Sprintf("field %q: %s", p.Field, p.Reason)
}

// AccessError signals an operation forbidden by a field's access type, such
// as writing a read-only field or reading a write-only field.
type AccessError struct {
	// Register holding the field.
	Register string
	// Field whose access contract was violated.
	Field string
	// Access type of the field.
	Access AccessType
	// Operation attempted ("read" or "write").
	Op string
}

func (p *AccessError) Error() string {
	return fmt.Sprintf("register %q: field %q: cannot %s %s field",
		p.Register, p.Field, p.Op, p.Access)
}

// RangeError signals a value which does not fit within the bit width of the
// target field.
type RangeError struct {
	// Register holding the field.
	Register string
	// Field being written.
	Field string
	// Offending value.
	Value uint32
	// Largest value the field can hold.
	Max uint32
}

func (p *RangeError) Error() string {
	return fmt.Sprintf("register %q: field %q: value 0x%x exceeds maximum 0x%x",
		p.Register, p.Field, p.Value, p.Max)
}

// NameError signals a reference to a register or field name which does not
// exist.
type NameError struct {
	// Enclosing scope (register name for field lookups, memory map name for
	// register lookups; may be empty).
	Scope string
	// Kind of the missing entity ("register" or "field").
	Kind string
	// Name which was not found.
	Name string
}

func (p *NameError) Error() string {
	if p.Scope != "" {
		return fmt.Sprintf("%s: unknown %s %q", p.Scope, p.Kind, p.Name)
	}
	//
	return fmt.Sprintf("unknown %s %q", p.Kind, p.Name)
}

// IndexError signals a register array access outside the valid element range.
type IndexError struct {
	// Array being indexed.
	Array string
	// Offending index.
	Index int
	// Number of elements in the array.
	Count uint
}

func (p *IndexError) Error() string {
	return fmt.Sprintf("array %q: index %d outside range [0,%d)", p.Array, p.Index, p.Count)
}
