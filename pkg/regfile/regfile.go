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
package regfile

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bleviet/fpga-lib-sub001/pkg/bus"
	"github.com/bleviet/fpga-lib-sub001/pkg/regmap"
	"gopkg.in/yaml.v3"
)

// Word is a 32-bit value as written in a definition file, accepting decimal,
// hexadecimal (0x) and octal (0o) spellings.
type Word uint32

// UnmarshalYAML implements custom unmarshalling, since the YAML integer
// schema alone does not cover all spellings accepted here.
func (p *Word) UnmarshalYAML(value *yaml.Node) error {
	v, err := strconv.ParseUint(value.Value, 0, 32)
	if err != nil {
		return fmt.Errorf("malformed word %q", value.Value)
	}
	//
	*p = Word(v)
	//
	return nil
}

// Range is a bit-range specification as written in a definition file: either
// a bare bit position or a "H:L" pair.
type Range string

// UnmarshalYAML implements custom unmarshalling, accepting both bare integer
// scalars and strings.
func (p *Range) UnmarshalYAML(value *yaml.Node) error {
	*p = Range(value.Value)
	return nil
}

// Document is the top-level register-map definition as read from a file.  A
// document is pure data: binding it to a transport through Bind() is what
// enforces the layout invariants and yields a usable memory map.
type Document struct {
	// Name of the memory map (e.g. the peripheral name).
	Name string `yaml:"name"`
	// Base byte address of the map on the bus.
	Base Word `yaml:"base"`
	// Human-readable description.
	Description string `yaml:"description,omitempty"`
	// Register definitions.
	Registers []RegisterDef `yaml:"registers"`
	// Register array definitions.
	Arrays []ArrayDef `yaml:"arrays,omitempty"`
}

// RegisterDef describes a single register within a document.
type RegisterDef struct {
	Name string `yaml:"name"`
	// Byte offset from the map base address.
	Offset Word `yaml:"offset"`
	// Width in bits; zero means the full 32-bit word.
	Width       uint       `yaml:"width,omitempty"`
	Description string     `yaml:"description,omitempty"`
	Fields      []FieldDef `yaml:"fields"`
}

// FieldDef describes a single bit field within a register definition.
type FieldDef struct {
	Name string `yaml:"name"`
	// Bits occupied, e.g. "7:4" or 3.
	Bits Range `yaml:"bits"`
	// Access type name; empty defaults to read-write.
	Access string `yaml:"access,omitempty"`
	// Reset value, if declared.
	Reset       *Word  `yaml:"reset,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// ArrayDef describes an indexed family of identical registers.
type ArrayDef struct {
	Name string `yaml:"name"`
	// Byte offset of element zero from the map base address.
	Offset Word `yaml:"offset"`
	// Number of elements.
	Count uint `yaml:"count"`
	// Byte distance between consecutive elements.
	Stride Word `yaml:"stride"`
	// Element width in bits; zero means the full 32-bit word.
	Width uint `yaml:"width,omitempty"`
	// Field template shared by every element.
	Fields []FieldDef `yaml:"fields"`
}

// Parse reads a register-map document from YAML text.
func Parse(data []byte) (*Document, error) {
	var doc Document
	//
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	//
	return &doc, nil
}

// Load reads a register-map document from the given file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	//
	return Parse(data)
}

// Bind constructs a memory map over the given transport from this document.
// All layout invariants (bit overlap, duplicate names, widths, reset ranges)
// are enforced through the regmap constructors, so a bad definition surfaces
// as a ConstructionError naming the offending register and field.
func (p *Document) Bind(b bus.Bus) (*regmap.MemoryMap, error) {
	mm := regmap.NewMemoryMap(p.Name, uint32(p.Base), b)
	//
	for _, def := range p.Registers {
		fields, err := buildFields(def.Fields)
		if err != nil {
			return nil, named(err, def.Name)
		}
		//
		reg, err := regmap.NewRegister(def.Name, uint32(def.Offset), width(def.Width), fields...)
		if err != nil {
			return nil, err
		}
		//
		if def.Description != "" {
			reg = reg.WithDescription(def.Description)
		}
		//
		if _, err := mm.AddRegister(reg); err != nil {
			return nil, err
		}
	}
	//
	for _, def := range p.Arrays {
		fields, err := buildFields(def.Fields)
		if err != nil {
			return nil, named(err, def.Name)
		}
		//
		_, err = mm.AddArray(def.Name, uint32(def.Offset), def.Count,
			uint32(def.Stride), width(def.Width), fields...)
		//
		if err != nil {
			return nil, err
		}
	}
	//
	return mm, nil
}

// buildFields constructs validated bit fields from their definitions.
func buildFields(defs []FieldDef) ([]*regmap.BitField, error) {
	fields := make([]*regmap.BitField, 0, len(defs))
	//
	for _, def := range defs {
		bits, err := regmap.ParseBitRange(string(def.Bits))
		if err != nil {
			return nil, named(err, def.Name)
		}
		//
		access, err := regmap.ParseAccess(def.Access)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", def.Name, err)
		}
		//
		field, err := regmap.NewBitField(def.Name, bits, access)
		if err != nil {
			return nil, err
		}
		//
		if def.Reset != nil {
			if field, err = field.WithReset(uint32(*def.Reset)); err != nil {
				return nil, err
			}
		}
		//
		if def.Description != "" {
			field = field.WithDescription(def.Description)
		}
		//
		fields = append(fields, field)
	}
	//
	return fields, nil
}

// named attaches a field name to a construction error which arose before the
// field existed (e.g. during bit-range parsing).
func named(err error, field string) error {
	if ce, ok := err.(*regmap.ConstructionError); ok && ce.Field == "" {
		return &regmap.ConstructionError{Field: field, Reason: ce.Reason}
	}
	//
	return err
}

// width normalizes an unstated register width to the full word.
func width(w uint) uint {
	if w == 0 {
		return regmap.WordBits
	}
	//
	return w
}
