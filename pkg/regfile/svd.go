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
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// svdInteger is an integer as written in an SVD file, which may be decimal,
// hexadecimal (0x) or binary (#) notation.
type svdInteger uint64

// UnmarshalXML implements custom unmarshalling for SVD integer notation.
func (p *svdInteger) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var s string
	//
	if err := d.DecodeElement(&s, &start); err != nil {
		return err
	}
	//
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		s = "0b" + strings.TrimPrefix(s, "#")
	}
	//
	v, err := strconv.ParseUint(s, 0, 64)
	*p = svdInteger(v)
	//
	return err
}

// svdDevice is the subset of the CMSIS-SVD device schema consumed here.
type svdDevice struct {
	Name        string          `xml:"name"`
	Peripherals []svdPeripheral `xml:"peripherals>peripheral"`
}

type svdPeripheral struct {
	Name        string        `xml:"name"`
	Description string        `xml:"description"`
	BaseAddress svdInteger    `xml:"baseAddress"`
	Registers   []svdRegister `xml:"registers>register"`
}

type svdRegister struct {
	Name          string      `xml:"name"`
	Description   string      `xml:"description"`
	AddressOffset svdInteger  `xml:"addressOffset"`
	Size          *svdInteger `xml:"size"`
	Access        string      `xml:"access"`
	ResetValue    *svdInteger `xml:"resetValue"`
	Dim           *svdInteger `xml:"dim"`
	DimIncrement  *svdInteger `xml:"dimIncrement"`
	Fields        []svdField  `xml:"fields>field"`
}

type svdField struct {
	Name                string      `xml:"name"`
	Description         string      `xml:"description"`
	BitOffset           *svdInteger `xml:"bitOffset"`
	BitWidth            *svdInteger `xml:"bitWidth"`
	LSB                 *svdInteger `xml:"lsb"`
	MSB                 *svdInteger `xml:"msb"`
	BitRange            string      `xml:"bitRange"`
	Access              string      `xml:"access"`
	ModifiedWriteValues string      `xml:"modifiedWriteValues"`
}

// ImportSVD reads a CMSIS-SVD device description and converts the named
// peripheral into a register-map document.  The SVD dim/dimIncrement register
// families become register arrays; a register-level resetValue is distributed
// onto the individual fields.
func ImportSVD(data []byte, peripheral string) (*Document, error) {
	var device svdDevice
	//
	if err := xml.Unmarshal(data, &device); err != nil {
		return nil, err
	}
	//
	for _, p := range device.Peripherals {
		if p.Name == peripheral {
			return importPeripheral(p)
		}
	}
	//
	return nil, fmt.Errorf("device %q: unknown peripheral %q", device.Name, peripheral)
}

// importPeripheral converts one SVD peripheral into a document.
func importPeripheral(p svdPeripheral) (*Document, error) {
	doc := &Document{
		Name:        p.Name,
		Base:        Word(p.BaseAddress),
		Description: p.Description,
	}
	//
	for _, reg := range p.Registers {
		fields, err := importFields(reg)
		if err != nil {
			return nil, fmt.Errorf("register %q: %w", reg.Name, err)
		}
		//
		size := uint(32)
		if reg.Size != nil {
			size = uint(*reg.Size)
		}
		//
		if reg.Dim != nil {
			// A dim'd register is an indexed family, i.e. an array.
			if reg.DimIncrement == nil {
				return nil, fmt.Errorf("register %q: dim without dimIncrement", reg.Name)
			}
			//
			doc.Arrays = append(doc.Arrays, ArrayDef{
				Name:   strings.NewReplacer("[%s]", "", "%s", "").Replace(reg.Name),
				Offset: Word(reg.AddressOffset),
				Count:  uint(*reg.Dim),
				Stride: Word(*reg.DimIncrement),
				Width:  size,
				Fields: fields,
			})
			//
			continue
		}
		//
		doc.Registers = append(doc.Registers, RegisterDef{
			Name:        reg.Name,
			Offset:      Word(reg.AddressOffset),
			Width:       size,
			Description: reg.Description,
			Fields:      fields,
		})
	}
	//
	return doc, nil
}

// importFields converts the fields of one SVD register, deriving per-field
// reset values from the register-level resetValue where one is declared.
func importFields(reg svdRegister) ([]FieldDef, error) {
	fields := make([]FieldDef, 0, len(reg.Fields))
	//
	for _, f := range reg.Fields {
		offset, fwidth, err := fieldBits(f)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		//
		def := FieldDef{
			Name:        f.Name,
			Bits:        Range(fmt.Sprintf("%d:%d", offset+fwidth-1, offset)),
			Access:      fieldAccess(f, reg.Access),
			Description: f.Description,
		}
		//
		if reg.ResetValue != nil {
			reset := Word((uint64(*reg.ResetValue) >> offset) & ((uint64(1) << fwidth) - 1))
			def.Reset = &reset
		}
		//
		fields = append(fields, def)
	}
	//
	return fields, nil
}

// fieldBits resolves the three alternative SVD bit-range notations into an
// (offset, width) pair.
func fieldBits(f svdField) (offset uint, width uint, err error) {
	switch {
	case f.BitOffset != nil:
		width = 1
		if f.BitWidth != nil {
			width = uint(*f.BitWidth)
		}
		//
		return uint(*f.BitOffset), width, nil
	case f.LSB != nil && f.MSB != nil:
		if *f.MSB < *f.LSB {
			return 0, 0, fmt.Errorf("msb %d below lsb %d", *f.MSB, *f.LSB)
		}
		//
		return uint(*f.LSB), uint(*f.MSB - *f.LSB + 1), nil
	case f.BitRange != "":
		// The "[H:L]" pattern notation.
		var high, low uint
		if _, err := fmt.Sscanf(f.BitRange, "[%d:%d]", &high, &low); err != nil {
			return 0, 0, fmt.Errorf("malformed bitRange %q", f.BitRange)
		} else if high < low {
			return 0, 0, fmt.Errorf("malformed bitRange %q", f.BitRange)
		}
		//
		return low, high - low + 1, nil
	}
	//
	return 0, 0, fmt.Errorf("no bit range given")
}

// fieldAccess maps SVD access and modifiedWriteValues onto an access type
// name understood by ParseAccess.  modifiedWriteValues takes precedence,
// since it refines a plain read-write declaration.
func fieldAccess(f svdField, registerAccess string) string {
	switch f.ModifiedWriteValues {
	case "oneToClear":
		return "rw1c"
	case "oneToSet":
		return "w1sc"
	}
	//
	if f.Access != "" {
		return f.Access
	}
	//
	return registerAccess
}
