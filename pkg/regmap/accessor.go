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

import "errors"

// RegisterAccessor is the runtime proxy through which a register is actually
// read and written.  It is a stateless, non-owning view pairing one register
// definition with the base address and transport of its memory map; every
// operation is a fresh bus round trip.
//
// A field write may require two sequential bus operations (read then write).
// These are not atomic with respect to other accessors sharing the same
// transport: a concurrent write landing between the two halves is possible
// and is not prevented here.
type RegisterAccessor struct {
	// Memory map providing base address and transport.
	owner *MemoryMap
	// Register layout.
	reg *Register
}

// Register returns the definition this accessor is bound to.
func (p *RegisterAccessor) Register() *Register {
	return p.reg
}

// Address returns the absolute bus address of this register.
func (p *RegisterAccessor) Address() uint32 {
	return p.owner.base + p.reg.Offset()
}

// Read performs a whole-register read.
func (p *RegisterAccessor) Read() (uint32, error) {
	return p.owner.bus.ReadWord(p.Address())
}

// Write performs a whole-register write.  The value is masked to the
// register width before it reaches the bus.
func (p *RegisterAccessor) Write(value uint32) error {
	return p.owner.bus.WriteWord(p.Address(), value&p.reg.MaxValue())
}

// ReadField reads the register and isolates the named field's value.
func (p *RegisterAccessor) ReadField(name string) (uint32, error) {
	// Check the access contract before touching the bus.
	if field, err := p.reg.Field(name); err != nil {
		return 0, err
	} else if !field.Access().Readable() {
		return 0, &AccessError{
			Register: p.reg.Name(), Field: name,
			Access: field.Access(), Op: "read",
		}
	}
	//
	word, err := p.Read()
	if err != nil {
		return 0, err
	}
	//
	return p.reg.ReadField(name, word)
}

// WriteField writes value to the named field.  For access types which need
// the current register value (read-write, read-write-one-to-clear) this
// costs one bus read followed by one bus write; for all others the read is
// skipped and the field is written against a zero base.
func (p *RegisterAccessor) WriteField(name string, value uint32) error {
	var (
		word uint32
		err  error
	)
	//
	field, err := p.reg.Field(name)
	if err != nil {
		return err
	}
	// Fetch the current value only when the access type demands it.
	if field.Access().NeedsRead() {
		if word, err = p.Read(); err != nil {
			return err
		}
	}
	//
	if word, err = p.reg.WriteField(name, word, value); err != nil {
		return err
	}
	//
	return p.Write(word)
}

// ReadAllFields reads the register once and returns a name-to-value map of
// every field readable at field granularity.  Fields whose access forbids
// reading are silently omitted rather than failing the whole operation; any
// other error aborts.
func (p *RegisterAccessor) ReadAllFields() (map[string]uint32, error) {
	word, err := p.Read()
	if err != nil {
		return nil, err
	}
	//
	values := make(map[string]uint32)
	//
	for _, field := range p.reg.Fields() {
		value, err := p.reg.ReadField(field.Name(), word)
		//
		var access *AccessError
		//
		if errors.As(err, &access) {
			continue
		} else if err != nil {
			return nil, err
		}
		//
		values[field.Name()] = value
	}
	//
	return values, nil
}

// WriteFields writes several fields of this register in one batch, costing
// at most one bus read and exactly one bus write.  The current register value
// is fetched only if at least one field in the batch requires it; every
// update is then applied to that single in-memory word before it is written
// back.  Updates are applied in the register's field declaration order.  Any
// violation (unknown name, forbidden access, out-of-range value) aborts
// before the bus is written.
func (p *RegisterAccessor) WriteFields(values map[string]uint32) error {
	if len(values) == 0 {
		return nil
	}
	//
	var (
		word      uint32
		needsRead = false
	)
	// Validate names up front, determining whether a read is needed.
	for name := range values {
		field, err := p.reg.Field(name)
		if err != nil {
			return err
		}
		//
		needsRead = needsRead || field.Access().NeedsRead()
	}
	//
	if needsRead {
		var err error
		//
		if word, err = p.Read(); err != nil {
			return err
		}
	}
	// Apply updates in declaration order for determinism.
	for _, field := range p.reg.Fields() {
		value, ok := values[field.Name()]
		if !ok {
			continue
		}
		//
		var err error
		//
		if word, err = p.reg.WriteField(field.Name(), word, value); err != nil {
			return err
		}
	}
	//
	return p.Write(word)
}

// Reset writes the register's declared reset value.
func (p *RegisterAccessor) Reset() error {
	return p.Write(p.reg.ResetValue())
}
