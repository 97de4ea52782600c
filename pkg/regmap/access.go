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

// AccessType captures the access semantics of a given bit field, such as
// whether it can be read, written, or carries special write behaviour (e.g.
// write-one-to-clear).  The purpose of the wrapper is to avoid confusion
// between raw uint values and things which are expected to identify access
// semantics.
type AccessType struct {
	kind uint8
}

var (
	// ReadOnly fields can be read but never written.  Writing such a field
	// fails with an access error.
	ReadOnly = AccessType{uint8(0)}
	// WriteOnly fields can be written but never read.  A write does not
	// require the current register value and is performed against a zero
	// base.
	WriteOnly = AccessType{uint8(1)}
	// ReadWrite fields can be read and written.  A field write performs a
	// read-modify-write of the whole register word.
	ReadWrite = AccessType{uint8(2)}
	// ReadWriteOneToClear fields can be read, whilst writing a one to any
	// bit clears the corresponding register bit.  Bits written as zero are
	// left unchanged.
	ReadWriteOneToClear = AccessType{uint8(3)}
	// WriteOneSelfClearing fields latch the written value and are cleared
	// autonomously by the hardware afterwards.  At field granularity they
	// behave as write-only; only whole-register reads are meaningful.
	WriteOneSelfClearing = AccessType{uint8(4)}
)

// Readable determines whether a field with this access type can be read at
// field granularity.
func (p AccessType) Readable() bool {
	return p == ReadOnly || p == ReadWrite || p == ReadWriteOneToClear
}

// Writable determines whether a field with this access type can be written.
func (p AccessType) Writable() bool {
	return p != ReadOnly
}

// NeedsRead determines whether writing a field with this access type requires
// the current register value.  Access types for which this holds cost one bus
// read followed by one bus write; all others are written directly against a
// zero base with no prior read.
func (p AccessType) NeedsRead() bool {
	return p == ReadWrite || p == ReadWriteOneToClear
}

// String returns the canonical textual name of this access type, as used by
// the definition file format.
func (p AccessType) String() string {
	switch p {
	case ReadOnly:
		return "ro"
	case WriteOnly:
		return "wo"
	case ReadWrite:
		return "rw"
	case ReadWriteOneToClear:
		return "rw1c"
	case WriteOneSelfClearing:
		return "w1sc"
	}
	//
	return fmt.Sprintf("access(%d)", p.kind)
}

// ParseAccess parses a textual access type name.  Both the short canonical
// names (e.g. "rw1c") and the long SVD-style names (e.g. "read-write") are
// accepted.
func ParseAccess(name string) (AccessType, error) {
	switch name {
	case "ro", "read-only":
		return ReadOnly, nil
	case "wo", "write-only":
		return WriteOnly, nil
	case "rw", "read-write", "":
		// Unstated access defaults to read-write, following SVD.
		return ReadWrite, nil
	case "rw1c", "read-write-one-to-clear", "oneToClear":
		return ReadWriteOneToClear, nil
	case "w1sc", "write-one-self-clearing", "oneToSet":
		return WriteOneSelfClearing, nil
	}
	//
	return AccessType{}, fmt.Errorf("unknown access type %q", name)
}
