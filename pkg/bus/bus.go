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

import "fmt"

// Bus is the opaque word-level access capability required of any transport.
// Addresses are byte addresses; every access moves one 32-bit word.  A bus
// implementation owes no atomicity across calls: a read-modify-write sequence
// issued by one caller can interleave with accesses from another.
// Serialization, where required, is the responsibility of the caller or of
// the implementation itself.
type Bus interface {
	// ReadWord reads the 32-bit word at the given byte address.
	ReadWord(addr uint32) (uint32, error)
	// WriteWord writes a 32-bit word to the given byte address.
	WriteWord(addr uint32, data uint32) error
}

// Error wraps a transport-level failure with the operation and address at
// which it occurred.  The underlying cause is never interpreted or retried by
// the register core; it propagates unchanged.
type Error struct {
	// Operation which failed ("read" or "write").
	Op string
	// Byte address of the failed access.
	Addr uint32
	// Underlying cause.
	Err error
}

func (p *Error) Error() string {
	return fmt.Sprintf("bus %s at 0x%08x: %v", p.Op, p.Addr, p.Err)
}

// Unwrap returns the underlying cause of this error.
func (p *Error) Unwrap() error {
	return p.Err
}
