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
	"errors"
	"testing"
)

func Test_Register_00(t *testing.T) {
	// Width bounds
	if _, err := NewRegister("r", 0, 0); err == nil {
		t.Error("expected zero width to fail")
	}
	//
	if _, err := NewRegister("r", 0, 33); err == nil {
		t.Error("expected width 33 to fail")
	}
	//
	if _, err := NewRegister("r", 0, 1); err != nil {
		t.Error(err)
	}
}

func Test_Register_01(t *testing.T) {
	// Two fields overlapping on bit 4
	f1 := mustField(t, "a", Bits(4, 0), ReadWrite)
	f2 := mustField(t, "b", Bits(7, 4), ReadWrite)
	//
	var constructionErr *ConstructionError
	//
	_, err := NewRegister("r", 0, 32, f1, f2)
	if !errors.As(err, &constructionErr) {
		t.Fatalf("expected construction error, got %v", err)
	}
	//
	if constructionErr.Register != "r" || constructionErr.Field != "b" {
		t.Errorf("error does not identify register and field: %v", constructionErr)
	}
}

func Test_Register_02(t *testing.T) {
	// Adjacent fields do not overlap
	f1 := mustField(t, "a", Bits(3, 0), ReadWrite)
	f2 := mustField(t, "b", Bits(7, 4), ReadWrite)
	//
	if _, err := NewRegister("r", 0, 32, f1, f2); err != nil {
		t.Error(err)
	}
}

func Test_Register_03(t *testing.T) {
	// Duplicate field names
	f1 := mustField(t, "a", Bits(3, 0), ReadWrite)
	f2 := mustField(t, "a", Bits(7, 4), ReadWrite)
	//
	if _, err := NewRegister("r", 0, 32, f1, f2); err == nil {
		t.Error("expected duplicate name to fail")
	}
}

func Test_Register_04(t *testing.T) {
	// Field beyond a narrow register's width
	f1 := mustField(t, "a", Bits(15, 8), ReadWrite)
	//
	if _, err := NewRegister("r", 0, 8, f1); err == nil {
		t.Error("expected field beyond register width to fail")
	}
}

func Test_Register_05(t *testing.T) {
	// Reset value is the OR of declared field resets
	f1 := mustFieldWithReset(t, "a", Bits(3, 0), ReadWrite, 0x5)
	f2 := mustFieldWithReset(t, "b", Bits(11, 8), ReadWrite, 0xa)
	f3 := mustField(t, "c", Bits(7, 4), ReadWrite)
	//
	reg, err := NewRegister("r", 0, 32, f1, f2, f3)
	if err != nil {
		t.Fatal(err)
	}
	//
	if v := reg.ResetValue(); v != 0xa05 {
		t.Errorf("expected reset 0xa05, got 0x%x", v)
	}
}

func Test_Register_06(t *testing.T) {
	reg := mustRegister(t,
		mustField(t, "status", Bits(3, 0), ReadOnly),
		mustField(t, "cmd", Bits(7, 4), WriteOnly),
	)
	// Unknown field
	var nameErr *NameError
	//
	if _, err := reg.ReadField("missing", 0); !errors.As(err, &nameErr) {
		t.Errorf("expected name error, got %v", err)
	}
	//
	if _, err := reg.WriteField("missing", 0, 0); !errors.As(err, &nameErr) {
		t.Errorf("expected name error, got %v", err)
	}
}

func Test_Register_07(t *testing.T) {
	reg := mustRegister(t,
		mustField(t, "status", Bits(3, 0), ReadOnly),
		mustField(t, "cmd", Bits(7, 4), WriteOnly),
		mustField(t, "go", Bit(8), WriteOneSelfClearing),
	)
	// Writing a read-only field
	checkAccessError(t, write(reg, "status", 0, 1))
	// Reading a write-only field
	checkAccessError(t, read(reg, "cmd", 0))
	// Reading a self-clearing field at field granularity
	checkAccessError(t, read(reg, "go", 0))
}

func Test_Register_08(t *testing.T) {
	reg := mustRegister(t, mustField(t, "mode", Bits(2, 1), ReadWrite))
	// Read-modify-write leaves other bits alone
	word, err := reg.WriteField("mode", 0xffff_fff9, 2)
	if err != nil {
		t.Fatal(err)
	}
	//
	if word != 0xffff_fffd {
		t.Errorf("expected 0xfffffffd, got 0x%x", word)
	}
}

func Test_Register_09(t *testing.T) {
	// Write-one-to-clear: ones clear, zeroes leave alone
	reg := mustRegister(t, mustField(t, "irq", Bits(3, 0), ReadWriteOneToClear))
	//
	word, err := reg.WriteField("irq", 0xff, 0b0101)
	if err != nil {
		t.Fatal(err)
	}
	//
	if word != 0xfa {
		t.Errorf("expected 0xfa, got 0x%x", word)
	}
}

func Test_Register_10(t *testing.T) {
	// Out-of-range value
	reg := mustRegister(t, mustField(t, "mode", Bits(2, 1), ReadWrite))
	//
	var rangeErr *RangeError
	//
	_, err := reg.WriteField("mode", 0, 4)
	if !errors.As(err, &rangeErr) {
		t.Errorf("expected range error, got %v", err)
	}
}

func Test_Register_11(t *testing.T) {
	// Narrow register mask
	reg, err := NewRegister("r", 0, 12)
	if err != nil {
		t.Fatal(err)
	}
	//
	if reg.MaxValue() != 0xfff {
		t.Errorf("expected max 0xfff, got 0x%x", reg.MaxValue())
	}
}

func Test_Access_00(t *testing.T) {
	// The "current value needed" policy, independent of any transport.
	checkNeedsRead(t, ReadWrite, true)
	checkNeedsRead(t, ReadWriteOneToClear, true)
	checkNeedsRead(t, WriteOnly, false)
	checkNeedsRead(t, WriteOneSelfClearing, false)
	checkNeedsRead(t, ReadOnly, false)
}

func Test_Access_01(t *testing.T) {
	names := []string{"ro", "wo", "rw", "rw1c", "w1sc"}
	expected := []AccessType{ReadOnly, WriteOnly, ReadWrite, ReadWriteOneToClear, WriteOneSelfClearing}
	//
	for i, name := range names {
		access, err := ParseAccess(name)
		//
		if err != nil {
			t.Error(err)
		} else if access != expected[i] {
			t.Errorf("parsing %q gave %s", name, access)
		} else if access.String() != name {
			t.Errorf("%s did not roundtrip", name)
		}
	}
	//
	if _, err := ParseAccess("rubbish"); err == nil {
		t.Error("expected unknown access type to fail")
	}
}

// ============================================================================
// Helpers
// ============================================================================

func mustField(t *testing.T, name string, bits BitRange, access AccessType) *BitField {
	t.Helper()
	//
	field, err := NewBitField(name, bits, access)
	if err != nil {
		t.Fatal(err)
	}
	//
	return field
}

func mustFieldWithReset(t *testing.T, name string, bits BitRange, access AccessType, reset uint32) *BitField {
	t.Helper()
	//
	field, err := mustField(t, name, bits, access).WithReset(reset)
	if err != nil {
		t.Fatal(err)
	}
	//
	return field
}

func mustRegister(t *testing.T, fields ...*BitField) *Register {
	t.Helper()
	//
	reg, err := NewRegister("r", 0, 32, fields...)
	if err != nil {
		t.Fatal(err)
	}
	//
	return reg
}

func read(reg *Register, name string, word uint32) error {
	_, err := reg.ReadField(name, word)
	return err
}

func write(reg *Register, name string, word uint32, value uint32) error {
	_, err := reg.WriteField(name, word, value)
	return err
}

func checkAccessError(t *testing.T, err error) {
	t.Helper()
	//
	var accessErr *AccessError
	//
	if !errors.As(err, &accessErr) {
		t.Errorf("expected access error, got %v", err)
	}
}

func checkNeedsRead(t *testing.T, access AccessType, expected bool) {
	t.Helper()
	//
	if access.NeedsRead() != expected {
		t.Errorf("%s: expected NeedsRead %v", access, expected)
	}
}
