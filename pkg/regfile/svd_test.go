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
	"testing"

	"github.com/bleviet/fpga-lib-sub001/pkg/bus"
	"github.com/bleviet/fpga-lib-sub001/pkg/regmap"
)

var uartSvd = []byte(`<?xml version="1.0" encoding="utf-8"?>
<device>
  <name>TESTCHIP</name>
  <peripherals>
    <peripheral>
      <name>UART0</name>
      <description>serial port</description>
      <baseAddress>0x40001000</baseAddress>
      <registers>
        <register>
          <name>CTRL</name>
          <addressOffset>0x0</addressOffset>
          <resetValue>0x00000004</resetValue>
          <fields>
            <field>
              <name>ENABLE</name>
              <bitOffset>0</bitOffset>
              <bitWidth>1</bitWidth>
              <access>read-write</access>
            </field>
            <field>
              <name>PARITY</name>
              <lsb>1</lsb>
              <msb>2</msb>
            </field>
          </fields>
        </register>
        <register>
          <name>STATUS</name>
          <addressOffset>0x4</addressOffset>
          <access>read-only</access>
          <fields>
            <field>
              <name>IRQ</name>
              <bitRange>[7:4]</bitRange>
              <modifiedWriteValues>oneToClear</modifiedWriteValues>
            </field>
            <field>
              <name>BUSY</name>
              <bitOffset>0</bitOffset>
            </field>
          </fields>
        </register>
        <register>
          <name>FIFO[%s]</name>
          <addressOffset>0x100</addressOffset>
          <size>16</size>
          <dim>8</dim>
          <dimIncrement>4</dimIncrement>
          <fields>
            <field>
              <name>DATA</name>
              <bitOffset>0</bitOffset>
              <bitWidth>8</bitWidth>
              <access>write-only</access>
            </field>
          </fields>
        </register>
      </registers>
    </peripheral>
  </peripherals>
</device>`)

func Test_SVD_00(t *testing.T) {
	doc, err := ImportSVD(uartSvd, "UART0")
	if err != nil {
		t.Fatal(err)
	}
	//
	if doc.Name != "UART0" || doc.Base != 0x40001000 {
		t.Errorf("unexpected header: %q 0x%x", doc.Name, doc.Base)
	}
	//
	if len(doc.Registers) != 2 || len(doc.Arrays) != 1 {
		t.Fatalf("unexpected shape: %d registers, %d arrays", len(doc.Registers), len(doc.Arrays))
	}
}

func Test_SVD_01(t *testing.T) {
	// All three bit-range notations resolve, and the register-level reset
	// value is distributed onto the fields.
	doc, err := ImportSVD(uartSvd, "UART0")
	if err != nil {
		t.Fatal(err)
	}
	//
	ctrl := doc.Registers[0]
	if ctrl.Fields[0].Bits != "0:0" || ctrl.Fields[1].Bits != "2:1" {
		t.Errorf("unexpected bits: %v", ctrl.Fields)
	}
	// Reset 0x4: ENABLE (bit 0) = 0, PARITY (bits 2:1) = 2
	if *ctrl.Fields[0].Reset != 0 || *ctrl.Fields[1].Reset != 2 {
		t.Errorf("unexpected resets: %v", ctrl.Fields)
	}
}

func Test_SVD_02(t *testing.T) {
	// modifiedWriteValues refines access; field access falls back to the
	// register-level declaration.
	mm := mustBindSVD(t, "UART0")
	//
	status, err := mm.Register("STATUS")
	if err != nil {
		t.Fatal(err)
	}
	//
	irq, _ := status.Register().Field("IRQ")
	if irq.Access() != regmap.ReadWriteOneToClear {
		t.Errorf("unexpected access %s", irq.Access())
	}
	//
	busy, _ := status.Register().Field("BUSY")
	if busy.Access() != regmap.ReadOnly {
		t.Errorf("unexpected access %s", busy.Access())
	}
}

func Test_SVD_03(t *testing.T) {
	// A dim'd register becomes an array
	mm := mustBindSVD(t, "UART0")
	//
	array, err := mm.Array("FIFO")
	if err != nil {
		t.Fatal(err)
	}
	//
	info := array.Info()
	if info.Count != 8 || info.Stride != 4 || info.BaseAddress != 0x40001100 {
		t.Errorf("unexpected geometry: %+v", info)
	}
	//
	element, err := array.Element(3)
	if err != nil {
		t.Fatal(err)
	}
	//
	if element.Address() != 0x4000110c {
		t.Errorf("unexpected address 0x%x", element.Address())
	}
}

func Test_SVD_04(t *testing.T) {
	// Unknown peripheral
	if _, err := ImportSVD(uartSvd, "SPI0"); err == nil {
		t.Error("expected unknown peripheral to fail")
	}
}

func mustBindSVD(t *testing.T, peripheral string) *regmap.MemoryMap {
	t.Helper()
	//
	doc, err := ImportSVD(uartSvd, peripheral)
	if err != nil {
		t.Fatal(err)
	}
	//
	mm, err := doc.Bind(bus.NewSim())
	if err != nil {
		t.Fatal(err)
	}
	//
	return mm
}
