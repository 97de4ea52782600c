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

import (
	"errors"
	"sync"
	"testing"
)

func Test_Sim_00(t *testing.T) {
	sim := NewSim()
	// Unwritten addresses read as zero
	if word, err := sim.ReadWord(0x40); err != nil || word != 0 {
		t.Errorf("expected zero word, got 0x%x (%v)", word, err)
	}
	//
	if err := sim.WriteWord(0x40, 0xdeadbeef); err != nil {
		t.Fatal(err)
	}
	//
	if word, _ := sim.ReadWord(0x40); word != 0xdeadbeef {
		t.Errorf("expected 0xdeadbeef, got 0x%x", word)
	}
}

func Test_Sim_01(t *testing.T) {
	sim := NewSim()
	// Counters track bus traffic; Poke and Peek bypass them
	sim.Poke(0x0, 1)
	sim.Peek(0x0)
	//
	if r, w := sim.Counts(); r != 0 || w != 0 {
		t.Errorf("expected untouched counters, got %d reads %d writes", r, w)
	}
	//
	_, _ = sim.ReadWord(0x0)
	_ = sim.WriteWord(0x0, 2)
	_ = sim.WriteWord(0x4, 3)
	//
	if r, w := sim.Counts(); r != 1 || w != 2 {
		t.Errorf("expected 1 read and 2 writes, got %d and %d", r, w)
	}
	//
	sim.ResetCounts()
	//
	if r, w := sim.Counts(); r != 0 || w != 0 {
		t.Errorf("expected reset counters, got %d reads %d writes", r, w)
	}
}

func Test_Sim_02(t *testing.T) {
	sim := NewSim()
	cause := errors.New("bus timeout")
	sim.InjectFault(0x8, cause)
	// Faulted address fails both ways, carrying op and address
	var busErr *Error
	//
	if _, err := sim.ReadWord(0x8); !errors.As(err, &busErr) {
		t.Fatalf("expected bus error, got %v", err)
	} else if busErr.Op != "read" || busErr.Addr != 0x8 || !errors.Is(err, cause) {
		t.Errorf("unexpected bus error: %v", busErr)
	}
	//
	if err := sim.WriteWord(0x8, 1); !errors.Is(err, cause) {
		t.Errorf("expected cause to propagate, got %v", err)
	}
	// Other addresses unaffected
	if _, err := sim.ReadWord(0xc); err != nil {
		t.Error(err)
	}
}

func Test_Sim_03(t *testing.T) {
	// Concurrent access does not race
	var wg sync.WaitGroup
	//
	sim := NewSim()
	//
	for i := 0; i < 8; i++ {
		wg.Add(1)
		//
		go func(n uint32) {
			defer wg.Done()
			//
			for j := uint32(0); j < 100; j++ {
				_ = sim.WriteWord(n*4, j)
				_, _ = sim.ReadWord(n * 4)
			}
		}(uint32(i))
	}
	//
	wg.Wait()
	//
	if r, w := sim.Counts(); r != 800 || w != 800 {
		t.Errorf("expected 800 reads and writes, got %d and %d", r, w)
	}
}

func Test_Trace_00(t *testing.T) {
	// Tracing passes reads and writes through unchanged
	sim := NewSim()
	traced := NewTrace(sim)
	//
	if err := traced.WriteWord(0x10, 0xcafe); err != nil {
		t.Fatal(err)
	}
	//
	if word, err := traced.ReadWord(0x10); err != nil || word != 0xcafe {
		t.Errorf("expected 0xcafe, got 0x%x (%v)", word, err)
	}
}

func Test_Trace_01(t *testing.T) {
	// Tracing propagates failures unchanged
	sim := NewSim()
	cause := errors.New("bus timeout")
	sim.InjectFault(0x10, cause)
	//
	traced := NewTrace(sim)
	//
	if _, err := traced.ReadWord(0x10); !errors.Is(err, cause) {
		t.Errorf("expected cause to propagate, got %v", err)
	}
	//
	if err := traced.WriteWord(0x10, 1); !errors.Is(err, cause) {
		t.Errorf("expected cause to propagate, got %v", err)
	}
}
