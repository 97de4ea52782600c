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
	log "github.com/sirupsen/logrus"
)

// Trace wraps a bus and logs every word transaction at debug level.  The
// wrapped bus otherwise behaves identically; failed accesses are logged with
// their error and propagated unchanged.
type Trace struct {
	inner Bus
}

// NewTrace wraps the given bus in transaction logging.
func NewTrace(inner Bus) *Trace {
	return &Trace{inner: inner}
}

// ReadWord reads through to the wrapped bus, logging the transaction.
func (p *Trace) ReadWord(addr uint32) (uint32, error) {
	data, err := p.inner.ReadWord(addr)
	//
	if err != nil {
		log.Debugf("bus: read  0x%08x failed: %v", addr, err)
		return 0, err
	}
	//
	log.Debugf("bus: read  0x%08x -> 0x%08x", addr, data)
	//
	return data, nil
}

// WriteWord writes through to the wrapped bus, logging the transaction.
func (p *Trace) WriteWord(addr uint32, data uint32) error {
	if err := p.inner.WriteWord(addr, data); err != nil {
		log.Debugf("bus: write 0x%08x <- 0x%08x failed: %v", addr, data, err)
		return err
	}
	//
	log.Debugf("bus: write 0x%08x <- 0x%08x", addr, data)
	//
	return nil
}
