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
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bleviet/fpga-lib-sub001/pkg/bus"
	"github.com/bleviet/fpga-lib-sub001/pkg/bus/devmem"
	"github.com/bleviet/fpga-lib-sub001/pkg/regfile"
	"github.com/bleviet/fpga-lib-sub001/pkg/regmap"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected boolean flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected unsigned integer flag, or panic if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string flag, or panic if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// readDocument parses a register-map definition file, exiting on failure.
func readDocument(filename string) *regfile.Document {
	doc, err := regfile.Load(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return doc
}

// parseWord parses a register or field value given on the command line,
// accepting decimal and hexadecimal spellings.
func parseWord(arg string) uint32 {
	v, err := strconv.ParseUint(arg, 0, 32)
	if err != nil {
		fmt.Printf("malformed value %q\n", arg)
		os.Exit(2)
	}

	return uint32(v)
}

// bindDocument binds a definition document to a transport chosen by the
// global flags: a memory-mapped device node when --device is given, otherwise
// the simulated bus.  The returned closer releases the device mapping (a nil
// closer means nothing to release).
func bindDocument(cmd *cobra.Command, doc *regfile.Document) (*regmap.MemoryMap, func() error) {
	var (
		transport bus.Bus
		closer    func() error
	)
	// Configure log level
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	//
	if device := GetString(cmd, "device"); device != "" {
		span := GetUint(cmd, "span")
		// The window is mapped at the document base address, hence bus
		// addresses within the window are relative to it.
		dev, err := devmem.Open(device, int64(doc.Base), int(span))
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		rebased := *doc
		rebased.Base = 0
		doc, transport, closer = &rebased, dev, dev.Close
	} else {
		transport = bus.NewSim()
	}
	//
	if GetFlag(cmd, "trace") {
		transport = bus.NewTrace(transport)
	}
	//
	mm, err := doc.Bind(transport)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return mm, closer
}
