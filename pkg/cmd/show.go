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

	"github.com/bleviet/fpga-lib-sub001/pkg/bus"
	"github.com/bleviet/fpga-lib-sub001/pkg/regmap"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var showCmd = &cobra.Command{
	Use:   "show [flags] regfile",
	Short: "print the layout of a register map.",
	Long: `Print every register of a register-map definition together
	with its fields, access types and reset values.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		doc := readDocument(args[0])
		// Bind against a simulated bus purely to validate the layout;
		// showing a map touches no hardware.
		mm, err := doc.Bind(bus.NewSim())
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		printMap(mm)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// printMap prints the full layout of a memory map.
func printMap(mm *regmap.MemoryMap) {
	fmt.Printf("%s @ 0x%08x\n", mm.Name(), mm.Base())
	//
	for _, reg := range mm.Registers() {
		fmt.Printf("\n  0x%04x %s (%d bits, reset 0x%08x)\n",
			reg.Offset(), reg.Name(), reg.Width(), reg.ResetValue())
		//
		for _, field := range reg.Fields() {
			printField(field)
		}
	}
}

// printField prints one line per field, trimming the description to the
// available terminal width.
func printField(field *regmap.BitField) {
	line := fmt.Sprintf("    [%7s] %-5s %-16s", field.Bits(), field.Access(), field.Name())
	//
	if reset, ok := field.Reset(); ok {
		line = fmt.Sprintf("%s reset=0x%x", line, reset)
	}
	//
	if description := field.Description(); description != "" {
		line = fmt.Sprintf("%s  %s", line, description)
	}
	//
	if limit := textWidth(); len(line) > limit {
		line = line[:limit]
	}
	//
	fmt.Println(line)
}

// textWidth determines the available terminal width, falling back to a fixed
// width when stdout is not a terminal (e.g. redirected to a file).
func textWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	//
	return 130
}
