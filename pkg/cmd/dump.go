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
	"sort"

	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [flags] regfile",
	Short: "read every readable field of every register.",
	Long: `Read every register of the map and print the value of every
	field readable at field granularity.  Write-only and self-clearing
	fields are omitted.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		mm, closer := bindDocument(cmd, readDocument(args[0]))
		defer release(closer)
		//
		for _, reg := range mm.Registers() {
			accessor, _ := mm.Register(reg.Name())
			//
			word, err := accessor.Read()
			if err != nil {
				fmt.Println(err)
				os.Exit(2)
			}
			//
			values, err := accessor.ReadAllFields()
			if err != nil {
				fmt.Println(err)
				os.Exit(2)
			}
			//
			fmt.Printf("0x%04x %s = 0x%08x\n", reg.Offset(), reg.Name(), word)
			// Deterministic field order
			names := make([]string, 0, len(values))
			for name := range values {
				names = append(names, name)
			}
			//
			sort.Strings(names)
			//
			for _, name := range names {
				fmt.Printf("    %-16s = 0x%x\n", name, values[name])
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
