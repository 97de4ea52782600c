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

	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:   "read [flags] regfile register [field]",
	Short: "read a register or a single field.",
	Long: `Read a whole register, or a single named field of it, through
	the selected transport.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 2 || len(args) > 3 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		mm, closer := bindDocument(cmd, readDocument(args[0]))
		defer release(closer)
		//
		accessor, err := mm.Register(args[1])
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		if len(args) == 3 {
			value, err := accessor.ReadField(args[2])
			if err != nil {
				fmt.Println(err)
				os.Exit(2)
			}
			//
			fmt.Printf("%s.%s = 0x%x\n", args[1], args[2], value)
			//
			return
		}
		//
		word, err := accessor.Read()
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		fmt.Printf("%s = 0x%08x\n", args[1], word)
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
}

// release invokes a transport closer, reporting (but not failing on) errors.
func release(closer func() error) {
	if closer == nil {
		return
	}
	//
	if err := closer(); err != nil {
		fmt.Println(err)
	}
}
