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

var resetCmd = &cobra.Command{
	Use:   "reset [flags] regfile [register]",
	Short: "write reset values.",
	Long: `Write the declared reset value to the named register, or to
	every register of the map when none is named.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 || len(args) > 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		mm, closer := bindDocument(cmd, readDocument(args[0]))
		defer release(closer)
		//
		if len(args) == 2 {
			accessor, err := mm.Register(args[1])
			if err == nil {
				err = accessor.Reset()
			}
			//
			if err != nil {
				fmt.Println(err)
				os.Exit(2)
			}
			//
			return
		}
		//
		for _, reg := range mm.Registers() {
			accessor, _ := mm.Register(reg.Name())
			//
			if err := accessor.Reset(); err != nil {
				fmt.Println(err)
				os.Exit(2)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
