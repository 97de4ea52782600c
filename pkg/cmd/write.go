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

var writeCmd = &cobra.Command{
	Use:   "write [flags] regfile register [field] value",
	Short: "write a register or a single field.",
	Long: `Write a whole register, or a single named field of it, through
	the selected transport.  Field writes apply the field's access
	semantics (e.g. read-modify-write, write-one-to-clear).`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 3 || len(args) > 4 {
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
		if len(args) == 4 {
			err = accessor.WriteField(args[2], parseWord(args[3]))
		} else {
			err = accessor.Write(parseWord(args[2]))
		}
		//
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	},
}

func init() {
	rootCmd.AddCommand(writeCmd)
}
