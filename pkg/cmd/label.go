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
	"io"
	"os"
	"strconv"

	"github.com/consensys/go-exprdag/pkg/util/base26"
	"github.com/spf13/cobra"
)

var labelCmd = &cobra.Command{
	Use:   "label [flags] value...",
	Short: "Convert between identifiers and their labels.",
	Long: `Encode one or more non-negative integers as the base-26 labels used to
	render unbound values, or decode labels back into integers.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		decode := GetFlag(cmd, "decode")
		upper := GetFlag(cmd, "upper")
		//
		if err := printLabels(os.Stdout, args, decode, upper); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	},
}

func printLabels(w io.Writer, args []string, decode bool, upper bool) error {
	for _, arg := range args {
		var line string
		//
		if decode {
			n, err := base26.Decode(arg)
			if err != nil {
				return err
			}
			//
			line = strconv.FormatUint(n, 10)
		} else {
			n, err := strconv.ParseUint(arg, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid identifier %q", arg)
			} else if upper {
				line = base26.EncodeUpper(n)
			} else {
				line = base26.Encode(n)
			}
		}
		//
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	//
	return nil
}

func init() {
	rootCmd.AddCommand(labelCmd)
	labelCmd.Flags().BoolP("decode", "d", false, "decode labels into identifiers")
	labelCmd.Flags().Bool("upper", false, "encode using upper-case digits")
}
