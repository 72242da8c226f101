/*
Copyright © 2024 Matthew R Kasun <mkasun@nusak.ca>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"github.com/devilcove/piafwd/internal/forward"
	"github.com/spf13/cobra"
)

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "remove credentials from the system keyring",
	Long:  `remove credentials saved by the store command from the system keyring`,
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(forward.ClearCredentials())
		fmt.Println("credentials removed from system keyring")
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
