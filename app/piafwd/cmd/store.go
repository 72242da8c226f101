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
	"os"

	"github.com/devilcove/piafwd"
	"github.com/devilcove/piafwd/internal/forward"
	"github.com/spf13/cobra"
)

// storeCmd represents the store command
var storeCmd = &cobra.Command{
	Use:   "store credentials.json",
	Args:  cobra.ExactArgs(1),
	Short: "save credentials to the system keyring",
	Long: `validate a credentials file and save it to the system keyring so the
file can be deleted.  Use --keyring on later runs.`,
	Run: func(cmd *cobra.Command, args []string) {
		contents, err := os.ReadFile(args[0])
		if err != nil {
			fatal(piafwd.Fail(piafwd.CredentialsUnreadable, err, "failed to read credentials file %s", args[0]))
		}
		if _, err := forward.ParseCredentials(contents, args[0]); err != nil {
			fatal(err)
		}
		cobra.CheckErr(forward.StoreCredentials(contents))
		fmt.Println("credentials saved to system keyring")
	},
}

func init() {
	rootCmd.AddCommand(storeCmd)
}
