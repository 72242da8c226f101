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
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// newidCmd represents the newid command
var newidCmd = &cobra.Command{
	Use:   "newid",
	Short: "generate a client id",
	Long: `generate a random value for the client_id credentials key.  The api
ties the forwarded port to this id, so generate one and keep using it.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(strings.ReplaceAll(uuid.NewString(), "-", ""))
	},
}

func init() {
	rootCmd.AddCommand(newidCmd)
}
