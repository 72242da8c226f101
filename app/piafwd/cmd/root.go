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
	"errors"
	"fmt"
	"os"

	"github.com/devilcove/piafwd"
	"github.com/devilcove/piafwd/internal/forward"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "piafwd credentials.json",
	Short: "enable port forwarding on a Private Internet Access vpn",
	Long: `piafwd enables port forwarding for a Private Internet Access vpn
connection and displays the forwarded port.  Credentials are read from
a json file (see README for the format) or from the system keyring
after piafwd store.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config, err := forward.ReadConfig()
		cobra.CheckErr(err)
		piafwd.SetLogging(config.Verbosity)
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		if !config.Keyring && path == "" {
			cobra.CheckErr(errors.New("credentials file argument is required unless --keyring is set"))
		}
		output, err := forward.Run(cmd.Context(), config, path)
		if err != nil {
			fatal(err)
		}
		fmt.Println(output)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Here you will define your flags and configuration settings.
	// Cobra supports persistent flags, which, if defined here,
	// will be global for your application.

	rootCmd.PersistentFlags().StringP("interface", "i", forward.DefaultInterface, "vpn tunnel interface")
	rootCmd.PersistentFlags().String("endpoint", forward.DefaultEndpoint, "port forward assignment url")
	rootCmd.PersistentFlags().IntP("timeout", "t", forward.DefaultTimeout, "api timeout in seconds")
	rootCmd.PersistentFlags().StringP("verbosity", "v", "INFO", "logging verbosity")
	rootCmd.PersistentFlags().Bool("debug", false, "shorthand for --verbosity DEBUG")
	cobra.CheckErr(viper.BindPFlags(rootCmd.PersistentFlags()))

	// Cobra also supports local flags, which will only run
	// when this action is called directly.
	rootCmd.Flags().Bool("keyring", false, "read credentials from the system keyring")
	cobra.CheckErr(viper.BindPFlag("keyring", rootCmd.Flags().Lookup("keyring")))
}

// fatal prints a failure and ends the process with its exit status.
// It is the one place errors become output and an exit code; errors
// outside the fixed set exit 1 without a status line.
func fatal(err error) {
	failure := &piafwd.Failure{}
	if !errors.As(err, &failure) {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, failure.Message)
	fmt.Fprintln(os.Stderr)
	if failure.Cause != nil {
		fmt.Fprintln(os.Stderr, failure.Cause)
		fmt.Fprintln(os.Stderr)
	}
	fmt.Fprintf(os.Stderr, "Exiting with exit status: %d, %s\n", failure.Code, failure.Code.Description())
	os.Exit(int(failure.Code))
}
