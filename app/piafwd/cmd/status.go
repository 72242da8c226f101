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
	"time"

	"github.com/devilcove/piafwd"
	"github.com/devilcove/piafwd/internal/forward"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"
)

var long bool

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "display vpn tunnel status",
	Long: `display the vpn tunnel interface, its addresses, wireguard details
when the tunnel is wireguard, and the public address seen from the
internet.  Exits nonzero when the vpn is not connected.`,
	Run: func(cmd *cobra.Command, args []string) {
		config, err := forward.ReadConfig()
		cobra.CheckErr(err)
		piafwd.SetLogging(config.Verbosity)
		status := piafwd.Status(config.Interface)
		if !status.Exists {
			fmt.Println("interface", status.Name, "does not exist")
			os.Exit(int(piafwd.InterfaceNotConnected))
		}
		fmt.Println("interface:", status.Name)
		if !status.Connected {
			fmt.Println("\t not connected, no IPv4 address")
			os.Exit(int(piafwd.InterfaceNotConnected))
		}
		for _, addr := range status.Addresses {
			fmt.Println("\t address:", addr.IP)
		}
		if device, err := piafwd.GetDevice(status.Name); err == nil {
			fmt.Println("\t wireguard public key:", device.PrivateKey.PublicKey())
			fmt.Println("\t wireguard listen port:", device.ListenPort)
			for _, peer := range device.Peers {
				fmt.Println("peer:", peer.PublicKey)
				fmt.Println("\t endpoint:", peer.Endpoint)
				if peer.LastHandshakeTime.IsZero() {
					fmt.Println("\t last handshake: never")
				} else {
					fmt.Printf("\t last handshake: %.0f seconds ago\n", time.Since(peer.LastHandshakeTime).Seconds())
				}
				fmt.Println("\t transfer:", peer.TransmitBytes, "sent", peer.ReceiveBytes, "received")
			}
		}
		if public, err := piafwd.PublicAddress(); err == nil {
			fmt.Println("\t public address:", public.IP)
		} else {
			fmt.Println("\t public address: unknown,", err)
		}
		if long {
			pretty.Println(status)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)

	// Here you will define your flags and configuration settings.

	// Cobra supports Persistent Flags which will work for this command
	// and all subcommands, e.g.:
	// statusCmd.PersistentFlags().String("foo", "", "A help for foo")

	// Cobra supports local flags which will only run when this command
	// is called directly, e.g.:
	statusCmd.Flags().BoolVarP(&long, "long", "l", false, "display additional details")
}
